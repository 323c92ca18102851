package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestCreation(t *testing.T) {
	ts := newWebTestServer(t)

	// Create guest player
	form := url.Values{"display_name": {"Alice"}}
	rr := ts.post("/auth/guest", form)

	// Should redirect to home
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// Session cookie should be set
	assert.True(t, ts.cookies.hasSession())

	// Follow redirect and check we're logged in
	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#player-name", "Alice")
	assertContainsElement(t, doc, "form#new-game-form[action='/play']")
	assertNotContainsElement(t, doc, "form#guest-form")
}

func TestGuestCreationWithoutNameGetsGeneratedName(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/guest", url.Values{"display_name": {""}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, ts.cookies.hasSession())

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#player-name", "Guest-")
}

func TestGuestCreationTruncatesLongName(t *testing.T) {
	ts := newWebTestServer(t)

	ts.createGuestPlayer(strings.Repeat("x", 40))

	doc := parseHTML(ts.get("/").Body)
	assert.Equal(t, strings.Repeat("x", 20), doc.Find("#player-name").Text())
}

func TestGuestCreationRedirectsToNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/guest", url.Values{"display_name": {"Alice"}, "next": {"/play/GAME1"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/play/GAME1", rr.Header().Get("Location"))
}

func TestGuestCreationIgnoresOffsiteNext(t *testing.T) {
	ts := newWebTestServer(t)

	for _, next := range []string{"//evil.example", "https://evil.example"} {
		rr := ts.post("/auth/guest", url.Values{"next": {next}})
		assert.Equal(t, "/", rr.Header().Get("Location"), "next=%s", next)
	}
}

func TestHomeShowsGuestFormWhenAnonymous(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?next=/play/GAME1")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form#guest-form[action='/auth/guest']")
	assertContainsElement(t, doc, "input[name='next'][value='/play/GAME1']")
	assertNotContainsElement(t, doc, "#player-name")
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.post("/auth/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "form#guest-form")
	assertContainsText(t, doc, "#flash", "logged out")
}

func TestStaleSessionIsTreatedAsAnonymous(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: "sess_bogus"}

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), "form#guest-form")
}
