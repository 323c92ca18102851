package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

// spawn advances gravity once so the first piece appears
func (ts *webTestServer) spawn(gameID string) {
	ts.t.Helper()
	ts.app.MockClock.Advance(800 * time.Millisecond)
	require.Eventually(ts.t, func() bool {
		view, err := ts.app.GameController.Snapshot(ts.t.Context(), model.GameID(gameID))
		return err == nil && view.State.Active != nil
	}, time.Second, 5*time.Millisecond, "Expected the first piece to spawn")
}

func TestCreateGameRedirectsToGamePage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	rr := ts.get("/play/" + gameID)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "section#game[data-game-id='GAME1'][sse-connect='/play/GAME1/events']")
	assert.Equal(t, engine.Rows, doc.Find("#game-board .board-row").Length())
	assert.Equal(t, engine.Rows*engine.Cols, doc.Find("#game-board .cell").Length())
	assertContainsText(t, doc, "#score", "0")
	assertContainsText(t, doc, "#status", "Playing")
	assertContainsElement(t, doc, "ul#commentary-log[sse-swap='commentary']")
}

func TestCreateGameHTMXUsesHXRedirect(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	ts.app.MockRandom.QueueString("GAME1")

	rr := ts.postHTMX("/play", url.Values{})

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/play/GAME1", rr.Header().Get("HX-Redirect"))
}

func TestOwnerSeesControls(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	doc := parseHTML(ts.get("/play/" + gameID).Body)

	for _, cmd := range engine.Commands {
		assertContainsElement(t, doc, "#game-controls button[data-command='"+string(cmd)+"']")
	}
	assertContainsElement(t, doc, "#game-controls form[action='/play/GAME1/restart']")
	assertContainsElement(t, doc, "#game-controls form[action='/play/GAME1/end']")
	assertNotContainsElement(t, doc, "button[data-command='tick']")
}

func TestSpectatorSeesBoardWithoutControls(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	bob := ts.withPlayer()
	bob.createGuestPlayer("Bob")

	rr := bob.get("/play/" + gameID)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#game-board")
	assertNotContainsElement(t, doc, "#game-controls")

	// Nor can a spectator send commands
	rr = bob.command(gameID, "hard-drop")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestFirstTickSpawnsPiece(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	doc := parseHTML(ts.get("/play/" + gameID).Body)
	assert.Equal(t, 0, doc.Find("#game-board .cell-active").Length())

	ts.spawn(gameID)

	doc = parseHTML(ts.get("/play/" + gameID).Body)
	assert.Equal(t, 4, doc.Find("#game-board .cell-active").Length())
	assertContainsElement(t, doc, "#next-piece[data-kind='I']")
}

func TestHardDropScores(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")
	ts.spawn(gameID)

	rr := ts.command(gameID, "hard-drop")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	doc := parseHTML(ts.get("/play/" + gameID).Body)
	assertContainsText(t, doc, "#score", "16")
}

func TestCommandFormPostRedirectsToGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	rr := ts.post("/play/"+gameID+"/command", url.Values{"command": {"toggle-pause"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/play/"+gameID, rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#status", "Paused")
}

func TestInvalidCommandsRejected(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	for _, cmd := range []string{"", "teleport", "tick"} {
		rr := ts.command(gameID, cmd)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "command %q", cmd)
	}
}

func TestRestartResetsBoard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")
	ts.spawn(gameID)
	require.Equal(t, http.StatusNoContent, ts.command(gameID, "hard-drop").Code)

	rr := ts.post("/play/"+gameID+"/restart", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#score", "0")
	assert.Equal(t, 0, doc.Find("#game-board .cell-settled").Length())
}

func TestEndGameReturnsHome(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.createGame("GAME1")

	rr := ts.post("/play/"+gameID+"/end", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#flash", "Game ended")
	assertContainsElement(t, doc, "#game-list li[data-status='ended']")
	assertNotContainsElement(t, doc, "#game-list a[href='/play/GAME1']")

	// Further commands are refused
	assert.Equal(t, http.StatusGone, ts.command(gameID, "rotate").Code)
}

func TestHomeListsGames(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	ts.createGame("GAME1")
	ts.createGame("GAME2")

	doc := parseHTML(ts.get("/").Body)
	assert.Equal(t, 2, doc.Find("#game-list li.game-item").Length())
	assertContainsElement(t, doc, "#game-list a[href='/play/GAME1']")
	assertContainsElement(t, doc, "#game-list a[href='/play/GAME2']")

	// Other players don't see them
	bob := ts.withPlayer()
	bob.createGuestPlayer("Bob")
	doc = parseHTML(bob.get("/").Body)
	assert.Equal(t, 0, doc.Find("#game-list li.game-item").Length())
}
