package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
)

type contextKey string

const (
	playerContextKey contextKey = "player"

	// SessionCookie holds the auth token for browser sessions
	SessionCookie = "session"
)

// GetPlayer retrieves the authenticated player from the request context.
// Returns nil if no player is authenticated.
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// Auth returns middleware that requires a session. Anonymous visitors are
// sent to the home page with the original path in ?next.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := playerFromCookie(r, authService)
			if player == nil {
				http.Redirect(w, r, "/?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth sets the player in the context when a valid session cookie is
// present
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if player := playerFromCookie(r, authService); player != nil {
				r = r.WithContext(context.WithValue(r.Context(), playerContextKey, player))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func playerFromCookie(r *http.Request, authService *auth.Service) *model.Player {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	player, err := authService.GetPlayer(cookie.Value)
	if err != nil {
		return nil
	}
	return player
}
