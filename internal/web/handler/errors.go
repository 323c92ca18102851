package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// renderError renders the error page with a status and title derived from err
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, title, message := describeError(err)

	data := pages.ErrorData{
		PageData: layout.PageData{
			Title:  title,
			Player: middleware.GetPlayer(r.Context()),
		},
		Message: message,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pages.Error(data).Render(r.Context(), w)
}

func describeError(err error) (int, string, string) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return http.StatusNotFound, "Game not found", "That game does not exist."
	case errors.Is(err, model.ErrGameEnded):
		return http.StatusGone, "Game ended", "That game has ended."
	case errors.Is(err, model.ErrNotGameOwner):
		return http.StatusForbidden, "Not your game", "Only the player who started this game can control it."
	case errors.Is(err, model.ErrTooManyGames):
		return http.StatusConflict, "Too many games", "End one of your games before starting another."
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, engine.ErrUnknownCommand):
		return http.StatusBadRequest, "Invalid command", "That is not a game command."
	case errors.Is(err, model.ErrShuttingDown):
		return http.StatusServiceUnavailable, "Shutting down", "The server is shutting down. Try again shortly."
	default:
		return http.StatusInternalServerError, "Error", "Something went wrong. Please try again later."
	}
}
