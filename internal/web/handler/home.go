package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController game.ControllerInterface, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	data := pages.HomeData{
		PageData: layout.PageData{
			Title:  "Home",
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}

	if player != nil {
		games, err := h.gameController.ListGames(r.Context(), player.ID)
		if err != nil {
			h.logger.Error("failed to list games",
				slog.String("player_id", string(player.ID)),
				slog.String("error", err.Error()))
		}
		data.Games = games
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
