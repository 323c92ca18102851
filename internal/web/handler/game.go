package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/advice"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/storage"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/sse"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// GameHandler serves the game page, its controls and its event stream
type GameHandler struct {
	gameController game.ControllerInterface
	adviceService  advice.ServiceInterface
	hubManager     *sse.HubManager
	renderer       *sse.Renderer
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(
	gameController game.ControllerInterface,
	adviceService advice.ServiceInterface,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		adviceService:  adviceService,
		hubManager:     hubManager,
		renderer:       sse.NewRenderer(),
		logger:         logger,
	}
}

func gameIDFrom(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// isHTMX reports whether the request came from HTMX
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Create starts a new game and redirects to it
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	g, err := h.gameController.CreateGame(r.Context(), player.ID)
	if err != nil {
		h.redirectWithError(w, r, "/", err)
		return
	}

	location := "/play/" + string(g.ID)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// View renders the game page. Anyone signed in may watch; only the owner
// gets controls.
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFrom(r)

	view, err := h.gameController.Snapshot(r.Context(), gameID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	commentary, err := h.adviceService.Log(r.Context(), gameID, storage.MaxCommentary)
	if err != nil {
		h.logger.Warn("failed to load commentary",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
	}

	data := pages.PlayData{
		PageData: layout.PageData{
			Title:  "Game " + string(gameID),
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		View:       view,
		Commentary: commentary,
		IsOwner:    view.Game.IsOwner(player.ID),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Play(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Command applies one player command. HTMX callers get 204 and see the
// result on the event stream; plain form posts are redirected to the page.
func (h *GameHandler) Command(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFrom(r)

	if err := r.ParseForm(); err != nil {
		renderError(w, r, model.ErrInvalidInput)
		return
	}

	cmd, err := engine.ParseCommand(r.FormValue("command"))
	if err != nil {
		h.respondError(w, r, gameID, err)
		return
	}

	if _, err := h.gameController.Command(r.Context(), gameID, player.ID, cmd); err != nil {
		h.respondError(w, r, gameID, err)
		return
	}

	h.respondDone(w, r, "/play/"+string(gameID))
}

// Restart replaces the board with a fresh game
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFrom(r)

	if _, err := h.gameController.Restart(r.Context(), gameID, player.ID); err != nil {
		h.respondError(w, r, gameID, err)
		return
	}

	h.respondDone(w, r, "/play/"+string(gameID))
}

// End finishes the game and returns to the home page
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFrom(r)

	if err := h.gameController.EndGame(r.Context(), gameID, player.ID); err != nil {
		h.respondError(w, r, gameID, err)
		return
	}

	middleware.SetFlash(w, "info", "Game ended")
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Events streams frames and commentary for a live game. The current frame is
// sent first so a new connection never waits for the next tick.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFrom(r)

	var view game.View
	hub, err := h.hubManager.Attach(gameID, func() (err error) {
		view, err = h.gameController.Snapshot(r.Context(), gameID)
		return err
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	initial, err := h.renderer.FrameMessages(r.Context(), view)
	if err != nil {
		h.logger.Error("failed to render initial frame",
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		initial = nil
	}

	sse.ServeSSE(w, r, hub, player.ID, initial...)
}

func (h *GameHandler) respondDone(w http.ResponseWriter, r *http.Request, location string) {
	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// respondError reports a failed action. HTMX callers get the status code
// alone; form posts go back to the game page with a flash message.
func (h *GameHandler) respondError(w http.ResponseWriter, r *http.Request, gameID model.GameID, err error) {
	status, _, message := describeError(err)
	if isHTMX(r) {
		http.Error(w, message, status)
		return
	}
	if status == http.StatusNotFound || status == http.StatusGone {
		renderError(w, r, err)
		return
	}
	middleware.SetFlash(w, "error", message)
	http.Redirect(w, r, "/play/"+string(gameID), http.StatusSeeOther)
}

func (h *GameHandler) redirectWithError(w http.ResponseWriter, r *http.Request, location string, err error) {
	_, _, message := describeError(err)
	middleware.SetFlash(w, "error", message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
