package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/api/middleware"
	"github.com/mcoot/blockdrop/internal/api/request"
	"github.com/mcoot/blockdrop/internal/api/response"
	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/advice"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/storage"
	"github.com/mcoot/blockdrop/internal/web/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	adviceService  advice.ServiceInterface
	hubManager     *sse.HubManager
	renderer       *sse.Renderer
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler. Without a hub manager the
// events endpoint reports 404.
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

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.CreateGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.gameController.Snapshot(r.Context(), g.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromView(view))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	games, err := h.gameController.ListGames(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/v1/games/{id}. Any signed-in player may read a live
// game; ended games return 410.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.gameController.Snapshot(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromView(view))
}

// Command handles POST /api/v1/games/{id}/commands
func (h *GameHandler) Command(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cmd, err := engine.ParseCommand(req.Command)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.gameController.Command(r.Context(), gameID(r), player.ID, cmd)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromView(view))
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	view, err := h.gameController.Restart(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromView(view))
}

// End handles DELETE /api/v1/games/{id}
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.gameController.EndGame(r.Context(), gameID(r), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Commentary handles GET /api/v1/games/{id}/commentary?limit=N
func (h *GameHandler) Commentary(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	limit := storage.MaxCommentary
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	// commentary outlives the game, so only unknown games are an error
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.adviceService.Log(r.Context(), id, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CommentaryFromModel(entries))
}

// Events handles GET /api/v1/games/{id}/events, the same stream the web page
// uses. JSON clients read the state, commentary-data, game-over and
// game-ended events and ignore the HTML ones.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := gameID(r)

	if h.hubManager == nil {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	var view game.View
	hub, err := h.hubManager.Attach(id, func() (err error) {
		view, err = h.gameController.Snapshot(r.Context(), id)
		return err
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	initial, err := h.renderer.FrameMessages(r.Context(), view)
	if err != nil {
		h.logger.Error("failed to render initial frame",
			slog.String("game_id", string(id)),
			slog.Any("error", err))
		initial = nil
	}

	sse.ServeSSE(w, r, hub, player.ID, initial...)
}
