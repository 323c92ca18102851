package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/services/advice"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/handler"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	AdviceService  advice.ServiceInterface
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.AdviceService, hubManager, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing player info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(middleware.Flash())
	public.Use(middleware.OptionalAuth(cfg.AuthService))
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/auth/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Game routes (require auth)
	play := r.PathPrefix("/play").Subrouter()
	play.Use(middleware.Flash())
	play.Use(middleware.Auth(cfg.AuthService))
	play.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	play.HandleFunc("/{id}", gameHandler.View).Methods(http.MethodGet)
	play.HandleFunc("/{id}/command", gameHandler.Command).Methods(http.MethodPost)
	play.HandleFunc("/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	play.HandleFunc("/{id}/end", gameHandler.End).Methods(http.MethodPost)
	play.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	return r
}
