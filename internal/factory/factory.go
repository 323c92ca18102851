package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/services/advice"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/storage"
	"github.com/mcoot/blockdrop/internal/storage/memory"
	redisstorage "github.com/mcoot/blockdrop/internal/storage/redis"
	"github.com/mcoot/blockdrop/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	GameController *game.Controller
	AdviceService  *advice.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds configuration for the game controller (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// AdvicePolicy controls when commentary is requested (optional)
	AdvicePolicy advice.Policy
	// AdvisorURL points at a remote advice endpoint. If empty, the built-in
	// rule advisor is used.
	AdvisorURL string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.Generator == "" {
		gameCfg = game.DefaultConfig()
	}
	policy := cfg.AdvicePolicy
	if policy == (advice.Policy{}) {
		policy = advice.DefaultPolicy()
	}

	var advisor advice.Advisor = advice.NewRuleAdvisor()
	if cfg.AdvisorURL != "" {
		advisor = advice.NewHTTPAdvisor(cfg.AdvisorURL, nil)
	}

	authService := auth.New(store, clk, authCfg, logger)
	gameController, err := game.NewController(store, clk, rnd, gameCfg, logger)
	if err != nil {
		return nil, err
	}
	adviceService := advice.New(advisor, store, clk, policy, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	gameController.AddListener(adviceService)
	gameController.AddListener(broadcaster)
	adviceService.OnCommentary(broadcaster.Commentary)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		GameController: gameController,
		AdviceService:  adviceService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}, nil
}

// Close stops live games, waits for outstanding advice and disconnects
// streaming clients
func (a *App) Close() {
	a.GameController.Shutdown()
	a.AdviceService.Close()
	a.HubManager.CloseAll()
}
