package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// persistTimeout bounds storage writes made from a game loop
const persistTimeout = 5 * time.Second

// Config holds configuration for the game controller
type Config struct {
	// Generator names the piece generator ("uniform" or "bag")
	Generator string
	Schedule  Schedule
	// MaxGamesPerPlayer limits concurrently live games per player; 0 means no limit
	MaxGamesPerPlayer int
}

// DefaultConfig returns default game configuration
func DefaultConfig() Config {
	return Config{
		Generator:         engine.GeneratorUniform,
		Schedule:          DefaultSchedule(),
		MaxGamesPerPlayer: 5,
	}
}

// Controller manages live game sessions and their persisted records
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu        sync.RWMutex
	sessions  map[model.GameID]*session
	listeners []Listener
	closed    bool

	subs *subscriptions
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) (*Controller, error) {
	if _, err := engine.NewGenerator(cfg.Generator, random); err != nil {
		return nil, fmt.Errorf("generator %q: %w", cfg.Generator, err)
	}
	if cfg.Schedule == (Schedule{}) {
		cfg.Schedule = DefaultSchedule()
	}

	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger.With("component", "game"),
		cfg:      cfg,
		sessions: make(map[model.GameID]*session),
		subs:     newSubscriptions(),
	}, nil
}

// AddListener registers a listener for every game's changes
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// CreateGame starts a new game owned by playerID. Gravity is armed
// immediately; the first tick spawns the first piece.
func (c *Controller) CreateGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, model.ErrShuttingDown
	}
	if c.cfg.MaxGamesPerPlayer > 0 && c.liveGamesFor(playerID) >= c.cfg.MaxGamesPerPlayer {
		return nil, model.ErrTooManyGames
	}

	generator, err := engine.NewGenerator(c.cfg.Generator, c.random)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := model.Game{
		ID:        model.GameID(c.random.String(12, idAlphabet)),
		PlayerID:  playerID,
		Status:    model.GameStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sess := newSession(game, engine.New(generator), c.cfg.Schedule, c.clock, c.logger, c.persist, c.dispatch)
	game = sess.current().Game

	if err := c.storage.SaveGame(ctx, &game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.sessions[game.ID] = sess
	sess.start()

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("generator", c.cfg.Generator),
	)

	return &game, nil
}

// liveGamesFor must be called with mu held
func (c *Controller) liveGamesFor(playerID model.PlayerID) int {
	n := 0
	for _, sess := range c.sessions {
		if sess.current().Game.PlayerID == playerID {
			n++
		}
	}
	return n
}

// GetGame returns the latest record of a game, live or not
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	if sess, ok := c.session(gameID); ok {
		game := sess.current().Game
		return &game, nil
	}
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the player's games, newest first
func (c *Controller) ListGames(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error) {
	games, err := c.storage.GetGamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	// stored counters lag the live ones between lifecycle saves
	for i, g := range games {
		if sess, ok := c.session(g.ID); ok {
			live := sess.current().Game
			games[i] = &live
		}
	}
	return games, nil
}

// Snapshot returns the latest view of a live game
func (c *Controller) Snapshot(ctx context.Context, gameID model.GameID) (View, error) {
	sess, err := c.liveSession(ctx, gameID)
	if err != nil {
		return View{}, err
	}
	return sess.current(), nil
}

// Command applies a player command to the game and returns the resulting
// view. Commands against a finished game are accepted and change nothing.
func (c *Controller) Command(ctx context.Context, gameID model.GameID, playerID model.PlayerID, cmd engine.Command) (View, error) {
	if cmd == engine.CommandTick {
		return View{}, model.ErrInvalidInput
	}
	if _, err := engine.ParseCommand(string(cmd)); err != nil {
		return View{}, model.ErrInvalidInput
	}

	sess, err := c.ownedSession(ctx, gameID, playerID)
	if err != nil {
		return View{}, err
	}
	return sess.do(ctx, request{kind: requestCommand, cmd: cmd})
}

// Restart replaces the game's state with a fresh one and re-arms gravity
func (c *Controller) Restart(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (View, error) {
	sess, err := c.ownedSession(ctx, gameID, playerID)
	if err != nil {
		return View{}, err
	}
	return sess.do(ctx, request{kind: requestRestart})
}

// EndGame stops the game's loop and marks it ended
func (c *Controller) EndGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	sess, err := c.ownedSession(ctx, gameID, playerID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.sessions[gameID] != sess {
		c.mu.Unlock()
		return model.ErrGameEnded
	}
	delete(c.sessions, gameID)
	c.mu.Unlock()

	sess.stop()

	final := sess.current()
	final.Game.Status = model.GameStatusEnded
	final.Game.UpdatedAt = c.clock.Now()
	final.Seq++

	if err := c.storage.SaveGame(ctx, &final.Game); err != nil {
		c.logger.Error("failed to save ended game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("game ended",
		slog.String("game_id", string(gameID)),
		slog.Int("score", final.Game.Score),
		slog.Int("lines", final.Game.Lines),
	)

	c.dispatch(Change{Event: model.EventGameEnded, View: final, Previous: final.State})
	c.subs.closeGame(gameID)
	return nil
}

// Subscribe streams views of a live game. The channel is closed when the game
// ends or cancel is called.
func (c *Controller) Subscribe(ctx context.Context, gameID model.GameID) (<-chan View, func(), error) {
	sess, err := c.liveSession(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	return c.subscribe(gameID, sess)
}

// subscribe registers a watcher of sess. EndGame and Shutdown drop the session
// before closing its subscribers, so a watcher added after that close is
// caught by the second lookup and released here.
func (c *Controller) subscribe(gameID model.GameID, sess *session) (<-chan View, func(), error) {
	ch := c.subs.add(gameID, sess.current)
	if current, ok := c.session(gameID); !ok || current != sess {
		c.subs.remove(gameID, ch)
		return nil, nil, model.ErrGameEnded
	}
	return ch, func() { c.subs.remove(gameID, ch) }, nil
}

// Shutdown stops every live game and saves its latest counters. Further
// CreateGame calls fail.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	c.closed = true
	sessions := c.sessions
	c.sessions = make(map[model.GameID]*session)
	c.mu.Unlock()

	var wg sync.WaitGroup
	for id, sess := range sessions {
		wg.Add(1)
		go func(id model.GameID, sess *session) {
			defer wg.Done()
			sess.stop()
			c.persist(sess.current().Game)
			c.subs.closeGame(id)
		}(id, sess)
	}
	wg.Wait()

	c.logger.Info("game controller stopped", slog.Int("games", len(sessions)))
}

func (c *Controller) session(gameID model.GameID) (*session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[gameID]
	return sess, ok
}

// liveSession distinguishes ended games from unknown ones
func (c *Controller) liveSession(ctx context.Context, gameID model.GameID) (*session, error) {
	if sess, ok := c.session(gameID); ok {
		return sess, nil
	}
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return nil, model.ErrGameEnded
}

func (c *Controller) ownedSession(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*session, error) {
	sess, err := c.liveSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if sess.current().Game.PlayerID != playerID {
		return nil, model.ErrNotGameOwner
	}
	return sess, nil
}

// persist saves a game record from a game loop
func (c *Controller) persist(game model.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.storage.SaveGame(ctx, &game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// dispatch fans a change out to listeners and subscribers
func (c *Controller) dispatch(change Change) {
	c.mu.RLock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, l := range listeners {
		l.GameChanged(change)
	}
	c.subs.publish(change.View)
}

// ControllerInterface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error)
	Snapshot(ctx context.Context, gameID model.GameID) (View, error)
	Command(ctx context.Context, gameID model.GameID, playerID model.PlayerID, cmd engine.Command) (View, error)
	Restart(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (View, error)
	EndGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error
	Subscribe(ctx context.Context, gameID model.GameID) (<-chan View, func(), error)
	AddListener(l Listener)
	Shutdown()
}

var _ ControllerInterface = (*Controller)(nil)
