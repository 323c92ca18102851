package advice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/storage"
)

// FallbackMessage is recorded when the advisor fails
const FallbackMessage = "Lost contact with the coach, but stay focused. Trust your instincts!"

// Policy controls when advice is requested
type Policy struct {
	// ScoreStep triggers a request each time the score crosses a multiple of it
	ScoreStep int
	// Debounce is the minimum time between requests for one game
	Debounce time.Duration
	// Timeout bounds a single advisor call
	Timeout time.Duration
}

// DefaultPolicy returns the default advice policy
func DefaultPolicy() Policy {
	return Policy{
		ScoreStep: 1000,
		Debounce:  10 * time.Second,
		Timeout:   5 * time.Second,
	}
}

// Service requests commentary in the background as games progress. Nothing
// on the game path ever waits for it.
type Service struct {
	advisor Advisor
	storage storage.Storage
	clock   clock.Clock
	policy  Policy
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	lastRequest map[model.GameID]time.Time
	inFlight    map[model.GameID]bool
	sinks       []func(model.Commentary)
	closed      bool
}

// New creates a new advice Service
func New(advisor Advisor, storage storage.Storage, clock clock.Clock, policy Policy, logger *slog.Logger) *Service {
	if policy.ScoreStep <= 0 {
		policy.ScoreStep = DefaultPolicy().ScoreStep
	}
	if policy.Timeout <= 0 {
		policy.Timeout = DefaultPolicy().Timeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		advisor:     advisor,
		storage:     storage,
		clock:       clock,
		policy:      policy,
		logger:      logger.With("component", "advice"),
		ctx:         ctx,
		cancel:      cancel,
		lastRequest: make(map[model.GameID]time.Time),
		inFlight:    make(map[model.GameID]bool),
	}
}

// OnCommentary registers a callback for new commentary. Callbacks run on the
// request goroutine.
func (s *Service) OnCommentary(fn func(model.Commentary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, fn)
}

// GameChanged implements game.Listener
func (s *Service) GameChanged(change game.Change) {
	switch change.Event {
	case model.EventFrame:
		if change.Outcome.ScoreDelta > 0 {
			s.Observe(change.View.Game, change.Previous.Score, change.View.State)
		}
	case model.EventGameEnded:
		s.forget(change.View.Game.ID)
	}
}

// Observe starts an advice request when the score crossed a multiple of
// ScoreStep since prevScore, the debounce window has elapsed and no request
// is already running for the game. It reports whether a request started.
func (s *Service) Observe(g model.Game, prevScore int, state engine.State) bool {
	if state.Score/s.policy.ScoreStep <= prevScore/s.policy.ScoreStep {
		return false
	}

	now := s.clock.Now()

	s.mu.Lock()
	if s.closed || s.inFlight[g.ID] {
		s.mu.Unlock()
		return false
	}
	if last, ok := s.lastRequest[g.ID]; ok && now.Sub(last) < s.policy.Debounce {
		s.mu.Unlock()
		return false
	}
	s.inFlight[g.ID] = true
	s.lastRequest[g.ID] = now
	// Add under mu so Close never waits while a request is being started
	s.wg.Add(1)
	s.mu.Unlock()

	go s.request(g, engine.SnapshotFor(state))
	return true
}

func (s *Service) request(g model.Game, snapshot engine.AdviceSnapshot) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, g.ID)
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(s.ctx, s.policy.Timeout)
	defer cancel()

	c, err := s.advisor.Advise(ctx, snapshot)
	if err != nil {
		s.logger.Warn("advice request failed",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		c = model.Commentary{Message: FallbackMessage, Sentiment: model.SentimentNeutral, Fallback: true}
	}
	c.GameID = g.ID
	c.Score = snapshot.Score
	c.CreatedAt = s.clock.Now()

	// the log outlives the request context
	saveCtx, saveCancel := context.WithTimeout(context.Background(), s.policy.Timeout)
	defer saveCancel()
	if err := s.storage.AppendCommentary(saveCtx, &c); err != nil {
		s.logger.Error("failed to save commentary",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Debug("commentary received",
		slog.String("game_id", string(g.ID)),
		slog.String("sentiment", string(c.Sentiment)),
		slog.Bool("fallback", c.Fallback),
	)

	s.mu.Lock()
	sinks := make([]func(model.Commentary), len(s.sinks))
	copy(sinks, s.sinks)
	s.mu.Unlock()
	for _, fn := range sinks {
		fn(c)
	}
}

// Log returns up to limit of the game's most recent commentary, oldest first
func (s *Service) Log(ctx context.Context, gameID model.GameID, limit int) ([]*model.Commentary, error) {
	return s.storage.GetCommentary(ctx, gameID, limit)
}

// Wait blocks until all running requests finish
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close cancels running requests and waits for them. Observe starts nothing
// afterwards.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Service) forget(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastRequest, gameID)
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Observe(g model.Game, prevScore int, state engine.State) bool
	Log(ctx context.Context, gameID model.GameID, limit int) ([]*model.Commentary, error)
	OnCommentary(fn func(model.Commentary))
	GameChanged(change game.Change)
	Close()
}

var _ ServiceInterface = (*Service)(nil)
var _ game.Listener = (*Service)(nil)
