package game

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

type requestKind int

const (
	requestCommand requestKind = iota
	requestRestart
)

type request struct {
	kind  requestKind
	cmd   engine.Command
	reply chan View
}

// session owns the state of one live game. All transitions, including gravity
// ticks, run on its loop goroutine one at a time.
type session struct {
	engine   *engine.Engine
	schedule Schedule
	clock    clock.Clock
	logger   *slog.Logger

	// owned by the loop goroutine
	game  model.Game
	state engine.State
	seq   uint64
	timer <-chan time.Time

	view atomic.Pointer[View]

	requests chan request
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	persist func(model.Game)
	notify  func(Change)
}

func newSession(
	game model.Game,
	eng *engine.Engine,
	schedule Schedule,
	clk clock.Clock,
	logger *slog.Logger,
	persist func(model.Game),
	notify func(Change),
) *session {
	s := &session{
		engine:   eng,
		schedule: schedule,
		clock:    clk,
		logger:   logger.With(slog.String("game_id", string(game.ID))),
		game:     game,
		state:    eng.NewGame(),
		requests: make(chan request),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		persist:  persist,
		notify:   notify,
	}
	s.game.Level = s.state.Level
	s.game.Status = statusFor(s.state)
	s.view.Store(s.snapshot())
	return s
}

// start arms the first gravity timer and launches the loop. The timer is
// armed before start returns so a caller advancing a mock clock never races
// the loop.
func (s *session) start() {
	s.arm()
	go s.run()
}

func (s *session) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return

		case <-s.timer:
			change := s.transition(engine.CommandTick)
			s.arm()
			s.publish(change)

		case req := <-s.requests:
			wasSuspended, wasLevel := s.state.Suspended(), s.state.Level

			var change Change
			if req.kind == requestRestart {
				change = s.restart()
				s.arm()
			} else {
				change = s.transition(req.cmd)
				// pausing drops the timer, resuming starts a fresh full period
				// and a level-up starts the faster period straight away
				if s.state.Suspended() != wasSuspended || s.state.Level != wasLevel {
					s.arm()
				}
			}
			s.publish(change)
			req.reply <- change.View
		}
	}
}

// arm sets the gravity timer for the current level, or clears it while the
// game is suspended
func (s *session) arm() {
	if s.state.Suspended() {
		s.timer = nil
		return
	}
	s.timer = s.clock.After(s.schedule.Period(s.state.Level))
}

func (s *session) transition(cmd engine.Command) Change {
	prev := s.state
	next, out := s.engine.Step(prev, cmd)
	s.state = next

	prevStatus := s.game.Status
	s.syncGame()

	event := model.EventFrame
	if out.GameOver {
		event = model.EventGameOver
		s.logger.Info("game over",
			slog.Int("score", next.Score),
			slog.Int("lines", next.Lines),
			slog.Int("level", next.Level),
		)
	}
	if out.LinesCleared > 0 {
		s.logger.Debug("lines cleared",
			slog.Int("count", out.LinesCleared),
			slog.Int("score", next.Score),
		)
	}

	if s.game.Status != prevStatus || out.LinesCleared > 0 {
		s.persist(s.game)
	}

	return Change{
		Event:    event,
		Command:  cmd,
		View:     *s.snapshot(),
		Previous: prev,
		Outcome:  out,
	}
}

// restart replaces the state wholesale with a fresh game
func (s *session) restart() Change {
	prev := s.state
	s.state = s.engine.NewGame()
	s.game.Restarts++
	s.syncGame()
	s.persist(s.game)

	s.logger.Info("game restarted", slog.Int("restarts", s.game.Restarts))

	return Change{
		Event:    model.EventRestarted,
		View:     *s.snapshot(),
		Previous: prev,
	}
}

func (s *session) syncGame() {
	s.game.Status = statusFor(s.state)
	s.game.Score = s.state.Score
	s.game.Lines = s.state.Lines
	s.game.Level = s.state.Level
	s.game.UpdatedAt = s.clock.Now()
}

func (s *session) snapshot() *View {
	s.seq++
	v := &View{
		Game:   s.game,
		State:  s.state,
		Grid:   engine.Render(s.state),
		Period: s.schedule.Period(s.state.Level),
		Seq:    s.seq,
	}
	if ghost, ok := engine.Ghost(s.state); ok {
		v.Ghost = &ghost
	}
	return v
}

func (s *session) publish(change Change) {
	v := change.View
	s.view.Store(&v)
	s.notify(change)
}

// current returns the latest published view
func (s *session) current() View {
	return *s.view.Load()
}

// do hands a request to the loop and waits for the resulting view
func (s *session) do(ctx context.Context, req request) (View, error) {
	req.reply = make(chan View, 1)

	select {
	case s.requests <- req:
	case <-s.stopped:
		return View{}, model.ErrGameEnded
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	select {
	case v := <-req.reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// stop ends the loop and waits for it to exit
func (s *session) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
}
