package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// CommentaryFeed routes commentary to the terminal sessions playing each
// game. Register Publish with the advice service once.
type CommentaryFeed struct {
	mu   sync.Mutex
	subs map[model.GameID]chan string
}

// NewCommentaryFeed creates an empty feed
func NewCommentaryFeed() *CommentaryFeed {
	return &CommentaryFeed{subs: make(map[model.GameID]chan string)}
}

// Publish hands c to the game's session, dropping it if an earlier message
// is still unread
func (f *CommentaryFeed) Publish(c model.Commentary) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch, ok := f.subs[c.GameID]
	if !ok {
		return
	}
	select {
	case ch <- fmt.Sprintf("Coach: %s", c.Message):
	default:
	}
}

func (f *CommentaryFeed) subscribe(gameID model.GameID) (<-chan string, func()) {
	if f == nil {
		return nil, func() {}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan string, 1)
	f.subs[gameID] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.subs[gameID] == ch {
			delete(f.subs, gameID)
		}
	}
}

// Session plays one game for one player over a terminal
type Session struct {
	controller game.ControllerInterface
	playerID   model.PlayerID
	renderer   *Renderer
	feed       *CommentaryFeed
	logger     *slog.Logger
}

// NewSession creates a session. feed may be nil.
func NewSession(
	controller game.ControllerInterface,
	playerID model.PlayerID,
	renderer *Renderer,
	feed *CommentaryFeed,
	logger *slog.Logger,
) *Session {
	return &Session{
		controller: controller,
		playerID:   playerID,
		renderer:   renderer,
		feed:       feed,
		logger:     logger.With("component", "terminal"),
	}
}

// Run starts a game and plays it until the player quits, input ends, the
// game is ended elsewhere or ctx is cancelled. The game is ended on return.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	g, err := s.controller.CreateGame(ctx, s.playerID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	logger := s.logger.With("game_id", g.ID, "player_id", s.playerID)

	views, unsubscribe, err := s.controller.Subscribe(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer unsubscribe()

	notes, stopNotes := s.feed.subscribe(g.ID)
	defer stopNotes()

	done := make(chan struct{})
	defer close(done)
	input := readInput(in, done)

	var last game.View
	note := ""

	defer func() {
		if err := s.controller.EndGame(context.Background(), g.ID, s.playerID); err != nil && !errors.Is(err, model.ErrGameEnded) {
			logger.Debug("end game on exit", slog.String("error", err.Error()))
		}
		if last.Grid != nil {
			_, _ = io.WriteString(out, s.renderer.Goodbye(last))
		} else {
			_, _ = io.WriteString(out, reset+showCursor)
		}
	}()

	if _, err := io.WriteString(out, clearScreen+hideCursor); err != nil {
		return err
	}

	paint := func() error {
		if last.Grid == nil {
			return nil
		}
		_, err := io.WriteString(out, s.renderer.Frame(last, note))
		return err
	}

	var decoder Decoder
	for {
		select {
		case <-ctx.Done():
			return nil

		case v, ok := <-views:
			if !ok {
				logger.Info("game ended elsewhere")
				return nil
			}
			last = v
			if err := paint(); err != nil {
				return err
			}

		case n := <-notes:
			note = n
			if err := paint(); err != nil {
				return err
			}

		case buf, ok := <-input:
			if !ok {
				return nil
			}
			for _, key := range decoder.Feed(buf) {
				if key.Action == ActionQuit {
					return nil
				}
				if err := s.apply(ctx, g.ID, key); err != nil {
					if errors.Is(err, model.ErrGameEnded) || errors.Is(err, model.ErrGameNotFound) {
						return nil
					}
					logger.Debug("key rejected", slog.String("error", err.Error()))
				}
			}
		}
	}
}

// apply sends a key to the game. The resulting frame arrives on the
// subscription like any other.
func (s *Session) apply(ctx context.Context, gameID model.GameID, key Key) error {
	switch key.Action {
	case ActionRestart:
		_, err := s.controller.Restart(ctx, gameID, s.playerID)
		return err
	case ActionCommand:
		_, err := s.controller.Command(ctx, gameID, s.playerID, key.Command)
		return err
	}
	return nil
}

// readInput copies reads from r onto a channel, closed at EOF or on error
func readInput(r io.Reader, done <-chan struct{}) <-chan []byte {
	ch := make(chan []byte)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case ch <- chunk:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
