package game

import (
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
)

// subscriptions fans views out to in-process watchers of a single game.
// Each subscriber holds at most one pending view; a newer view replaces an
// unread one so slow readers only ever see the latest frame.
type subscriptions struct {
	mu   sync.Mutex
	subs map[model.GameID]map[chan View]struct{}
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		subs: make(map[model.GameID]map[chan View]struct{}),
	}
}

// add registers a subscriber primed with the latest view. latest is read under
// the lock so no frame published in between is lost.
func (s *subscriptions) add(gameID model.GameID, latest func() View) chan View {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan View, 1)
	ch <- latest()
	if s.subs[gameID] == nil {
		s.subs[gameID] = make(map[chan View]struct{})
	}
	s.subs[gameID][ch] = struct{}{}
	return ch
}

func (s *subscriptions) remove(gameID model.GameID, ch chan View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[gameID][ch]; !ok {
		return
	}
	delete(s.subs[gameID], ch)
	if len(s.subs[gameID]) == 0 {
		delete(s.subs, gameID)
	}
	close(ch)
}

func (s *subscriptions) publish(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs[v.Game.ID] {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// closeGame closes every subscriber of the game
func (s *subscriptions) closeGame(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs[gameID] {
		close(ch)
	}
	delete(s.subs, gameID)
}
