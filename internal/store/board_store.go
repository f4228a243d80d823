package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/amterp/sprintboard/internal/board"
	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/model"
)

// BoardStore owns the single current board. Callers never hold a mutable
// board: they dispatch actions and the store replaces its value wholesale.
//
// Dispatches are serialised, so actions apply one at a time in call order
// even when HTTP requests and WebSocket messages arrive concurrently.
type BoardStore struct {
	mu          sync.Mutex
	notifyMu    sync.Mutex // keeps notifications in dispatch order
	current     model.Board
	subscribers []BoardSubscriber
	log         *logrus.Entry
}

// NewBoardStore creates a store holding the initial board.
func NewBoardStore(initial model.Board) *BoardStore {
	return &BoardStore{
		current: initial,
		log:     logrus.WithField("component", "board_store"),
	}
}

// Current returns the current board.
func (s *BoardStore) Current() model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a subscriber for board changes.
func (s *BoardStore) Subscribe(sub BoardSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Dispatch validates and applies an action, then notifies subscribers.
//
// A malformed action is a caller bug and returns a ValidationError without
// touching the board. Creating a card whose ID is already on the board
// returns an AlreadyExistsError. Anything else that does not match the
// current board (stale index, unknown card) applies as a no-op.
//
// Subscribers must not dispatch from OnBoardChange.
func (s *BoardStore) Dispatch(a board.Action) (model.Board, error) {
	if a == nil {
		return model.Board{}, kanerr.InvalidField("action", "must not be nil")
	}
	if err := a.Validate(); err != nil {
		s.log.WithError(err).WithField("action", a.Name()).Warn("Rejected malformed action")
		return model.Board{}, err
	}

	s.mu.Lock()
	if create, ok := a.(board.Create); ok && s.current.HasCard(create.Card.ID) {
		s.mu.Unlock()
		return model.Board{}, kanerr.CardAlreadyExists(create.Card.ID)
	}

	next := board.Reduce(s.current, a)
	s.current = next
	subs := make([]BoardSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"action": a.Name(),
		"cards":  next.CardCount(),
	}).Debug("Applied action")

	for _, sub := range subs {
		sub.OnBoardChange(next)
	}
	return next, nil
}
