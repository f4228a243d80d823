package store

import "github.com/amterp/sprintboard/internal/model"

// BoardSubscriber receives the new board after every applied action.
type BoardSubscriber interface {
	OnBoardChange(b model.Board)
}

// BoardSubscriberFunc adapts a function to BoardSubscriber.
type BoardSubscriberFunc func(b model.Board)

func (f BoardSubscriberFunc) OnBoardChange(b model.Board) {
	f(b)
}
