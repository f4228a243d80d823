package board

import (
	"fmt"

	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/model"
)

// Action describes one requested change to the board. Reduce applies it.
//
// Validate only checks the action's own shape (required IDs present, indices
// non-negative). Whether the IDs exist on the current board is not an error:
// a stale reference reduces to a no-op.
type Action interface {
	Name() string
	Validate() error
	apply(b model.Board) model.Board
}

// MoveWithin reorders a card inside one column.
type MoveWithin struct {
	ColumnID string
	From     int
	To       int
}

// MoveAcross moves a card from one column to another.
type MoveAcross struct {
	SourceColumnID      string
	DestinationColumnID string
	From                int
	To                  int
}

// Create appends a new card to a column.
type Create struct {
	ColumnID string
	Card     model.Card
}

// Edit replaces a card's fields, keeping its position.
type Edit struct {
	ColumnID string
	Card     model.Card
}

// Delete removes a card from a column.
type Delete struct {
	ColumnID string
	CardID   string
}

// Drag applies a drag-and-drop gesture.
type Drag struct {
	Gesture Gesture
}

// Reset replaces the whole board, e.g. after the seed file changed.
type Reset struct {
	Board model.Board
}

// Reduce returns the board that results from applying a to b.
func Reduce(b model.Board, a Action) model.Board {
	if a == nil {
		return b
	}
	return a.apply(b)
}

func (MoveWithin) Name() string { return "move_within" }
func (MoveAcross) Name() string { return "move_across" }
func (Create) Name() string     { return "create_card" }
func (Edit) Name() string       { return "edit_card" }
func (Delete) Name() string     { return "delete_card" }
func (Drag) Name() string       { return "drag" }
func (Reset) Name() string      { return "reset" }

func (a MoveWithin) Validate() error {
	if a.ColumnID == "" {
		return kanerr.InvalidField("column", "must not be empty")
	}
	return validateIndices(a.From, a.To)
}

func (a MoveAcross) Validate() error {
	if a.SourceColumnID == "" {
		return kanerr.InvalidField("source column", "must not be empty")
	}
	if a.DestinationColumnID == "" {
		return kanerr.InvalidField("destination column", "must not be empty")
	}
	return validateIndices(a.From, a.To)
}

func (a Create) Validate() error {
	if a.ColumnID == "" {
		return kanerr.InvalidField("column", "must not be empty")
	}
	return a.Card.Validate()
}

func (a Edit) Validate() error {
	if a.ColumnID == "" {
		return kanerr.InvalidField("column", "must not be empty")
	}
	return a.Card.Validate()
}

func (a Delete) Validate() error {
	if a.ColumnID == "" {
		return kanerr.InvalidField("column", "must not be empty")
	}
	if a.CardID == "" {
		return kanerr.InvalidField("card id", "must not be empty")
	}
	return nil
}

func (a Drag) Validate() error {
	switch g := a.Gesture.(type) {
	case Drop:
		return g.Validate()
	case Cancelled:
		return nil
	default:
		return kanerr.InvalidField("gesture", fmt.Sprintf("unsupported gesture %T", a.Gesture))
	}
}

func (a Reset) Validate() error {
	return a.Board.Validate()
}

func (a MoveWithin) apply(b model.Board) model.Board {
	return MoveWithinColumn(b, a.ColumnID, a.From, a.To)
}

func (a MoveAcross) apply(b model.Board) model.Board {
	return MoveAcrossColumns(b, a.SourceColumnID, a.DestinationColumnID, a.From, a.To)
}

func (a Create) apply(b model.Board) model.Board {
	return CreateCard(b, a.ColumnID, a.Card)
}

func (a Edit) apply(b model.Board) model.Board {
	return EditCard(b, a.ColumnID, a.Card)
}

func (a Delete) apply(b model.Board) model.Board {
	return DeleteCard(b, a.ColumnID, a.CardID)
}

func (a Drag) apply(b model.Board) model.Board {
	if a.Gesture == nil {
		return b
	}
	return Apply(b, a.Gesture)
}

func (a Reset) apply(model.Board) model.Board {
	return a.Board
}

func validateIndices(from, to int) error {
	if from < 0 {
		return kanerr.InvalidField("from index", fmt.Sprintf("must be >= 0, got %d", from))
	}
	if to < 0 {
		return kanerr.InvalidField("to index", fmt.Sprintf("must be >= 0, got %d", to))
	}
	return nil
}
