package board

import (
	"encoding/json"
	"fmt"
	"math"

	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/model"
)

// Gesture is a finished drag-and-drop action. It is either a Drop or Cancelled;
// there is no nullable destination to forget to check.
type Gesture interface {
	isGesture()
}

// Drop is a drag that ended on a column.
type Drop struct {
	SourceColumnID      string `json:"source_column_id"`
	DestinationColumnID string `json:"destination_column_id"`
	FromIndex           int    `json:"from_index"`
	ToIndex             int    `json:"to_index"`
}

// Cancelled is a drag that ended outside any drop target, or was aborted.
type Cancelled struct{}

func (Drop) isGesture()      {}
func (Cancelled) isGesture() {}

// Apply applies a gesture to the board. A Drop within one column reorders it,
// a Drop across columns moves the card, and Cancelled changes nothing.
func Apply(b model.Board, g Gesture) model.Board {
	switch g := g.(type) {
	case Drop:
		if g.SourceColumnID == g.DestinationColumnID {
			return MoveWithinColumn(b, g.SourceColumnID, g.FromIndex, g.ToIndex)
		}
		return MoveAcrossColumns(b, g.SourceColumnID, g.DestinationColumnID, g.FromIndex, g.ToIndex)
	default:
		return b
	}
}

// Validate checks the drop's shape, not whether it fits the current board.
func (d Drop) Validate() error {
	if d.SourceColumnID == "" {
		return kanerr.InvalidField("source column", "must not be empty")
	}
	if d.DestinationColumnID == "" {
		return kanerr.InvalidField("destination column", "must not be empty")
	}
	if d.FromIndex < 0 {
		return kanerr.InvalidField("from index", fmt.Sprintf("must be >= 0, got %d", d.FromIndex))
	}
	if d.ToIndex < 0 {
		return kanerr.InvalidField("to index", fmt.Sprintf("must be >= 0, got %d", d.ToIndex))
	}
	return nil
}

// ParseDragEnd narrows a decoded drag-end payload into a Gesture.
//
// The payload has the shape emitted by browser drag-and-drop libraries:
//
//	{"reason": "DROP", "source": {"droppableId": "todo", "index": 0},
//	 "destination": {"droppableId": "done", "index": 2}}
//
// A missing or null destination, or reason "CANCEL", is a Cancelled gesture.
func ParseDragEnd(payload map[string]any) (Gesture, error) {
	if payload == nil {
		return nil, kanerr.InvalidField("payload", "must be an object")
	}

	if reason, ok := payload["reason"]; ok && reason != nil {
		s, isString := reason.(string)
		if !isString {
			return nil, kanerr.InvalidField("reason", "must be a string")
		}
		if s == "CANCEL" {
			return Cancelled{}, nil
		}
	}

	srcCol, srcIdx, err := parseLocation(payload["source"], "source")
	if err != nil {
		return nil, err
	}

	dest, ok := payload["destination"]
	if !ok || dest == nil {
		return Cancelled{}, nil
	}
	dstCol, dstIdx, err := parseLocation(dest, "destination")
	if err != nil {
		return nil, err
	}

	return Drop{
		SourceColumnID:      srcCol,
		DestinationColumnID: dstCol,
		FromIndex:           srcIdx,
		ToIndex:             dstIdx,
	}, nil
}

func parseLocation(v any, field string) (string, int, error) {
	loc, ok := v.(map[string]any)
	if !ok {
		return "", 0, kanerr.InvalidField(field, "must be an object with droppableId and index")
	}
	columnID, ok := loc["droppableId"].(string)
	if !ok || columnID == "" {
		return "", 0, kanerr.InvalidField(field+".droppableId", "must be a non-empty string")
	}
	index, ok := asIndex(loc["index"])
	if !ok {
		return "", 0, kanerr.InvalidField(field+".index", "must be a non-negative integer")
	}
	return columnID, index, nil
}

// asIndex accepts the number types a JSON decoder may produce.
func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int64:
		return int(n), n >= 0
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil || i < 0 {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
