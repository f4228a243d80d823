package model

import (
	"reflect"
	"testing"

	kanerr "github.com/amterp/sprintboard/internal/errors"
)

func sampleBoard() Board {
	return Board{
		Name: "Sprint #1",
		Columns: []Column{
			{ID: "todo", Title: "To Do", Cards: []Card{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}},
			{ID: "doing", Title: "In Progress", Cards: []Card{{ID: "c", Title: "C"}}},
			{ID: "done", Title: "Done", Cards: []Card{}},
		},
	}
}

func TestBoard_FindCard(t *testing.T) {
	b := sampleBoard()

	colID, idx, ok := b.FindCard("c")
	if !ok {
		t.Fatal("Expected card c to be found")
	}
	if colID != "doing" || idx != 0 {
		t.Errorf("Expected (doing, 0), got (%s, %d)", colID, idx)
	}

	if _, _, ok := b.FindCard("missing"); ok {
		t.Error("Expected missing card to not be found")
	}
}

func TestBoard_FindColumn(t *testing.T) {
	b := sampleBoard()

	tests := []struct {
		ref    string
		wantID string
		found  bool
	}{
		{"todo", "todo", true},
		{"To Do", "todo", true},
		{"to-do", "todo", true},
		{"in progress", "doing", true},
		{"IN-PROGRESS", "doing", true},
		{"Done", "done", true},
		{"backlog", "", false},
		{"", "", false},
		{"---", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			col, ok := b.FindColumn(tt.ref)
			if ok != tt.found {
				t.Fatalf("FindColumn(%q) found = %v, want %v", tt.ref, ok, tt.found)
			}
			if col.ID != tt.wantID {
				t.Errorf("FindColumn(%q) = %q, want %q", tt.ref, col.ID, tt.wantID)
			}
		})
	}
}

func TestBoard_IDsAndCount(t *testing.T) {
	b := sampleBoard()

	if got := b.CardCount(); got != 3 {
		t.Errorf("Expected 3 cards, got %d", got)
	}
	if got := b.ColumnIDs(); !reflect.DeepEqual(got, []string{"todo", "doing", "done"}) {
		t.Errorf("Unexpected column IDs: %v", got)
	}
	if got := b.CardIDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Unexpected card IDs: %v", got)
	}
}

func TestBoard_Validate(t *testing.T) {
	if err := sampleBoard().Validate(); err != nil {
		t.Fatalf("Expected sample board to be valid, got %v", err)
	}

	tests := []struct {
		name  string
		board Board
	}{
		{
			name:  "empty column id",
			board: Board{Columns: []Column{{Title: "To Do"}}},
		},
		{
			name:  "duplicate column id",
			board: Board{Columns: []Column{{ID: "x"}, {ID: "x"}}},
		},
		{
			name:  "empty card id",
			board: Board{Columns: []Column{{ID: "x", Cards: []Card{{Title: "no id"}}}}},
		},
		{
			name: "duplicate card id across columns",
			board: Board{Columns: []Column{
				{ID: "x", Cards: []Card{{ID: "a"}}},
				{ID: "y", Cards: []Card{{ID: "a"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !kanerr.IsValidationError(err) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCard_Validate(t *testing.T) {
	if err := (Card{ID: "x"}).Validate(); err != nil {
		t.Errorf("Expected valid card, got %v", err)
	}
	if err := (Card{Title: "no id"}).Validate(); !kanerr.IsValidationError(err) {
		t.Errorf("Expected ValidationError for empty id, got %v", err)
	}
}

func TestColumnColor_Cycles(t *testing.T) {
	if ColumnColor(0) != ColumnColor(len(ColumnColors)) {
		t.Error("Expected palette to cycle")
	}
	if ColumnColor(-1) == "" {
		t.Error("Expected a color for negative positions")
	}
}
