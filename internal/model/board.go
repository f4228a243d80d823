package model

import (
	"fmt"

	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/util"
)

// Board is the full ordered set of columns, left to right.
//
// Boards are values. Nothing in this package or in internal/board modifies a
// Board in place; mutations build a new Columns slice and share the columns
// they did not touch.
type Board struct {
	Name    string   `toml:"name" yaml:"name" json:"name"`
	Columns []Column `toml:"columns" yaml:"columns" json:"columns"`
}

// Column is a named, ordered container of cards, top to bottom.
type Column struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Title string `toml:"title" yaml:"title" json:"title"`
	Cards []Card `toml:"cards,omitempty" yaml:"cards,omitempty" json:"cards"`
}

// ColumnIndex returns the index of the column with the given ID, or -1 if not found.
func (b Board) ColumnIndex(columnID string) int {
	for i, col := range b.Columns {
		if col.ID == columnID {
			return i
		}
	}
	return -1
}

// HasColumn returns true if the board has a column with the given ID.
func (b Board) HasColumn(columnID string) bool {
	return b.ColumnIndex(columnID) >= 0
}

// FindColumn resolves a column reference typed by a person: an exact ID,
// an exact title, or a title whose slug matches ("in-progress" for "In Progress").
func (b Board) FindColumn(ref string) (Column, bool) {
	if i := b.ColumnIndex(ref); i >= 0 {
		return b.Columns[i], true
	}
	for _, col := range b.Columns {
		if col.Title == ref {
			return col, true
		}
	}
	slug := util.Slugify(ref)
	if slug == "" {
		return Column{}, false
	}
	for _, col := range b.Columns {
		if util.Slugify(col.Title) == slug {
			return col, true
		}
	}
	return Column{}, false
}

// FindCard returns the column ID and index of the card with the given ID.
// ok is false if the card is not on the board.
func (b Board) FindCard(cardID string) (columnID string, index int, ok bool) {
	for _, col := range b.Columns {
		if i := col.CardIndex(cardID); i >= 0 {
			return col.ID, i, true
		}
	}
	return "", -1, false
}

// HasCard returns true if any column holds a card with the given ID.
func (b Board) HasCard(cardID string) bool {
	_, _, ok := b.FindCard(cardID)
	return ok
}

// CardCount returns the total number of cards across all columns.
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// ColumnIDs returns column IDs in display order.
func (b Board) ColumnIDs() []string {
	ids := make([]string, len(b.Columns))
	for i, col := range b.Columns {
		ids[i] = col.ID
	}
	return ids
}

// CardIDs returns every card ID on the board, column by column.
func (b Board) CardIDs() []string {
	ids := make([]string, 0, b.CardCount())
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			ids = append(ids, card.ID)
		}
	}
	return ids
}

// Validate checks the board invariants: every column and card has an ID,
// column IDs are unique, and card IDs are unique across the whole board.
func (b Board) Validate() error {
	columns := make(map[string]bool, len(b.Columns))
	cards := make(map[string]string)

	for i, col := range b.Columns {
		if col.ID == "" {
			return kanerr.InvalidField("column id", fmt.Sprintf("column %d (%q) has no id", i, col.Title))
		}
		if columns[col.ID] {
			return kanerr.InvalidField("column id", fmt.Sprintf("duplicate column id %q", col.ID))
		}
		columns[col.ID] = true

		for j, card := range col.Cards {
			if card.ID == "" {
				return kanerr.InvalidField("card id", fmt.Sprintf("card %d in column %q has no id", j, col.ID))
			}
			if other, exists := cards[card.ID]; exists {
				return kanerr.InvalidField("card id",
					fmt.Sprintf("duplicate card id %q (in columns %q and %q)", card.ID, other, col.ID))
			}
			cards[card.ID] = col.ID
		}
	}
	return nil
}

// CardIndex returns the index of the card with the given ID, or -1 if not found.
func (c Column) CardIndex(cardID string) int {
	for i, card := range c.Cards {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}
