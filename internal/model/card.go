package model

import (
	kanerr "github.com/amterp/sprintboard/internal/errors"
)

// Card is a titled unit of work. Its ID is unique across the whole board,
// not just within its column.
type Card struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Title string `toml:"title" yaml:"title" json:"title"`
}

// Validate checks the shape of a card supplied by a caller.
// An empty title is allowed; the board accepts blank cards.
func (c Card) Validate() error {
	if c.ID == "" {
		return kanerr.InvalidField("card id", "must not be empty")
	}
	return nil
}
