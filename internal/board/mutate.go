// Package board holds the board-mutation logic: pure functions that take the
// current board and a requested change and return the next board.
//
// Every function here is total. Unknown column or card IDs and out-of-range
// indices return the input board unchanged. No function modifies its
// arguments; unaffected columns are shared with the input.
package board

import (
	"github.com/amterp/sprintboard/internal/model"
)

// MoveWithinColumn removes the card at from and reinserts it at to within the
// same column. to is a position in the sequence after the removal.
func MoveWithinColumn(b model.Board, columnID string, from, to int) model.Board {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b
	}
	cards := b.Columns[idx].Cards
	if !inRange(from, len(cards)) || !inRange(to, len(cards)) {
		return b
	}
	if from == to {
		return b
	}

	moved := cards[from]
	reordered := make([]model.Card, 0, len(cards))
	reordered = append(reordered, cards[:from]...)
	reordered = append(reordered, cards[from+1:]...)
	reordered = insertAt(reordered, to, moved)

	return replaceColumns(b, map[int][]model.Card{idx: reordered})
}

// MoveAcrossColumns removes the card at from in the source column and inserts
// it at to in the destination column, where to ranges over 0..len(destination).
//
// When both IDs name the same column this is MoveWithinColumn: to is
// interpreted against the sequence with the card already removed.
func MoveAcrossColumns(b model.Board, sourceColumnID, destinationColumnID string, from, to int) model.Board {
	if sourceColumnID == destinationColumnID {
		return MoveWithinColumn(b, sourceColumnID, from, to)
	}

	srcIdx := b.ColumnIndex(sourceColumnID)
	dstIdx := b.ColumnIndex(destinationColumnID)
	if srcIdx < 0 || dstIdx < 0 {
		return b
	}
	src := b.Columns[srcIdx].Cards
	dst := b.Columns[dstIdx].Cards
	if !inRange(from, len(src)) || to < 0 || to > len(dst) {
		return b
	}

	moved := src[from]
	remaining := make([]model.Card, 0, len(src)-1)
	remaining = append(remaining, src[:from]...)
	remaining = append(remaining, src[from+1:]...)

	received := make([]model.Card, 0, len(dst)+1)
	received = append(received, dst...)
	received = insertAt(received, to, moved)

	return replaceColumns(b, map[int][]model.Card{srcIdx: remaining, dstIdx: received})
}

// CreateCard appends card to the end of the column.
// A card with an empty ID or an ID already on the board is not added.
func CreateCard(b model.Board, columnID string, card model.Card) model.Board {
	idx := b.ColumnIndex(columnID)
	if idx < 0 || card.ID == "" || b.HasCard(card.ID) {
		return b
	}
	cards := b.Columns[idx].Cards

	appended := make([]model.Card, 0, len(cards)+1)
	appended = append(appended, cards...)
	appended = append(appended, card)

	return replaceColumns(b, map[int][]model.Card{idx: appended})
}

// EditCard replaces the card in the column whose ID matches updated.ID,
// keeping its position. No match is a silent no-op.
func EditCard(b model.Board, columnID string, updated model.Card) model.Board {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b
	}
	cards := b.Columns[idx].Cards
	pos := b.Columns[idx].CardIndex(updated.ID)
	if pos < 0 {
		return b
	}

	edited := make([]model.Card, len(cards))
	copy(edited, cards)
	edited[pos] = updated

	return replaceColumns(b, map[int][]model.Card{idx: edited})
}

// DeleteCard removes the card with the given ID from the column.
// Deleting a card that is not there returns the board unchanged.
func DeleteCard(b model.Board, columnID, cardID string) model.Board {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b
	}
	cards := b.Columns[idx].Cards
	pos := b.Columns[idx].CardIndex(cardID)
	if pos < 0 {
		return b
	}

	remaining := make([]model.Card, 0, len(cards)-1)
	remaining = append(remaining, cards[:pos]...)
	remaining = append(remaining, cards[pos+1:]...)

	return replaceColumns(b, map[int][]model.Card{idx: remaining})
}

// replaceColumns returns a copy of b whose columns at the given indexes carry
// new card slices. All other columns are copied as-is.
func replaceColumns(b model.Board, cards map[int][]model.Card) model.Board {
	columns := make([]model.Column, len(b.Columns))
	copy(columns, b.Columns)
	for i, c := range cards {
		columns[i].Cards = c
	}
	return model.Board{Name: b.Name, Columns: columns}
}

// insertAt inserts card at position i of cards, which must have spare capacity
// or be owned by the caller.
func insertAt(cards []model.Card, i int, card model.Card) []model.Card {
	cards = append(cards, model.Card{})
	copy(cards[i+1:], cards[i:])
	cards[i] = card
	return cards
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
