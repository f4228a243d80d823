package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/sprintboard/internal/model"
)

// TestCard returns a card whose title matches its ID.
func TestCard(id string) model.Card {
	return model.Card{ID: id, Title: id}
}

// TestBoard returns a small board with sensible test defaults:
//
//	todo  "To Do"       -> a, b
//	doing "In Progress" -> c
//	done  "Done"        -> (empty)
func TestBoard() model.Board {
	return model.Board{
		Name: "Test Sprint",
		Columns: []model.Column{
			{ID: "todo", Title: "To Do", Cards: []model.Card{TestCard("a"), TestCard("b")}},
			{ID: "doing", Title: "In Progress", Cards: []model.Card{TestCard("c")}},
			{ID: "done", Title: "Done", Cards: []model.Card{}},
		},
	}
}

// TestSeedTOML is a seed file matching TestBoard.
const TestSeedTOML = `name = "Test Sprint"

[[columns]]
id = "todo"
title = "To Do"

  [[columns.cards]]
  id = "a"
  title = "a"

  [[columns.cards]]
  id = "b"
  title = "b"

[[columns]]
id = "doing"
title = "In Progress"

  [[columns.cards]]
  id = "c"
  title = "c"

[[columns]]
id = "done"
title = "Done"
`

// WriteSeedFile writes content to name inside a temp directory and returns its path.
func WriteSeedFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}
