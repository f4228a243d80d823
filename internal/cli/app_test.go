package cli

import (
	"strings"
	"testing"

	"github.com/amterp/sprintboard/internal/config"
	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/seed"
	"github.com/amterp/sprintboard/testutil"
)

func TestOverrides_Apply(t *testing.T) {
	base := config.Config{Port: 3000, SeedFile: "env.toml", RandomSeed: 5, WatchSeed: true}

	tests := []struct {
		name string
		o    Overrides
		want config.Config
	}{
		{"zero keeps env", Overrides{}, base},
		{"port", Overrides{Port: 4000}, config.Config{Port: 4000, SeedFile: "env.toml", RandomSeed: 5, WatchSeed: true}},
		{"seed file", Overrides{SeedFile: "flag.yaml"}, config.Config{Port: 3000, SeedFile: "flag.yaml", RandomSeed: 5, WatchSeed: true}},
		{"random seed", Overrides{RandomSeed: 9}, config.Config{Port: 3000, SeedFile: "env.toml", RandomSeed: 9, WatchSeed: true}},
		{"no watch", Overrides{NoWatch: true}, config.Config{Port: 3000, SeedFile: "env.toml", RandomSeed: 5, WatchSeed: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.Apply(base); got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInitialBoard_FromSeedFile(t *testing.T) {
	path := testutil.WriteSeedFile(t, "board.toml", testutil.TestSeedTOML)

	b, err := InitialBoard(config.Config{SeedFile: path}, id.NewSequence("card"))
	if err != nil {
		t.Fatalf("InitialBoard failed: %v", err)
	}
	if b.Name != "Test Sprint" || b.CardCount() != 3 {
		t.Errorf("Unexpected board: %q with %d cards", b.Name, b.CardCount())
	}
}

func TestInitialBoard_MissingSeedFile(t *testing.T) {
	_, err := InitialBoard(config.Config{SeedFile: "/nowhere/board.toml"}, id.NewSequence("card"))

	if !kanerr.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestInitialBoard_RandomIsReproducible(t *testing.T) {
	cfg := config.Config{RandomSeed: 42}

	first, err := InitialBoard(cfg, id.NewSequence("card"))
	if err != nil {
		t.Fatalf("InitialBoard failed: %v", err)
	}
	second, _ := InitialBoard(cfg, id.NewSequence("card"))

	if first.Name != seed.DefaultBoardName {
		t.Errorf("Expected name %q, got %q", seed.DefaultBoardName, first.Name)
	}
	for i := range first.Columns {
		for j := range first.Columns[i].Cards {
			if first.Columns[i].Cards[j] != second.Columns[i].Cards[j] {
				t.Fatalf("Boards differ at column %d card %d", i, j)
			}
		}
	}
}

func TestRenderBoard(t *testing.T) {
	out := renderBoard(testutil.TestBoard())

	for _, want := range []string{"Test Sprint", "To Do", "In Progress", "Done", " 1.", "no cards", "Cards: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestRenderBoard_Unnamed(t *testing.T) {
	out := renderBoard(model.Board{})

	if !strings.Contains(out, "Board") {
		t.Errorf("Expected fallback title, got:\n%s", out)
	}
}
