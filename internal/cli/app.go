package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/amterp/sprintboard/internal/config"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/prompt"
	"github.com/amterp/sprintboard/internal/seed"
	"github.com/amterp/sprintboard/internal/store"
)

// Overrides are command-line values that take precedence over the environment.
// Zero values leave the environment's setting in place.
type Overrides struct {
	SeedFile   string
	RandomSeed int64
	Port       int
	NoWatch    bool
}

// Apply returns cfg with the overrides applied.
func (o Overrides) Apply(cfg config.Config) config.Config {
	if o.SeedFile != "" {
		cfg.SeedFile = o.SeedFile
	}
	if o.RandomSeed != 0 {
		cfg.RandomSeed = o.RandomSeed
	}
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.NoWatch {
		cfg.WatchSeed = false
	}
	return cfg
}

// App holds all the dependencies for the CLI.
type App struct {
	Config   config.Config
	Boards   *store.BoardStore
	Counter  *store.CounterStore
	IDs      id.Generator
	Prompter prompt.Prompter
}

// NewApp loads configuration, sets up logging and builds the session board.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(o Overrides, interactive bool) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg = o.Apply(cfg)

	if err := config.ConfigureLogging(cfg, os.Stderr); err != nil {
		return nil, err
	}

	ids := id.FlexID{}
	initial, err := InitialBoard(cfg, ids)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		Config:   cfg,
		Boards:   store.NewBoardStore(initial),
		Counter:  store.NewCounterStore(),
		IDs:      ids,
		Prompter: prompter,
	}, nil
}

// InitialBoard loads the configured seed file, or samples a random board
// when there is none.
func InitialBoard(cfg config.Config, ids id.Generator) (model.Board, error) {
	if cfg.SeedFile != "" {
		b, err := seed.LoadFile(cfg.SeedFile, ids)
		if err != nil {
			return model.Board{}, fmt.Errorf("load seed %s: %w", cfg.SeedFile, err)
		}
		return b, nil
	}
	return seed.Random(NewRand(cfg.RandomSeed), ids), nil
}

// NewRand returns a source seeded with s, or with the clock when s is 0.
func NewRand(s int64) *rand.Rand {
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("Error: %v", err)
	os.Exit(1)
}
