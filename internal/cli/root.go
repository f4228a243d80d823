package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	SeedFile   *string
	RandomSeed *int

	// serve command
	ServeUsed    *bool
	ServePort    *int
	ServeNoWatch *bool
	ServeNoOpen  *bool

	// play command
	PlayUsed *bool

	// show command
	ShowUsed *bool

	// seed command
	SeedUsed   *bool
	SeedFormat *string

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("sprintboard")
	cmd.SetDescription("Sprint kanban board with drag-and-drop moves")

	ctx.SeedFile, _ = ra.NewString("seed").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Seed file (.toml or .yaml) to start the board from").
		SetCompletionFunc(completeSeedFiles).
		Register(cmd, ra.WithGlobal(true))

	ctx.RandomSeed, _ = ra.NewInt("random-seed").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Seed for the random sample board (0 uses the clock)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerServe(cmd, ctx)
	registerPlay(cmd, ctx)
	registerShow(cmd, ctx)
	registerSeed(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	overrides := Overrides{
		SeedFile:   *ctx.SeedFile,
		RandomSeed: int64(*ctx.RandomSeed),
	}

	switch {
	case *ctx.ServeUsed:
		overrides.Port = *ctx.ServePort
		overrides.NoWatch = *ctx.ServeNoWatch
		runServe(overrides, *ctx.ServeNoOpen)

	case *ctx.PlayUsed:
		runPlay(overrides)

	case *ctx.ShowUsed:
		runShow(overrides)

	case *ctx.SeedUsed:
		runSeed(overrides, *ctx.SeedFormat)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
