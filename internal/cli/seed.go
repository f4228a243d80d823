package cli

import (
	"os"

	"github.com/amterp/ra"

	"github.com/amterp/sprintboard/internal/seed"
)

func registerSeed(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("seed")
	cmd.SetDescription("Print a seed file for the starting board")

	ctx.SeedFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetDefault("toml").
		SetFlagOnly(true).
		SetUsage("Output format: toml or yaml").
		SetCompletionFunc(completeSeedFormats).
		Register(cmd)

	ctx.SeedUsed, _ = parent.RegisterCmd(cmd)
}

// runSeed prints the starting board as a seed file. With --seed it converts
// an existing seed, filling in any IDs it left out.
func runSeed(o Overrides, format string) {
	f, err := seed.ParseFormat(format)
	if err != nil {
		Fatal(err)
	}

	app, err := NewApp(o, false)
	if err != nil {
		Fatal(err)
	}

	if err := seed.Encode(os.Stdout, app.Boards.Current(), f); err != nil {
		Fatal(err)
	}
}
