package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/sprintboard/internal/seed"
)

// completeSeedFormats returns seed formats matching the given prefix.
func completeSeedFormats(toComplete string) ([]string, ra.CompletionDirective) {
	var result []string
	for _, f := range []seed.Format{seed.FormatTOML, seed.FormatYAML} {
		if strings.HasPrefix(string(f), toComplete) {
			result = append(result, string(f))
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}

// completeSeedFiles returns seed files (by extension) matching the given prefix.
func completeSeedFiles(toComplete string) ([]string, ra.CompletionDirective) {
	dir := filepath.Dir(toComplete)
	if !strings.Contains(toComplete, string(filepath.Separator)) {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	var result []string
	for _, e := range entries {
		name := e.Name()
		if dir != "." {
			name = filepath.Join(dir, name)
		}
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if e.IsDir() {
			continue
		}
		if _, err := seed.FormatForPath(name); err == nil {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result, ra.CompletionDirectiveNoFileComp
}

// registerCompletion adds the "sprintboard completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
