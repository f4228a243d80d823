package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/amterp/ra"

	"github.com/amterp/sprintboard/internal/api"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the board API")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on, default from SPRINTBOARD_PORT (will try incrementally if in use)").
		Register(cmd)

	ctx.ServeNoWatch, _ = ra.NewBool("no-watch").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't reload the board when the seed file changes").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(o Overrides, noOpen bool) {
	app, err := NewApp(o, false)
	if err != nil {
		Fatal(err)
	}

	// Find an available port starting from the requested one
	actualPort := findAvailablePort(app.Config.Port)

	server := api.NewServer(app.Boards, app.Counter, app.IDs, api.ServerOptions{
		Port:      actualPort,
		SeedFile:  app.Config.SeedFile,
		WatchSeed: app.Config.WatchSeed,
	})

	url := fmt.Sprintf("http://localhost:%d/api/v1/board", actualPort)
	PrintSuccess("Sprintboard API running at %s", RenderURL(url))
	if app.Config.SeedFile != "" && app.Config.WatchSeed {
		PrintInfo("Watching %s for changes", app.Config.SeedFile)
	}
	fmt.Println(RenderMuted("Press Ctrl+C to stop"))

	if !noOpen {
		openBrowser(url)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			Fatal(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			Fatal(err)
		}
		PrintInfo("Stopped")
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
