package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/store"
)

// ServerOptions configures NewServer.
type ServerOptions struct {
	Port int

	// SeedFile is watched for changes when WatchSeed is set. Empty disables watching.
	SeedFile  string
	WatchSeed bool
}

// Server wraps the HTTP server for a single board session.
type Server struct {
	httpServer *http.Server
	watcher    *SeedWatcher
	wsHub      *WebSocketHub
	log        *logrus.Entry
}

// NewServer wires the handler, the WebSocket gesture channel and the optional
// seed watcher around one board store.
func NewServer(boards *store.BoardStore, counter *store.CounterStore, ids id.Generator, opts ServerOptions) *Server {
	log := logrus.WithField("component", "server")

	mux := http.NewServeMux()
	handler := NewHandler(boards, counter, ids)
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub(boards)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	boards.Subscribe(wsHub)

	var watcher *SeedWatcher
	if opts.SeedFile != "" && opts.WatchSeed {
		var err error
		watcher, err = NewSeedWatcher(opts.SeedFile)
		if err != nil {
			log.WithError(err).Warn("Failed to create seed watcher")
			watcher = nil
		} else {
			watcher.Subscribe(NewSeedReloader(boards, ids))
		}
	}

	wrapped := Logging(Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		log:     log,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.log.WithError(err).Warn("Failed to start seed watcher")
		}
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.log.WithError(err).Warn("Failed to stop seed watcher")
		}
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the root HTTP handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
