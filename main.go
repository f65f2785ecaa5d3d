// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/food-poll/cliparse"
	"github.com/danielhkuo/food-poll/middleware"
	"github.com/danielhkuo/food-poll/persist"
	"github.com/danielhkuo/food-poll/router"
	"github.com/danielhkuo/food-poll/store"
)

func main() {
	var err error

	// A missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	// Open the configured persistence backend
	persister, closer, err := persist.Open(cfg)
	if err != nil {
		slog.Error("persistence setup failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.Info("Persistence ready", "backend", cfg.Backend)

	// Load the data and start the save worker
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st := store.Open(loadCtx, persister, store.Options{SaveTimeout: cfg.SaveTimeout})
	cancel()
	defer st.Close()

	// Create router
	mux := router.NewRouter(st, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("Failed to listen", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(&server, ln, ctrlc); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
	// Deferred: the store flushes its last snapshot, then the backend closes
}

// serve runs server on ln until stop fires, then shuts it down and returns
// only once in-flight requests have finished.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal) error {
	shutdownDone := make(chan error, 1)
	go func() {
		// Wait for Ctrl-C signal
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownDone <- server.Shutdown(ctx)
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownDone
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
