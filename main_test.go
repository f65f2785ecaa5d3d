// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name       string
		level      string
		format     string
		debugShown bool
		wantJSON   bool
	}{
		{"default text", "info", "text", false, false},
		{"debug level", "debug", "text", true, false},
		{"json format", "info", "json", false, true},
		{"unknown level falls back to info", "loud", "", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tc.level, tc.format)

			if got := logger.Enabled(context.Background(), slog.LevelDebug); got != tc.debugShown {
				t.Errorf("Debug enabled = %v, want %v", got, tc.debugShown)
			}

			logger.Info("hello", "k", "v")
			isJSON := strings.HasPrefix(strings.TrimSpace(buf.String()), "{")
			if isJSON != tc.wantJSON {
				t.Errorf("JSON output = %v, want %v: %s", isJSON, tc.wantJSON, buf.String())
			}
		})
	}
}

func TestServeWaitsForInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("done"))
	})}

	stop := make(chan os.Signal, 1)
	served := make(chan error, 1)
	go func() { served <- serve(server, ln, stop) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("Request never reached the handler")
	}

	stop <- os.Interrupt

	select {
	case err := <-served:
		t.Fatalf("serve returned before the request finished: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the request finished")
	}
	if code := <-status; code != http.StatusOK {
		t.Errorf("In-flight request got status %d, want 200", code)
	}
}
