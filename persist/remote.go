// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/food-poll/models"
)

const (
	fetchPath = "/api/fetchData"
	savePath  = "/api/saveData"
)

// Remote talks to another food-poll server's data endpoints
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote store. A zero timeout means no client timeout.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Load(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+fetchPath, nil)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Snapshot{}, remoteError("fetch", resp)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode fetched data: %w", err)
	}
	return snap.Normalize(), nil
}

func (r *Remote) Save(ctx context.Context, snap models.Snapshot) error {
	body, err := json.Marshal(snap.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+savePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError("save", resp)
	}
	// Drain so the connection can be reused
	io.Copy(io.Discard, resp.Body)
	return nil
}

func remoteError(op string, resp *http.Response) error {
	var body models.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg := body.Error
		if body.Message != "" {
			msg += ": " + body.Message
		}
		return fmt.Errorf("remote %s failed with status %d: %s", op, resp.StatusCode, msg)
	}
	return fmt.Errorf("remote %s failed with status %d", op, resp.StatusCode)
}
