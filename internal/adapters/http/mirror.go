package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

const mirrorEndpoint = "/v1/mirror/snapshot"

var _ ports.Mirror = (*SnapshotMirror)(nil)

// mirrorEnvelope is the document exchanged with the mirror service: the
// snapshot plus the pushing client's save time, which drives age display on
// pull.
type mirrorEnvelope struct {
	Snapshot *domain.Snapshot `json:"snapshot"`
	SavedAt  time.Time        `json:"saved_at"`
}

// SnapshotMirror implements ports.Mirror over HTTP. The mirror service is a
// dumb shared slot: whatever envelope was pushed last is what everyone pulls.
type SnapshotMirror struct {
	baseURL string
	client  ports.HTTPClient
	logger  ports.Logger
}

// NewSnapshotMirror creates a mirror client for the given base URL.
func NewSnapshotMirror(baseURL string, client ports.HTTPClient, logger ports.Logger) *SnapshotMirror {
	return &SnapshotMirror{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Push uploads the snapshot. Empty snapshots are not worth sharing and are
// skipped.
func (m *SnapshotMirror) Push(ctx context.Context, snap *domain.Snapshot) error {
	if snap.Empty() {
		return nil
	}

	body, err := json.Marshal(mirrorEnvelope{
		Snapshot: snap,
		SavedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, m.baseURL+mirrorEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mirror returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	m.logger.Debug("snapshot pushed to mirror", ports.Int("entries", snap.Len()))
	return nil
}

// Pull downloads the mirror's envelope. A 404 or 204 means the mirror has
// nothing yet and is reported as (nil, nil); other failures surface as
// errors for the caller to treat as a miss.
func (m *SnapshotMirror) Pull(ctx context.Context) (*domain.Cached, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+mirrorEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mirror returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var envelope mirrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Snapshot.Empty() {
		return nil, nil
	}

	age := time.Duration(0)
	if !envelope.SavedAt.IsZero() {
		age = time.Since(envelope.SavedAt)
	}

	m.logger.Debug("snapshot pulled from mirror",
		ports.Int("entries", envelope.Snapshot.Len()),
		ports.Duration("age", age))
	return &domain.Cached{Snapshot: envelope.Snapshot, Age: age}, nil
}
