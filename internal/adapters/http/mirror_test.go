package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	adlog "github.com/RomanDataLab/Brazil-flightradar/internal/adapters/log"
	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

func mirrorSnapshot(entries int) *domain.Snapshot {
	states := make([]domain.StateVector, entries)
	for i := range states {
		states[i] = domain.StateVector{ICAO24: "e48c11", OriginCountry: "Brazil"}
	}
	return &domain.Snapshot{CapturedAt: 1718000000, States: states}
}

func TestSnapshotMirror_Push(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
	if err := mirror.Push(context.Background(), mirrorSnapshot(3)); err != nil {
		t.Fatalf("Push() = %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/v1/mirror/snapshot" {
		t.Errorf("path = %q, want /v1/mirror/snapshot", gotPath)
	}

	var envelope mirrorEnvelope
	if err := json.Unmarshal(gotBody, &envelope); err != nil {
		t.Fatalf("unmarshal pushed body: %v", err)
	}
	if envelope.Snapshot.Len() != 3 {
		t.Errorf("pushed %d entries, want 3", envelope.Snapshot.Len())
	}
	if envelope.SavedAt.IsZero() {
		t.Error("pushed envelope has zero saved_at")
	}
}

func TestSnapshotMirror_PushEmptySkipped(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
	if err := mirror.Push(context.Background(), nil); err != nil {
		t.Fatalf("Push(nil) = %v", err)
	}
	if err := mirror.Push(context.Background(), mirrorSnapshot(0)); err != nil {
		t.Fatalf("Push(empty) = %v", err)
	}
	if requests != 0 {
		t.Errorf("mirror received %d requests for empty snapshots, want 0", requests)
	}
}

func TestSnapshotMirror_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
	if err := mirror.Push(context.Background(), mirrorSnapshot(1)); err == nil {
		t.Error("Push() = nil, want error on 507")
	}
}

func TestSnapshotMirror_Pull(t *testing.T) {
	savedAt := time.Now().UTC().Add(-10 * time.Minute)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(mirrorEnvelope{
			Snapshot: mirrorSnapshot(4),
			SavedAt:  savedAt,
		})
	}))
	defer srv.Close()

	mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
	cached, err := mirror.Pull(context.Background())
	if err != nil {
		t.Fatalf("Pull() = %v", err)
	}
	if cached == nil {
		t.Fatal("Pull() = nil, want cached snapshot")
	}
	if cached.Snapshot.Len() != 4 {
		t.Errorf("pulled %d entries, want 4", cached.Snapshot.Len())
	}
	if cached.Age < 10*time.Minute || cached.Age > 11*time.Minute {
		t.Errorf("Age = %v, want about 10m", cached.Age)
	}
}

func TestSnapshotMirror_PullAbsent(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"no content", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
			cached, err := mirror.Pull(context.Background())
			if err != nil {
				t.Fatalf("Pull() = %v, want nil error for absent mirror", err)
			}
			if cached != nil {
				t.Errorf("Pull() = %+v, want nil", cached)
			}
		})
	}
}

func TestSnapshotMirror_PullEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(mirrorEnvelope{SavedAt: time.Now().UTC()})
	}))
	defer srv.Close()

	mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
	cached, err := mirror.Pull(context.Background())
	if err != nil {
		t.Fatalf("Pull() = %v", err)
	}
	if cached != nil {
		t.Errorf("Pull() = %+v, want nil for envelope without snapshot", cached)
	}
}

func TestSnapshotMirror_PullErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			mirror := NewSnapshotMirror(srv.URL, srv.Client(), adlog.NewNoopLogger())
			if _, err := mirror.Pull(context.Background()); err == nil {
				t.Error("Pull() = nil, want error")
			}
		})
	}
}
