package static

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

// seedJSON is the fallback snapshot bundled into the binary. It is a real
// capture over the Brazilian bounding box, kept small; the UI shows it
// without an age because it only proves the pipeline renders.
//
//go:embed seed.json
var seedJSON []byte

var _ ports.StaticSource = (*Source)(nil)

// Source implements ports.StaticSource from the embedded bundle. The bundle
// is decoded once and shared; callers treat the snapshot as read-only.
type Source struct {
	once sync.Once
	snap *domain.Snapshot
	err  error
}

// NewSource creates the bundled snapshot source.
func NewSource() *Source {
	return &Source{}
}

// Static returns the bundled snapshot.
func (s *Source) Static() (*domain.Snapshot, error) {
	s.once.Do(func() {
		var snap domain.Snapshot
		if err := json.Unmarshal(seedJSON, &snap); err != nil {
			s.err = fmt.Errorf("decode bundled snapshot: %w", err)
			return
		}
		s.snap = &snap
	})
	return s.snap, s.err
}
