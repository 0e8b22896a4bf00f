package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

const statesEndpoint = "/api/states/all"

// stateColumns is the positional width of one upstream state row.
const stateColumns = 17

var _ ports.SnapshotSource = (*LiveSource)(nil)

// LiveSource implements ports.SnapshotSource against an OpenSky-compatible
// states endpoint. The upstream encodes each state vector as a positional
// array; LiveSource converts rows to domain.StateVector and maps transport
// failures onto the domain error taxonomy.
type LiveSource struct {
	baseURL string
	bbox    domain.BoundingBox
	client  ports.HTTPClient
	auth    ports.AuthProvider
	logger  ports.Logger
}

// NewLiveSource creates a live upstream client. baseURL is the API root
// without the states path; bbox limits the query to the tracked region.
func NewLiveSource(baseURL string, bbox domain.BoundingBox, client ports.HTTPClient, auth ports.AuthProvider, logger ports.Logger) *LiveSource {
	return &LiveSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		bbox:    bbox,
		client:  client,
		auth:    auth,
		logger:  logger,
	}
}

// Fetch retrieves the current snapshot for the configured region.
func (s *LiveSource) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	query := url.Values{}
	query.Set("lamin", formatCoord(s.bbox.LatMin))
	query.Set("lomin", formatCoord(s.bbox.LonMin))
	query.Set("lamax", formatCoord(s.bbox.LatMax))
	query.Set("lomax", formatCoord(s.bbox.LonMax))

	reqURL := s.baseURL + statesEndpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if value, ok := s.auth.Authorization(); ok {
		req.Header.Set("Authorization", value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrUnauthorized
	case resp.StatusCode/100 != 2:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, bytes.TrimSpace(body))
	}

	snap, err := decodeSnapshot(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched live snapshot",
		ports.Int("entries", snap.Len()),
		ports.Int64("captured_at", snap.CapturedAt))
	return snap, nil
}

// decodeSnapshot parses the upstream body. A present-but-null or empty
// states array is a valid "no aircraft" answer; a missing time or states
// field means the payload is not the expected document at all.
func decodeSnapshot(r io.Reader) (*domain.Snapshot, error) {
	var payload struct {
		Time   json.RawMessage `json:"time"`
		States json.RawMessage `json:"states"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	if len(payload.Time) == 0 {
		return nil, fmt.Errorf("%w: missing time field", domain.ErrMalformed)
	}
	if len(payload.States) == 0 {
		return nil, fmt.Errorf("%w: missing states field", domain.ErrMalformed)
	}

	var capturedAt int64
	if err := json.Unmarshal(payload.Time, &capturedAt); err != nil {
		return nil, fmt.Errorf("%w: invalid time field: %v", domain.ErrMalformed, err)
	}

	snap := &domain.Snapshot{CapturedAt: capturedAt, States: []domain.StateVector{}}
	if isNull(payload.States) {
		return snap, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(payload.States, &rows); err != nil {
		return nil, fmt.Errorf("%w: states is not an array: %v", domain.ErrMalformed, err)
	}

	snap.States = make([]domain.StateVector, 0, len(rows))
	for i, row := range rows {
		sv, err := decodeStateVector(row)
		if err != nil {
			return nil, fmt.Errorf("%w: state row %d: %v", domain.ErrMalformed, i, err)
		}
		snap.States = append(snap.States, sv)
	}

	return snap, nil
}

// decodeStateVector converts one positional upstream row. Column order
// follows the OpenSky states schema; column 12 (receiving sensors) is
// ignored.
func decodeStateVector(row json.RawMessage) (domain.StateVector, error) {
	var cols []json.RawMessage
	if err := json.Unmarshal(row, &cols); err != nil {
		return domain.StateVector{}, err
	}
	if len(cols) < stateColumns {
		return domain.StateVector{}, fmt.Errorf("row has %d columns, want %d", len(cols), stateColumns)
	}

	var sv domain.StateVector
	var err error

	if sv.ICAO24, err = colString(cols[0]); err != nil {
		return sv, fmt.Errorf("icao24: %w", err)
	}
	if sv.Callsign, err = colString(cols[1]); err != nil {
		return sv, fmt.Errorf("callsign: %w", err)
	}
	sv.Callsign = strings.TrimSpace(sv.Callsign)
	if sv.OriginCountry, err = colString(cols[2]); err != nil {
		return sv, fmt.Errorf("origin_country: %w", err)
	}
	if sv.TimePosition, err = colOptInt64(cols[3]); err != nil {
		return sv, fmt.Errorf("time_position: %w", err)
	}
	if sv.LastContact, err = colInt64(cols[4]); err != nil {
		return sv, fmt.Errorf("last_contact: %w", err)
	}
	if sv.Longitude, err = colOptFloat(cols[5]); err != nil {
		return sv, fmt.Errorf("longitude: %w", err)
	}
	if sv.Latitude, err = colOptFloat(cols[6]); err != nil {
		return sv, fmt.Errorf("latitude: %w", err)
	}
	if sv.BaroAltitude, err = colOptFloat(cols[7]); err != nil {
		return sv, fmt.Errorf("baro_altitude: %w", err)
	}
	if sv.OnGround, err = colBool(cols[8]); err != nil {
		return sv, fmt.Errorf("on_ground: %w", err)
	}
	if sv.Velocity, err = colOptFloat(cols[9]); err != nil {
		return sv, fmt.Errorf("velocity: %w", err)
	}
	if sv.TrueTrack, err = colOptFloat(cols[10]); err != nil {
		return sv, fmt.Errorf("true_track: %w", err)
	}
	if sv.VerticalRate, err = colOptFloat(cols[11]); err != nil {
		return sv, fmt.Errorf("vertical_rate: %w", err)
	}
	if sv.GeoAltitude, err = colOptFloat(cols[13]); err != nil {
		return sv, fmt.Errorf("geo_altitude: %w", err)
	}
	if sv.Squawk, err = colString(cols[14]); err != nil {
		return sv, fmt.Errorf("squawk: %w", err)
	}
	if sv.SPI, err = colBool(cols[15]); err != nil {
		return sv, fmt.Errorf("spi: %w", err)
	}
	if sv.PositionSource, err = colInt(cols[16]); err != nil {
		return sv, fmt.Errorf("position_source: %w", err)
	}

	return sv, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func colString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var v string
	err := json.Unmarshal(raw, &v)
	return v, err
}

func colInt64(raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var v int64
	err := json.Unmarshal(raw, &v)
	return v, err
}

func colOptInt64(raw json.RawMessage) (*int64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func colOptFloat(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func colBool(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var v bool
	err := json.Unmarshal(raw, &v)
	return v, err
}

func colInt(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, nil
	}
	var v int
	err := json.Unmarshal(raw, &v)
	return v, err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
