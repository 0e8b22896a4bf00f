package domain

// Snapshot is one fetched batch of aircraft state vectors together with the
// capture timestamp assigned by the upstream source.
type Snapshot struct {
	// CapturedAt is the upstream-assigned capture time in Unix seconds.
	// It is authoritative for staleness display; cache decisions use the
	// local save time instead (see TrackerState.SavedAt).
	CapturedAt int64 `json:"time"`

	// States holds the aircraft state vectors. The cache layers treat the
	// slice as opaque payload: they count entries but never inspect or
	// reshape individual records.
	States []StateVector `json:"states"`
}

// Empty reports whether the snapshot carries no state vectors. An empty
// snapshot is a valid upstream response ("no update") but is never persisted.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.States) == 0
}

// Len returns the number of state vectors, tolerating a nil receiver.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.States)
}

// StateVector is a single aircraft state record in the upstream's vocabulary.
// Position and kinematic fields are nullable upstream and therefore pointers
// here; the cache passes them through untouched.
type StateVector struct {
	// ICAO24 is the 24-bit transponder address in lower-case hex, the
	// stable identifier of the airframe.
	ICAO24 string `json:"icao24"`

	// Callsign is the broadcast callsign, trimmed; may be empty.
	Callsign string `json:"callsign"`

	// OriginCountry is the country of registration.
	OriginCountry string `json:"origin_country"`

	// TimePosition is the Unix time of the last position report, if any.
	TimePosition *int64 `json:"time_position"`

	// LastContact is the Unix time of the last received message.
	LastContact int64 `json:"last_contact"`

	// Longitude and Latitude are WGS-84 degrees; nil when unknown.
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`

	// BaroAltitude is the barometric altitude in meters; nil when unknown.
	BaroAltitude *float64 `json:"baro_altitude"`

	// OnGround reports whether the aircraft is on the surface.
	OnGround bool `json:"on_ground"`

	// Velocity is ground speed in m/s; nil when unknown.
	Velocity *float64 `json:"velocity"`

	// TrueTrack is the track angle in degrees clockwise from north.
	TrueTrack *float64 `json:"true_track"`

	// VerticalRate is the climb/descent rate in m/s; nil when unknown.
	VerticalRate *float64 `json:"vertical_rate"`

	// GeoAltitude is the geometric altitude in meters; nil when unknown.
	GeoAltitude *float64 `json:"geo_altitude"`

	// Squawk is the transponder code; may be empty.
	Squawk string `json:"squawk"`

	// SPI reports whether the special purpose indicator is set.
	SPI bool `json:"spi"`

	// PositionSource identifies the surveillance source (0 ADS-B, 1 ASTERIX,
	// 2 MLAT).
	PositionSource int `json:"position_source"`
}
