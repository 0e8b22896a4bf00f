package domain

import "fmt"

// BoundingBox is the WGS-84 rectangle the tracker asks the upstream for.
type BoundingBox struct {
	LatMin float64 `json:"lat_min" toml:"lat_min"`
	LonMin float64 `json:"lon_min" toml:"lon_min"`
	LatMax float64 `json:"lat_max" toml:"lat_max"`
	LonMax float64 `json:"lon_max" toml:"lon_max"`
}

// BrazilBoundingBox covers the Brazilian airspace with a margin over the
// Atlantic approach corridors.
func BrazilBoundingBox() BoundingBox {
	return BoundingBox{
		LatMin: -34.0,
		LonMin: -74.5,
		LatMax: 5.5,
		LonMax: -28.5,
	}
}

// Validate checks coordinate ranges and rectangle orientation.
func (b BoundingBox) Validate() error {
	if b.LatMin < -90 || b.LatMax > 90 {
		return fmt.Errorf("%w: latitude out of range [-90, 90]", ErrInvalidConfig)
	}
	if b.LonMin < -180 || b.LonMax > 180 {
		return fmt.Errorf("%w: longitude out of range [-180, 180]", ErrInvalidConfig)
	}
	if b.LatMin >= b.LatMax {
		return fmt.Errorf("%w: lat_min must be below lat_max", ErrInvalidConfig)
	}
	if b.LonMin >= b.LonMax {
		return fmt.Errorf("%w: lon_min must be below lon_max", ErrInvalidConfig)
	}
	return nil
}
