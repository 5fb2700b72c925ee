package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated latitude/longitude
// pair. It is captured alongside custody events to record where a product
// changed hands. The zero value is invalid; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(48.8566, 2.3522)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
//	fmt.Println(point) // "48.8566,2.3522"
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates.
// Latitude must lie in [LatitudeMin, LatitudeMax] and longitude in
// [LongitudeMin, LongitudeMax]; out-of-range values are rejected.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ParseGeoPoint parses the legacy "lat,lon" audit-payload encoding.
// The literal "N/A" and the empty string mean no location and yield (nil, nil).
func ParseGeoPoint(s string) (*GeoPoint, error) {
	if s == "" || s == "N/A" {
		return nil, nil
	}

	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("location",
			fmt.Errorf("%q is not a lat,lon pair", s))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	point, err := NewGeoPoint(lat, lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two geo points by both coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String renders the point in the "lat,lon" encoding used by audit payloads.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.longitude, 'f', -1, 64)
}

// Validate ensures the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}
