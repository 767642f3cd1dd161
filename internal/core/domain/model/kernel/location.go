package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound the latitude in degrees.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// CoordinatePrecision is the number of decimal digits kept for both axes
	// (about 1.1 mm at the equator).
	CoordinatePrecision = 8

	// EarthMeanRadiusMeters is the IUGG mean Earth radius.
	EarthMeanRadiusMeters = 6371008.8
)

var coordinateScale = math.Pow10(CoordinatePrecision)

// ErrLocationIsNotConstructed is returned when a Location literal is used
// instead of one built by NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation")

// Location is an immutable geographic point in decimal degrees (WGS84).
//
// Both coordinates are rounded half away from zero to CoordinatePrecision
// digits on construction, so a Location rebuilt from its own Latitude and
// Longitude is equal to the original. Locations are comparable with == and
// can be used as map keys.
//
// Example:
//
//	maputo, err := kernel.NewLocation(-25.9692, 32.5732)
//	if err != nil {
//	    return err
//	}
//	beira, _ := kernel.NewLocation(-19.8436, 34.8389)
//	d, _ := maputo.DistanceTo(beira) // ~725 km
type Location struct { //nolint:recvcheck // setters need pointer receivers
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates and normalizes a coordinate pair.
//
// Parameters:
//   - latitude: degrees in [MinLatitude, MaxLatitude]
//   - longitude: degrees in [MinLongitude, MaxLongitude]
//
// Returns:
//   - Location: the normalized point
//   - error: ValueIsOutOfRangeError for every coordinate outside its range,
//     joined when both are wrong
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%s, %s)",
		strconv.FormatFloat(l.latitude, 'f', -1, 64),
		strconv.FormatFloat(l.longitude, 'f', -1, 64))
}

// IsEqual reports whether both points carry the same normalized coordinates.
func (l Location) IsEqual(other Location) bool {
	return l == other
}

// DistanceTo returns the great-circle distance using the Haversine formula
// on EarthMeanRadiusMeters. It is symmetric and zero for identical points.
func (l Location) DistanceTo(other Location) (Distance, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return Distance{}, err
	}
	if l == other {
		return ZeroDistance(), nil
	}

	lat1 := degreesToRadians(l.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := degreesToRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return NewDistance(EarthMeanRadiusMeters * c)
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = roundCoordinate(latitude)
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = roundCoordinate(longitude)
	return nil
}

func roundCoordinate(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
