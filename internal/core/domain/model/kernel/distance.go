package kernel

import (
	"cmp"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

const metersPerKilometer = 1000.0

// Distance is a non-negative length kept in meters with centimeter precision.
// The zero value is a valid zero distance.
type Distance struct {
	meters float64
}

// NewDistance builds a Distance from meters. Negative, NaN and infinite values
// are rejected.
func NewDistance(meters float64) (Distance, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return Distance{}, errs.NewValueIsOutOfRangeError("meters", meters, 0, "+Inf")
	}
	return Distance{meters: roundTo(meters, 2)}, nil
}

// NewDistanceFromKilometers builds a Distance from kilometers.
func NewDistanceFromKilometers(km float64) (Distance, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return Distance{}, errs.NewValueIsOutOfRangeError("kilometers", km, 0, "+Inf")
	}
	return NewDistance(km * metersPerKilometer)
}

func ZeroDistance() Distance {
	return Distance{}
}

func (d Distance) Meters() float64 {
	return d.meters
}

// Kilometers returns the distance in kilometers rounded to meters.
func (d Distance) Kilometers() float64 {
	return roundTo(d.meters/metersPerKilometer, 3)
}

func (d Distance) IsZero() bool {
	return d.meters == 0
}

func (d Distance) Add(other Distance) Distance {
	return Distance{meters: roundTo(d.meters+other.meters, 2)}
}

// Subtract fails when other is longer than d.
func (d Distance) Subtract(other Distance) (Distance, error) {
	if other.meters > d.meters {
		return Distance{}, errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("cannot subtract %s from %s", other, d))
	}
	return Distance{meters: roundTo(d.meters-other.meters, 2)}, nil
}

// Multiply scales the distance by a non-negative factor.
func (d Distance) Multiply(factor float64) (Distance, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return Distance{}, errs.NewValueIsOutOfRangeError("factor", factor, 0, "+Inf")
	}
	return Distance{meters: roundTo(d.meters*factor, 2)}, nil
}

func (d Distance) Compare(other Distance) int {
	return cmp.Compare(d.meters, other.meters)
}

func (d Distance) IsGreaterThan(other Distance) bool {
	return d.meters > other.meters
}

func (d Distance) IsLessThan(other Distance) bool {
	return d.meters < other.meters
}

func (d Distance) IsEqual(other Distance) bool {
	return d.meters == other.meters
}

// String renders "1.50 km" from one kilometer up and "850 m" below.
func (d Distance) String() string {
	if d.meters >= metersPerKilometer {
		return fmt.Sprintf("%.2f km", d.meters/metersPerKilometer)
	}
	return fmt.Sprintf("%.0f m", d.meters)
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}

// PathDistance sums the great-circle lengths of consecutive legs. A path needs
// at least two points.
func PathDistance(locations []Location) (Distance, error) {
	if len(locations) < 2 {
		return Distance{}, errs.NewValueIsOutOfRangeError("locations", len(locations), 2, "+Inf")
	}

	total := ZeroDistance()
	for i := 1; i < len(locations); i++ {
		leg, err := locations[i-1].DistanceTo(locations[i])
		if err != nil {
			return Distance{}, err
		}
		total = total.Add(leg)
	}
	return total, nil
}
