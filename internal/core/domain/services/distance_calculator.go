package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RoadInflationFactor approximates road distance from straight-line distance
// in the absence of a road graph.
const RoadInflationFactor = 1.3

// DistanceCalculator answers distance queries over kernel.Location. It holds
// no state and is safe for concurrent use.
type DistanceCalculator struct{}

func NewDistanceCalculator() DistanceCalculator {
	return DistanceCalculator{}
}

// StraightLineDistance is the Haversine distance between a and b.
func (DistanceCalculator) StraightLineDistance(a, b kernel.Location) (kernel.Distance, error) {
	return a.DistanceTo(b)
}

// RoadDistanceEstimate inflates the straight-line distance by RoadInflationFactor.
func (c DistanceCalculator) RoadDistanceEstimate(a, b kernel.Location) (kernel.Distance, error) {
	d, err := c.StraightLineDistance(a, b)
	if err != nil {
		return kernel.Distance{}, err
	}
	return d.Multiply(RoadInflationFactor)
}

// DistancesTo returns the distance from from to every destination, in order.
func (c DistanceCalculator) DistancesTo(from kernel.Location, destinations []kernel.Location) ([]kernel.Distance, error) {
	out := make([]kernel.Distance, len(destinations))
	for i, dest := range destinations {
		d, err := c.StraightLineDistance(from, dest)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// NearestOf returns the index and location of the candidate closest to from.
// Ties go to the earliest candidate.
func (c DistanceCalculator) NearestOf(from kernel.Location, candidates []kernel.Location) (int, kernel.Location, error) {
	return c.pick(from, candidates, kernel.Distance.IsLessThan)
}

// FurthestOf returns the index and location of the candidate furthest from
// from. Ties go to the earliest candidate.
func (c DistanceCalculator) FurthestOf(from kernel.Location, candidates []kernel.Location) (int, kernel.Location, error) {
	return c.pick(from, candidates, kernel.Distance.IsGreaterThan)
}

// RouteDistance sums the legs between consecutive locations.
func (DistanceCalculator) RouteDistance(locations []kernel.Location) (kernel.Distance, error) {
	return kernel.PathDistance(locations)
}

// WithinDistance reports whether a and b are at most maxDistance apart.
func (c DistanceCalculator) WithinDistance(a, b kernel.Location, maxDistance kernel.Distance) (bool, error) {
	d, err := c.StraightLineDistance(a, b)
	if err != nil {
		return false, err
	}
	return !d.IsGreaterThan(maxDistance), nil
}

// WithinRadius keeps the candidates that lie within radius of center.
func (c DistanceCalculator) WithinRadius(
	center kernel.Location,
	candidates []kernel.Location,
	radius kernel.Distance,
) ([]kernel.Location, error) {
	var out []kernel.Location
	for _, candidate := range candidates {
		ok, err := c.WithinDistance(center, candidate, radius)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (c DistanceCalculator) pick(
	from kernel.Location,
	candidates []kernel.Location,
	better func(kernel.Distance, kernel.Distance) bool,
) (int, kernel.Location, error) {
	if len(candidates) == 0 {
		return -1, kernel.Location{}, errs.NewValueIsRequiredError("candidates")
	}

	bestIdx := -1
	var bestDist kernel.Distance
	for i, candidate := range candidates {
		d, err := c.StraightLineDistance(from, candidate)
		if err != nil {
			return -1, kernel.Location{}, err
		}
		if bestIdx == -1 || better(d, bestDist) {
			bestIdx = i
			bestDist = d
		}
	}
	return bestIdx, candidates[bestIdx], nil
}
