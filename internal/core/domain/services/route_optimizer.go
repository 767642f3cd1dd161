package services

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultStopDuration is the dwell time assumed at every stop point.
	DefaultStopDuration = 5 * time.Minute

	// MaxPermutationDeliveries caps the factorial used to size the candidate
	// sample in CalculateRouteOptions.
	MaxPermutationDeliveries = 8
)

// DurationAdjuster rescales a travel time, e.g. for traffic.
// route.TrafficConditions implements it.
type DurationAdjuster interface {
	AdjustDuration(base time.Duration) time.Duration
}

// RouteOptimizer orders delivery stops heuristically. It is not an exact TSP
// solver: routes come from a greedy nearest-neighbour pass, and alternatives
// from a seeded random sample of permutations.
//
// The optimizer is immutable. Every call to CalculateRouteOptions derives a
// fresh generator from the seed, so the same inputs always give the same
// options and one instance can be shared between goroutines.
type RouteOptimizer struct {
	distances DistanceCalculator
	seed      uint64
}

func NewRouteOptimizer(distances DistanceCalculator, seed uint64) RouteOptimizer {
	return RouteOptimizer{distances: distances, seed: seed}
}

// OptimizeRoute builds start → deliveries → end, visiting deliveries in
// nearest-neighbour order. With no deliveries the route is exactly
// [start, end]. Otherwise end is left out when it equals start.
func (o RouteOptimizer) OptimizeRoute(start kernel.Location, deliveries []kernel.Location, end kernel.Location) (route.Route, error) {
	if len(deliveries) == 0 {
		return route.FromLocations([]kernel.Location{start, end})
	}

	ordered, err := o.FindOptimalOrder(start, deliveries)
	if err != nil {
		return route.Route{}, err
	}

	return o.buildRoute(start, ordered, end)
}

// FindOptimalOrder returns deliveries in greedy nearest-neighbour order from
// start. Every input appears exactly once; ties go to the earlier input.
func (o RouteOptimizer) FindOptimalOrder(start kernel.Location, deliveries []kernel.Location) ([]kernel.Location, error) {
	remaining := slices.Clone(deliveries)
	ordered := make([]kernel.Location, 0, len(deliveries))
	current := start

	for len(remaining) > 0 {
		idx, next, err := o.distances.NearestOf(current, remaining)
		if err != nil {
			return nil, fmt.Errorf("find optimal order: %w", err)
		}
		ordered = append(ordered, next)
		remaining = slices.Delete(remaining, idx, idx+1)
		current = next
	}

	return ordered, nil
}

// EstimateDeliveryTime is travel time plus stopDuration for every stop point.
func (o RouteOptimizer) EstimateDeliveryTime(r route.Route, stopDuration time.Duration) time.Duration {
	return r.EstimatedDuration() + stopDuration*time.Duration(r.StopCount())
}

type timeConstraint struct {
	stopDuration time.Duration
}

// TimeConstraintOption tunes OptimizeRouteWithTimeConstraint.
type TimeConstraintOption func(*timeConstraint)

// WithStopDuration overrides DefaultStopDuration.
func WithStopDuration(d time.Duration) TimeConstraintOption {
	return func(c *timeConstraint) {
		c.stopDuration = d
	}
}

// OptimizeRouteWithTimeConstraint drops deliveries until the estimated time
// (travel plus stops) fits maxDuration. Each round removes, from the
// remaining input set, the delivery furthest from start, then re-optimizes.
// It stops when the route fits or no deliveries are left.
func (o RouteOptimizer) OptimizeRouteWithTimeConstraint(
	start kernel.Location,
	deliveries []kernel.Location,
	end kernel.Location,
	maxDuration time.Duration,
	opts ...TimeConstraintOption,
) (route.Route, error) {
	cfg := timeConstraint{stopDuration: DefaultStopDuration}
	for _, opt := range opts {
		opt(&cfg)
	}
	if maxDuration < 0 {
		return route.Route{}, errs.NewValueIsOutOfRangeError("maxDuration", maxDuration, time.Duration(0), "+Inf")
	}
	if cfg.stopDuration < 0 {
		return route.Route{}, errs.NewValueIsOutOfRangeError("stopDuration", cfg.stopDuration, time.Duration(0), "+Inf")
	}

	remaining := slices.Clone(deliveries)
	r, err := o.OptimizeRoute(start, remaining, end)
	if err != nil {
		return route.Route{}, err
	}

	for o.EstimateDeliveryTime(r, cfg.stopDuration) > maxDuration && len(remaining) > 0 {
		idx, _, err := o.distances.FurthestOf(start, remaining)
		if err != nil {
			return route.Route{}, err
		}
		remaining = slices.Delete(remaining, idx, idx+1)

		if r, err = o.OptimizeRoute(start, remaining, end); err != nil {
			return route.Route{}, err
		}
	}

	return r, nil
}

// CalculateRouteOptions returns up to maxRoutes candidate routes sorted by
// total distance, shortest first. The nearest-neighbour route is always
// among the candidates before truncation.
//
// Candidates are random permutations of deliveries, at most
// min(2*maxRoutes, n!) attempts with n capped at MaxPermutationDeliveries,
// deduplicated by visiting order. Large inputs should be split with
// SplitRouteIfNeeded first.
func (o RouteOptimizer) CalculateRouteOptions(
	start kernel.Location,
	deliveries []kernel.Location,
	end kernel.Location,
	maxRoutes int,
) ([]route.Route, error) {
	if maxRoutes <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxRoutes", maxRoutes, 1, "+Inf")
	}

	optimized, err := o.OptimizeRoute(start, deliveries, end)
	if err != nil {
		return nil, err
	}
	if len(deliveries) <= 1 {
		return []route.Route{optimized}, nil
	}

	perms := o.samplePermutations(deliveries, maxRoutes)

	candidates := make([]route.Route, len(perms))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, perm := range perms {
		g.Go(func() error {
			r, err := o.buildRoute(start, perm, end)
			if err != nil {
				return fmt.Errorf("build candidate %d: %w", i, err)
			}
			candidates[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !slices.ContainsFunc(candidates, optimized.HasSameSequence) {
		candidates = append(candidates, optimized)
	}

	slices.SortStableFunc(candidates, func(a, b route.Route) int {
		return a.TotalDistance().Compare(b.TotalDistance())
	})

	if len(candidates) > maxRoutes {
		candidates = candidates[:maxRoutes]
	}
	return candidates, nil
}

// OptimizeForTraffic keeps the path and rescales the duration.
func (o RouteOptimizer) OptimizeForTraffic(r route.Route, adjuster DurationAdjuster) (route.Route, error) {
	if adjuster == nil {
		return route.Route{}, errs.NewValueIsRequiredError("adjuster")
	}
	return r.WithEstimatedDuration(adjuster.AdjustDuration(r.EstimatedDuration()))
}

// IsRouteFeasible reports whether the route respects both the distance and
// the duration limit.
func (o RouteOptimizer) IsRouteFeasible(r route.Route, maxDistance kernel.Distance, maxDuration time.Duration) bool {
	return !r.TotalDistance().IsGreaterThan(maxDistance) && r.EstimatedDuration() <= maxDuration
}

// SplitRouteIfNeeded returns the route unchanged when it has at most
// maxWaypoints waypoints and is no longer than maxDistance. Otherwise its
// interior waypoints are cut into consecutive chunks of maxWaypoints-2 and
// every chunk becomes its own re-optimized start → chunk → end route.
func (o RouteOptimizer) SplitRouteIfNeeded(r route.Route, maxWaypoints int, maxDistance kernel.Distance) ([]route.Route, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if maxWaypoints <= route.MinWaypoints {
		return nil, errs.NewValueIsOutOfRangeError("maxWaypoints", maxWaypoints, route.MinWaypoints+1, "+Inf")
	}

	if r.WaypointCount() <= maxWaypoints && !r.TotalDistance().IsGreaterThan(maxDistance) {
		return []route.Route{r}, nil
	}

	interior := r.InteriorWaypoints()
	if len(interior) == 0 {
		return []route.Route{r}, nil
	}

	chunkSize := maxWaypoints - route.MinWaypoints
	out := make([]route.Route, 0, (len(interior)+chunkSize-1)/chunkSize)
	for chunk := range slices.Chunk(interior, chunkSize) {
		stops := make([]kernel.Location, len(chunk))
		for i, w := range chunk {
			stops[i] = w.Location()
		}

		sub, err := o.OptimizeRoute(r.StartLocation(), stops, r.EndLocation())
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}

	return out, nil
}

func (o RouteOptimizer) samplePermutations(deliveries []kernel.Location, maxRoutes int) [][]kernel.Location {
	attempts := min(maxRoutes*2, factorial(min(len(deliveries), MaxPermutationDeliveries)))
	rng := rand.New(rand.NewPCG(o.seed, uint64(len(deliveries))))

	seen := make(map[string]struct{}, attempts)
	perms := make([][]kernel.Location, 0, maxRoutes)
	for i := 0; i < attempts && len(perms) < maxRoutes; i++ {
		perm := slices.Clone(deliveries)
		rng.Shuffle(len(perm), func(a, b int) {
			perm[a], perm[b] = perm[b], perm[a]
		})

		key := sequenceKey(perm)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		perms = append(perms, perm)
	}
	return perms
}

func (o RouteOptimizer) buildRoute(start kernel.Location, stops []kernel.Location, end kernel.Location) (route.Route, error) {
	locations := make([]kernel.Location, 0, len(stops)+2)
	locations = append(locations, start)
	locations = append(locations, stops...)
	if !end.IsEqual(start) {
		locations = append(locations, end)
	}
	return route.FromLocations(locations)
}

func sequenceKey(locations []kernel.Location) string {
	var b strings.Builder
	for _, l := range locations {
		b.WriteString(l.String())
		b.WriteByte(';')
	}
	return b.String()
}

func factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}
