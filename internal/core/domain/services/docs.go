// Package services provides the domain services of the dispatch engine.
//
// The package includes:
//   - DistanceCalculator: pairwise, batch, nearest/furthest and radius queries
//   - RouteOptimizer: nearest-neighbour ordering, time-constrained pruning,
//     sampled route options, traffic adjustment and route splitting
//   - Dispatcher: the seam where a chosen courier, a planned route and a new
//     delivery are put together
//
// All services are stateless values, safe for concurrent use. They never
// perform I/O; persistence happens in the application layer.
package services
