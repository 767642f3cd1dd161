// Package kernel holds the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identity of tenants, orders, couriers and deliveries
//   - Location: a validated WGS84 point stored at 8 decimal digits
//   - Distance: a non-negative length in meters with arithmetic that never
//     produces a negative value
//
// All types are immutable and safe for concurrent use.
package kernel
