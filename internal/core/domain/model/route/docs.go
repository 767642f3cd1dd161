// Package route models multi-stop courier routes.
//
// A Route is an ordered list of Waypoints (START, INTERMEDIATE, DELIVERY,
// END) with a total distance and an estimated duration. TrafficConditions
// rescales durations for congestion; it never changes the path.
package route
