// Package delivery contains the Delivery aggregate: the lifecycle state
// machine of one order hand-over, its milestone log, the domain events it
// raises and the TrackingUpdate snapshot derived from it.
package delivery
