// Package courier contains the Courier aggregate and its capacity model.
//
// A courier carries a Load bounded by a fixed Capacity (orders, grams, cubic
// centimeters). Utilization is measured on the bottleneck resource. The
// working Status follows a small transition table kept as data in this
// package.
package courier
