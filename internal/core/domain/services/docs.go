// Package services contains domain services implementing business logic that
// spans aggregates or requires pure computation over value objects.
//
// This package provides:
//   - ArrivalEstimator: computes remaining distance and expected arrival time
//     for an in-flight delivery from the courier's last reported position
//
// Domain services in this package:
//   - Contain pure business logic with no infrastructure dependencies
//   - Are stateless and safe for concurrent use
//   - Operate on domain models and value objects
//
// Example usage:
//
//	estimator := services.NewArrivalEstimator()
//	if err := estimator.EstimateForTracking(tr, speedKmh, time.Now()); err != nil {
//	    // Handle estimation failure
//	}
package services
