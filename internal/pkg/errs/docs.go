// Package errs provides standardized error types for the tracking engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a numeric value violates its bounds
//   - ObjectNotFoundError: for when an object cannot be found
//   - VersionIsInvalidError: for optimistic-concurrency conflicts
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - an Error() method for formatting the error message
//   - an Unwrap() method returning the sentinel, so callers can classify
//     errors with errors.Is regardless of the concrete details
//
// This standardized approach keeps error classification uniform across the
// domain model, the application layer, and the transport adapters.
package errs
