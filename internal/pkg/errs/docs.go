// Package errs provides standardized error types for the dispatch
// application. Every public operation translates its failures into one of
// these kinds at its boundary, and the HTTP adapter maps each kind to a
// status code in exactly one place.
//
// The taxonomy:
//   - ValidationError: a required field is missing or malformed (not retried)
//   - AuthorizationError: a role or ownership check failed; the message never
//     reveals whether the target resource exists
//   - AuthError: the credential is missing, invalid, or expired; the client
//     must re-authenticate
//   - ObjectNotFoundError: a referenced entity is absent
//   - ConflictError: a unique-constraint violation (duplicate username)
//   - TransientStoreError: the store was unavailable; the specific call is
//     safe to retry because no mutation applied and no event published
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValidation)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies by sentinel
package errs
