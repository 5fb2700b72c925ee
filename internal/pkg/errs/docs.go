// Package errs provides standardized error types for the provenance application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the application's failure taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input
//   - ObjectNotFoundError: unknown product, order, or identity
//   - AuthorizationError: role or custodian/recipient mismatch
//   - StateTransitionError: monotonicity, sequencing, or transition-graph violations
//   - ChainIntegrityError: audit-ledger verification failure, with the failing
//     block index and which check failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so callers can classify with errors.Is
//
// All of these are caller-facing and non-retryable: correction is the caller's
// responsibility. ChainIntegrityError is reported only, never auto-repaired.
package errs
