// Package errs provides the typed errors shared by the workflow engine.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrPermissionDenied) used with errors.Is
//   - a struct carrying the details (e.g., PermissionDeniedError)
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The workflow taxonomy maps onto these types:
//   - PermissionDenied: the actor is not responsible for the current stage
//   - InvalidTransition: the action is not legal from the current status
//   - Conflict: optimistic concurrency failure, the caller re-reads and retries
//   - Validation: ValueIsRequired, ValueIsInvalid and ValueIsOutOfRange (see IsValidation)
//
// None of them is fatal. They are returned as values and never used for control
// flow across package boundaries.
package errs
