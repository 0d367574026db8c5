package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error in this package unwraps to exactly one of them,
// so callers classify failures with errors.Is.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrConflict           = errors.New("concurrent modification")
	ErrDuplicateOperation = errors.New("operation already applied")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing aggregate or record.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports an unusable aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// PermissionDeniedError is returned when the actor is not the party responsible
// for the order's current stage.
type PermissionDeniedError struct {
	Action  string
	Status  string
	ActorID string
}

func NewPermissionDeniedError(action, status, actorID string) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action, Status: status, ActorID: actorID}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s an order in status %s",
		ErrPermissionDenied, sanitize(e.ActorID), e.Action, e.Status)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// InvalidTransitionError is returned when an action is not legal from the current status.
type InvalidTransitionError struct {
	Action string
	From   string
	Cause  error
}

func NewInvalidTransitionError(action, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from}
}

func NewInvalidTransitionErrorWithCause(action, from string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, e.Action, e.From), e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError is returned by repositories when the stored version no longer
// matches the version the aggregate was loaded with.
type ConflictError struct {
	Aggregate       string
	ID              string
	ExpectedVersion int
}

func NewConflictError(aggregate, id string, expectedVersion int) *ConflictError {
	return &ConflictError{Aggregate: aggregate, ID: id, ExpectedVersion: expectedVersion}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified after version %d",
		ErrConflict, e.Aggregate, e.ID, e.ExpectedVersion)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsValidation reports whether err is one of the input validation failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// IsRetryable reports whether the caller may re-read and retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
