// Package errors provides centralized error definitions and error handling
// utilities for the tabiplan codebase. It defines domain-specific errors,
// sentinel errors, constructors with context wrapping, and classification
// helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - ProviderError: errors talking to the AI provider
//   - StoreError: errors from itinerary persistence
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewProviderError("stream failed", errors.ErrProviderUnavailable).WithProvider("openai")
//	err := errors.NewStoreError("save failed", cause).WithItineraryID("itin-1")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRateLimited) { ... }
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Itinerary-related sentinel errors
var (
	// ErrItineraryNotFound indicates that an itinerary could not be found.
	ErrItineraryNotFound = New("itinerary not found")
	// ErrDayNotFound indicates that a day index is outside the schedule.
	ErrDayNotFound = New("day not found")
	// ErrSpotNotFound indicates that a spot could not be found.
	ErrSpotNotFound = New("spot not found")
	// ErrFactsNotFound indicates that no fact cache exists for an itinerary.
	ErrFactsNotFound = New("fact cache not found")
	// ErrCacheStale indicates that a fact cache has passed its TTL.
	ErrCacheStale = New("fact cache is stale")
)

// Provider-related sentinel errors
var (
	// ErrInvalidCredential indicates the provider rejected the API key.
	ErrInvalidCredential = New("invalid provider credential")
	// ErrRateLimited indicates the provider asked us to slow down.
	ErrRateLimited = New("provider rate limited")
	// ErrProviderUnavailable indicates the provider is down or unreachable.
	ErrProviderUnavailable = New("provider unavailable")
	// ErrStreamCanceled indicates a response stream was canceled mid-flight.
	ErrStreamCanceled = New("stream canceled")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TabiplanError is the base interface for all tabiplan errors. It extends
// the standard error interface with classification methods.
type TabiplanError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsRetryable() bool {
	return e.retryable
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ProviderError represents errors from the AI provider.
//
// Example:
//
//	err := errors.NewProviderError("completion failed", errors.ErrRateLimited)
//	err = err.WithProvider("openai").WithStatusCode(429)
type ProviderError struct {
	baseError
	Provider   string
	StatusCode int
}

// NewProviderError creates a new ProviderError.
func NewProviderError(message string, cause error) *ProviderError {
	return &ProviderError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  errors.Is(cause, ErrRateLimited) || errors.Is(cause, ErrProviderUnavailable),
			userFacing: true,
		},
	}
}

// WithProvider adds the provider backend name to the error context.
func (e *ProviderError) WithProvider(name string) *ProviderError {
	e.Provider = name
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *ProviderError) WithRetryable(r bool) *ProviderError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *ProviderError) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "provider error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("provider error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ProviderError) Is(target error) bool {
	if _, ok := target.(*ProviderError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// StoreError represents errors from itinerary persistence.
type StoreError struct {
	baseError
	ItineraryID string
}

// NewStoreError creates a new StoreError.
func NewStoreError(message string, cause error) *StoreError {
	return &StoreError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithItineraryID adds an itinerary ID to the error context.
func (e *StoreError) WithItineraryID(id string) *StoreError {
	e.ItineraryID = id
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	prefix := "store error"
	if e.ItineraryID != "" {
		prefix = fmt.Sprintf("store error [itinerary=%s]", e.ItineraryID)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StoreError) Is(target error) bool {
	if _, ok := target.(*StoreError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("scheduledTime", "must be HH:MM")
type ValidationError struct {
	baseError
	Field  string
	Reason string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    fmt.Sprintf("validation failed for %s: %s", field, reason),
			cause:      ErrInvalidInput,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Field:  field,
		Reason: reason,
	}
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var terr TabiplanError
	if As(err, &terr) {
		return terr.IsRetryable()
	}

	return Is(err, ErrRateLimited) || Is(err, ErrProviderUnavailable)
}

// IsUserFacing returns true if the error message is safe to display to
// end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var terr TabiplanError
	if As(err, &terr) {
		return terr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error. Errors that do not
// carry a severity default to SeverityError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var terr TabiplanError
	if As(err, &terr) {
		return terr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Wrapping Helpers
// -----------------------------------------------------------------------------

// Wrap wraps an error with a message. Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
