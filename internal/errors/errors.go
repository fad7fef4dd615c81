// Package errors provides centralized error definitions and error handling
// utilities for the tmuxdash codebase. It defines domain-specific errors,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - ConflictError: the instance lock is held by another live process
//   - LockFileError: I/O or permission failure on the lock/PID files
//   - TmuxError: errors talking to the tmux binary
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or configuration
//   - TimeoutError: operation timed out
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConflictError(holderPID)
//	err := errors.NewLockFileError("create state directory", path, cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrLockHeld) { ... }
//
//	var conflict *errors.ConflictError
//	if errors.As(err, &conflict) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
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
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
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

// Lock-related sentinel errors
var (
	// ErrLockHeld indicates that another live process holds the instance lock.
	ErrLockHeld = New("instance lock held by another process")
	// ErrLockTimeout indicates that lock acquisition gave up after its timeout.
	ErrLockTimeout = New("timed out waiting for instance lock")
)

// Tmux-related sentinel errors
var (
	// ErrNoServer indicates that no tmux server is running.
	ErrNoServer = New("no tmux server running")
	// ErrSessionNotFound indicates that a tmux session could not be found.
	ErrSessionNotFound = New("session not found")
	// ErrSessionExists indicates that a tmux session with that name already exists.
	ErrSessionExists = New("session already exists")
	// ErrTmuxNotInstalled indicates that the tmux binary is not on PATH.
	ErrTmuxNotInstalled = New("tmux not installed")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// DashError is the base interface for all tmuxdash errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type DashError interface {
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

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConflictError is returned when the instance lock is held by another live
// process. HolderPID is 0 when the holder could not be identified, and
// TimedOut distinguishes "gave up after waiting" from an immediate conflict.
//
// Example:
//
//	err := errors.NewConflictError(4321).WithTimedOut(true)
//	fmt.Println(err) // "instance conflict [pid=4321]: timed out waiting for instance lock"
type ConflictError struct {
	baseError
	HolderPID int
	TimedOut  bool
}

// NewConflictError creates a new ConflictError for the given holder PID.
func NewConflictError(holderPID int) *ConflictError {
	return &ConflictError{
		baseError: baseError{
			message:    "another tmuxdash instance is running",
			cause:      ErrLockHeld,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		HolderPID: holderPID,
	}
}

// WithTimedOut marks the conflict as the result of an expired acquisition timeout.
func (e *ConflictError) WithTimedOut(timedOut bool) *ConflictError {
	e.TimedOut = timedOut
	if timedOut {
		e.cause = ErrLockTimeout
	}
	return e
}

// Error returns the formatted error message.
func (e *ConflictError) Error() string {
	prefix := "instance conflict"
	if e.HolderPID > 0 {
		prefix = fmt.Sprintf("instance conflict [pid=%d]", e.HolderPID)
	}
	return fmt.Sprintf("%s: %v", prefix, e.cause)
}

// Is checks if this error matches the target.
func (e *ConflictError) Is(target error) bool {
	if _, ok := target.(*ConflictError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// LockFileError is returned when manipulating the lock file, the PID file, or
// their directory fails for reasons other than contention: I/O errors,
// permission problems, or an uncreatable state directory.
//
// Example:
//
//	err := errors.NewLockFileError("write pid file", pidPath, cause)
type LockFileError struct {
	baseError
	Op   string
	Path string
}

// NewLockFileError creates a new LockFileError.
func NewLockFileError(op, path string, cause error) *LockFileError {
	return &LockFileError{
		baseError: baseError{
			message:    op,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Op:   op,
		Path: path,
	}
}

// Error returns the formatted error message.
func (e *LockFileError) Error() string {
	prefix := "lock file error"
	if e.Path != "" {
		prefix = fmt.Sprintf("lock file error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *LockFileError) Is(target error) bool {
	if _, ok := target.(*LockFileError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TmuxError represents a failure running or parsing a tmux command.
//
// Example:
//
//	err := errors.NewTmuxError("list sessions", cause).WithStderr(out)
type TmuxError struct {
	baseError
	Command string
	Stderr  string
}

// NewTmuxError creates a new TmuxError.
func NewTmuxError(command string, cause error) *TmuxError {
	return &TmuxError{
		baseError: baseError{
			message:    command,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Command: command,
	}
}

// WithStderr attaches captured tmux stderr output to the error context.
func (e *TmuxError) WithStderr(stderr string) *TmuxError {
	e.Stderr = strings.TrimSpace(stderr)
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *TmuxError) WithRetryable(r bool) *TmuxError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *TmuxError) Error() string {
	msg := fmt.Sprintf("tmux error: %s", e.message)
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *TmuxError) Is(target error) bool {
	if _, ok := target.(*TmuxError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or configuration.
//
// Example:
//
//	err := errors.NewValidationError("preview lines must be positive")
//	err = err.WithField("dashboard.preview_lines").WithValue(-3)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("waiting for tmux server", 2*time.Second)
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var dashErr DashError
	if As(err, &dashErr) {
		return dashErr.IsRetryable()
	}

	if Is(err, ErrTimeout) {
		return true
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var dashErr DashError
	if As(err, &dashErr) {
		return dashErr.IsUserFacing()
	}

	var validation *ValidationError
	var timeout *TimeoutError
	if As(err, &validation) || As(err, &timeout) {
		return true
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement DashError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var dashErr DashError
	if As(err, &dashErr) {
		return dashErr.Severity()
	}
	return SeverityError
}

// IsConflict returns true if the error indicates that another live instance
// holds the lock, whether reported immediately or after a timeout.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var conflict *ConflictError
	return As(err, &conflict) || Is(err, ErrLockHeld) || Is(err, ErrLockTimeout)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to refresh sessions")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to kill session %s", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
