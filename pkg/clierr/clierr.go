// Package clierr defines the structured error contract of the CLI:
// stable machine-readable error codes, the process exit statuses mapped to
// them, and the JSON envelope written to standard error on failure.
//
// Automated callers branch on the exit status and on the "code" field of the
// envelope; both are stable across releases.
package clierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit statuses. Reserved so that agents can branch on the outcome
// of a command without parsing its output.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitAuthError       = 2
	ExitNotFound        = 3
	ExitValidationError = 4
	ExitAPIError        = 5
	ExitMutationBlocked = 6
)

// Stable error codes for the "code" field of the error envelope.
const (
	// Authentication errors
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeAuthFailed       = "AUTH_FAILED"
	CodeAuthMFARequired  = "AUTH_MFA_REQUIRED"
	CodeAuthMFAFailed    = "AUTH_MFA_FAILED"
	CodeAuthInvalidToken = "AUTH_INVALID_TOKEN"

	// Validation errors
	CodeValidationMissingField = "VALIDATION_MISSING_FIELD"
	CodeValidationInvalidValue = "VALIDATION_INVALID_VALUE"
	CodeValidationInvalidDate  = "VALIDATION_INVALID_DATE"

	// Upstream API errors
	CodeAPIError     = "API_ERROR"
	CodeAPITimeout   = "API_TIMEOUT"
	CodeAPIRateLimit = "API_RATE_LIMIT"

	// Resource errors
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"

	// Permission errors
	CodeMutationBlocked = "MUTATION_BLOCKED"

	// General errors
	CodeUnknownError = "UNKNOWN_ERROR"
)

// Error is a structured CLI error carrying a stable code, the exit status
// reserved for its class, and an optional remediation hint.
type Error struct {
	// Code is the machine-readable error code (e.g. "AUTH_REQUIRED").
	Code string
	// Message is the human-readable summary.
	Message string
	// Details is an optional remediation hint or underlying cause.
	Details string
	// Exit is the process exit status for this error class.
	Exit int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a structured error.
func New(code, message string, exit int) *Error {
	return &Error{Code: code, Message: message, Exit: exit}
}

// WithDetails attaches a remediation hint or underlying cause.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// Validation creates a validation error (exit status 4).
func Validation(code, message string) *Error {
	return New(code, message, ExitValidationError)
}

// Auth creates an authentication error (exit status 2).
func Auth(code, message string) *Error {
	return New(code, message, ExitAuthError)
}

// Upstream creates an upstream service error (exit status 5).
func Upstream(code, message string) *Error {
	return New(code, message, ExitAPIError)
}

// NotFound creates a resource-not-found error (exit status 3).
func NotFound(message string) *Error {
	return New(CodeNotFound, message, ExitNotFound)
}

// General wraps an arbitrary error into the catch-all class (exit status 1).
func General(err error) *Error {
	return New(CodeUnknownError, err.Error(), ExitGeneralError)
}

// envelope matches the wire shape written to standard error. Details is
// omitted entirely when not supplied, never emitted as null or empty.
type envelope struct {
	Error envelopeBody `json:"error"`
}

type envelopeBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Write emits the JSON error envelope for err to w.
func Write(w io.Writer, err *Error) {
	env := envelope{Error: envelopeBody{
		Code:    err.Code,
		Message: err.Message,
		Details: err.Details,
	}}
	data, merr := json.MarshalIndent(env, "", "  ")
	if merr != nil {
		fmt.Fprintf(w, "%s\n", err.Error())
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

// From maps an arbitrary error to a structured Error, preserving it when it
// already is one and classifying everything else as the general class.
func From(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return General(err)
}

// ExitStatus returns the process exit status for err, or ExitSuccess for nil.
func ExitStatus(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return From(err).Exit
}
