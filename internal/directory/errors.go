package directory

// errors.go defines load failures and the user-facing error messages with
// codes for support reference.
//
// # Data Source Errors (SRC001-SRC099)
//
//	SRC001 - Transport: The directory data could not be reached
//	         Patterns: "transport"
//
//	SRC002 - Bad status: The data source returned an error response
//	         Patterns: "bad status"
//
//	SRC003 - Malformed: The directory data is not a JSON array of records
//	         Patterns: "malformed payload"
//
//	SRC004 - Timeout: Loading the directory data took too long
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Not found: The requested record does not exist
//	         Patterns: "record not found"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Wrapped sentinel errors are matched first with errors.Is. Patterns are the
// fallback, matched case-insensitively with strings.Contains; the first match
// wins.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadFailedMessage is the only text end users see when loading fails.
const LoadFailedMessage = "Error loading resources."

// Sentinel load failure kinds. A *LoadError wraps exactly one of them.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("bad status")
	ErrMalformed = errors.New("malformed payload")
)

// ErrRecordNotFound is returned when a record ID is not in the Store.
var ErrRecordNotFound = errors.New("record not found")

// ErrRateLimited is returned when a client exceeds its request rate.
var ErrRateLimited = errors.New("rate limit exceeded")

// LoadError describes why the dataset could not be loaded.
type LoadError struct {
	Source string // data source description, e.g. "http https://example.org/data.json"
	Kind   error  // one of ErrTransport, ErrStatus, ErrMalformed
	Err    error  // underlying cause, may be nil
}

// NewLoadError builds a LoadError of the given kind.
func NewLoadError(source string, kind, cause error) *LoadError {
	return &LoadError{Source: source, Kind: kind, Err: cause}
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("load %s: %v: %v", e.Source, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage provides user-friendly error information with a support code.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgTimeout = UserMessage{
		Message: "Loading the directory data took too long",
		Action:  "Please try again later",
		Code:    "SRC004",
	}
	msgTransport = UserMessage{
		Message: "The directory data could not be reached",
		Action:  "Check the data source location and network",
		Code:    "SRC001",
	}
	msgStatus = UserMessage{
		Message: "The data source returned an error response",
		Action:  "Check that the data source is published",
		Code:    "SRC002",
	}
	msgMalformed = UserMessage{
		Message: "The directory data is not a JSON array of records",
		Action:  "Validate the data file",
		Code:    "SRC003",
	}
	msgNotFound = UserMessage{
		Message: "The requested record does not exist",
		Action:  "Return to the list and pick another entry",
		Code:    "REC001",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// errorSentinels is checked in order with errors.Is before any pattern.
// Timeouts come first: a timed-out fetch is also a transport failure.
var errorSentinels = []struct {
	target error
	msg    UserMessage
}{
	{context.DeadlineExceeded, msgTimeout},
	{os.ErrDeadlineExceeded, msgTimeout},
	{ErrMalformed, msgMalformed},
	{ErrStatus, msgStatus},
	{ErrTransport, msgTransport},
	{ErrRecordNotFound, msgNotFound},
	{ErrRateLimited, msgRateLimited},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns covers errors that lost their sentinel, such as ones
// rebuilt from a message string.
var errorPatterns = []errorPattern{
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "transport", msg: msgTransport},
	{pattern: "bad status", msg: msgStatus},
	{pattern: "malformed payload", msg: msgMalformed},
	{pattern: "record not found", msg: msgNotFound},
	{pattern: "rate limit", msg: msgRateLimited},
}

// MapError converts a technical error to a user-friendly message. Wrapped
// sentinels and network timeouts decide first. Otherwise the first matching
// pattern wins, and ERR000 is returned when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return msgTimeout
	}
	for _, es := range errorSentinels {
		if errors.Is(err, es.target) {
			return es.msg
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for operator display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
