package backend

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a failed backend request
type ErrorKind string

const (
	// KindNetwork indicates the request never produced a response
	KindNetwork ErrorKind = "network"

	// KindStatus indicates a non-2xx response
	KindStatus ErrorKind = "status"

	// KindDecode indicates a response body that could not be understood
	KindDecode ErrorKind = "decode"

	// KindConfiguration indicates an invalid client configuration
	KindConfiguration ErrorKind = "configuration"

	// KindInternal indicates a failure building the request
	KindInternal ErrorKind = "internal"
)

// RequestError describes a failed call to the sentiment service
type RequestError struct {
	// Kind categorizes the error
	Kind ErrorKind

	// Endpoint is the path that was requested, e.g. /analyze
	Endpoint string

	// StatusCode for KindStatus errors
	StatusCode int

	// Detail is the service's own message from {"detail": "..."}, if any
	Detail string

	// Message provides a human-readable description
	Message string

	// RequestID is the X-Request-ID sent with the request
	RequestID string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	var parts []string

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	msg := e.Message
	if e.Detail != "" {
		msg = e.Detail
	}
	parts = append(parts, msg)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Is matches another RequestError of the same kind
func (e *RequestError) Is(target error) bool {
	if re, ok := target.(*RequestError); ok {
		return e.Kind == re.Kind
	}
	return false
}

// HasDetail reports whether the service supplied its own message
func (e *RequestError) HasDetail() bool {
	return e.Detail != ""
}

// Sentinels for errors.Is checks by kind.
var (
	ErrNetwork = &RequestError{Kind: KindNetwork}
	ErrStatus  = &RequestError{Kind: KindStatus}
	ErrDecode  = &RequestError{Kind: KindDecode}
)

// NewConfigurationError creates a configuration error for a named field
func NewConfigurationError(field, message string) *RequestError {
	return &RequestError{
		Kind:    KindConfiguration,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

func newNetworkError(endpoint, requestID string, cause error) *RequestError {
	return &RequestError{
		Kind:      KindNetwork,
		Endpoint:  endpoint,
		Message:   "request failed",
		RequestID: requestID,
		Cause:     cause,
	}
}

func newStatusError(endpoint, requestID string, status int, detail string) *RequestError {
	return &RequestError{
		Kind:       KindStatus,
		Endpoint:   endpoint,
		StatusCode: status,
		Detail:     detail,
		Message:    fmt.Sprintf("request failed with status %d", status),
		RequestID:  requestID,
	}
}

func newDecodeError(endpoint, requestID, message string, cause error) *RequestError {
	return &RequestError{
		Kind:      KindDecode,
		Endpoint:  endpoint,
		Message:   message,
		RequestID: requestID,
		Cause:     cause,
	}
}

func newInternalError(endpoint, message string, cause error) *RequestError {
	return &RequestError{
		Kind:     KindInternal,
		Endpoint: endpoint,
		Message:  message,
		Cause:    cause,
	}
}
