package dto

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRefreshToken is returned when a refresh is requested but the
	// store holds no refresh token. No network call is made in that case.
	ErrNoRefreshToken = errors.New("no refresh token in store")
	// ErrClientClosed is returned for any call issued after Close.
	ErrClientClosed = errors.New("client is closed")
	// ErrNilRequestConfig is returned when a request is issued without a config.
	ErrNilRequestConfig = errors.New("nil request config provided")
)

// ErrorKind partitions every failure the request pipeline can surface.
type ErrorKind string

const (
	// ErrKindNetwork means no response reached the client at all.
	ErrKindNetwork ErrorKind = "NetworkError"
	// ErrKindAuth means a 401 that could not be recovered by refresh,
	// or a refresh attempt that itself failed.
	ErrKindAuth ErrorKind = "AuthError"
	// ErrKindTrialExpired means a 403 carrying the trial-expired code;
	// the caller should prompt for upgrade, not retry.
	ErrKindTrialExpired ErrorKind = "TrialExpired"
	// ErrKindValidation means a 4xx with structured field-level messages.
	ErrKindValidation ErrorKind = "ValidationError"
	// ErrKindUnknown covers anything not otherwise classified.
	ErrKindUnknown ErrorKind = "UnknownError"
)

// CodeTrialExpired is the distinguished business code on the 403 the
// billing layer emits when a tenant's trial has lapsed.
const CodeTrialExpired = "TRIAL_EXPIRED"

// APIError is the one error shape callers branch on. Every transport or
// protocol failure the pipeline can produce is converted to exactly one
// APIError; raw *url.Error, json and io errors never escape.
type APIError struct {
	Message    string
	StatusCode int
	Kind       ErrorKind
	// Code is the machine-readable business code when the server sent one.
	Code string
	// Meta carries kind-specific extras, e.g. upgradeUrl for TrialExpired.
	Meta map[string]any
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind == kind
	}
	return false
}
