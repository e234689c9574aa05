package domain

import (
	"errors"
	"strings"
	"time"
)

// Kind identifies a member of the closed error taxonomy.
type Kind int

// Error kinds. Validation, Authentication and Configuration are permanent,
// every other kind is transient.
const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindConfiguration
	KindRateLimit
	KindTimeout
	KindNetwork
	KindAPI
	KindCacheIO
)

// DefaultRetryAfter is used for rate limit errors that carry no explicit hint.
const DefaultRetryAfter = 60 * time.Second

var kindCodes = map[Kind]string{
	KindValidation:     "VALIDATION_ERROR",
	KindAuthentication: "AUTH_ERROR",
	KindConfiguration:  "CONFIG_ERROR",
	KindRateLimit:      "RATE_LIMIT",
	KindTimeout:        "TIMEOUT",
	KindNetwork:        "NETWORK_ERROR",
	KindAPI:            "API_ERROR",
	KindCacheIO:        "CACHE_ERROR",
}

var kindNames = map[Kind]string{
	KindValidation:     "validation",
	KindAuthentication: "authentication",
	KindConfiguration:  "configuration",
	KindRateLimit:      "rate_limit",
	KindTimeout:        "timeout",
	KindNetwork:        "network",
	KindAPI:            "api",
	KindCacheIO:        "cache_io",
}

// Code returns the machine readable error code.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "UNKNOWN_ERROR"
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Transient reports whether errors of this kind are temporary.
func (k Kind) Transient() bool {
	switch k {
	case KindRateLimit, KindTimeout, KindNetwork, KindAPI, KindCacheIO:
		return true
	case KindValidation, KindAuthentication, KindConfiguration:
		return false
	default:
		return false
	}
}

// ParseKind resolves a kind from its name ("rate_limit") or code ("RATE_LIMIT").
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	for k, name := range kindNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, kindCodes[k]) {
			return k, true
		}
	}
	return 0, false
}

// Error is the single error type every classified failure flows through.
type Error struct {
	Kind       Kind
	Msg        string
	Provider   string
	RetryAfter time.Duration
	Timeout    time.Duration
	StatusCode int
	Field      string
	Operation  string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Cause.Error()
	}
	return e.Msg + ": " + e.Cause.Error()
}

// Message returns the message without the cause chain.
func (e *Error) Message() string {
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the machine readable error code of the kind.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// IsTransient reports whether the error is temporary.
func (e *Error) IsTransient() bool {
	return e.Kind.Transient()
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// NewValidationError reports bad input shape or value.
func NewValidationError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Field: field}
}

// NewAuthenticationError reports a rejected credential.
func NewAuthenticationError(provider, msg string) *Error {
	return &Error{Kind: KindAuthentication, Msg: msg, Provider: provider}
}

// NewConfigurationError reports missing or invalid setup.
func NewConfigurationError(msg string) *Error {
	return &Error{Kind: KindConfiguration, Msg: msg}
}

// NewRateLimitError reports an exhausted quota. A non-positive retryAfter
// falls back to DefaultRetryAfter.
func NewRateLimitError(provider, msg string, retryAfter time.Duration) *Error {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &Error{Kind: KindRateLimit, Msg: msg, Provider: provider, RetryAfter: retryAfter}
}

// NewTimeoutError reports a request that exceeded the attempted timeout.
func NewTimeoutError(provider, msg string, timeout time.Duration) *Error {
	return &Error{Kind: KindTimeout, Msg: msg, Provider: provider, Timeout: timeout}
}

// NewNetworkError reports a connectivity failure.
func NewNetworkError(provider, msg string) *Error {
	return &Error{Kind: KindNetwork, Msg: msg, Provider: provider}
}

// NewAPIError reports a generic provider failure such as a 5xx response.
func NewAPIError(provider, msg string, statusCode int) *Error {
	return &Error{Kind: KindAPI, Msg: msg, Provider: provider, StatusCode: statusCode}
}

// NewCacheIOError reports a disk read or write failure.
func NewCacheIOError(operation, msg string) *Error {
	return &Error{Kind: KindCacheIO, Msg: msg, Operation: operation}
}

// AsError extracts the taxonomy error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or false when err is not classified.
func KindOf(err error) (Kind, bool) {
	e, ok := AsError(err)
	if !ok {
		return 0, false
	}
	return e.Kind, true
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsAccountFatal reports whether err must stop every worker sharing the
// credential: rate limits and authentication failures.
func IsAccountFatal(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindRateLimit || k == KindAuthentication)
}

// IsTransientTaskError reports whether a single task may be replaced by a
// fallback value while the batch continues.
func IsTransientTaskError(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindTimeout || k == KindNetwork || k == KindAPI)
}

// IsTransient reports whether err is classified and temporary.
func IsTransient(err error) bool {
	e, ok := AsError(err)
	return ok && e.IsTransient()
}
