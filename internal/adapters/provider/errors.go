package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/scout/internal/core/domain"
)

// ErrorMessage is the JSON error body returned by providers.
type ErrorMessage struct {
	Message string `json:"message,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// FromResponse classifies a non-2xx response.
func FromResponse(provider string, status int, header http.Header, body []byte) *domain.Error {
	msg := responseMessage(status, body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewAuthenticationError(provider, msg)
	case status == http.StatusPaymentRequired || status == http.StatusTooManyRequests:
		return domain.NewRateLimitError(provider, msg, parseRetryAfter(header.Get("Retry-After"), time.Now()))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e := domain.NewValidationError("request", msg)
		e.Provider = provider
		e.StatusCode = status
		return e
	default:
		return domain.NewAPIError(provider, msg, status)
	}
}

// FromTransport classifies a request that produced no response.
func FromTransport(provider string, err error, timeout time.Duration) *domain.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewTimeoutError(provider, fmt.Sprintf("request timed out after %s", timeout), timeout).
			WithCause(err)
	}
	return domain.NewNetworkError(provider, "request failed").WithCause(err)
}

// responseMessage prefers a decoded error body, then the raw text, then the
// status text.
func responseMessage(status int, body []byte) string {
	var em ErrorMessage
	if err := json.Unmarshal(body, &em); err == nil && em.Message != "" {
		return em.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("%d %s", status, text)
	}
	return strconv.Itoa(status)
}

// parseRetryAfter accepts delay seconds or an HTTP date. Zero means absent
// or unparsable.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}
