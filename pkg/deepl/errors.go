package deepl

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a failed provider call.
type Kind int

const (
	AuthFailure Kind = iota + 1
	QuotaExceeded
	InvalidArgument
	RateLimited
	Unreachable
	Unknown
)

func (kind Kind) String() string {
	switch kind {
	case AuthFailure:
		return "auth_failure"
	case QuotaExceeded:
		return "quota_exceeded"
	case InvalidArgument:
		return "invalid_argument"
	case RateLimited:
		return "rate_limited"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// StatusQuotaExceeded is DeepL's non-standard "quota exceeded" status.
const StatusQuotaExceeded = 456

// statusTooManyRequests is returned by DeepL under high load.
const statusTooManyRequests = 529

// ProviderError is the error returned by every Client method on failure.
type ProviderError struct {
	Kind Kind

	// Status is the HTTP status, zero when no response was received.
	Status int

	// Detail is the provider's message, or the transport error text.
	Detail string

	// RetryAfter echoes the provider's Retry-After hint. Zero means no hint.
	RetryAfter time.Duration

	Cause error
}

func (err *ProviderError) Error() string {
	var b strings.Builder

	b.WriteString("deepl: ")
	b.WriteString(strings.ReplaceAll(err.Kind.String(), "_", " "))

	if err.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", err.Status)
	}

	if err.Detail != "" {
		b.WriteString(": ")
		b.WriteString(err.Detail)
	}

	return b.String()
}

func (err *ProviderError) Unwrap() error {
	return err.Cause
}

// Retryable reports whether repeating the same call later may succeed.
func (err *ProviderError) Retryable() bool {
	return err.Kind == RateLimited || err.Kind == Unreachable
}

// statusError maps a non-2xx response onto the error taxonomy.
func statusError(status int, header http.Header, detail string) *ProviderError {
	err := &ProviderError{Status: status, Detail: detail}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		err.Kind = AuthFailure
	case status == StatusQuotaExceeded:
		err.Kind = QuotaExceeded
	case status == http.StatusTooManyRequests || status == statusTooManyRequests:
		err.Kind = RateLimited
		err.RetryAfter = parseRetryAfter(header.Get("Retry-After"), time.Now())
	case status >= 400 && status < 500:
		err.Kind = InvalidArgument
	default:
		err.Kind = Unknown
	}

	return err
}

// parseRetryAfter reads a Retry-After header given either as delay seconds
// or as an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(now); wait > 0 {
			return wait.Round(time.Second)
		}
	}

	return 0
}
