package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"github.com/theapemachine/mcp-server-deepl/pkg/language"
)

// Category is the stable tag hosts branch on when a tool call fails.
type Category string

const (
	CategoryInvalidArguments  Category = "invalid_arguments"
	CategoryUnknownTool       Category = "unknown_tool"
	CategoryAmbiguousLanguage Category = "ambiguous_language"
	CategoryAuthFailure       Category = "auth_failure"
	CategoryQuotaExceeded     Category = "quota_exceeded"
	CategoryRateLimited       Category = "rate_limited"
	CategoryUnreachable       Category = "unreachable"
	CategoryUnknown           Category = "unknown"
)

// Retryable reports whether the same call may succeed if repeated later.
func (category Category) Retryable() bool {
	return category == CategoryRateLimited || category == CategoryUnreachable
}

// Error is the failure of a single tool call.
type Error struct {
	Category   Category
	Message    string
	Field      string
	Candidates []string
	RetryAfter time.Duration
	Cause      error
}

func (err *Error) Error() string {
	if err.Field != "" {
		return fmt.Sprintf("%s: %s: %s", err.Category, err.Field, err.Message)
	}

	return fmt.Sprintf("%s: %s", err.Category, err.Message)
}

func (err *Error) Unwrap() error {
	return err.Cause
}

// Retryable reports whether the host may retry the call.
func (err *Error) Retryable() bool {
	return err.Category.Retryable()
}

type envelope struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Category          Category `json:"category"`
	Message           string   `json:"message"`
	Field             string   `json:"field,omitempty"`
	Candidates        []string `json:"candidates,omitempty"`
	Retryable         bool     `json:"retryable"`
	RetryAfterSeconds *int64   `json:"retry_after_seconds,omitempty"`
}

func (err *Error) payload() errorPayload {
	out := errorPayload{
		Category:   err.Category,
		Message:    err.Message,
		Field:      err.Field,
		Candidates: err.Candidates,
		Retryable:  err.Retryable(),
	}

	if err.RetryAfter > 0 {
		seconds := int64(math.Ceil(err.RetryAfter.Seconds()))
		out.RetryAfterSeconds = &seconds
	}

	return out
}

func invalidArguments(field, format string, args ...any) *Error {
	return &Error{
		Category: CategoryInvalidArguments,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}

// languageError maps a resolver failure for field onto a tool error.
func languageError(field string, err error) *Error {
	var ambiguous *language.AmbiguousError
	if errors.As(err, &ambiguous) {
		return &Error{
			Category:   CategoryAmbiguousLanguage,
			Field:      field,
			Message:    ambiguous.Error(),
			Candidates: ambiguous.Candidates,
			Cause:      err,
		}
	}

	return &Error{
		Category: CategoryInvalidArguments,
		Field:    field,
		Message:  err.Error(),
		Cause:    err,
	}
}

var providerCategories = map[deepl.Kind]Category{
	deepl.AuthFailure:     CategoryAuthFailure,
	deepl.QuotaExceeded:   CategoryQuotaExceeded,
	deepl.InvalidArgument: CategoryInvalidArguments,
	deepl.RateLimited:     CategoryRateLimited,
	deepl.Unreachable:     CategoryUnreachable,
	deepl.Unknown:         CategoryUnknown,
}

var providerMessages = map[deepl.Kind]string{
	deepl.AuthFailure:     "DeepL rejected the API key; check DEEPL_API_KEY",
	deepl.QuotaExceeded:   "the DeepL character quota for this billing period is used up",
	deepl.InvalidArgument: "DeepL rejected the request",
	deepl.RateLimited:     "DeepL is rate limiting requests; retry later",
	deepl.Unreachable:     "DeepL could not be reached",
	deepl.Unknown:         "DeepL returned an unexpected error",
}

// providerError maps an error returned by the Provider onto a tool error.
// Every deepl.Kind has exactly one category.
func providerError(err error) *Error {
	var perr *deepl.ProviderError
	if errors.As(err, &perr) {
		category, ok := providerCategories[perr.Kind]
		if !ok {
			category = CategoryUnknown
		}

		message := providerMessages[perr.Kind]
		if message == "" {
			message = providerMessages[deepl.Unknown]
		}

		if perr.Detail != "" {
			message += ": " + perr.Detail
		}

		return &Error{
			Category:   category,
			Message:    message,
			RetryAfter: perr.RetryAfter,
			Cause:      err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Category: CategoryUnreachable, Message: err.Error(), Cause: err}
	}

	return &Error{Category: CategoryUnknown, Message: err.Error(), Cause: err}
}
