package deepl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every outbound call unless overridden.
const DefaultTimeout = 30 * time.Second

// unlimitedCharacters is what DeepL reports as the limit of Pro accounts
// without a cost control cap.
const unlimitedCharacters = 1_000_000_000_000

const userAgent = "mcp-server-deepl/1.0"

// Observer is notified of each completed HTTP exchange.
type Observer func(endpoint string, status int, duration time.Duration)

// Client issues single-attempt calls to the DeepL API. It holds no mutable
// state, so concurrent calls never wait on each other.
type Client struct {
	http     *resty.Client
	timeout  time.Duration
	logger   *log.Logger
	observer Observer
}

type options struct {
	baseURL  string
	timeout  time.Duration
	logger   *log.Logger
	observer Observer
}

// Option customizes a Client.
type Option func(*options)

// WithBaseURL overrides the plan-derived API host.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers a callback for every completed HTTP exchange.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// NewClient builds the client that owns the credential for the process lifetime.
func NewClient(cred Credential, opts ...Option) *Client {
	o := options{
		baseURL: cred.BaseURL(),
		timeout: DefaultTimeout,
		logger:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "deepl"}),
	}

	for _, opt := range opts {
		opt(&o)
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(o.baseURL, "/")).
		SetHeader("Authorization", cred.authorization()).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     http,
		timeout:  o.timeout,
		logger:   o.logger,
		observer: o.observer,
	}
}

type translatePayload struct {
	Text               []string   `json:"text"`
	TargetLang         string     `json:"target_lang"`
	SourceLang         *string    `json:"source_lang,omitempty"`
	Formality          *Formality `json:"formality,omitempty"`
	PreserveFormatting bool       `json:"preserve_formatting"`
}

type translateResponse struct {
	Translations []Translation `json:"translations"`
}

type usageResponse struct {
	CharacterCount int64  `json:"character_count"`
	CharacterLimit *int64 `json:"character_limit"`
	DocumentCount  *int64 `json:"document_count"`
	DocumentLimit  *int64 `json:"document_limit"`
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Translate translates a single text.
func (client *Client) Translate(ctx context.Context, req TranslateRequest) (Translation, error) {
	payload := translatePayload{
		Text:               []string{req.Text},
		TargetLang:         req.TargetLang,
		SourceLang:         req.SourceLang,
		Formality:          req.Formality,
		PreserveFormatting: req.PreserveFormatting,
	}

	var out translateResponse

	if err := client.do(ctx, "POST", "/v2/translate", func(r *resty.Request) *resty.Request {
		return r.SetHeader("Content-Type", "application/json").SetBody(payload)
	}, &out); err != nil {
		return Translation{}, err
	}

	if len(out.Translations) == 0 {
		return Translation{}, &ProviderError{Kind: Unknown, Status: 200, Detail: "response contained no translations"}
	}

	return out.Translations[0], nil
}

// ListLanguages fetches the languages the provider currently supports.
func (client *Client) ListLanguages(ctx context.Context, direction Direction) ([]Language, error) {
	var out []Language

	if err := client.do(ctx, "GET", "/v2/languages", func(r *resty.Request) *resty.Request {
		return r.SetQueryParam("type", string(direction))
	}, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// DetectLanguage returns the source language DeepL detects for text. DeepL
// has no detection endpoint, so this translates to DetectionPivot and keeps
// only the detected source.
func (client *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	translation, err := client.Translate(ctx, TranslateRequest{
		Text:       text,
		TargetLang: DetectionPivot,
	})
	if err != nil {
		return "", err
	}

	if translation.DetectedSourceLang == "" {
		return "", &ProviderError{Kind: Unknown, Status: 200, Detail: "provider did not report a detected language"}
	}

	return strings.ToUpper(translation.DetectedSourceLang), nil
}

// Usage returns the account's current consumption.
func (client *Client) Usage(ctx context.Context) (Usage, error) {
	var out usageResponse

	if err := client.do(ctx, "GET", "/v2/usage", nil, &out); err != nil {
		return Usage{}, err
	}

	usage := Usage{
		CharacterCount: out.CharacterCount,
		CharacterLimit: out.CharacterLimit,
		DocumentCount:  out.DocumentCount,
		DocumentLimit:  out.DocumentLimit,
	}

	if usage.CharacterLimit != nil && *usage.CharacterLimit >= unlimitedCharacters {
		usage.CharacterLimit = nil
	}

	return usage, nil
}

// do runs one request and decodes a 2xx body into out. Every failure comes
// back as a *ProviderError.
func (client *Client) do(
	ctx context.Context,
	method, path string,
	build func(*resty.Request) *resty.Request,
	out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	req := client.http.R().SetContext(ctx)
	if build != nil {
		req = build(req)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	duration := time.Since(start)

	if err != nil {
		client.logger.Warn("deepl request failed", "path", path, "duration", duration, "error", err)
		client.observe(path, 0, duration)

		return &ProviderError{Kind: Unreachable, Detail: transportDetail(ctx, err), Cause: err}
	}

	status := resp.StatusCode()
	client.observe(path, status, duration)
	client.logger.Debug("deepl request", "method", method, "path", path, "status", status, "duration", duration)

	if !resp.IsSuccess() {
		return statusError(status, resp.Header(), errorDetail(resp))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &ProviderError{
			Kind:   Unknown,
			Status: status,
			Detail: fmt.Sprintf("decode %s response: %v", path, err),
			Cause:  err,
		}
	}

	return nil
}

func (client *Client) observe(path string, status int, duration time.Duration) {
	if client.observer != nil {
		client.observer(path, status, duration)
	}
}

func transportDetail(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return "request cancelled"
	}

	return err.Error()
}

func errorDetail(resp *resty.Response) string {
	var body errorResponse

	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		switch {
		case body.Message != "" && body.Detail != "":
			return body.Message + ": " + body.Detail
		case body.Message != "":
			return body.Message
		}
	}

	if text := strings.TrimSpace(resp.String()); text != "" {
		return text
	}

	return resp.Status()
}
