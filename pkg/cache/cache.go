// Package cache provides translation caching for the DeepL tools.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"github.com/theapemachine/mcp-server-deepl/pkg/metrics"
	"github.com/theapemachine/mcp-server-deepl/pkg/tools"
)

// Store is a string key/value store with expiry.
type Store interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// Provider caches translations of the wrapped provider. Language lists,
// detection and usage always go to the wrapped provider.
type Provider struct {
	tools.Provider
	store  Store
	logger *log.Logger
}

// NewProvider wraps provider with a translation cache backed by store.
func NewProvider(provider tools.Provider, store Store, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Provider{
		Provider: provider,
		store:    store,
		logger:   logger,
	}
}

// Translate returns a cached translation when one exists for the same
// request. Store failures are logged and never fail the call.
func (p *Provider) Translate(ctx context.Context, req deepl.TranslateRequest) (deepl.Translation, error) {
	key := Key(req)

	value, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("cache lookup failed", "error", err)
	}

	if ok {
		var cached deepl.Translation

		if err := json.Unmarshal([]byte(value), &cached); err == nil {
			metrics.ObserveCacheLookup(true)
			return cached, nil
		}

		p.logger.Warn("discarding unreadable cache entry", "key", key)
	}

	metrics.ObserveCacheLookup(false)

	translation, err := p.Provider.Translate(ctx, req)
	if err != nil {
		return deepl.Translation{}, err
	}

	body, err := json.Marshal(translation)
	if err != nil {
		return translation, nil
	}

	if err := p.store.Set(ctx, key, string(body)); err != nil {
		p.logger.Warn("cache store failed", "error", err)
	}

	return translation, nil
}

// Key derives the cache key of a translate request. Requests that differ in
// any field sent to DeepL get different keys.
func Key(req deepl.TranslateRequest) string {
	source := ""
	if req.SourceLang != nil {
		source = *req.SourceLang
	}

	formality := ""
	if req.Formality != nil {
		formality = string(*req.Formality)
	}

	hash := sha256.New()

	for _, part := range []string{
		req.Text,
		req.TargetLang,
		source,
		formality,
		strconv.FormatBool(req.PreserveFormatting),
	} {
		hash.Write([]byte(strconv.Itoa(len(part))))
		hash.Write([]byte{':'})
		hash.Write([]byte(part))
	}

	return "translate:" + hex.EncodeToString(hash.Sum(nil))
}
