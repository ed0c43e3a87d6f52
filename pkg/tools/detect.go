package tools

import (
	"context"
	"strings"

	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"github.com/theapemachine/mcp-server-deepl/pkg/language"
)

const excerptLength = 100

// DetectPayload is the result of the detect_language tool.
type DetectPayload struct {
	Language string `json:"language" jsonschema_description:"Detected DeepL source language code"`
	Name     string `json:"name" jsonschema_description:"Human readable language name"`
	Excerpt  string `json:"excerpt" jsonschema_description:"The start of the analysed text"`
}

func (d *Dispatcher) detect(ctx context.Context, t *trace, args arguments) (any, *Error) {
	text, _ := args.str("text")

	t.advance(StateResolved)
	t.advance(StateDispatched)

	code, err := d.provider.DetectLanguage(ctx, text)
	if err != nil {
		return nil, providerError(err)
	}

	return DetectPayload{
		Language: code,
		Name:     d.languageName(ctx, code),
		Excerpt:  excerpt(text, excerptLength),
	}, nil
}

// languageName looks the code up in the live source list, then in the static
// catalog. A failed lookup never fails detection.
func (d *Dispatcher) languageName(ctx context.Context, code string) string {
	langs, err := d.provider.ListLanguages(ctx, deepl.DirectionSource)
	if err != nil {
		d.logger.Debug("language name lookup failed", "code", code, "error", err)
	}

	for _, lang := range langs {
		if strings.EqualFold(lang.Code, code) {
			return lang.Name
		}
	}

	if spec, err := language.Lookup(code); err == nil {
		return spec.Name
	}

	return code
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit]) + "..."
}
