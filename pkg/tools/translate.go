package tools

import (
	"context"

	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"github.com/theapemachine/mcp-server-deepl/pkg/language"
)

// TranslatePayload is the result of the translate tool.
type TranslatePayload struct {
	Text               string `json:"text" jsonschema_description:"The translated text"`
	DetectedSourceLang string `json:"detected_source_lang" jsonschema_description:"Source language detected (or confirmed) by DeepL"`
	SourceLang         string `json:"source_lang,omitempty" jsonschema_description:"Source language requested by the caller, if any"`
	TargetLang         string `json:"target_lang" jsonschema_description:"Canonical target language code"`
	Formality          string `json:"formality,omitempty" jsonschema_description:"Formality mode sent to DeepL, if any"`
	PreserveFormatting bool   `json:"preserve_formatting" jsonschema_description:"Whether formatting was preserved"`
}

// translateRequest builds the provider request from validated arguments.
// The source language and formality stay nil unless the caller gave them.
func translateRequest(args arguments) (deepl.TranslateRequest, *Error) {
	text, _ := args.str("text")
	targetInput, _ := args.str("target_lang")

	target, err := language.Resolve(targetInput, language.Target)
	if err != nil {
		return deepl.TranslateRequest{}, languageError("target_lang", err)
	}

	req := deepl.TranslateRequest{
		Text:               text,
		TargetLang:         target,
		PreserveFormatting: args.boolean("preserve_formatting", true),
	}

	if sourceInput, ok := args.str("source_lang"); ok {
		source, err := language.Resolve(sourceInput, language.Source)
		if err != nil {
			return deepl.TranslateRequest{}, languageError("source_lang", err)
		}

		req.SourceLang = &source
	}

	if mode, ok := args.str("formality"); ok && mode != "default" {
		formality := deepl.Formality(mode)
		req.Formality = &formality
	}

	return req, nil
}

func (d *Dispatcher) translate(ctx context.Context, t *trace, args arguments) (any, *Error) {
	req, err := translateRequest(args)
	if err != nil {
		return nil, err
	}

	t.advance(StateResolved)
	t.advance(StateDispatched)

	result, perr := d.provider.Translate(ctx, req)
	if perr != nil {
		return nil, providerError(perr)
	}

	payload := TranslatePayload{
		Text:               result.Text,
		DetectedSourceLang: result.DetectedSourceLang,
		TargetLang:         req.TargetLang,
		PreserveFormatting: req.PreserveFormatting,
	}

	if req.SourceLang != nil {
		payload.SourceLang = *req.SourceLang
	}

	if req.Formality != nil {
		payload.Formality = string(*req.Formality)
	}

	return payload, nil
}
