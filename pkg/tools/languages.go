package tools

import (
	"context"

	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"golang.org/x/sync/errgroup"
)

// LanguageEntry is one language in a LanguagesPayload.
type LanguageEntry struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	SupportsFormality *bool  `json:"supports_formality,omitempty" jsonschema_description:"Only reported for target languages"`
}

// LanguagesPayload is the result of the get_supported_languages tool.
type LanguagesPayload struct {
	Direction string          `json:"direction" jsonschema:"enum=source,enum=target,enum=both"`
	Source    []LanguageEntry `json:"source,omitempty" jsonschema_description:"Languages that can be translated from"`
	Target    []LanguageEntry `json:"target,omitempty" jsonschema_description:"Languages that can be translated to"`
}

func (d *Dispatcher) languages(ctx context.Context, t *trace, args arguments) (any, *Error) {
	direction, ok := args.str("direction")
	if !ok {
		direction = string(deepl.DirectionTarget)
	}

	t.advance(StateResolved)
	t.advance(StateDispatched)

	payload := LanguagesPayload{Direction: direction}

	var err error

	switch direction {
	case string(deepl.DirectionSource):
		payload.Source, err = d.listLanguages(ctx, deepl.DirectionSource)
	case string(deepl.DirectionTarget):
		payload.Target, err = d.listLanguages(ctx, deepl.DirectionTarget)
	default:
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() (err error) {
			payload.Source, err = d.listLanguages(gctx, deepl.DirectionSource)
			return err
		})

		g.Go(func() (err error) {
			payload.Target, err = d.listLanguages(gctx, deepl.DirectionTarget)
			return err
		})

		err = g.Wait()
	}

	if err != nil {
		return nil, providerError(err)
	}

	return payload, nil
}

func (d *Dispatcher) listLanguages(ctx context.Context, direction deepl.Direction) ([]LanguageEntry, error) {
	langs, err := d.provider.ListLanguages(ctx, direction)
	if err != nil {
		return nil, err
	}

	out := make([]LanguageEntry, 0, len(langs))

	for _, lang := range langs {
		entry := LanguageEntry{Code: lang.Code, Name: lang.Name}

		if direction == deepl.DirectionTarget {
			supports := lang.SupportsFormality
			entry.SupportsFormality = &supports
		}

		out = append(out, entry)
	}

	return out, nil
}
