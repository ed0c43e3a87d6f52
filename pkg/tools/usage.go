package tools

import (
	"context"
	"math"
)

// UsagePayload is the result of the get_usage tool. Every field is always
// present; the limits are null for plans without a limit.
type UsagePayload struct {
	CharacterCount     int64    `json:"character_count"`
	CharacterLimit     *int64   `json:"character_limit" jsonschema_description:"Null when the plan has no character limit"`
	CharacterRemaining *int64   `json:"character_remaining"`
	UsagePercent       *float64 `json:"usage_percent"`
	Unlimited          bool     `json:"unlimited"`
	DocumentCount      *int64   `json:"document_count"`
	DocumentLimit      *int64   `json:"document_limit"`
}

func (d *Dispatcher) usage(ctx context.Context, t *trace) (any, *Error) {
	t.advance(StateResolved)
	t.advance(StateDispatched)

	usage, err := d.provider.Usage(ctx)
	if err != nil {
		return nil, providerError(err)
	}

	payload := UsagePayload{
		CharacterCount: usage.CharacterCount,
		CharacterLimit: usage.CharacterLimit,
		Unlimited:      usage.CharacterLimit == nil,
		DocumentCount:  usage.DocumentCount,
		DocumentLimit:  usage.DocumentLimit,
	}

	if limit := usage.CharacterLimit; limit != nil {
		remaining := *limit - usage.CharacterCount
		if remaining < 0 {
			remaining = 0
		}
		payload.CharacterRemaining = &remaining

		if *limit > 0 {
			percent := math.Round(float64(usage.CharacterCount)/float64(*limit)*1000) / 10
			payload.UsagePercent = &percent
		}
	}

	return payload, nil
}
