package tools

import (
	"github.com/invopop/jsonschema"
)

// CatalogEntry is a tool definition together with the schema of its result.
type CatalogEntry struct {
	Definition
	Output *jsonschema.Schema `json:"output"`
}

var payloads = map[kind]any{
	kindTranslate: &TranslatePayload{},
	kindLanguages: &LanguagesPayload{},
	kindUsage:     &UsagePayload{},
	kindDetect:    &DetectPayload{},
}

// Catalog describes every tool, in advertised order, with the JSON schema of
// its success payload.
func Catalog() []CatalogEntry {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	out := make([]CatalogEntry, 0, len(definitions))

	for _, def := range definitions {
		out = append(out, CatalogEntry{
			Definition: def,
			Output:     reflector.Reflect(payloads[registry[def.Name].kind]),
		})
	}

	return out
}
