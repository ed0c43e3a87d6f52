package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
)

// Param describes one tool parameter.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
	Enum        []string  `json:"enum,omitempty"`
}

// Definition is the contract of a tool. The same Params drive both the schema
// advertised to the host and the validation of incoming calls.
type Definition struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
}

// Handle renders the definition as the MCP tool advertised to the host.
func (def Definition) Handle() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}

	for _, param := range def.Params {
		props := []mcp.PropertyOption{mcp.Description(param.Description)}

		if param.Required {
			props = append(props, mcp.Required())
		}

		if len(param.Enum) > 0 {
			props = append(props, mcp.Enum(param.Enum...))
		}

		switch param.Type {
		case TypeBoolean:
			opts = append(opts, mcp.WithBoolean(param.Name, props...))
		default:
			opts = append(opts, mcp.WithString(param.Name, props...))
		}
	}

	return mcp.NewTool(def.Name, opts...)
}

func (def Definition) param(name string) (Param, bool) {
	for _, param := range def.Params {
		if param.Name == name {
			return param, true
		}
	}

	return Param{}, false
}

var translateDefinition = Definition{
	Name: "translate",
	Description: "Translate text using DeepL. " +
		"You can use language names (e.g. 'Japanese', 'British English') or " +
		"language codes (e.g. 'JA', 'EN-US'). English and Portuguese targets need a regional variant.",
	Params: []Param{
		{
			Name:        "text",
			Type:        TypeString,
			Required:    true,
			Description: "The text to translate",
		},
		{
			Name:        "target_lang",
			Type:        TypeString,
			Required:    true,
			Description: "Target language. Examples: 'Japanese', 'JA', 'American English', 'EN-US', 'German', 'DE'",
		},
		{
			Name:        "source_lang",
			Type:        TypeString,
			Description: "Source language (optional, auto-detected if not specified). Examples: 'English', 'EN', 'Japanese', 'JA'",
		},
		{
			Name: "formality",
			Type: TypeString,
			Description: "Formality level (optional). 'more' for formal, 'less' for informal, " +
				"'prefer_more'/'prefer_less' fall back to the default where unsupported. Not all languages support formality.",
			Enum: []string{"default", "more", "less", "prefer_more", "prefer_less"},
		},
		{
			Name:        "preserve_formatting",
			Type:        TypeBoolean,
			Description: "Whether to preserve formatting (optional, default: true)",
		},
	},
}

var languagesDefinition = Definition{
	Name:        "get_supported_languages",
	Description: "List the languages DeepL currently supports, with their codes.",
	Params: []Param{
		{
			Name: "direction",
			Type: TypeString,
			Description: "Which languages to list: 'source' to translate from, 'target' to translate to, " +
				"'both' for both lists (default: 'target')",
			Enum: []string{"source", "target", "both"},
		},
	},
}

var usageDefinition = Definition{
	Name:        "get_usage",
	Description: "Get DeepL API usage: characters used and the limit of the current billing period.",
}

var detectDefinition = Definition{
	Name:        "detect_language",
	Description: "Detect the language of the given text using DeepL.",
	Params: []Param{
		{
			Name:        "text",
			Type:        TypeString,
			Required:    true,
			Description: "The text to detect the language of",
		},
	},
}
