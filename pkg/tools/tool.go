// Package tools provides the DeepL MCP tools: their definitions, argument
// validation, and the dispatcher that routes calls to the DeepL client.
package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
)

// Provider is the narrow DeepL surface the tools depend on. *deepl.Client
// implements it.
type Provider interface {
	Translate(ctx context.Context, req deepl.TranslateRequest) (deepl.Translation, error)
	ListLanguages(ctx context.Context, direction deepl.Direction) ([]deepl.Language, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
	Usage(ctx context.Context) (deepl.Usage, error)
}

// Call is a single tool invocation as received from the host.
type Call struct {
	Name      string
	Arguments map[string]any
}

// CallFromRequest converts an MCP request into a Call.
func CallFromRequest(request mcp.CallToolRequest) Call {
	return Call{
		Name:      request.Params.Name,
		Arguments: request.Params.Arguments,
	}
}

// NewErrorResult creates a tool error result carrying the error envelope.
func NewErrorResult(err *Error) *mcp.CallToolResult {
	body, marshalErr := json.Marshal(envelope{Error: err.payload()})
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultError(string(body))
}

// NewJSONResult creates a text result holding the JSON encoding of payload.
func NewJSONResult(payload any) *mcp.CallToolResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return NewErrorResult(&Error{
			Category: CategoryUnknown,
			Message:  "failed to encode result: " + err.Error(),
			Cause:    err,
		})
	}

	return mcp.NewToolResultText(string(body))
}
