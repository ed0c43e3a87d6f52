package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/mcp-server-deepl/pkg/metrics"
)

// kind is the closed set of tool handlers.
type kind int

const (
	kindTranslate kind = iota + 1
	kindLanguages
	kindUsage
	kindDetect
)

type entry struct {
	kind kind
	def  Definition
}

// definitions are advertised in this order.
var definitions = []Definition{
	translateDefinition,
	languagesDefinition,
	usageDefinition,
	detectDefinition,
}

var registry = map[string]entry{
	translateDefinition.Name: {kindTranslate, translateDefinition},
	languagesDefinition.Name: {kindLanguages, languagesDefinition},
	usageDefinition.Name:     {kindUsage, usageDefinition},
	detectDefinition.Name:    {kindDetect, detectDefinition},
}

// Definitions returns the tool catalog in advertised order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)

	return out
}

// Dispatcher validates tool calls and routes them to the Provider. It keeps
// no state between calls.
type Dispatcher struct {
	provider Provider
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher backed by provider.
func NewDispatcher(provider Provider, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Dispatcher{
		provider: provider,
		logger:   logger,
	}
}

// Register adds every tool to the MCP server.
func (d *Dispatcher) Register(s *server.MCPServer) {
	for _, def := range definitions {
		s.AddTool(def.Handle(), d.Handler)
	}
}

// Handler processes an MCP tool request. Tool failures are reported as error
// results, never as a protocol error.
func (d *Dispatcher) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := d.Dispatch(ctx, CallFromRequest(request))
	if err != nil {
		return NewErrorResult(err), nil
	}

	return NewJSONResult(payload), nil
}

// Dispatch runs a single call. On failure the error is always an *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) (any, *Error) {
	t := newTrace(call.Name)

	e, ok := registry[call.Name]
	if !ok {
		err := &Error{
			Category: CategoryUnknownTool,
			Message:  fmt.Sprintf("unknown tool %q", call.Name),
		}
		d.finish(t, "unregistered", err)

		return nil, err
	}

	args, err := validate(e.def, call.Arguments)
	if err != nil {
		d.finish(t, call.Name, err)
		return nil, err
	}

	t.advance(StateValidated)

	var payload any

	switch e.kind {
	case kindTranslate:
		payload, err = d.translate(ctx, t, args)
	case kindLanguages:
		payload, err = d.languages(ctx, t, args)
	case kindUsage:
		payload, err = d.usage(ctx, t)
	case kindDetect:
		payload, err = d.detect(ctx, t, args)
	}

	d.finish(t, call.Name, err)

	if err != nil {
		return nil, err
	}

	return payload, nil
}

func (d *Dispatcher) finish(t *trace, label string, err *Error) {
	outcome := metrics.OutcomeOK

	if err != nil {
		t.advance(StateFailed)
		outcome = string(err.Category)

		d.logger.Warn(
			"tool call failed",
			"call", t.id,
			"tool", t.tool,
			"reached", t.reached,
			"category", err.Category,
			"retryable", err.Retryable(),
			"error", err.Message,
			"duration", t.elapsed(),
		)
	} else {
		t.advance(StateCompleted)

		d.logger.Info(
			"tool call completed",
			"call", t.id,
			"tool", t.tool,
			"duration", t.elapsed(),
		)
	}

	metrics.ObserveToolCall(label, outcome, t.elapsed())
}
