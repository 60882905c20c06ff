package fmp

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mangohow/fmpmcp/gmcp"
	"github.com/mangohow/fmpmcp/llog"
)

type tool struct {
	op         *Operation
	dispatcher *Dispatcher
}

func (t *tool) ToolName() string {
	return t.op.Name
}

func (t *tool) Description() string {
	return t.op.Description
}

func (t *tool) InputSchema() *jsonschema.Schema {
	return t.op.Schema
}

func (t *tool) Handle(c *gmcp.Context) (*gmcp.CallToolResult, error) {
	ctx := c.Context()
	text, err := t.dispatcher.invoke(ctx, t.op, c.Arguments(), c.Bind)
	if err != nil {
		return nil, err
	}

	llog.FromContext(ctx).Debugw("tool result", "bytes", len(text))
	return gmcp.TextResult(text), nil
}

// Tools 目录中每个操作对应一个 MCP 工具
func (d *Dispatcher) Tools() []gmcp.ToolHandler {
	ops := d.registry.Operations()
	handlers := make([]gmcp.ToolHandler, 0, len(ops))
	for _, op := range ops {
		handlers = append(handlers, &tool{op: op, dispatcher: d})
	}

	return handlers
}
