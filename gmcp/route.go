package gmcp

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mangohow/fmpmcp/errors"
	"github.com/mangohow/fmpmcp/tools/collection"
)

type ToolHandler interface {
	ToolName() string
	Description() string
	InputSchema() *jsonschema.Schema
	Handle(ctx *Context) (*CallToolResult, error)
}

type Router struct {
	tools collection.ConcurrentMap[string, ToolHandler]
	mu    sync.Mutex
	// 注册顺序, tools/list 按此顺序返回
	names []string
}

func NewRouter() *Router {
	return &Router{
		tools: collection.NewConcurrentMap[string, ToolHandler](),
	}
}

// Register 工具名重复时panic, 工具在启动时静态注册
func (r *Router) Register(handlers ...ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range handlers {
		name := h.ToolName()
		if r.tools.Has(name) {
			panic(fmt.Sprintf("gmcp: tool %q registered twice", name))
		}
		r.tools.Set(name, h)
		r.names = append(r.names, name)
	}
}

func (r *Router) Tools() []Tool {
	r.mu.Lock()
	defer r.mu.Unlock()
	tools := make([]Tool, 0, len(r.names))
	for _, name := range r.names {
		h, _ := r.tools.Get(name)
		tools = append(tools, Tool{
			Name:        h.ToolName(),
			Description: h.Description(),
			InputSchema: h.InputSchema(),
		})
	}

	return tools
}

// ServeTool 工具名大小写敏感, 找不到时返回 UnknownOperation
func (r *Router) ServeTool(ctx *Context) (*CallToolResult, error) {
	handler, ok := r.tools.Get(ctx.ToolName())
	if !ok {
		return nil, errors.UnknownOperation(ctx.ToolName())
	}

	result, err := handler.Handle(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return TextResult(""), nil
	}

	return result, nil
}
