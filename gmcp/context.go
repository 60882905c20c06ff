package gmcp

import (
	"context"
	"encoding/json"

	"github.com/mangohow/fmpmcp/tools/sync"
	"github.com/mangohow/fmpmcp/transport/binding"
)

var (
	ctxPool *sync.Pool[*Context] = sync.NewPool[*Context](func() *Context {
		return &Context{}
	})
)

type ctxKey struct{}

// Context 一次工具调用的上下文, 调用结束后回收复用
type Context struct {
	ctx       context.Context
	session   Session
	requestID json.RawMessage
	params    *CallToolParams
	binding   binding.Binding
}

func newContext(ctx context.Context, session Session, requestID json.RawMessage, params *CallToolParams, b binding.Binding) *Context {
	c := ctxPool.Get()
	c.session = session
	c.requestID = requestID
	c.params = params
	c.binding = b
	c.ctx = context.WithValue(ctx, ctxKey{}, c)

	return c
}

func putContext(c *Context) {
	c.ctx = nil
	c.session = nil
	c.requestID = nil
	c.params = nil
	c.binding = nil
	ctxPool.Put(c)
}

// Context 返回经过中间件处理后的 context
func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) ToolName() string {
	return c.params.Name
}

func (c *Context) Arguments() json.RawMessage {
	return c.params.Arguments
}

func (c *Context) SessionID() string {
	if c.session == nil {
		return ""
	}

	return c.session.SessionID()
}

func (c *Context) RequestID() string {
	return string(c.requestID)
}

// Bind 将调用参数绑定到结构体, 默认值由 `default` 标签给出
func (c *Context) Bind(obj any) error {
	return c.binding.Bind(c.params.Arguments, obj)
}

// FromContext 在中间件中获取当前调用的 Context
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(ctxKey{}).(*Context)
	return c
}
