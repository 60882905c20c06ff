package gmcp

import (
	"context"
)

// Handler req 为 *CallToolParams, resp 为 *CallToolResult
type Handler func(ctx context.Context, req any) (resp any, err error)

type Middleware func(ctx context.Context, req any, handler Handler) (any, error)

func chainHandler(middlewares []Middleware) Middleware {
	if len(middlewares) == 0 {
		return func(ctx context.Context, req any, handler Handler) (any, error) {
			return handler(ctx, req)
		}
	}

	return func(ctx context.Context, req any, handler Handler) (any, error) {
		return middlewares[0](ctx, req, getChainMiddleware(middlewares, 0, handler))
	}
}

func getChainMiddleware(middlewares []Middleware, cur int, handler Handler) Handler {
	if cur >= len(middlewares)-1 {
		return handler
	}

	return func(ctx context.Context, req any) (any, error) {
		return middlewares[cur+1](ctx, req, getChainMiddleware(middlewares, cur+1, handler))
	}
}
