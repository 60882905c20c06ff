package llog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mangohow/fmpmcp/errors"
	"github.com/mangohow/fmpmcp/gmcp"
)

type loggerKey struct{}

// WithLogger 将 logger 注入 context
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext 从 context 获取 logger（不存在则返回默认 logger）
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return log
	}
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return log
}

// LoggerInjectMiddleware 中间件：为每次工具调用生成 callId 并注入 logger
func LoggerInjectMiddleware() gmcp.Middleware {
	return func(ctx context.Context, req any, handler gmcp.Handler) (any, error) {
		c := gmcp.FromContext(ctx)

		callLogger := log.With(
			"callId", uuid.New().String(),
			"tool", c.ToolName(),
			"session", c.SessionID(),
		)

		return handler(WithLogger(ctx, callLogger), req)
	}
}

// RequestLoggingMiddleware 记录工具调用耗时与结果
func RequestLoggingMiddleware() gmcp.Middleware {
	return func(ctx context.Context, req any, handler gmcp.Handler) (any, error) {
		logger := FromContext(ctx)

		start := time.Now()
		resp, err := handler(ctx, req)
		latency := time.Since(start)

		fields := []any{
			"latency", latency,
		}

		if err != nil {
			if e, ok := errors.As(err); ok {
				fields = append(fields, "errCode", e.Code(), "reason", e.Reason(), "errMsg", e.Message())
				if e.HttpStatus() != 0 {
					fields = append(fields, "status", e.HttpStatus())
				}
			} else {
				fields = append(fields, "error", err.Error())
			}
			logger.Warnw("Tool call failed", fields...)
			return resp, err
		}

		logger.Infow("Tool call", fields...)
		return resp, err
	}
}
