package gmcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	stdsync "sync"

	"go.uber.org/zap"

	"github.com/mangohow/fmpmcp/errors"
	"github.com/mangohow/fmpmcp/tools/collection"
	"github.com/mangohow/fmpmcp/tools/sync"
	"github.com/mangohow/fmpmcp/tools/workerpool"
	"github.com/mangohow/fmpmcp/transport/binding"
)

const (
	defaultServerName    = "gmcp"
	defaultServerVersion = "0.0.1"
	defaultMaxWorkers    = 8
	taskQueueSize        = 64
)

type MCPServer struct {
	sessionManager collection.ConcurrentMap[string, Session]
	cfg            ServerConfig
	router         *Router
	pool           workerpool.WorkerPool
	wg             sync.WaitGroup
	handler        Handler
}

type ServerConfig struct {
	transport    MCPTransport
	info         Implementation
	instructions string
	logger       *zap.SugaredLogger
	maxWorkers   int
	middlewares  []Middleware
	binding      binding.Binding
}

type Option func(s *ServerConfig)

func WithTransport(transport MCPTransport) Option {
	return func(s *ServerConfig) {
		s.transport = transport
	}
}

func WithServerInfo(name, version string) Option {
	return func(s *ServerConfig) {
		s.info = Implementation{Name: name, Version: version}
	}
}

func WithInstructions(instructions string) Option {
	return func(s *ServerConfig) {
		s.instructions = instructions
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *ServerConfig) {
		s.logger = logger
	}
}

// WithMaxWorkers 同时执行的工具调用数量上限
func WithMaxWorkers(n int) Option {
	return func(s *ServerConfig) {
		s.maxWorkers = n
	}
}

func WithMiddleware(middlewares ...Middleware) Option {
	return func(s *ServerConfig) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}

func WithBinding(b binding.Binding) Option {
	return func(s *ServerConfig) {
		s.binding = b
	}
}

func NewMCPServer(opts ...Option) *MCPServer {
	cfg := ServerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.transport == nil {
		cfg.transport = NewStdioTransport()
	}

	if cfg.info.Name == "" {
		cfg.info = Implementation{Name: defaultServerName, Version: defaultServerVersion}
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop().Sugar()
	}

	if cfg.maxWorkers <= 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	if cfg.binding == nil {
		cfg.binding = binding.GetBinding("default")
	}

	s := &MCPServer{
		sessionManager: collection.NewConcurrentMap[string, Session](),
		cfg:            cfg,
		router:         NewRouter(),
	}

	// 队列满时由读取协程执行, 调用不会被丢弃
	s.pool = workerpool.NewWorkerPool(1, cfg.maxWorkers, taskQueueSize,
		workerpool.WithRejectPolicy(workerpool.CallerRunsPolicy()),
		workerpool.WithPanicHandler(func(r any, stack []byte) {
			s.cfg.logger.Errorw("tool call panic", "panic", r, "stack", string(stack))
		}),
	)

	s.handler = func(ctx context.Context, req any) (any, error) {
		c := FromContext(ctx)
		c.ctx = ctx
		return s.router.ServeTool(c)
	}

	return s
}

func (s *MCPServer) RegisterTool(handlers ...ToolHandler) {
	s.router.Register(handlers...)
}

func (s *MCPServer) Router() *Router {
	return s.router
}

// Start 接受会话并处理请求, 传输层关闭且所有会话结束后返回nil.
// ctx取消时停止读取新请求, 已开始的调用执行完成后退出
func (s *MCPServer) Start(ctx context.Context) error {
	if err := s.pool.Start(); err != nil {
		return err
	}
	defer s.pool.ShutdownWait(true)

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			s.cfg.logger.Infow("shutting down", "reason", ctx.Err())
			_ = s.cfg.transport.Close()
			for _, session := range s.sessionManager.Values() {
				session.stop()
			}
		case <-stopWatch:
		}
	}()

	for {
		session, err := s.cfg.transport.Accept()
		if err != nil {
			s.wg.Wait()
			if stderrors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}

		s.serveSession(ctx, session)
	}
}

type incomingMessage struct {
	JSONRPCRequest
	Result json.RawMessage `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

type sessionState struct {
	Session
	calls stdsync.WaitGroup
}

func (s *MCPServer) serveSession(ctx context.Context, session Session) {
	state := &sessionState{Session: session}
	id := session.SessionID()
	s.sessionManager.Set(id, session)
	s.cfg.logger.Debugw("session started", "session", id)
	if ctx.Err() != nil {
		session.stop()
	}

	s.wg.Go(func() {
		defer s.sessionManager.Delete(id)

		err := session.readerLoop(func(message []byte) {
			s.handleMessage(ctx, state, message)
		})
		if err != nil {
			s.cfg.logger.Errorw("session read failed", "session", id, "error", err)
		}

		// 等待进行中的调用写出响应后再关闭
		state.calls.Wait()
		_ = session.close()
		s.cfg.logger.Debugw("session closed", "session", id)
	})

	s.wg.Go(func() {
		if err := session.writerLoop(); err != nil {
			s.cfg.logger.Errorw("session write failed", "session", id, "error", err)
		}
	})
}

func (s *MCPServer) handleMessage(ctx context.Context, state *sessionState, message []byte) {
	if len(message) > 0 && message[0] == '[' {
		s.sendError(state, nil, CodeInvalidRequest, "batch requests are not supported")
		return
	}

	var msg incomingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		s.sendError(state, nil, CodeParseError, "parse error: "+err.Error())
		return
	}
	req := msg.JSONRPCRequest

	if req.Method == "" {
		// 服务端不发起请求, 客户端的响应消息直接忽略
		if len(msg.Result) > 0 || len(msg.Error) > 0 {
			return
		}
		s.sendError(state, req.ID, CodeInvalidRequest, "invalid request: missing method")
		return
	}

	if req.JSONRPC != JSONRPCVersion {
		if !req.IsNotification() {
			s.sendError(state, req.ID, CodeInvalidRequest, "invalid request: unsupported jsonrpc version")
		}
		return
	}

	if req.IsNotification() {
		s.handleNotification(&req)
		return
	}

	switch req.Method {
	case MethodInitialize:
		s.handleInitialize(state, &req)
	case MethodPing:
		s.sendResult(state, req.ID, emptyResult{})
	case MethodToolsList:
		s.sendResult(state, req.ID, ListToolsResult{Tools: s.router.Tools()})
	case MethodToolsCall:
		s.handleToolsCall(ctx, state, &req)
	default:
		s.sendError(state, req.ID, CodeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *MCPServer) handleNotification(req *JSONRPCRequest) {
	switch req.Method {
	case NotificationInitialized:
		s.cfg.logger.Debug("client initialized")
	case NotificationCancelled:
		// 上游请求不支持取消
		s.cfg.logger.Debugw("ignoring cancellation", "params", string(req.Params))
	default:
		s.cfg.logger.Debugw("ignoring notification", "method", req.Method)
	}
}

func (s *MCPServer) handleInitialize(state *sessionState, req *JSONRPCRequest) {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendError(state, req.ID, CodeInvalidParams, "invalid initialize params: "+err.Error())
			return
		}
	}

	s.cfg.logger.Infow("client connected",
		"client", params.ClientInfo.Name,
		"clientVersion", params.ClientInfo.Version,
		"protocolVersion", params.ProtocolVersion,
	)

	s.sendResult(state, req.ID, InitializeResult{
		ProtocolVersion: negotiateProtocolVersion(params.ProtocolVersion),
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: false},
		},
		ServerInfo:   s.cfg.info,
		Instructions: s.cfg.instructions,
	})
}

func (s *MCPServer) handleToolsCall(ctx context.Context, state *sessionState, req *JSONRPCRequest) {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(state, req.ID, CodeInvalidParams, "invalid tools/call params: "+err.Error())
		return
	}
	if params.Name == "" {
		s.sendError(state, req.ID, CodeInvalidParams, "invalid tools/call params: missing tool name")
		return
	}

	id := req.ID
	state.calls.Add(1)
	task := func() {
		defer state.calls.Done()
		s.sendResult(state, id, s.callTool(ctx, state, id, &params))
	}

	if err := s.pool.Submit(task); err != nil {
		// 线程池已关闭, 在当前协程执行
		task()
	}
}

// callTool 所有错误和panic都转换成错误结果, 不影响后续调用
func (s *MCPServer) callTool(ctx context.Context, session Session, id json.RawMessage, params *CallToolParams) (result *CallToolResult) {
	c := newContext(context.WithoutCancel(ctx), session, id, params, s.cfg.binding)
	defer putContext(c)

	defer func() {
		if r := recover(); r != nil {
			s.cfg.logger.Errorw("tool call panic", "tool", params.Name, "panic", r)
			result = ErrorResult(errors.New(errors.UnknownCode, errors.UnknownReason, fmt.Sprintf("internal error: %v", r)))
		}
	}()

	resp, err := chainHandler(s.cfg.middlewares)(c.ctx, params, s.handler)
	if err != nil {
		return ErrorResult(err)
	}

	result, ok := resp.(*CallToolResult)
	if !ok || result == nil {
		return ErrorResult(errors.New(errors.UnknownCode, errors.UnknownReason, "tool returned no result"))
	}

	return result
}

func (s *MCPServer) sendResult(state *sessionState, id json.RawMessage, result any) {
	data, err := json.Marshal(NewJSONRPCResponse(id, result))
	if err != nil {
		s.cfg.logger.Errorw("marshal response failed", "error", err)
		s.sendError(state, id, CodeInternalError, "marshal response failed: "+err.Error())
		return
	}

	s.send(state, data)
}

func (s *MCPServer) sendError(state *sessionState, id json.RawMessage, code int, message string) {
	data, err := json.Marshal(NewJSONRPCError(id, code, message))
	if err != nil {
		s.cfg.logger.Errorw("marshal error response failed", "error", err)
		return
	}

	s.send(state, data)
}

func (s *MCPServer) send(state *sessionState, data []byte) {
	if !state.send(data) {
		s.cfg.logger.Warnw("session closed, dropping message", "session", state.SessionID())
	}
}
