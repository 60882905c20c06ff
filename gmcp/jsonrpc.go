package gmcp

import (
	"encoding/json"
)

const (
	JSONRPCVersion = "2.0"
)

// JSON-RPC 2.0 标准错误码
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification 没有id的请求是通知, 不需要响应
func (r *JSONRPCRequest) IsNotification() bool {
	return len(r.ID) == 0
}

type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type JSONRPCError struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Err     ErrorInfo       `json:"error"`
}

func NewJSONRPCError(id json.RawMessage, code int, message string) *JSONRPCError {
	return &JSONRPCError{
		JSONRPC: JSONRPCVersion,
		ID:      nullID(id),
		Err: ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

func (e *JSONRPCError) Error() string {
	jsonData, err := json.Marshal(e)
	if err != nil {
		return err.Error()
	}

	return string(jsonData)
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
}

func NewJSONRPCResponse(id json.RawMessage, result any) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      nullID(id),
		Result:  result,
	}
}

// nullID 无法识别请求id时按规范返回 null
func nullID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}

	return id
}
