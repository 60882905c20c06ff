// Package errors 定义工具调用过程中的错误分类
package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	UnknownCode = 500

	UnknownReason  = "Internal"
	UnknownMessage = "internal error"
)

// 错误码, 按错误来源分段
const (
	CodeConfigurationMissing        = 1001
	CodeUnknownOperation            = 2001
	CodeMissingOrMalformedParameter = 2002
	CodeUpstreamHttpError           = 3001
	CodeUpstreamTransportError      = 3002
	CodeUpstreamMalformedResponse   = 3003
)

const (
	ReasonConfigurationMissing        = "ConfigurationMissing"
	ReasonUnknownOperation            = "UnknownOperation"
	ReasonMissingOrMalformedParameter = "MissingOrMalformedParameter"
	ReasonUpstreamHttpError           = "UpstreamHttpError"
	ReasonUpstreamTransportError      = "UpstreamTransportError"
	ReasonUpstreamMalformedResponse   = "UpstreamMalformedResponse"
)

type Error interface {
	error
	Code() int
	Reason() string
	Message() string
	// HttpStatus 上游返回的HTTP状态码, 非上游错误为0
	HttpStatus() int
	Unwrap() error
}

type lerror struct {
	code       int
	reason     string
	message    string
	httpStatus int
	cause      error
}

func (e *lerror) Error() string {
	return e.message
}

func (e *lerror) Code() int {
	return e.code
}

func (e *lerror) Reason() string {
	return e.reason
}

func (e *lerror) Message() string {
	return e.message
}

func (e *lerror) HttpStatus() int {
	return e.httpStatus
}

func (e *lerror) Unwrap() error {
	return e.cause
}

func New(code int, reason, message string) Error {
	return &lerror{
		code:    code,
		reason:  reason,
		message: message,
	}
}

// FromError 将任意错误转换为 Error, 已经是 Error 的直接返回
func FromError(code int, reason, message string, err error) Error {
	if e, ok := As(err); ok {
		return e
	}

	if message == "" && err != nil {
		message = err.Error()
	}

	return &lerror{
		code:    code,
		reason:  reason,
		message: message,
		cause:   err,
	}
}

func As(err error) (Error, bool) {
	var e Error
	if stderrors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// ReasonOf 返回错误分类, 非 Error 返回 UnknownReason
func ReasonOf(err error) string {
	if e, ok := As(err); ok {
		return e.Reason()
	}

	return UnknownReason
}

func ConfigurationMissing(name string) Error {
	return New(CodeConfigurationMissing, ReasonConfigurationMissing,
		fmt.Sprintf("%s environment variable is required", name))
}

func UnknownOperation(name string) Error {
	return New(CodeUnknownOperation, ReasonUnknownOperation, "Unknown tool: "+name)
}

func MissingOrMalformedParameter(operation string, err error) Error {
	return &lerror{
		code:    CodeMissingOrMalformedParameter,
		reason:  ReasonMissingOrMalformedParameter,
		message: fmt.Sprintf("invalid arguments for %s: %v", operation, err),
		cause:   err,
	}
}

func UpstreamHttpError(status int, statusText string) Error {
	return &lerror{
		code:       CodeUpstreamHttpError,
		reason:     ReasonUpstreamHttpError,
		message:    fmt.Sprintf("FMP API error: %d %s", status, statusText),
		httpStatus: status,
	}
}

func UpstreamTransportError(err error) Error {
	return &lerror{
		code:    CodeUpstreamTransportError,
		reason:  ReasonUpstreamTransportError,
		message: fmt.Sprintf("FMP API request failed: %v", err),
		cause:   err,
	}
}

func UpstreamMalformedResponse(err error) Error {
	return &lerror{
		code:    CodeUpstreamMalformedResponse,
		reason:  ReasonUpstreamMalformedResponse,
		message: fmt.Sprintf("FMP API returned malformed JSON: %v", err),
		cause:   err,
	}
}

func IsUnknownOperation(err error) bool {
	return ReasonOf(err) == ReasonUnknownOperation
}

func IsMissingOrMalformedParameter(err error) bool {
	return ReasonOf(err) == ReasonMissingOrMalformedParameter
}

func IsConfigurationMissing(err error) bool {
	return ReasonOf(err) == ReasonConfigurationMissing
}
