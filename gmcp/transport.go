package gmcp

import "errors"

var (
	ErrClosed = errors.New("transport has been closed")
)

type MCPTransport interface {
	// Accept 阻塞直到有新会话, 传输层关闭后返回 ErrClosed
	Accept() (Session, error)
	Close() error
}
