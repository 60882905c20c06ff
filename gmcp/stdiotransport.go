package gmcp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/mangohow/fmpmcp/tools/collection"
)

// stdioTransport 只有一个会话, 会话结束后传输层随之关闭
type stdioTransport struct {
	singleSessionChan chan *stdioSession
	closed            chan struct{}
	closeOnce         sync.Once
}

func NewStdioTransport() MCPTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewStreamTransport 基于任意字节流的单会话传输层, 每行一条JSON-RPC消息
func NewStreamTransport(in io.Reader, out io.Writer) MCPTransport {
	s := &stdioTransport{
		singleSessionChan: make(chan *stdioSession, 1),
		closed:            make(chan struct{}),
	}
	s.singleSessionChan <- newStdioSession(s, in, out)

	return s
}

func (s *stdioTransport) Accept() (Session, error) {
	select {
	case session := <-s.singleSessionChan:
		return session, nil
	case <-s.closed:
		return nil, ErrClosed
	}
}

func (s *stdioTransport) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
	})

	return nil
}

type stdioSession struct {
	id        string
	transport *stdioTransport
	in        io.Reader
	out       io.Writer
	done      chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
	outbound  collection.BlockingQueue[[]byte]
}

func newStdioSession(transport *stdioTransport, in io.Reader, out io.Writer) *stdioSession {
	return &stdioSession{
		id:        uuid.New().String(),
		transport: transport,
		in:        in,
		out:       out,
		done:      make(chan struct{}),
		outbound:  collection.NewBlockingQueue[[]byte](),
	}
}

func (s *stdioSession) SessionID() string {
	return s.id
}

type readResult struct {
	line []byte
	err  error
}

func (s *stdioSession) readerLoop(handle func(message []byte)) error {
	// 读取放在独立的goroutine中, stop 可以不等阻塞的Read返回
	lines := make(chan readResult)
	go func() {
		reader := bufio.NewReader(s.in)
		for {
			line, err := reader.ReadBytes('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-s.done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-s.done:
			return nil
		case r := <-lines:
			if line := bytes.TrimSpace(r.line); len(line) > 0 {
				handle(line)
			}

			if errors.Is(r.err, io.EOF) {
				return nil
			}
			if r.err != nil {
				return r.err
			}
		}
	}
}

func (s *stdioSession) writerLoop() error {
	var writeErr error
	for {
		message, ok := s.outbound.Pop()
		if !ok {
			return writeErr
		}

		// 写失败后继续取出消息, 保证 close 不会阻塞
		if writeErr != nil {
			continue
		}

		if _, err := s.out.Write(append(message, '\n')); err != nil {
			writeErr = err
		}
	}
}

func (s *stdioSession) send(message []byte) bool {
	return s.outbound.Push(message)
}

func (s *stdioSession) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *stdioSession) close() error {
	s.closeOnce.Do(func() {
		s.stop()
		s.outbound.ShutdownWithDrained()
		_ = s.transport.Close()
	})

	return nil
}
