package gmcp

type Session interface {
	SessionID() string
	// readerLoop 逐条读取消息交给handle, 输入结束或会话停止时返回
	readerLoop(handle func(message []byte)) error
	// writerLoop 写出消息直到会话关闭且缓冲写完
	writerLoop() error
	send(message []byte) bool
	// stop 停止读取
	stop()
	// close 停止读取并在缓冲写完后释放会话
	close() error
}
