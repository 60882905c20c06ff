package llog

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// 未初始化时使用空logger, 保证 FromContext 总是可用
	log      = zap.NewNop().Sugar()
	logLevel = zap.NewAtomicLevel()
)

const (
	logTimeFormat = "2006-01-02 15:04:05.000"
)

// config 日志配置
type config struct {
	// 日志级别 (debug, info, warn, error, dpanic, panic, fatal)
	level string
	// 日志输出类型 (console, json)
	encoding string
	// 文件输出路径（为空则不写文件）
	filename string
	// 是否启用 caller（记录调用位置）
	enableCaller bool

	serviceName string

	// 控制台输出, 默认 stderr. stdout 用于协议数据, 不能写日志
	output io.Writer

	// 日期格式化器
	timeEncoder zapcore.TimeEncoder
}

func (c *config) init() {
	if c.level == "" {
		c.level = "info"
	}

	if c.encoding == "" {
		c.encoding = "console"
	}

	if c.output == nil {
		c.output = os.Stderr
	}

	if c.timeEncoder == nil {
		c.timeEncoder = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			type appendTimeEncoder interface {
				AppendTimeLayout(time.Time, string)
			}

			if enc, ok := enc.(appendTimeEncoder); ok {
				enc.AppendTimeLayout(t, logTimeFormat)
				return
			}

			enc.AppendString(t.Format(logTimeFormat))
		}
	}
}

func SetLevel(level string) error {
	return logLevel.UnmarshalText([]byte(level))
}

type LoggerOption func(cfg *config)

func WithLevel(level string) LoggerOption {
	return func(cfg *config) {
		cfg.level = level
	}
}

func WithEncoding(encoding string) LoggerOption {
	return func(cfg *config) {
		cfg.encoding = encoding
	}
}

func WithFilename(filename string) LoggerOption {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

func WithEnableCaller(enableCaller bool) LoggerOption {
	return func(cfg *config) {
		cfg.enableCaller = enableCaller
	}
}

func WithServiceName(serviceName string) LoggerOption {
	return func(cfg *config) {
		cfg.serviceName = serviceName
	}
}

func WithOutput(w io.Writer) LoggerOption {
	return func(cfg *config) {
		cfg.output = w
	}
}

func WithTimeEncoder(enc zapcore.TimeEncoder) LoggerOption {
	return func(cfg *config) {
		cfg.timeEncoder = enc
	}
}

// InitLogger 初始化全局日志实例, 返回的函数用于退出前刷新缓冲
func InitLogger(opts ...LoggerOption) (*zap.SugaredLogger, func(), error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.init()

	// 1. 解析日志级别
	if err := logLevel.UnmarshalText([]byte(cfg.level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.level, err)
	}

	// 2. 配置编码器
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = cfg.timeEncoder
	encoderConfig.StacktraceKey = ""

	// 3. 构建写入器
	var cores []zapcore.Core
	if cfg.filename != "" {
		// 文件输出（带轮转）
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.filename,
				MaxSize:    10, // MB
				MaxBackups: 7,
				MaxAge:     30, // days
				Compress:   true,
			}),
			logLevel,
		)
		cores = append(cores, fileCore)
	}

	// 4. 控制台输出
	switch cfg.encoding {
	case "console":
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(cfg.output),
			logLevel,
		))
	case "json":
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(cfg.output),
			logLevel,
		))
	default:
		return nil, nil, fmt.Errorf("invalid log encoding %q", cfg.encoding)
	}

	// 5. 多输出合并, 构建 logger
	zapLogger := zap.New(zapcore.NewTee(cores...))
	if cfg.enableCaller {
		zapLogger = zapLogger.WithOptions(zap.AddCaller())
	}
	if cfg.serviceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.serviceName))
	}

	sugar := zapLogger.Sugar()
	log = sugar

	return sugar, func() {
		_ = sugar.Sync()
	}, nil
}

func GetLogger() *zap.SugaredLogger {
	return log
}
