package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mangohow/fmpmcp/config"
	"github.com/mangohow/fmpmcp/fmp"
	"github.com/mangohow/fmpmcp/gmcp"
	"github.com/mangohow/fmpmcp/llog"
)

const (
	serverName = "fmp-mcp-server"
	version    = "1.1.0"
)

type options struct {
	envFile     string
	logLevel    string
	logFile     string
	logEncoding string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "fmpmcp",
		Short:         "fmpmcp is a Model Context Protocol server for the Financial Modeling Prep API",
		Long:          "fmpmcp serves Financial Modeling Prep quotes, fundamentals, news, technical indicators and calendars as MCP tools over stdio",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", "", "load environment variables from this file (default .env if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides FMP_LOG_LEVEL)")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this rotating file (overrides FMP_LOG_FILE)")
	flags.StringVar(&opts.logEncoding, "log-encoding", "", "stderr log encoding: console or json (overrides FMP_LOG_ENCODING)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)

	logger, sync, err := llog.InitLogger(
		llog.WithLevel(cfg.LogLevel),
		llog.WithEncoding(cfg.LogEncoding),
		llog.WithFilename(cfg.LogFile),
		llog.WithServiceName(serverName),
		llog.WithOutput(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}
	defer sync()

	client, err := fmp.NewClient(cfg.APIKey,
		fmp.WithBaseURL(cfg.BaseURL),
		fmp.WithTimeout(cfg.HTTPTimeout),
	)
	if err != nil {
		return err
	}

	dispatcher := fmp.NewDispatcher(client)

	server := gmcp.NewMCPServer(
		gmcp.WithServerInfo(serverName, version),
		gmcp.WithLogger(logger),
		gmcp.WithMaxWorkers(cfg.MaxWorkers),
		gmcp.WithMiddleware(
			llog.LoggerInjectMiddleware(),
			llog.RequestLoggingMiddleware(),
		),
	)
	server.RegisterTool(dispatcher.Tools()...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("FMP MCP Server running on stdio",
		"version", version,
		"baseURL", cfg.BaseURL,
		"tools", len(dispatcher.Registry().Operations()),
	)

	return server.Start(ctx)
}

// applyFlags 命令行参数优先于环境变量
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("log-encoding") {
		cfg.LogEncoding = opts.logEncoding
	}
}
