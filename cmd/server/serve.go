package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/theapemachine/mcp-server-deepl/pkg/cache"
	"github.com/theapemachine/mcp-server-deepl/pkg/config"
	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
	"github.com/theapemachine/mcp-server-deepl/pkg/metrics"
	"github.com/theapemachine/mcp-server-deepl/pkg/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the DeepL tools over stdio (default)",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()

	// stdout carries the MCP stream, so every log line goes to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "deepl-mcp",
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
	})

	stdlog.SetFlags(0)
	stdlog.SetOutput(&logWriter{logger: logger})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, logger.WithPrefix("metrics")); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	mcpServer := server.NewMCPServer(
		"DeepL MCP Server",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithLogging(),
	)

	tools.NewDispatcher(provider, logger.WithPrefix("tools")).Register(mcpServer)

	logger.Info("server started, waiting for requests", "tools", len(tools.Definitions()), "cache", cfg.Cache.Backend)

	if err := server.ServeStdio(mcpServer); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}

	logger.Info("server shutdown complete")

	return nil
}

// buildProvider creates the DeepL client and wraps it in the configured
// translation cache. The returned func releases the cache connection.
func buildProvider(ctx context.Context, cfg *config.Config, logger *log.Logger) (tools.Provider, func(), error) {
	cred, err := deepl.NewCredential(cfg.DeepL.APIKey)
	if err != nil {
		return nil, nil, err
	}

	client := deepl.NewClient(
		cred,
		deepl.WithBaseURL(cfg.DeepL.APIURL),
		deepl.WithTimeout(cfg.DeepL.Timeout),
		deepl.WithLogger(logger.WithPrefix("deepl")),
		deepl.WithObserver(metrics.ObserveProviderRequest),
	)

	logger.Debug("deepl client ready", "key", cred, "free", cred.Free())

	noop := func() {}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		store := cache.NewMemoryStore(cfg.Cache.TTL)
		return cache.NewProvider(client, store, logger.WithPrefix("cache")), noop, nil
	case config.CacheRedis:
		store, err := cache.NewRedisStore(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}

		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing redis", "error", err)
			}
		}

		return cache.NewProvider(client, store, logger.WithPrefix("cache")), closeStore, nil
	default:
		return client, noop, nil
	}
}

// logWriter forwards the standard logger, used by the MCP transport, to the
// structured logger.
type logWriter struct {
	logger *log.Logger
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	line := strings.TrimSpace(string(bytes))

	// Hosts probe for prompts on every session.
	if line == "" || strings.Contains(line, "Prompts not supported") {
		return len(bytes), nil
	}

	w.logger.Debug(line)

	return len(bytes), nil
}
