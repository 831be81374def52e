package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yildizm/speedx/internal/config"
	"github.com/yildizm/speedx/internal/logger"
	"github.com/yildizm/speedx/internal/metrics"
	"github.com/yildizm/speedx/internal/notify"
	"github.com/yildizm/speedx/internal/orchestrator"
	"github.com/yildizm/speedx/internal/service"
)

// newSession wires a service client, a fresh metrics store and sink into an
// orchestrator configured from cfg
func newSession(cfg *config.Config, lg *logger.Logger, sink notify.Sink) (*orchestrator.Orchestrator, error) {
	client, err := service.New(cfg.Backend.BaseURL,
		service.WithTimeout(cfg.Backend.Timeout),
		service.WithUserAgent(userAgent()),
		service.WithLogger(lg.WithComponent("service")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service client: %w", err)
	}

	return orchestrator.New(client, metrics.NewStore(), sink,
		orchestrator.WithLogger(lg.WithComponent("orchestrator")),
		orchestrator.WithNotifyDuration(cfg.UI.ToastDuration),
		orchestrator.WithStaleFence(cfg.Behavior.DiscardStale),
	), nil
}

// newLogger creates the command logger. Debug and info lines follow
// --verbose and output.verbose.
func newLogger() *logger.Logger {
	return logger.NewWithCallback("speedx", isVerbose)
}

// openLogFile points lg at path, creating parent directories. An empty path
// discards all output. The returned cleanup closes the file.
func openLogFile(lg *logger.Logger, path string) (func(), error) {
	if path == "" {
		lg.SetOutput(io.Discard)
		return func() {}, nil
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	// #nosec G304 - path comes from the user's own configuration
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	lg.SetOutput(file)

	return func() {
		lg.SetOutput(io.Discard)
		_ = file.Close()
	}, nil
}
