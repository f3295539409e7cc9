package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dragcart/internal/journal"

	"github.com/spf13/cobra"
)

func parseLevel(s string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// cliLogger logs to stderr for scriptable commands. The returned func closes
// the log file when --log-file is set.
func cliLogger(cmd *cobra.Command, app *App) (*slog.Logger, func(), error) {
	level := parseLevel(app.LogLevel, slog.LevelWarn)
	if app.LogFile == "" {
		h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
		return slog.New(h), func() {}, nil
	}
	f, err := openLogFile(app.LogFile)
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { _ = f.Close() }, nil
}

func openJournal(ctx context.Context, app *App, logger *slog.Logger) (*journal.Journal, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	j, err := journal.Open(ctx, app.Journal)
	if err != nil {
		return nil, err
	}
	logger.Debug("journal opened", "path", j.Path(), "session", j.SessionID())
	return j, nil
}
