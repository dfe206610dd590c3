package main

import (
	"io"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/sagarc03/lakegate/config"
)

// logsToStderr marks commands whose stdout carries machine-readable output.
const logsToStderr = "lakegate/logs-to-stderr"

// logOutput returns where cmd's logs go: stdout unless the command is
// annotated with logsToStderr.
func logOutput(cmd *cobra.Command) io.Writer {
	if _, ok := cmd.Annotations[logsToStderr]; ok {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

func setupLogging(cfg *config.Config, w io.Writer) {
	slog.SetDefault(slog.New(newLogHandler(cfg, w)))

	log.SetFlags(0)
	log.SetOutput(
		slog.NewLogLogger(
			slog.Default().Handler(),
			slog.LevelInfo,
		).Writer(),
	)
}

func newLogHandler(cfg *config.Config, w io.Writer) slog.Handler {
	isProd := cfg.IsProduction()

	levelStr := cfg.Log.Level
	if levelStr == "" {
		if isProd {
			levelStr = "info"
		} else {
			levelStr = "debug"
		}
	}
	level := parseLevel(levelStr)

	if isProd {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: false,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  true,
		TimeFormat: "15:04:05.000",
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
