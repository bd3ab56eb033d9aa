package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config selects and tunes a logging backend.
type Config struct {
	Backend string // slog, zap
	Level   string // debug, info, warn, error
	Format  string // text (console), json
	Output  string // stderr, stdout, or file path
}

// New builds a Logger for cfg. The returned closer flushes and releases the
// output; it is never nil.
func New(cfg Config) (Logger, func() error, error) {
	w, closeOutput, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(cfg.Backend) {
	case BackendZap:
		zl := zap.New(zapcore.NewCore(zapEncoder(cfg.Format), zapcore.AddSync(w), zapLevel(cfg.Level)))
		l := NewZapLogger(zl)
		return l, func() error {
			_ = l.Sync()
			return closeOutput()
		}, nil
	default:
		opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level)}
		var h slog.Handler
		if strings.EqualFold(cfg.Format, "json") {
			h = slog.NewJSONHandler(w, opts)
		} else {
			h = slog.NewTextHandler(w, opts)
		}
		return NewSlogLogger(slog.New(h)), closeOutput, nil
	}
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, noop, nil
	case "stdout":
		return os.Stdout, noop, nil
	}
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func zapEncoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}
