// Package logging builds the zap loggers used by the CLI, the TUI and the
// tutor server. Every logger it returns scrubs credentials from fields.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how logs are written. With neither File nor
// Writer nor Stderr set, New returns a no-op logger; the TUI owns the
// terminal and must not be written to.
type Options struct {
	Level  string // debug, info, warn, error; default info
	File   string
	Stderr bool
	JSON   bool

	// Writer overrides File and Stderr.
	Writer io.Writer

	// HashSalt is mixed into hashed identifiers such as session ids.
	HashSalt string
}

func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	wrap := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return newRedactingCore(c, opts.HashSalt)
	})

	if opts.Writer != nil {
		core := zapcore.NewCore(encoder(opts.JSON), zapcore.AddSync(opts.Writer), level)
		return zap.New(core, wrap), nil
	}

	var outputs []string
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		outputs = []string{opts.File}
	case opts.Stderr:
		outputs = []string{"stderr"}
	default:
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if !opts.JSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(wrap)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func encoder(json bool) zapcore.Encoder {
	if json {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(ec)
}
