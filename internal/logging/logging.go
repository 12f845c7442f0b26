// Package logging builds the zap logger used for diagnostics on stderr.
package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a console logger writing to stderr. level is a zap level
// name; when empty, LOG_LEVEL is consulted, then info.
func NewLogger(level string) (*zap.Logger, error) {
	return ParseLevel(level).build()
}

// Level wraps a parsed zap level.
type Level struct{ zapcore.Level }

// ParseLevel resolves level, falling back to LOG_LEVEL and then info.
func ParseLevel(level string) Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if s == "" {
		s = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	}
	var lvl zapcore.Level
	if err := lvl.Set(s); err != nil || s == "" {
		lvl = zapcore.InfoLevel
	}
	return Level{lvl}
}

func (l Level) build() (*zap.Logger, error) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(l.Level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.Format("15:04:05.000")) },
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}
