package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// base reports the caller as is. facade skips one frame so the package
// functions below attribute entries to their callers.
var (
	base   *zap.SugaredLogger
	facade *zap.SugaredLogger
)

func init() {
	SetLogger(New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))
}

// New builds a sugared zap logger. Unknown levels fall back to info.
func New(level, format string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.ToLower(format) == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, using info\n", level)
			lvl = zapcore.InfoLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}
	return l.Sugar()
}

// SetLogger replaces the package logger, used by main after config load and
// by tests that want zap's observer.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		base = l
		facade = l.Desugar().WithOptions(zap.AddCallerSkip(1)).Sugar()
	}
}

func Info(format string, v ...interface{}) {
	facade.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	facade.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	facade.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	facade.Warnf(format, v...)
}

// With returns a child logger carrying structured key/value pairs.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return base.With(keysAndValues...)
}

func Sync() {
	_ = facade.Sync()
}
