// Package dlogger exposes a simple zap logger, with log levels
package dlogger

import (
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelWarn sets the log level to warn
	LogLevelWarn = "warn"

	// LogLevelError sets the log level to error
	LogLevelError = "error"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"

	// LogLevelFlag is the name of the command line flag registered by AddFlags
	LogLevelFlag = "loglevel"
)

// GetLogger returns a zap logger with the specified level
func GetLogger(logLevel string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.Encoding = "console"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.DisableStacktrace = lvl > zapcore.DebugLevel
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel string) *zap.Logger {
	l, err := GetLogger(logLevel)
	if err != nil {
		panic(err)
	}
	return l
}

// Category returns a logger named after a component, e.g. "catalog".
// A nil base yields a no-op logger.
func Category(base *zap.Logger, name string) *zap.Logger {
	if base == nil {
		return zap.NewNop().Named(name)
	}
	return base.Named(name)
}

// AddFlags registers the log level flag on a flag set and binds it to target.
func AddFlags(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, LogLevelFlag, LogLevelError,
		"Log level: one of none, debug, info, warn, error")
}
