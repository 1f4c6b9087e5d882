// Package rlog provides a minimal leveled logger for the configuration
// resolver and its CLI.
//
// The teacher repo has no dedicated logging package of its own, but the
// retrieved pack's own logging choice for this concern is
// go.uber.org/zap (srediag-srediag, uber-kraken); Logger wraps a
// *zap.SugaredLogger rather than hand-rolling one on log.Logger, so this
// package stays a thin adapter between the factory/CLI's small
// Debug/Info/Warn surface and zap's structured core.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package rlog

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the verbosity threshold.
type Level int

const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

// Logger is a small leveled wrapper around a zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New creates a Logger writing to w at the given level.
func New(w io.Writer, level Level) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level.zapLevel())
	return &Logger{sugar: zap.New(core).Sugar()}
}

// Default creates a Logger writing to stderr at LevelWarn.
func Default() *Logger {
	return New(os.Stderr, LevelWarn)
}

// Nop creates a Logger that discards everything, for use in tests and
// library callers that don't want resolver tracing.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Debug logs fine-grained resolution tracing; emitted only at LevelDebug.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs coarse-grained resolution milestones (e.g. which file won a
// directory probe).
func (l *Logger) Info(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs recoverable problems (e.g. a resolver settings file that failed
// to load and was replaced by defaults).
func (l *Logger) Warn(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}
