package log

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"elevate/pkg/errors"
)

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.emit(z.l.Debug(), fields, msg) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.emit(z.l.Info(), fields, msg) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.emit(z.l.Warn(), fields, msg) }

func (z *zerologLogger) Error(msg string, fields ...any) {
	ev := z.l.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	z.emit(ev, fields, msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fieldKey(fields[i]), fields[i+1])
	}
	return &zerologLogger{l: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.l.GetLevel() && toZerologLevel(level) >= zerolog.GlobalLevel()
}

func (z *zerologLogger) emit(ev *zerolog.Event, fields []any, msg string) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fieldKey(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case zerolog.LogObjectMarshaler:
			ev = ev.Object(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	// Odd trailing field is dropped rather than panicking mid-workflow.
	ev.Msg(msg)
}

func fieldKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologProvider is the default LoggerProvider.
type zerologProvider struct {
	root zerolog.Logger
}

func (p *zerologProvider) GetLogger() Logger {
	return &zerologLogger{l: p.root}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{l: p.root.With().Str(ComponentKey, name).Logger()}
}

func (p *zerologProvider) SetLevel(level Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

var (
	providerOnce    sync.Once
	defaultProvider LoggerProvider
)

func provider() LoggerProvider {
	providerOnce.Do(func() {
		if defaultProvider == nil {
			root := zerolog.New(os.Stderr).With().Timestamp().Logger()
			defaultProvider = &zerologProvider{root: root}
		}
		// Route library warnings through structured logging.
		warnLogger := defaultProvider.GetLoggerWithName("warnings")
		errors.SetZerologWarnFunc(func(w error) {
			warnLogger.Warn(w.Error(), "warning", w)
		})
	})
	return defaultProvider
}

// SetProvider replaces the default provider. Must be called before the first
// GetLogger to take effect; intended for tests.
func SetProvider(p LoggerProvider) {
	defaultProvider = p
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return provider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return provider().GetLoggerWithName(name)
}

// SetLevel sets the minimum level for the default provider.
func SetLevel(level Level) {
	provider().SetLevel(level)
}

// ToLogLevel parses a level name as used by CLI flags.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
