package logger

import "log/slog"

// Interface is what the use cases and infrastructure log with. Only the
// keyed variants exist; every call site carries structured fields.
type Interface interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
	With(args ...any) Interface
}

type slogAdapter struct {
	logger *slog.Logger
}

// NewLogger wraps the configured global logger. Before Init has run it
// falls back to the default console handler.
func NewLogger() Interface {
	return &slogAdapter{logger: Get()}
}

func (l *slogAdapter) Debugw(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogAdapter) Infow(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogAdapter) Warnw(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogAdapter) Errorw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Fatalw logs at error level and panics; startup code that cannot
// continue is the only caller.
func (l *slogAdapter) Fatalw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
	panic("fatal error")
}

func (l *slogAdapter) With(args ...any) Interface {
	return &slogAdapter{logger: l.logger.With(args...)}
}
