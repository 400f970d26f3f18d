package logger

import (
	"log/slog"

	"alpha_radar/internal/app/port"
)

// slogAdapter implements port.Logger on top of a *slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the process logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewNamedAdapter returns a port.Logger that tags every entry with component=name.
func NewNamedAdapter(name string) port.Logger {
	return &slogAdapter{l: current().With("component", name)}
}

// NewAdapterFor wraps an explicit slog logger, mainly for tests.
func NewAdapterFor(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

func (a *slogAdapter) logger() *slog.Logger {
	if a.l != nil {
		return a.l
	}
	return current()
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger().Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { a.logger().Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger().Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger().Error(msg, args...) }
