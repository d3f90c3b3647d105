package jsonk

import "github.com/sirupsen/logrus"

// Logger is the diagnostic-output collaborator spec.md §6 treats as external
// to the core ("a way to emit diagnostic messages (string + severity)"). The
// core never picks a sink for itself — it calls through this interface the
// same way the teacher's middleware/logging package accepts a caller-supplied
// *slog.Logger rather than baking one in. A Parser or Patcher left with a
// nil Logger falls back to defaultLogger, so diagnostics are opt-in rather
// than required wiring.
type Logger interface {
	Warnf(format string, args ...any)
}

// noopLogger discards every message; it is the default when no Logger is
// configured, so the core never depends on a particular log sink existing.
type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}

// LogrusLogger adapts a *logrus.Logger (or logrus.StandardLogger()) to
// Logger. A privileged host that wants rate-limited, leveled diagnostics can
// pass one of these to a Parser or Patcher; nothing in the core requires it.
type LogrusLogger struct {
	Entry *logrus.Logger
}

func (l LogrusLogger) Warnf(format string, args ...any) {
	if l.Entry == nil {
		return
	}
	l.Entry.Warnf(format, args...)
}

var defaultLogger Logger = noopLogger{}
