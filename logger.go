package kinetic

import (
	"github.com/sirupsen/logrus"
)

// Logger is the leveled logging sink the engine consumes.
// Levels follow the source's numbering: 0 is error, 3 is trace. The
// engine never reaches for a package-global logger; one is always
// threaded in through Config (WithLogger), defaulting to a no-op sink.
type Logger interface {
	Errorf(format string, args ...any) // level 0
	Warnf(format string, args ...any)  // level 1
	Infof(format string, args ...any)  // level 2
	Tracef(format string, args ...any) // level 3
}

// nopLogger discards everything. It is the default so the library is
// silent unless a caller opts in via WithLogger.
type nopLogger struct{}

// NewNopLogger returns a Logger that discards all output.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Tracef(string, ...any) {}

// logrusLogger adapts a *logrus.Entry to the Logger interface. logrus is
// the structured-logging library the estuary-flow example ships with
// project-wide; this is the library's suggested default for callers who
// want formatted, leveled output without writing their own adapter.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps logger (or logrus.StandardLogger() if nil) as a
// Logger. Trace-level engine messages are emitted at logrus.TraceLevel.
func NewLogrusLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &logrusLogger{entry: logrus.NewEntry(logger)}
}

func (l *logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Tracef(format string, args ...any) { l.entry.Tracef(format, args...) }
