package rabin

import "log"

// Logger is the single injectable diagnostic sink spec.md §6 requires
// in place of direct standard-output writes from the core. No logging
// library appears anywhere in the retrieved example corpus, so this
// interface is intentionally minimal stdlib-shaped surface rather than
// an adapter over a third-party logger — see DESIGN.md.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NopLogger discards everything. It is the default for every pipeline
// function so that callers who never configure a Logger see no output,
// matching spec.md's "no direct standard-output writes" requirement.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Warnf(string, ...interface{})  {}

// StdLogger adapts the standard library's *log.Logger to the Logger
// interface, the way the teacher's CLI reports errors via
// fmt.Fprintln(os.Stderr, ...) rather than a structured logging
// framework.
type StdLogger struct {
	*log.Logger
	RunID string
}

func (l StdLogger) Debugf(format string, args ...interface{}) {
	l.Printf("debug ["+l.RunID+"] "+format, args...)
}

func (l StdLogger) Warnf(format string, args ...interface{}) {
	l.Printf("warn ["+l.RunID+"] "+format, args...)
}
