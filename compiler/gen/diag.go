package gen

import (
	"context"
	"log/slog"
)

// Severity of a diagnostic.
type Severity uint8

const (
	// SeverityRecoverable diagnostics let the compile finish; the result is
	// still returned.
	SeverityRecoverable Severity = iota
	// SeverityFatal diagnostics abort the compile.
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "error"
}

// Diagnostic is a message about the input graph, attributed to a location.
type Diagnostic struct {
	Severity Severity
	// Location is the qualified name of the offending node.
	Location string
	Kind     MessageKind
	Args     []any
}

// Message returns the formatted message text.
func (d Diagnostic) Message() string { return d.Kind.Format(d.Args...) }

func (d Diagnostic) String() string {
	if d.Location == "" {
		return d.Severity.String() + ": " + d.Message()
	}
	return d.Location + ": " + d.Severity.String() + ": " + d.Message()
}

// Sink receives diagnostics as they are reported.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Collector is a Sink that records diagnostics in report order.
type Collector struct {
	diags []Diagnostic
}

// Report records d.
func (c *Collector) Report(d Diagnostic) { c.diags = append(c.diags, d) }

// Diagnostics returns all recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic { return c.diags }

// HasErrors reports whether anything was recorded.
func (c *Collector) HasErrors() bool { return len(c.diags) > 0 }

// Fatal returns the first fatal diagnostic.
func (c *Collector) Fatal() (Diagnostic, bool) {
	for _, d := range c.diags {
		if d.Severity == SeverityFatal {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Count returns the number of diagnostics of the given kind.
func (c *Collector) Count(kind MessageKind) int {
	n := 0
	for _, d := range c.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Err returns nil when nothing was recorded, a *DiagnosticError for a fatal
// diagnostic, and a *CompileError otherwise.
func (c *Collector) Err() error {
	if d, ok := c.Fatal(); ok {
		return &DiagnosticError{Diagnostic: d}
	}
	if len(c.diags) == 0 {
		return nil
	}
	return &CompileError{Diagnostics: append([]Diagnostic(nil), c.diags...)}
}

// LogSink writes diagnostics to a structured logger, recoverable ones at
// warn level and fatal ones at error level.
type LogSink struct {
	Logger *slog.Logger
}

// Report logs d.
func (s LogSink) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelWarn
	if d.Severity == SeverityFatal {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, d.Message(),
		slog.String("location", d.Location),
		slog.String("kind", string(d.Kind)),
	)
}

// MultiSink fans a diagnostic out to every non-nil sink in order.
func MultiSink(sinks ...Sink) Sink {
	var all []Sink
	for _, s := range sinks {
		if s != nil {
			all = append(all, s)
		}
	}
	return SinkFunc(func(d Diagnostic) {
		for _, s := range all {
			s.Report(d)
		}
	})
}
