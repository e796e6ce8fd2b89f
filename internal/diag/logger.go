// Package diag implements the front end's diagnostic sink: error and
// warning accumulation with source positions, plus the success/
// perfect-success predicates the rest of the pipeline checks to decide
// whether a compile produced anything usable.
package diag

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Position is a 1-based line and (optional) column. A zero Column means
// "no column available" and is omitted from formatted output.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Line > 0 {
		return fmt.Sprintf("%d", p.Line)
	}
	return ""
}

// NoPos marks a diagnostic that isn't tied to a specific location.
var NoPos = Position{}

// Logger is the diagnostic sink every stage of the pipeline is handed
// explicitly. There is no package-level default logger anywhere in this
// module; every constructor takes one.
type Logger interface {
	Errorf(pos Position, format string, args ...any)
	Warnf(pos Position, format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)

	Clear()
	Errors() int
	Warnings() int
	Success() bool
	PerfectSuccess() bool
}

// MockLogger counts diagnostics without printing them. It is the
// workhorse for tests that want to assert "this input produces exactly
// two errors" without caring about message text.
type MockLogger struct {
	errs, warns int
	Messages    []string // accumulated formatted text, for tests that do care
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Errorf(pos Position, format string, args ...any) {
	m.errs++
	m.Messages = append(m.Messages, formatLine(pos, "error", format, args...))
}

func (m *MockLogger) Warnf(pos Position, format string, args ...any) {
	m.warns++
	m.Messages = append(m.Messages, formatLine(pos, "warning", format, args...))
}

func (m *MockLogger) Infof(format string, args ...any)  {}
func (m *MockLogger) Debugf(format string, args ...any) {}

func (m *MockLogger) Clear() {
	m.errs, m.warns = 0, 0
	m.Messages = nil
}

func (m *MockLogger) Errors() int   { return m.errs }
func (m *MockLogger) Warnings() int { return m.warns }

func (m *MockLogger) Success() bool        { return m.errs == 0 }
func (m *MockLogger) PerfectSuccess() bool { return m.errs == 0 && m.warns == 0 }

// StructuredLogger prints formatted diagnostics to a logrus sink,
// labeled with the input file name, while still counting errors and
// warnings like MockLogger. Info and debug messages go to logrus at
// their natural levels; error and warning messages are additionally
// rendered in the single-line "<label>:<pos>: error|warning: <text>"
// format required of the compiler's own diagnostic output.
type StructuredLogger struct {
	log        *logrus.Logger
	InputLabel string
	errs, warns int
}

// NewStructuredLogger wraps an existing *logrus.Logger. Passing nil
// creates one with logrus's defaults (text formatter, stderr output).
func NewStructuredLogger(label string, log *logrus.Logger) *StructuredLogger {
	if log == nil {
		log = logrus.New()
	}
	return &StructuredLogger{log: log, InputLabel: label}
}

func (s *StructuredLogger) line(pos Position, level, text string) string {
	if ps := pos.String(); ps != "" {
		return fmt.Sprintf("%s:%s: %s: %s", s.InputLabel, ps, level, text)
	}
	return fmt.Sprintf("%s: %s: %s", s.InputLabel, level, text)
}

func (s *StructuredLogger) Errorf(pos Position, format string, args ...any) {
	s.errs++
	text := fmt.Sprintf(format, args...)
	s.log.WithFields(logrus.Fields{"input": s.InputLabel, "pos": pos.String()}).Error(text)
	fmt.Println(s.line(pos, "error", text))
}

func (s *StructuredLogger) Warnf(pos Position, format string, args ...any) {
	s.warns++
	text := fmt.Sprintf(format, args...)
	s.log.WithFields(logrus.Fields{"input": s.InputLabel, "pos": pos.String()}).Warn(text)
	fmt.Println(s.line(pos, "warning", text))
}

func (s *StructuredLogger) Infof(format string, args ...any) {
	s.log.Infof(format, args...)
}

func (s *StructuredLogger) Debugf(format string, args ...any) {
	s.log.Debugf(format, args...)
}

func (s *StructuredLogger) Clear() {
	s.errs, s.warns = 0, 0
}

func (s *StructuredLogger) Errors() int   { return s.errs }
func (s *StructuredLogger) Warnings() int { return s.warns }

func (s *StructuredLogger) Success() bool        { return s.errs == 0 }
func (s *StructuredLogger) PerfectSuccess() bool { return s.errs == 0 && s.warns == 0 }

func formatLine(pos Position, level, format string, args ...any) string {
	text := fmt.Sprintf(format, args...)
	if ps := pos.String(); ps != "" {
		return fmt.Sprintf("%s: %s: %s", ps, level, text)
	}
	return fmt.Sprintf("%s: %s", level, text)
}
