// Package diag collects structured diagnostics produced while lexing,
// parsing, or rewriting a source file. The lexer and parser never call
// log.Printf for user-facing errors; they append to a Log instead, and the
// caller decides how (or whether) to render it. A lexical error is
// recorded first and then aborts lexing with a panic that the parser
// facade recovers, so it reaches the caller as a returned error.
package diag

import "fmt"

type MsgKind uint8

const (
	ErrorKind MsgKind = iota
	Warning
	Debug
)

func (k MsgKind) String() string {
	switch k {
	case ErrorKind:
		return "error"
	case Warning:
		return "warning"
	default:
		return "debug"
	}
}

// Loc is a byte offset into the source text being diagnosed.
type Loc struct {
	Start int
}

// Msg is a single diagnostic record.
type Msg struct {
	Kind MsgKind
	Loc  Loc
	Text string
}

// Log accumulates Msg records for a single parse/rewrite operation.
type Log struct {
	File string
	Msgs []Msg
}

func NewLog(file string) *Log {
	return &Log{File: file}
}

func (l *Log) AddError(loc Loc, text string) {
	l.Msgs = append(l.Msgs, Msg{Kind: ErrorKind, Loc: loc, Text: text})
}

func (l *Log) AddErrorf(loc Loc, format string, args ...interface{}) {
	l.AddError(loc, fmt.Sprintf(format, args...))
}

func (l *Log) AddWarning(loc Loc, text string) {
	l.Msgs = append(l.Msgs, Msg{Kind: Warning, Loc: loc, Text: text})
}

func (l *Log) HasErrors() bool {
	for _, m := range l.Msgs {
		if m.Kind == ErrorKind {
			return true
		}
	}
	return false
}

// FirstError returns the first recorded error, wrapped as a Go error, or
// nil if the log has no errors.
func (l *Log) FirstError() error {
	for _, m := range l.Msgs {
		if m.Kind == ErrorKind {
			return &Error{File: l.File, Msg: m}
		}
	}
	return nil
}

// Error is the error type surfaced to callers of the parser facade. The
// pipeline does not attempt any recovery from a parse error: it is
// surfaced unchanged to the caller of niu.Minify.
type Error struct {
	File string
	Msg  Msg
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("offset %d: %s", e.Msg.Loc.Start, e.Msg.Text)
	}
	return fmt.Sprintf("%s: offset %d: %s", e.File, e.Msg.Loc.Start, e.Msg.Text)
}

// InternalError marks a should-never-happen state inside a rewrite pass,
// for example a hoist placeholder that no longer resolves to a binding.
// These are programmer errors, not user errors, and are raised with
// panic rather than returned.
type InternalError struct {
	Msg string
}

func (e InternalError) Error() string {
	return "internal error: " + e.Msg
}

func InternalErrorf(format string, args ...interface{}) InternalError {
	return InternalError{Msg: fmt.Sprintf(format, args...)}
}
