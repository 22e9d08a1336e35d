// Package source provides positions, spans and syntax errors shared across
// the lexer, parsers and compiler.
package source

import "fmt"

// Position is a single byte offset into a source string.
type Position = int

// Span represents a contiguous slice of the original string, retaining
// physical indices rather than the substring itself so that diagnostics can
// recover context (e.g. the enclosing line) on demand.
type Span struct {
	start Position
	end   Position
}

// NewSpan constructs a span over [start, end), checking that it is not
// inverted.
func NewSpan(start, end Position) Span {
	if start > end {
		panic("invalid span: start after end")
	}

	return Span{start, end}
}

// Start returns the first byte of this span.
func (s Span) Start() Position { return s.start }

// End returns one past the last byte of this span.
func (s Span) End() Position { return s.end }

// Length returns the number of bytes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Merge returns the smallest span enclosing both s and other.
func (s Span) Merge(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}

	end := s.end
	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

// SyntaxError is a parse failure carrying a message and the span at which it
// occurred. Translating a sub-parse's span into whole-script coordinates is
// just arithmetic on Start/End, done by the script parser.
type SyntaxError struct {
	span Span
	msg  string
}

// NewSyntaxError constructs a syntax error at the given span.
func NewSyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{span, msg}
}

// Span returns the span at which the error was reported.
func (e *SyntaxError) Span() Span { return e.span }

// Message returns the human-readable description of the failure.
func (e *SyntaxError) Message() string { return e.msg }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.span.start, e.span.end, e.msg)
}

// Offset translates this error into the coordinate space of an enclosing
// string, where this error's own text began at byte offset base within it.
func (e *SyntaxError) Offset(base int) *SyntaxError {
	return &SyntaxError{Span{e.span.start + base, e.span.end + base}, e.msg}
}
