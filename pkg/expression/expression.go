// Package expression provides the Expression value: a parsed-but-not-yet-
// compiled expression, which may itself carry a parse error to be reported
// lazily when the expression is actually used.
package expression

import (
	"fmt"

	"github.com/sixpack-lang/sixpack/pkg/ast"
	"github.com/sixpack-lang/sixpack/pkg/source"
)

// Expression wraps either a successfully parsed AST root, or the parse error
// that prevented one from being built. A caller queries IsOK/Error/
// ErrorPosition before using it; feeding an errored Expression into lowering
// raises a compile failure instead (see pkg/compiler).
type Expression struct {
	input string
	root  ast.Node
	err   *source.SyntaxError
}

// OK constructs a successfully parsed expression.
func OK(input string, root ast.Node) Expression {
	return Expression{input: input, root: root}
}

// Failed constructs an expression that carries a parse error.
func Failed(input string, err *source.SyntaxError) Expression {
	return Expression{input: input, err: err}
}

// Input returns the original source text of this expression.
func (e Expression) Input() string { return e.input }

// IsOK reports whether parsing succeeded.
func (e Expression) IsOK() bool { return e.err == nil }

// Error returns the parse error message, or "" if parsing succeeded.
func (e Expression) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Message()
}

// ErrorPosition returns the byte position of the parse error, or -1 if
// parsing succeeded.
func (e Expression) ErrorPosition() source.Position {
	if e.err == nil {
		return -1
	}

	return e.err.Span().Start()
}

// SyntaxError returns the underlying parse error, or nil if parsing
// succeeded.
func (e Expression) SyntaxError() *source.SyntaxError { return e.err }

// Root returns the parsed AST root. Panics if !IsOK(); callers are expected
// to check IsOK (or go through Visit, which reports the error instead).
func (e Expression) Root() ast.Node {
	if e.err != nil {
		panic("expression.Root called on a failed expression")
	}

	return e.root
}

// Visit walks the AST with the given visitor, or returns the stored parse
// error if this expression failed to parse.
func (e Expression) Visit(v ast.Visitor) error {
	if e.err != nil {
		return e.err
	}

	e.root.Accept(v)

	return nil
}

// String implements fmt.Stringer, used only in diagnostics.
func (e Expression) String() string {
	if e.err != nil {
		return fmt.Sprintf("<invalid: %s>", e.err.Message())
	}

	return e.input
}

// Symbol is a named, reusable expression: binding it under a name lets
// later expressions reference it by that name, with the referenced AST
// substituted in place (see graphBuilder in pkg/compiler).
type Symbol struct {
	name       string
	Expression Expression
}

// NewSymbol constructs an expression symbol.
func NewSymbol(name string, expr Expression) *Symbol {
	return &Symbol{name: name, Expression: expr}
}

// Name implements symbol.Symbol.
func (s *Symbol) Name() string { return s.name }
