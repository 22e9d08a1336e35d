// Package ast defines the abstract syntax tree produced by the expression
// parser, and the visitor interface external tools (dumps) use to walk it.
package ast

import (
	"github.com/sixpack-lang/sixpack/pkg/source"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// Node is the common interface of every AST node. Every node carries two
// spans: Inner (the token range naming the node itself, e.g. the operator
// character) and Outer (the full span including children and enclosing
// brackets), used for diagnostics.
type Node interface {
	Inner() source.Span
	Outer() source.Span
	Accept(v Visitor)
}

// base is embedded by every concrete node to hold the two spans.
type base struct {
	inner source.Span
	outer source.Span
}

// Inner implements Node.
func (b *base) Inner() source.Span { return b.inner }

// Outer implements Node.
func (b *base) Outer() source.Span { return b.outer }

// SetSpans fixes the inner/outer spans of a node once it is fully parsed.
func SetSpans(n Node, inner, outer source.Span) {
	switch t := n.(type) {
	case *Literal:
		t.inner, t.outer = inner, outer
	case *Value:
		t.inner, t.outer = inner, outer
	case *UnaryFunction:
		t.inner, t.outer = inner, outer
	case *UnaryOperator:
		t.inner, t.outer = inner, outer
	case *BinaryOperator:
		t.inner, t.outer = inner, outer
	}
}

// Literal is a numeric literal, e.g. "3.14".
type Literal struct {
	base
	Value float64
}

// NewLiteral constructs a literal node.
func NewLiteral(value float64) *Literal { return &Literal{Value: value} }

// Accept implements Node.
func (n *Literal) Accept(v Visitor) { v.VisitLiteral(n) }

// Value is a reference to a bound value symbol (constant, parameter,
// variable or named expression).
type Value struct {
	base
	Symbol symbol.Symbol
}

// NewValue constructs a value node.
func NewValue(sym symbol.Symbol) *Value { return &Value{Symbol: sym} }

// Accept implements Node.
func (n *Value) Accept(v Visitor) { v.VisitValue(n) }

// UnaryFunction is a call to a named unary function, e.g. "sin(x)".
type UnaryFunction struct {
	base
	Function *symbol.FunctionSymbol
	Argument Node
}

// NewUnaryFunction constructs a unary function call node.
func NewUnaryFunction(fn *symbol.FunctionSymbol, argument Node) *UnaryFunction {
	return &UnaryFunction{Function: fn, Argument: argument}
}

// Accept implements Node.
func (n *UnaryFunction) Accept(v Visitor) { v.VisitUnaryFunction(n) }

// UnaryOperatorType distinguishes prefix '+' from prefix '-'.
type UnaryOperatorType uint8

const (
	// Plus is the (no-op) prefix plus operator.
	Plus UnaryOperatorType = iota
	// Minus is the prefix negation operator.
	Minus
)

// UnaryOperator is a prefix '+' or '-'.
type UnaryOperator struct {
	base
	Type    UnaryOperatorType
	Operand Node
}

// NewUnaryOperator constructs a unary operator node.
func NewUnaryOperator(t UnaryOperatorType, operand Node) *UnaryOperator {
	return &UnaryOperator{Type: t, Operand: operand}
}

// Accept implements Node.
func (n *UnaryOperator) Accept(v Visitor) { v.VisitUnaryOperator(n) }

// BinaryOperatorType distinguishes the five binary operators.
type BinaryOperatorType uint8

const (
	// BinPlus is '+'.
	BinPlus BinaryOperatorType = iota
	// BinMinus is '-'.
	BinMinus
	// BinAsterisk is '*'.
	BinAsterisk
	// BinSlash is '/'.
	BinSlash
	// BinCaret is '^'.
	BinCaret
)

// BinaryOperator is a binary arithmetic operator.
type BinaryOperator struct {
	base
	Type  BinaryOperatorType
	Left  Node
	Right Node
}

// NewBinaryOperator constructs a binary operator node.
func NewBinaryOperator(t BinaryOperatorType, left, right Node) *BinaryOperator {
	return &BinaryOperator{Type: t, Left: left, Right: right}
}

// Accept implements Node.
func (n *BinaryOperator) Accept(v Visitor) { v.VisitBinaryOperator(n) }

// Visitor is the external dispatch interface over AST nodes: one method per
// node variant, plus nothing else — callers that don't care about a
// particular variant simply give it a body that recurses into children or is
// a no-op, since there is no dynamic "catch-all" dispatch needed in Go the
// way the C++ Visitor base class needed virtual fallthrough.
type Visitor interface {
	VisitLiteral(n *Literal)
	VisitValue(n *Value)
	VisitUnaryFunction(n *UnaryFunction)
	VisitUnaryOperator(n *UnaryOperator)
	VisitBinaryOperator(n *BinaryOperator)
}
