package compiler

import (
	"fmt"

	"github.com/sixpack-lang/sixpack/pkg/asg"
	"github.com/sixpack-lang/sixpack/pkg/ast"
	"github.com/sixpack-lang/sixpack/pkg/expression"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// graphBuilder lowers a set of named output expressions into a single ASG,
// one Sequence rooting every output. It implements ast.Visitor and drives
// itself with an explicit term stack rather than returning values from each
// Visit method, since ast.Visitor's methods are void — the same shape the
// original's GraphBuilder uses with its own mTerms stack.
type graphBuilder struct {
	terms   []asg.Term
	outputs []*asg.Output
}

// nestedFailure wraps a parse error surfacing from a named sub-expression
// visited while lowering another expression (ast.Visitor's methods return
// nothing, so there's no other way to carry the error back out of the
// recursive n.Root.Accept(g) call chain) for addOutput to recover and
// report as a normal error.
type nestedFailure struct{ err error }

// addOutput lowers expr and binds it as an output named name.
func (g *graphBuilder) addOutput(name string, expr expression.Expression) (err error) {
	if len(g.terms) != 0 {
		panic("graphBuilder: addOutput called with a non-empty term stack")
	}

	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(nestedFailure); ok {
				err = f.err

				return
			}

			panic(r)
		}
	}()

	if visitErr := expr.Visit(g); visitErr != nil {
		return visitErr
	}

	if len(g.terms) != 1 {
		panic("graphBuilder: expression lowering left an unbalanced term stack")
	}

	g.outputs = append(g.outputs, asg.NewOutput(name, g.popTerm()))

	return nil
}

// makeGraph returns the Sequence rooting every output added so far.
func (g *graphBuilder) makeGraph() asg.Term {
	terms := make([]asg.Term, len(g.outputs))
	for i, o := range g.outputs {
		terms[i] = o
	}

	return asg.NewSequence(terms...)
}

func (g *graphBuilder) pushTerm(t asg.Term) { g.terms = append(g.terms, t) }

func (g *graphBuilder) lastTerm() asg.Term { return g.terms[len(g.terms)-1] }

func (g *graphBuilder) popTerm() asg.Term {
	t := g.lastTerm()
	g.terms = g.terms[:len(g.terms)-1]

	return t
}

// VisitLiteral implements ast.Visitor.
func (g *graphBuilder) VisitLiteral(n *ast.Literal) {
	g.pushTerm(asg.NewConstant(n.Value))
	asg.SetSourceNode(g.lastTerm(), n)
}

// VisitValue implements ast.Visitor. A constant or parameter lowers to a
// Constant term (a parameter is folded at compile time, not re-read at run
// time); a variable lowers to an Input; a named expression re-visits its
// own stored AST in place, so repeated references to the same named
// sub-expression each lower their own copy (Merge later collapses any that
// turn out structurally identical).
func (g *graphBuilder) VisitValue(n *ast.Value) {
	switch s := n.Symbol.(type) {
	case *symbol.Constant:
		g.pushTerm(asg.NewConstant(s.Value))
	case *symbol.Parameter:
		g.pushTerm(asg.NewConstant(s.Value))
	case *symbol.Variable:
		g.pushTerm(asg.NewInput(s.Name()))
	case *expression.Symbol:
		if err := s.Expression.Visit(g); err != nil {
			panic(nestedFailure{err})
		}
	default:
		panic(fmt.Sprintf("graphBuilder: unhandled value symbol type %T", s))
	}

	asg.SetSourceNode(g.lastTerm(), n)
}

// VisitUnaryFunction implements ast.Visitor.
func (g *graphBuilder) VisitUnaryFunction(n *ast.UnaryFunction) {
	n.Argument.Accept(g)

	argument := g.popTerm()
	g.pushTerm(asg.NewUnaryFunction(n.Function, argument))
	asg.SetSourceNode(g.lastTerm(), n)
}

// VisitUnaryOperator implements ast.Visitor. Negation is represented as
// "-1 * x" rather than "0 - x": this shape lets Grouped fuse it directly
// into any surrounding multiplication instead of leaving a spurious
// Addition in the way.
func (g *graphBuilder) VisitUnaryOperator(n *ast.UnaryOperator) {
	n.Operand.Accept(g)

	operand := g.popTerm()

	switch n.Type {
	case ast.Plus:
		g.pushTerm(operand)
	case ast.Minus:
		g.pushTerm(asg.NewMultiplication(asg.NewConstant(-1), []asg.Term{operand}, nil))
	default:
		panic("graphBuilder: unhandled unary operator type")
	}

	asg.SetSourceNode(g.lastTerm(), n)
}

// VisitBinaryOperator implements ast.Visitor.
func (g *graphBuilder) VisitBinaryOperator(n *ast.BinaryOperator) {
	n.Left.Accept(g)
	n.Right.Accept(g)

	right := g.popTerm()
	left := g.popTerm()

	switch n.Type {
	case ast.BinPlus:
		g.pushTerm(asg.NewAddition(nil, []asg.Term{left, right}, nil))
	case ast.BinMinus:
		g.pushTerm(asg.NewAddition(nil, []asg.Term{left}, []asg.Term{right}))
	case ast.BinAsterisk:
		g.pushTerm(asg.NewMultiplication(nil, []asg.Term{left, right}, nil))
	case ast.BinSlash:
		g.pushTerm(asg.NewMultiplication(nil, []asg.Term{left}, []asg.Term{right}))
	case ast.BinCaret:
		g.pushTerm(asg.NewExponentiation(left, right))
	default:
		panic("graphBuilder: unhandled binary operator type")
	}

	asg.SetSourceNode(g.lastTerm(), n)
}
