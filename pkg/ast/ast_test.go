package ast

import (
	"testing"

	"github.com/sixpack-lang/sixpack/pkg/source"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

type recordingVisitor struct {
	visited []string
}

func (v *recordingVisitor) VisitLiteral(n *Literal)             { v.visited = append(v.visited, "literal") }
func (v *recordingVisitor) VisitValue(n *Value)                 { v.visited = append(v.visited, "value") }
func (v *recordingVisitor) VisitUnaryFunction(n *UnaryFunction) { v.visited = append(v.visited, "unaryFunction") }
func (v *recordingVisitor) VisitUnaryOperator(n *UnaryOperator) { v.visited = append(v.visited, "unaryOperator") }
func (v *recordingVisitor) VisitBinaryOperator(n *BinaryOperator) {
	v.visited = append(v.visited, "binaryOperator")
}

func TestAcceptDispatchesToMatchingVisitMethod(t *testing.T) {
	nodes := []Node{
		NewLiteral(1),
		NewValue(symbol.NewVariable("x")),
		NewUnaryFunction(symbol.NewFunctionSymbol("sin", func(x float64) float64 { return x }), NewLiteral(1)),
		NewUnaryOperator(Minus, NewLiteral(1)),
		NewBinaryOperator(BinPlus, NewLiteral(1), NewLiteral(2)),
	}

	want := []string{"literal", "value", "unaryFunction", "unaryOperator", "binaryOperator"}

	v := &recordingVisitor{}
	for _, n := range nodes {
		n.Accept(v)
	}

	if len(v.visited) != len(want) {
		t.Fatalf("visited %v, want %v", v.visited, want)
	}

	for i := range want {
		if v.visited[i] != want[i] {
			t.Fatalf("visited[%d] = %q, want %q", i, v.visited[i], want[i])
		}
	}
}

func TestSetSpansUpdatesEachConcreteNodeKind(t *testing.T) {
	inner := source.NewSpan(1, 2)
	outer := source.NewSpan(0, 3)

	nodes := []Node{
		NewLiteral(1),
		NewValue(symbol.NewVariable("x")),
		NewUnaryFunction(symbol.NewFunctionSymbol("sin", func(x float64) float64 { return x }), NewLiteral(1)),
		NewUnaryOperator(Minus, NewLiteral(1)),
		NewBinaryOperator(BinPlus, NewLiteral(1), NewLiteral(2)),
	}

	for _, n := range nodes {
		SetSpans(n, inner, outer)

		if n.Inner() != inner {
			t.Fatalf("%#v: Inner() = %v, want %v", n, n.Inner(), inner)
		}

		if n.Outer() != outer {
			t.Fatalf("%#v: Outer() = %v, want %v", n, n.Outer(), outer)
		}
	}
}

func TestLiteralAndValueFields(t *testing.T) {
	lit := NewLiteral(3.5)
	if lit.Value != 3.5 {
		t.Fatalf("Value = %v, want 3.5", lit.Value)
	}

	v := symbol.NewVariable("x")
	val := NewValue(v)

	if val.Symbol != v {
		t.Fatal("Value.Symbol did not round-trip")
	}
}

func TestBinaryAndUnaryOperatorFields(t *testing.T) {
	left, right := NewLiteral(1), NewLiteral(2)
	bin := NewBinaryOperator(BinSlash, left, right)

	if bin.Type != BinSlash || bin.Left != left || bin.Right != right {
		t.Fatalf("unexpected BinaryOperator fields: %#v", bin)
	}

	operand := NewLiteral(4)
	un := NewUnaryOperator(Plus, operand)

	if un.Type != Plus || un.Operand != operand {
		t.Fatalf("unexpected UnaryOperator fields: %#v", un)
	}
}
