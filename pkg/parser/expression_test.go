package parser

import (
	"math"
	"testing"

	"github.com/sixpack-lang/sixpack/pkg/ast"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

func testLexicon(t *testing.T) *symbol.Lexicon {
	t.Helper()

	l := symbol.NewLexicon()

	for _, s := range []symbol.Symbol{
		symbol.NewVariable("x"),
		symbol.NewConstant("k", 2),
		symbol.NewFunctionSymbol("sin", math.Sin),
	} {
		if err := l.Add(s); err != nil {
			t.Fatal(err)
		}
	}

	return l
}

func TestExpressionParserPrecedence(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	root, err := p.ParseToTree("1 + 2*3")
	if err != nil {
		t.Fatal(err)
	}

	// 1 + (2*3): top node is BinPlus, right is BinAsterisk.
	bin, ok := root.(*ast.BinaryOperator)
	if !ok || bin.Type != ast.BinPlus {
		t.Fatalf("expected top-level '+', got %#v", root)
	}

	if _, ok := bin.Right.(*ast.BinaryOperator); !ok {
		t.Fatalf("expected right operand to be the '*' subtree, got %#v", bin.Right)
	}
}

func TestExpressionParserCaretChainsLeftToRight(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	root, err := p.ParseToTree("2^3^2")
	if err != nil {
		t.Fatal(err)
	}

	top, ok := root.(*ast.BinaryOperator)
	if !ok || top.Type != ast.BinCaret {
		t.Fatalf("expected top-level '^', got %#v", root)
	}

	// Left-to-right chain means the left child is itself a '^' (2^3), not
	// the right child.
	if _, ok := top.Left.(*ast.BinaryOperator); !ok {
		t.Fatalf("expected left operand to be the inner '^' subtree, got %#v", top.Left)
	}

	if lit, ok := top.Right.(*ast.Literal); !ok || lit.Value != 2 {
		t.Fatalf("expected right operand to be literal 2, got %#v", top.Right)
	}
}

func TestExpressionParserUnaryIsNonRepeatable(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	if _, err := p.ParseToTree("--1"); err == nil {
		t.Fatal("expected a repeated prefix sign to fail")
	}
}

func TestExpressionParserBracketsInterchangeable(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	if _, err := p.ParseToTree("(1 + [2 * 3])"); err != nil {
		t.Fatalf("expected mismatched-kind nesting to be fine when each closes its own kind: %v", err)
	}

	if _, err := p.ParseToTree("(1 + 2]"); err == nil {
		t.Fatal("expected '(' closed by ']' to fail: brackets must balance by kind")
	}
}

func TestExpressionParserFunctionCallRequiresParens(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	if _, err := p.ParseToTree("sin x"); err == nil {
		t.Fatal("expected a function reference without '(' to fail")
	}

	root, err := p.ParseToTree("sin(x)")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := root.(*ast.UnaryFunction); !ok {
		t.Fatalf("expected a UnaryFunction node, got %#v", root)
	}
}

func TestExpressionParserUnknownIdentifierFailsAtItsPosition(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	_, err := p.ParseToTree("1 + nope")
	if err == nil {
		t.Fatal("expected an unknown identifier to fail")
	}

	if err.Span().Start() != 4 {
		t.Fatalf("error position = %d, want 4 (the start of 'nope')", err.Span().Start())
	}
}

func TestExpressionParserMissingClosingBracketFails(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	if _, err := p.ParseToTree("(1 + 2"); err == nil {
		t.Fatal("expected a missing closing bracket to fail")
	}
}

func TestExpressionParserValueDispatch(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	root, err := p.ParseToTree("x + k")
	if err != nil {
		t.Fatal(err)
	}

	bin := root.(*ast.BinaryOperator)

	left, ok := bin.Left.(*ast.Value)
	if !ok {
		t.Fatalf("expected left operand to be a Value node, got %#v", bin.Left)
	}

	if _, ok := left.Symbol.(*symbol.Variable); !ok {
		t.Fatalf("expected 'x' to resolve to a Variable symbol, got %#v", left.Symbol)
	}

	right, ok := bin.Right.(*ast.Value)
	if !ok {
		t.Fatalf("expected right operand to be a Value node, got %#v", bin.Right)
	}

	if _, ok := right.Symbol.(*symbol.Constant); !ok {
		t.Fatalf("expected 'k' to resolve to a Constant symbol, got %#v", right.Symbol)
	}
}

func TestParseToExpressionCapturesErrorInsteadOfReturningIt(t *testing.T) {
	p := NewExpressionParser(testLexicon(t))

	expr := p.ParseToExpression("1 +")
	if expr.IsOK() {
		t.Fatal("expected a malformed expression to fail")
	}

	if expr.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}
