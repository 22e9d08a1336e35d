package asg

import (
	"math"
	"testing"

	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

var sinFn = symbol.NewFunctionSymbol("sin", math.Sin)

func TestConstantEvaluatedStageFoldsArithmetic(t *testing.T) {
	tr := NewTransform()

	sum := NewAddition(NewConstant(1), []Term{NewConstant(2)}, []Term{NewConstant(0.5)})
	got := tr.Apply(sum)

	c, ok := got.(*Constant)
	if !ok {
		t.Fatalf("expected a folded Constant, got %T", got)
	}

	if c.Value != 2.5 {
		t.Fatalf("folded value = %v, want 2.5", c.Value)
	}
}

func TestConstantEvaluatedStageFoldsUnaryFunction(t *testing.T) {
	tr := NewTransform()

	got := tr.Apply(NewUnaryFunction(sinFn, NewConstant(0)))

	c, ok := got.(*Constant)
	if !ok {
		t.Fatalf("expected a folded Constant, got %T", got)
	}

	if c.Value != 0 {
		t.Fatalf("sin(0) folded to %v, want 0", c.Value)
	}
}

func TestMergeHashConsesEqualConstants(t *testing.T) {
	tr := NewTransform()

	a := tr.Apply(NewConstant(3))
	b := tr.Apply(NewConstant(3))

	if a != b {
		t.Fatal("two equal-key constants should merge to the identical term")
	}
}

func TestMergeHashConsesEqualInputs(t *testing.T) {
	tr := NewTransform()

	a := tr.Apply(NewInput("x"))
	b := tr.Apply(NewInput("x"))

	if a != b {
		t.Fatal("two Input terms with the same name should merge to the identical term")
	}
}

func TestMergeHashConsesStructurallyEqualSums(t *testing.T) {
	tr := NewTransform()

	x := NewInput("x")
	y := NewInput("y")

	a := tr.Apply(NewAddition(nil, []Term{x, y}, nil))
	b := tr.Apply(NewAddition(nil, []Term{y, x}, nil))

	if a != b {
		t.Fatal("addition should be order-insensitive for hash-consing: x+y and y+x must collapse")
	}
}

func TestGroupedFlattensNestedAdditionsOfSameKind(t *testing.T) {
	tr := NewTransform()

	x, y, z := NewInput("x"), NewInput("y"), NewInput("z")

	inner := NewAddition(nil, []Term{x, y}, nil)
	outer := NewAddition(nil, []Term{inner, z}, nil)

	got := tr.Apply(outer)

	add, ok := got.(*Addition)
	if !ok {
		t.Fatalf("expected an Addition, got %T", got)
	}

	for _, p := range add.PositiveTerms {
		if _, nested := p.(*Addition); nested {
			t.Fatalf("flattened Addition must not contain a nested Addition, got %#v", add.PositiveTerms)
		}
	}

	if len(add.PositiveTerms) != 3 {
		t.Fatalf("expected 3 flattened operands (x, y, z), got %d", len(add.PositiveTerms))
	}
}

func TestGroupedFlattensNestedMultiplicationsOfSameKind(t *testing.T) {
	tr := NewTransform()

	x, y, z := NewInput("x"), NewInput("y"), NewInput("z")

	inner := NewMultiplication(nil, []Term{x, y}, nil)
	outer := NewMultiplication(nil, []Term{inner, z}, nil)

	got := tr.Apply(outer)

	mul, ok := got.(*Multiplication)
	if !ok {
		t.Fatalf("expected a Multiplication, got %T", got)
	}

	for _, p := range mul.PositiveTerms {
		if _, nested := p.(*Multiplication); nested {
			t.Fatalf("flattened Multiplication must not contain a nested Multiplication, got %#v", mul.PositiveTerms)
		}
	}

	if len(mul.PositiveTerms) != 3 {
		t.Fatalf("expected 3 flattened operands (x, y, z), got %d", len(mul.PositiveTerms))
	}
}

func TestReducedCancelsOppositeAdditionTerms(t *testing.T) {
	tr := NewTransform()

	x, y := NewInput("x"), NewInput("y")

	// x + y - x should reduce to y.
	got := tr.Apply(NewAddition(nil, []Term{x, y}, []Term{x}))

	input, ok := got.(*Input)
	if !ok || input.Name != "y" {
		t.Fatalf("expected cancellation down to Input(y), got %#v", got)
	}
}

func TestReducedCancelsOppositeMultiplicationTerms(t *testing.T) {
	tr := NewTransform()

	x, y := NewInput("x"), NewInput("y")

	// x * y / x should reduce to y.
	got := tr.Apply(NewMultiplication(nil, []Term{x, y}, []Term{x}))

	input, ok := got.(*Input)
	if !ok || input.Name != "y" {
		t.Fatalf("expected cancellation down to Input(y), got %#v", got)
	}
}

func TestReducedFusesRepeatedAdditionTermIntoScaledMultiplication(t *testing.T) {
	tr := NewTransform()

	x := NewInput("x")

	// x + x + x should fuse the three occurrences of x into a single scaled
	// term, 3*x, rather than keeping three separate positive operands.
	got := tr.Apply(NewAddition(nil, []Term{x, x, x}, nil))

	add, ok := got.(*Addition)
	if !ok || len(add.PositiveTerms) != 1 {
		t.Fatalf("expected a single fused operand, got %#v", got)
	}

	mul, ok := add.PositiveTerms[0].(*Multiplication)
	if !ok {
		t.Fatalf("expected the fused operand to be a Multiplication, got %#v", add.PositiveTerms[0])
	}

	if mul.ConstantTerm.Value != 3 {
		t.Fatalf("fused constant factor = %v, want 3", mul.ConstantTerm.Value)
	}
}

func TestReducedFusesRepeatedMultiplicationTermIntoExponentiation(t *testing.T) {
	tr := NewTransform()

	x := NewInput("x")

	// x * x * x should fuse to x^3, which Reduced further expands by
	// repeated squaring into a pure Multiplication with no Exponentiation.
	got := tr.Apply(NewMultiplication(nil, []Term{x, x, x}, nil))

	if _, ok := got.(*Exponentiation); ok {
		t.Fatal("integer exponents must be expanded by squaring, not left as Exponentiation")
	}

	for k := -16; k <= 16; k++ {
		if k == 0 {
			continue
		}

		want := math.Pow(2, float64(k))
		got := evalIntegerPower(t, tr, 2, k)

		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("2^%d via repeated squaring = %v, want %v", k, got, want)
		}
	}
}

// evalIntegerPower builds base^exponent as an Exponentiation of two
// constants, applies tr, and evaluates the expanded result via
// EvaluateConstant.
func evalIntegerPower(t *testing.T, tr *Transform, baseValue float64, exponent int) float64 {
	t.Helper()

	base := NewConstant(baseValue)
	pow := NewExponentiation(base, NewConstant(float64(exponent)))

	got := tr.Apply(pow)

	v, ok := got.EvaluateConstant()
	if !ok {
		t.Fatalf("expected a constant result for %v^%d, got %#v", baseValue, exponent, got)
	}

	return v
}

func TestApplyIsIdempotentOnItsOwnResult(t *testing.T) {
	tr := NewTransform()

	// x + y has no repeated operand to fuse. A fused sum is not a fixed
	// point: x + x becomes Addition(0, [2*x]) (see the fusion test above),
	// which a second pass reduces to 2*x.
	x := NewInput("x")
	y := NewInput("y")
	sum := NewAddition(nil, []Term{x, y}, nil)

	first := tr.Apply(sum)
	second := tr.Apply(first)

	if first != second {
		t.Fatal("applying the same Transform to an already-transformed term should be a no-op")
	}
}

func TestApplyMemoizesByPointerIdentity(t *testing.T) {
	tr := NewTransform()

	shared := NewInput("x")
	sum := NewAddition(nil, []Term{shared, shared}, nil)

	first := tr.Apply(sum)
	second := tr.Apply(sum)

	if first != second {
		t.Fatal("applying a Transform twice to the identical term must return the identical result")
	}
}

func TestRenamingTransformSubstitutesInputAndOutputNames(t *testing.T) {
	tr := NewRenamingTransform(map[string]string{"x": "y"})

	got := tr.Apply(NewOutput("out", NewInput("x")))

	out, ok := got.(*Output)
	if !ok {
		t.Fatalf("expected an Output, got %T", got)
	}

	in, ok := out.Term.(*Input)
	if !ok || in.Name != "y" {
		t.Fatalf("expected renamed Input(y), got %#v", out.Term)
	}
}
