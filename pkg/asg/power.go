package asg

import (
	"fmt"
	"math"
)

// Exponentiation is base^exponent, evaluated at run time via math.Pow (or,
// after a Reduced pass, expanded away entirely for integer exponents — see
// Squaring).
type Exponentiation struct {
	base
	Base, Exponent Term
}

// NewExponentiation constructs an exponentiation term.
func NewExponentiation(b, exponent Term) *Exponentiation {
	return &Exponentiation{Base: b, Exponent: exponent}
}

// EvaluateConstant implements Term. A constant base of 0 always folds to 1,
// matching the convention the generated code also follows for 0^0.
func (t *Exponentiation) EvaluateConstant() (float64, bool) {
	constantBase, ok := t.Base.EvaluateConstant()
	if !ok {
		return 0, false
	}

	if constantBase == 0 {
		return 1, true
	}

	constantExponent, ok := t.Exponent.EvaluateConstant()
	if !ok {
		return 0, false
	}

	return math.Pow(constantBase, constantExponent), true
}

// Accept implements Term.
func (t *Exponentiation) Accept(v Visitor) { v.VisitExponentiation(t) }

// Depth implements Term.
func (t *Exponentiation) Depth() int {
	return t.cachedDepth(func() int {
		depth := t.Base.Depth()
		if d := t.Exponent.Depth(); d > depth {
			depth = d
		}

		return 1 + depth
	})
}

// Key implements Term.
func (t *Exponentiation) Key() string {
	return t.cachedKey(func() string { return fmt.Sprintf("(%s)^(%s)", t.Base.Key(), t.Exponent.Key()) })
}

// Squaring is base*base, the building block Reduced expands integer
// exponents into via repeated squaring so the interpreter never needs a
// general pow() for the common small-integer-exponent case.
type Squaring struct {
	base
	Base Term
}

// NewSquaring constructs a squaring term.
func NewSquaring(b Term) *Squaring { return &Squaring{Base: b} }

// EvaluateConstant implements Term.
func (t *Squaring) EvaluateConstant() (float64, bool) {
	constantBase, ok := t.Base.EvaluateConstant()
	if !ok {
		return 0, false
	}

	return constantBase * constantBase, true
}

// Accept implements Term.
func (t *Squaring) Accept(v Visitor) { v.VisitSquaring(t) }

// Depth implements Term.
func (t *Squaring) Depth() int { return t.cachedDepth(func() int { return 1 + t.Base.Depth() }) }

// Key implements Term.
func (t *Squaring) Key() string { return t.cachedKey(func() string { return fmt.Sprintf("(%s)^2", t.Base.Key()) }) }
