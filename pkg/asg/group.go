package asg

import "strings"

// groupOp holds the state shared by Addition and Multiplication: a constant
// term plus two signed multisets of operand terms (the "positive" and
// "negative" sides of the operation).
type groupOp struct {
	base
	ConstantTerm  *Constant
	PositiveTerms []Term
	NegativeTerms []Term
}

func (g *groupOp) evaluateConstant(nullElement float64, hasNullElement bool) (float64, bool) {
	if len(g.PositiveTerms) == 0 && len(g.NegativeTerms) == 0 {
		return g.ConstantTerm.Value, true
	}

	if hasNullElement && g.ConstantTerm.Value == nullElement {
		return nullElement, true
	}

	return 0, false
}

func (g *groupOp) depth() int {
	return g.cachedDepth(func() int {
		depth := g.ConstantTerm.Depth()
		for _, t := range g.PositiveTerms {
			if d := t.Depth(); d > depth {
				depth = d
			}
		}

		for _, t := range g.NegativeTerms {
			if d := t.Depth(); d > depth {
				depth = d
			}
		}

		return 1 + depth
	})
}

func (g *groupOp) key(positiveSign, negativeSign string) string {
	return g.cachedKey(func() string {
		var b strings.Builder

		b.WriteString(g.ConstantTerm.Key())

		for _, k := range sortedKeys(g.PositiveTerms) {
			b.WriteString(positiveSign)
			b.WriteByte('(')
			b.WriteString(k)
			b.WriteByte(')')
		}

		for _, k := range sortedKeys(g.NegativeTerms) {
			b.WriteString(negativeSign)
			b.WriteByte('(')
			b.WriteString(k)
			b.WriteByte(')')
		}

		return b.String()
	})
}

// GroupOperation is the interface common to Addition and Multiplication: an
// Abelian group operation over a constant and two signed operand multisets.
// The transform stages (Grouped, Reduced) and the code generator work on
// the concrete types, one code path each (flattening must tell a nested
// Addition from a nested Multiplication apart), so none of them dispatches
// through this interface.
type GroupOperation interface {
	Term
	Identity() float64
	NullElement() (float64, bool)
	Apply(left, right float64) float64
	ApplyInverse(left, right float64) float64
	Signs() (positive, negative string)
}

// Addition is constant + Σpositive - Σnegative.
type Addition struct {
	groupOp
}

// NewAddition constructs an addition term. A nil constant defaults to the
// identity, 0.
func NewAddition(constant *Constant, positive, negative []Term) *Addition {
	if constant == nil {
		constant = NewConstant(0)
	}

	return &Addition{groupOp{ConstantTerm: constant, PositiveTerms: positive, NegativeTerms: negative}}
}

// Identity implements GroupOperation.
func (t *Addition) Identity() float64 { return 0 }

// NullElement implements GroupOperation: addition has none.
func (t *Addition) NullElement() (float64, bool) { return 0, false }

// Apply implements GroupOperation.
func (t *Addition) Apply(left, right float64) float64 { return left + right }

// ApplyInverse implements GroupOperation.
func (t *Addition) ApplyInverse(left, right float64) float64 { return left - right }

// Signs implements GroupOperation.
func (t *Addition) Signs() (string, string) { return "+", "-" }

// EvaluateConstant implements Term.
func (t *Addition) EvaluateConstant() (float64, bool) { return t.groupOp.evaluateConstant(0, false) }

// Accept implements Term.
func (t *Addition) Accept(v Visitor) { v.VisitAddition(t) }

// Depth implements Term.
func (t *Addition) Depth() int { return t.groupOp.depth() }

// Key implements Term.
func (t *Addition) Key() string { return t.groupOp.key("+", "-") }

// Multiplication is constant * Πpositive / Πnegative.
type Multiplication struct {
	groupOp
}

// NewMultiplication constructs a multiplication term. A nil constant
// defaults to the identity, 1.
func NewMultiplication(constant *Constant, positive, negative []Term) *Multiplication {
	if constant == nil {
		constant = NewConstant(1)
	}

	return &Multiplication{groupOp{ConstantTerm: constant, PositiveTerms: positive, NegativeTerms: negative}}
}

// Identity implements GroupOperation.
func (t *Multiplication) Identity() float64 { return 1 }

// NullElement implements GroupOperation: 0 times anything is 0.
func (t *Multiplication) NullElement() (float64, bool) { return 0, true }

// Apply implements GroupOperation.
func (t *Multiplication) Apply(left, right float64) float64 { return left * right }

// ApplyInverse implements GroupOperation.
func (t *Multiplication) ApplyInverse(left, right float64) float64 { return left / right }

// Signs implements GroupOperation.
func (t *Multiplication) Signs() (string, string) { return "*", "/" }

// EvaluateConstant implements Term.
func (t *Multiplication) EvaluateConstant() (float64, bool) { return t.groupOp.evaluateConstant(0, true) }

// Accept implements Term.
func (t *Multiplication) Accept(v Visitor) { v.VisitMultiplication(t) }

// Depth implements Term.
func (t *Multiplication) Depth() int { return t.groupOp.depth() }

// Key implements Term.
func (t *Multiplication) Key() string { return t.groupOp.key("*", "/") }
