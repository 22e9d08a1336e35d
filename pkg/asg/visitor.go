package asg

// Visitor is the external dispatch interface over Term values: one method
// per term kind. Used by tooling that walks a graph without rewriting it
// (e.g. a dump command); rewriting goes through Transform instead.
type Visitor interface {
	VisitSequence(t *Sequence)
	VisitConstant(t *Constant)
	VisitInput(t *Input)
	VisitOutput(t *Output)
	VisitUnaryFunction(t *UnaryFunction)
	VisitAddition(t *Addition)
	VisitMultiplication(t *Multiplication)
	VisitExponentiation(t *Exponentiation)
	VisitSquaring(t *Squaring)
}
