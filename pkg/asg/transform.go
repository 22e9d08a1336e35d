package asg

import "fmt"

// impl is the per-stage dispatch surface one link of a Transform pipeline
// implements: one method per term kind, plus coalesce. A stage that doesn't
// care about a particular kind simply forwards to the stage it wraps —
// there is no implicit fallthrough the way a C++ "using Base::transformImpl"
// declaration provides, so every stage type implements every method, even
// if most bodies are a one-line delegation.
type impl interface {
	transformSequence(t *Sequence) Term
	transformConstant(t *Constant) Term
	transformInput(t *Input) Term
	transformOutput(t *Output) Term
	transformUnaryFunction(t *UnaryFunction) Term
	transformAddition(t *Addition) Term
	transformMultiplication(t *Multiplication) Term
	transformExponentiation(t *Exponentiation) Term
	transformSquaring(t *Squaring) Term
	coalesce(t Term) Term
}

// engine drives the memoized dispatch shared by every stage in a pipeline:
// a given term (by pointer identity) is rewritten at most once, and every
// later reference to it within the same Transform gets the same result.
type engine struct {
	top  impl
	memo map[Term]Term
}

func newEngine() *engine {
	return &engine{memo: make(map[Term]Term)}
}

// transform rewrites a term through the top (outermost) stage, memoizing by
// the term's own identity. Every stage's "recurse into a child" calls route
// back through here — exactly like the original's non-virtual transform()
// dispatching to whichever concrete transformImpl override is most derived.
func (e *engine) transform(t Term) Term {
	if t == nil {
		return nil
	}

	if cached, ok := e.memo[t]; ok {
		return cached
	}

	var raw Term

	switch tt := t.(type) {
	case *Sequence:
		raw = e.top.transformSequence(tt)
	case *Constant:
		raw = e.top.transformConstant(tt)
	case *Input:
		raw = e.top.transformInput(tt)
	case *Output:
		raw = e.top.transformOutput(tt)
	case *UnaryFunction:
		raw = e.top.transformUnaryFunction(tt)
	case *Addition:
		raw = e.top.transformAddition(tt)
	case *Multiplication:
		raw = e.top.transformMultiplication(tt)
	case *Exponentiation:
		raw = e.top.transformExponentiation(tt)
	case *Squaring:
		raw = e.top.transformSquaring(tt)
	default:
		panic(fmt.Sprintf("asg: transform: unhandled term type %T", t))
	}

	setSourceNode(raw, t)

	result := e.top.coalesce(raw)
	e.memo[t] = result

	return result
}

// Transform is a composed rewrite pipeline over a graph. Build one with
// NewTransform (or a variant below), then call Apply once per root term.
// Applying the same Transform to the same term twice returns the identical
// (pointer-equal) result, rather than rewriting twice.
type Transform struct {
	e *engine
}

// Apply rewrites term through the pipeline.
func (tr *Transform) Apply(term Term) Term {
	return tr.e.transform(term)
}

// NewTransform builds the standard optimizing pipeline: constant folding,
// flattening of nested same-kind group operations, reduction (cancellation,
// fusion, integer-exponent expansion by squaring), and hash-consing —
// equivalent to the original's Reduced<Grouped<ConstEvaluated<Merge>>>
// composition, read innermost (Merge) first.
func NewTransform() *Transform {
	e := newEngine()

	id := &identityStage{e: e}
	merge := newMergeStage(id)
	constEvaluated := newConstEvaluatedStage(merge)
	grouped := newGroupedStage(e, constEvaluated)
	reduced := newReducedStage(e, grouped)

	e.top = reduced

	return &Transform{e: e}
}

// NewRenamingTransform builds the standard pipeline with an additional
// outermost pass substituting Input/Output names per the given table;
// renamed terms are still hash-consed and reduced like any other term.
func NewRenamingTransform(renames map[string]string) *Transform {
	e := newEngine()

	id := &identityStage{e: e}
	merge := newMergeStage(id)
	constEvaluated := newConstEvaluatedStage(merge)
	grouped := newGroupedStage(e, constEvaluated)
	reduced := newReducedStage(e, grouped)
	renamed := newRenamedStage(reduced, renames)

	e.top = renamed

	return &Transform{e: e}
}

// NewTrigSimplifyingTransform builds the standard pipeline with an
// additional outermost pass rewriting sin(x)^2 / cos(x)^2 via the
// Pythagorean identity the second time either is squared for a given x.
func NewTrigSimplifyingTransform() *Transform {
	e := newEngine()

	id := &identityStage{e: e}
	merge := newMergeStage(id)
	constEvaluated := newConstEvaluatedStage(merge)
	grouped := newGroupedStage(e, constEvaluated)
	reduced := newReducedStage(e, grouped)
	trig := newTrigonometricIdentitiesStage(reduced)

	e.top = trig

	return &Transform{e: e}
}
