package asg

// constEvaluatedStage folds any term whose EvaluateConstant succeeds into a
// Constant before handing off to the wrapped stage's coalesce — typically
// Merge, so a folded constant still gets hash-consed against any other
// occurrence of the same value.
type constEvaluatedStage struct {
	inner impl
}

func newConstEvaluatedStage(inner impl) *constEvaluatedStage {
	return &constEvaluatedStage{inner: inner}
}

func (s *constEvaluatedStage) transformSequence(t *Sequence) Term {
	return s.inner.transformSequence(t)
}

func (s *constEvaluatedStage) transformConstant(t *Constant) Term {
	return s.inner.transformConstant(t)
}

func (s *constEvaluatedStage) transformInput(t *Input) Term { return s.inner.transformInput(t) }

func (s *constEvaluatedStage) transformOutput(t *Output) Term { return s.inner.transformOutput(t) }

func (s *constEvaluatedStage) transformUnaryFunction(t *UnaryFunction) Term {
	return s.inner.transformUnaryFunction(t)
}

func (s *constEvaluatedStage) transformAddition(t *Addition) Term {
	return s.inner.transformAddition(t)
}

func (s *constEvaluatedStage) transformMultiplication(t *Multiplication) Term {
	return s.inner.transformMultiplication(t)
}

func (s *constEvaluatedStage) transformExponentiation(t *Exponentiation) Term {
	return s.inner.transformExponentiation(t)
}

func (s *constEvaluatedStage) transformSquaring(t *Squaring) Term {
	return s.inner.transformSquaring(t)
}

func (s *constEvaluatedStage) coalesce(t Term) Term {
	if v, ok := t.EvaluateConstant(); ok {
		folded := NewConstant(v)
		setSourceNode(folded, t)
		t = folded
	}

	return s.inner.coalesce(t)
}
