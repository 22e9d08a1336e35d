package asg

// renamedStage substitutes Input/Output names via a fixed table, leaving
// everything else — including the subgraph under a renamed Output —
// untouched by this stage itself (it still flows through whatever the stage
// wraps).
type renamedStage struct {
	inner   impl
	renames map[string]string
}

func newRenamedStage(inner impl, renames map[string]string) *renamedStage {
	return &renamedStage{inner: inner, renames: renames}
}

func (s *renamedStage) rename(name string) string {
	if r, ok := s.renames[name]; ok {
		return r
	}

	return name
}

func (s *renamedStage) transformSequence(t *Sequence) Term { return s.inner.transformSequence(t) }

func (s *renamedStage) transformConstant(t *Constant) Term { return s.inner.transformConstant(t) }

func (s *renamedStage) transformInput(t *Input) Term {
	return s.inner.transformInput(NewInput(s.rename(t.Name)))
}

func (s *renamedStage) transformOutput(t *Output) Term {
	return s.inner.transformOutput(NewOutput(s.rename(t.Name), t.Term))
}

func (s *renamedStage) transformUnaryFunction(t *UnaryFunction) Term {
	return s.inner.transformUnaryFunction(t)
}

func (s *renamedStage) transformAddition(t *Addition) Term { return s.inner.transformAddition(t) }

func (s *renamedStage) transformMultiplication(t *Multiplication) Term {
	return s.inner.transformMultiplication(t)
}

func (s *renamedStage) transformExponentiation(t *Exponentiation) Term {
	return s.inner.transformExponentiation(t)
}

func (s *renamedStage) transformSquaring(t *Squaring) Term { return s.inner.transformSquaring(t) }

func (s *renamedStage) coalesce(t Term) Term { return s.inner.coalesce(t) }
