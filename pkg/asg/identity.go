package asg

// identityStage is the root of every pipeline: it rebuilds each composite
// term from its recursively transformed children, leaves leaves alone, and
// coalesces to a no-op. Every other stage wraps one of these, directly or
// transitively, and overrides only the term kinds and/or coalesce step it
// actually changes.
type identityStage struct {
	e *engine
}

func (s *identityStage) transformSequence(t *Sequence) Term {
	terms := make([]Term, len(t.Terms))
	for i, c := range t.Terms {
		terms[i] = s.e.transform(c)
	}

	return NewSequence(terms...)
}

func (s *identityStage) transformConstant(t *Constant) Term { return t }

func (s *identityStage) transformInput(t *Input) Term { return t }

func (s *identityStage) transformOutput(t *Output) Term {
	return NewOutput(t.Name, s.e.transform(t.Term))
}

func (s *identityStage) transformUnaryFunction(t *UnaryFunction) Term {
	return NewUnaryFunction(t.Function, s.e.transform(t.Argument))
}

func (s *identityStage) transformAddition(t *Addition) Term {
	return NewAddition(s.transformConstantTerm(t.ConstantTerm), s.transformAll(t.PositiveTerms), s.transformAll(t.NegativeTerms))
}

func (s *identityStage) transformMultiplication(t *Multiplication) Term {
	return NewMultiplication(s.transformConstantTerm(t.ConstantTerm), s.transformAll(t.PositiveTerms), s.transformAll(t.NegativeTerms))
}

func (s *identityStage) transformExponentiation(t *Exponentiation) Term {
	return NewExponentiation(s.e.transform(t.Base), s.e.transform(t.Exponent))
}

func (s *identityStage) transformSquaring(t *Squaring) Term {
	return NewSquaring(s.e.transform(t.Base))
}

func (s *identityStage) coalesce(t Term) Term { return t }

func (s *identityStage) transformConstantTerm(c *Constant) *Constant {
	return s.e.transform(c).(*Constant)
}

func (s *identityStage) transformAll(terms []Term) []Term {
	if terms == nil {
		return nil
	}

	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = s.e.transform(t)
	}

	return out
}
