package asg

// groupedStage flattens nested occurrences of the same group operation into
// one: (a+2)-(c-(3+b)) becomes 5+a+b-c before any cancellation runs. Nested
// Sequences are flattened the same way.
type groupedStage struct {
	e     *engine
	inner impl
}

func newGroupedStage(e *engine, inner impl) *groupedStage {
	return &groupedStage{e: e, inner: inner}
}

// transformSequence expands nested sequences: (a,b),(c,d) -> a,b,c,d.
func (s *groupedStage) transformSequence(t *Sequence) Term {
	var terms []Term

	for _, c := range t.Terms {
		if nested, ok := c.(*Sequence); ok {
			for _, nt := range nested.Terms {
				terms = append(terms, s.e.transform(nt))
			}
		} else {
			terms = append(terms, s.e.transform(c))
		}
	}

	return s.inner.transformSequence(NewSequence(terms...))
}

func (s *groupedStage) transformConstant(t *Constant) Term { return s.inner.transformConstant(t) }

func (s *groupedStage) transformInput(t *Input) Term { return s.inner.transformInput(t) }

func (s *groupedStage) transformOutput(t *Output) Term { return s.inner.transformOutput(t) }

func (s *groupedStage) transformUnaryFunction(t *UnaryFunction) Term {
	return s.inner.transformUnaryFunction(t)
}

// transformAddition groups terms and constants: (a+2)-(c-(3+b)) -> 5+a+b-c.
func (s *groupedStage) transformAddition(t *Addition) Term {
	constantValue := t.ConstantTerm.Value

	var positive, negative []Term

	for _, term := range t.PositiveTerms {
		transformed := s.e.transform(term)

		switch tt := transformed.(type) {
		case *Constant:
			constantValue += tt.Value
		case *Addition:
			constantValue += tt.ConstantTerm.Value
			positive = append(positive, tt.PositiveTerms...)
			negative = append(negative, tt.NegativeTerms...)
		default:
			positive = append(positive, transformed)
		}
	}

	for _, term := range t.NegativeTerms {
		transformed := s.e.transform(term)

		switch tt := transformed.(type) {
		case *Constant:
			constantValue -= tt.Value
		case *Addition:
			constantValue -= tt.ConstantTerm.Value
			positive = append(positive, tt.NegativeTerms...)
			negative = append(negative, tt.PositiveTerms...)
		default:
			negative = append(negative, transformed)
		}
	}

	constant := s.e.transform(NewConstant(constantValue)).(*Constant)

	return s.inner.transformAddition(NewAddition(constant, positive, negative))
}

// transformMultiplication groups terms and constants: (a*2)/(c/(3*b)) ->
// 6*a*b/c.
func (s *groupedStage) transformMultiplication(t *Multiplication) Term {
	constantValue := t.ConstantTerm.Value

	var positive, negative []Term

	for _, term := range t.PositiveTerms {
		transformed := s.e.transform(term)

		switch tt := transformed.(type) {
		case *Constant:
			constantValue *= tt.Value
		case *Multiplication:
			constantValue *= tt.ConstantTerm.Value
			positive = append(positive, tt.PositiveTerms...)
			negative = append(negative, tt.NegativeTerms...)
		default:
			positive = append(positive, transformed)
		}
	}

	for _, term := range t.NegativeTerms {
		transformed := s.e.transform(term)

		switch tt := transformed.(type) {
		case *Constant:
			constantValue /= tt.Value
		case *Multiplication:
			constantValue /= tt.ConstantTerm.Value
			positive = append(positive, tt.NegativeTerms...)
			negative = append(negative, tt.PositiveTerms...)
		default:
			negative = append(negative, transformed)
		}
	}

	constant := s.e.transform(NewConstant(constantValue)).(*Constant)

	return s.inner.transformMultiplication(NewMultiplication(constant, positive, negative))
}

func (s *groupedStage) transformExponentiation(t *Exponentiation) Term {
	return s.inner.transformExponentiation(t)
}

func (s *groupedStage) transformSquaring(t *Squaring) Term { return s.inner.transformSquaring(t) }

func (s *groupedStage) coalesce(t Term) Term { return s.inner.coalesce(t) }
