package asg

// trigonometricIdentitiesStage rewrites sin(x)^2 to 1-cos(x)^2 (or the
// converse) the second time the same argument's sine or cosine is squared,
// exploiting sin(x)^2+cos(x)^2=1 to avoid computing both.
//
// The original keys its memo of "already squared" arguments by raw
// function-pointer identity (comparing against &std::sin / &std::cos); Go
// func values are comparable only to nil, so an equivalent check needs
// reflection (as the code generator's SINCOS fusion does). This stage uses
// the function symbol's bound name ("sin", "cos") instead — both natives
// are registered under fixed names, so this is no less precise in practice.
type trigonometricIdentitiesStage struct {
	inner          impl
	squaredSines   map[Term]Term
	squaredCosines map[Term]Term
}

func newTrigonometricIdentitiesStage(inner impl) *trigonometricIdentitiesStage {
	return &trigonometricIdentitiesStage{
		inner:          inner,
		squaredSines:   make(map[Term]Term),
		squaredCosines: make(map[Term]Term),
	}
}

func (s *trigonometricIdentitiesStage) transformSequence(t *Sequence) Term {
	return s.inner.transformSequence(t)
}

func (s *trigonometricIdentitiesStage) transformConstant(t *Constant) Term {
	return s.inner.transformConstant(t)
}

func (s *trigonometricIdentitiesStage) transformInput(t *Input) Term { return s.inner.transformInput(t) }

func (s *trigonometricIdentitiesStage) transformOutput(t *Output) Term {
	return s.inner.transformOutput(t)
}

func (s *trigonometricIdentitiesStage) transformUnaryFunction(t *UnaryFunction) Term {
	return s.inner.transformUnaryFunction(t)
}

func (s *trigonometricIdentitiesStage) transformAddition(t *Addition) Term {
	return s.inner.transformAddition(t)
}

func (s *trigonometricIdentitiesStage) transformMultiplication(t *Multiplication) Term {
	return s.inner.transformMultiplication(t)
}

func (s *trigonometricIdentitiesStage) transformExponentiation(t *Exponentiation) Term {
	return s.inner.transformExponentiation(t)
}

func (s *trigonometricIdentitiesStage) transformSquaring(t *Squaring) Term {
	fn, ok := t.Base.(*UnaryFunction)
	if !ok {
		return s.inner.transformSquaring(t)
	}

	switch fn.Function.Name() {
	case "sin":
		if cos, ok := s.squaredCosines[fn.Argument]; ok {
			return s.inner.transformAddition(NewAddition(NewConstant(1), nil, []Term{cos}))
		}

		transformed := s.inner.transformSquaring(t)
		s.squaredSines[fn.Argument] = transformed

		return transformed

	case "cos":
		if sin, ok := s.squaredSines[fn.Argument]; ok {
			return s.inner.transformAddition(NewAddition(NewConstant(1), nil, []Term{sin}))
		}

		transformed := s.inner.transformSquaring(t)
		s.squaredCosines[fn.Argument] = transformed

		return transformed

	default:
		return s.inner.transformSquaring(t)
	}
}

func (s *trigonometricIdentitiesStage) coalesce(t Term) Term { return s.inner.coalesce(t) }
