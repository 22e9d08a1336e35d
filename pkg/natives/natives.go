// Package natives provides the built-in unary functions a host typically
// registers before parsing any script: the trigonometric and other
// standard real functions a FunctionSymbol can bind to. None of this is
// privileged by the compiler — a host is free to register its own
// FunctionSymbol under any name instead, or in addition.
package natives

import (
	"math"

	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// All returns a FunctionSymbol for every built-in, in a fixed order. "sin"
// and "cos" are bound to math.Sin/math.Cos, the two functions the code
// generator's SINCOS fusion recognizes; the trigonometric-identities
// transform stage matches them by those two names.
func All() []*symbol.FunctionSymbol {
	return []*symbol.FunctionSymbol{
		symbol.NewFunctionSymbol("sin", math.Sin),
		symbol.NewFunctionSymbol("cos", math.Cos),
		symbol.NewFunctionSymbol("tan", math.Tan),
		symbol.NewFunctionSymbol("asin", math.Asin),
		symbol.NewFunctionSymbol("acos", math.Acos),
		symbol.NewFunctionSymbol("atan", math.Atan),
		symbol.NewFunctionSymbol("sqrt", math.Sqrt),
		symbol.NewFunctionSymbol("exp", math.Exp),
		symbol.NewFunctionSymbol("log", math.Log),
		symbol.NewFunctionSymbol("abs", math.Abs),
		symbol.NewFunctionSymbol("sinh", math.Sinh),
		symbol.NewFunctionSymbol("cosh", math.Cosh),
		symbol.NewFunctionSymbol("tanh", math.Tanh),
	}
}

// Register adds every built-in to lexicon, returning the first error
// encountered (a prior registration or script declaration already claiming
// one of these names).
func Register(lexicon *symbol.Lexicon) error {
	for _, fn := range All() {
		if err := lexicon.Add(fn); err != nil {
			return err
		}
	}

	return nil
}
