// Package symbol implements the Lexicon: the name-to-symbol table shared by
// the expression parser, the script parser and the compiler.
package symbol

import "fmt"

// Function is a real-to-real callable bound to a function symbol.
type Function func(float64) float64

// Symbol is the common interface of everything a Lexicon can hold. Callers
// that need to distinguish kinds (the ASG builder, the code generator) do so
// with a type switch over the concrete *Constant / *Parameter / *Variable /
// *FunctionSymbol, the same way the original tells symbols apart with
// dynamic_cast.
type Symbol interface {
	Name() string
}

// Constant is a named, immutable real value.
type Constant struct {
	name  string
	Value float64
}

// NewConstant constructs a constant symbol.
func NewConstant(name string, value float64) *Constant { return &Constant{name, value} }

// Name implements Symbol.
func (c *Constant) Name() string { return c.name }

// Parameter is a named, host-mutable real value: its value may be changed
// between compilations but is folded as a constant at compile time.
type Parameter struct {
	name  string
	Value float64
}

// NewParameter constructs a parameter symbol with a default value.
func NewParameter(name string, value float64) *Parameter { return &Parameter{name, value} }

// Name implements Symbol.
func (p *Parameter) Name() string { return p.name }

// SetValue updates the parameter's value ahead of the next compilation.
func (p *Parameter) SetValue(value float64) { p.Value = value }

// Variable is a named run-time input.
type Variable struct {
	name string
}

// NewVariable constructs a variable symbol.
func NewVariable(name string) *Variable { return &Variable{name} }

// Name implements Symbol.
func (v *Variable) Name() string { return v.name }

// FunctionSymbol binds a name to a unary real function.
type FunctionSymbol struct {
	name     string
	Function Function
}

// NewFunctionSymbol constructs a function symbol.
func NewFunctionSymbol(name string, fn Function) *FunctionSymbol {
	if fn == nil {
		panic("nil function for symbol " + name)
	}

	return &FunctionSymbol{name, fn}
}

// Name implements Symbol.
func (f *FunctionSymbol) Name() string { return f.name }

// Lexicon is a name -> symbol mapping enforcing name uniqueness across all
// symbol kinds (a constant and a function cannot share a name, etc).
type Lexicon struct {
	symbols map[string]Symbol
	// order preserves insertion order for deterministic iteration (input
	// lists, unused-variable placeholders, etc).
	order []string
}

// NewLexicon constructs an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{symbols: make(map[string]Symbol)}
}

// Add inserts a symbol, returning an error if the name is already bound.
func (l *Lexicon) Add(s Symbol) error {
	if _, exists := l.symbols[s.Name()]; exists {
		return fmt.Errorf("duplicate symbol '%s'", s.Name())
	}

	l.symbols[s.Name()] = s
	l.order = append(l.order, s.Name())

	return nil
}

// Find looks up a symbol by name, returning nil if absent.
func (l *Lexicon) Find(name string) Symbol {
	return l.symbols[name]
}

// Symbols returns every bound symbol in insertion order.
func (l *Lexicon) Symbols() []Symbol {
	out := make([]Symbol, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.symbols[name])
	}

	return out
}
