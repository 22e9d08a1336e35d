// Package compiler lowers a named set of expressions -- built up one
// declaration at a time via the Compiler facade, or all at once from a
// declaration script -- into a program.Program ready to run.
package compiler

import (
	"fmt"

	"github.com/sixpack-lang/sixpack/pkg/asg"
	"github.com/sixpack-lang/sixpack/pkg/expression"
	"github.com/sixpack-lang/sixpack/pkg/parser"
	"github.com/sixpack-lang/sixpack/pkg/program"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// CompileError reports a failure, carrying only a message: every failure
// this package raises (a duplicate name, a malformed expression, an
// internal code-generation inconsistency) is something a caller can only
// react to by reporting it, never by branching on its cause.
type CompileError struct{ message string }

func newCompileError(message string) *CompileError { return &CompileError{message} }

// Error implements error.
func (e *CompileError) Error() string { return e.message }

// Parameter is a host-mutable named value read back from a Compiler.
type Parameter struct {
	Name  string
	Value float64
}

// NamedExpression pairs an output's name with its parsed expression.
type NamedExpression struct {
	Name       string
	Expression expression.Expression
}

// Compiler accumulates variables, parameters, constants, functions and
// expressions, then lowers every output expression into one Program.
// It implements parser.ScriptHost, so a declaration script can drive it
// directly via AddSourceScript.
type Compiler struct {
	lexicon     *symbol.Lexicon
	outputs     []*expression.Symbol
	outputNames map[string]bool
}

// NewCompiler constructs an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		lexicon:     symbol.NewLexicon(),
		outputNames: make(map[string]bool),
	}
}

// AddVariable declares a run-time input. Implements parser.ScriptHost.
func (c *Compiler) AddVariable(name string) error {
	return c.lexicon.Add(symbol.NewVariable(name))
}

// AddParameter declares a host-mutable value folded as a constant at
// compile time. Implements parser.ScriptHost.
func (c *Compiler) AddParameter(name string, value float64) error {
	return c.lexicon.Add(symbol.NewParameter(name, value))
}

// AddConstant declares an immutable named value. Implements
// parser.ScriptHost.
func (c *Compiler) AddConstant(name string, value float64) error {
	return c.lexicon.Add(symbol.NewConstant(name, value))
}

// AddFunction registers a unary function under name, for use by expressions
// added afterward.
func (c *Compiler) AddFunction(name string, fn symbol.Function) error {
	return c.lexicon.Add(symbol.NewFunctionSymbol(name, fn))
}

// AddExpression parses exprText and binds it as name, per visibility:
// Public and Symbolic expressions become referenceable by later
// expressions; Public and Private expressions become outputs of the
// eventual Program. Implements parser.ScriptHost.
func (c *Compiler) AddExpression(name, exprText string, visibility parser.Visibility) (expression.Expression, error) {
	parsed := parser.NewExpressionParser(c.lexicon).ParseToExpression(exprText)
	sym := expression.NewSymbol(name, parsed)

	if visibility != parser.Private {
		if err := c.lexicon.Add(sym); err != nil {
			return expression.Expression{}, err
		}
	}

	if visibility != parser.Symbolic {
		if err := c.addOutput(sym); err != nil {
			return expression.Expression{}, err
		}
	}

	return parsed, nil
}

func (c *Compiler) addOutput(sym *expression.Symbol) error {
	if c.outputNames[sym.Name()] {
		return newCompileError(fmt.Sprintf("compile failed -- duplicate output '%s'", sym.Name()))
	}

	c.outputNames[sym.Name()] = true
	c.outputs = append(c.outputs, sym)

	return nil
}

// AddSourceScript parses a full declaration script against this compiler.
func (c *Compiler) AddSourceScript(input string) error {
	return parser.NewScriptParser(c).ParseScript(input)
}

// GetInputs returns the name of every declared variable, in declaration
// order.
func (c *Compiler) GetInputs() []string {
	var names []string

	for _, s := range c.lexicon.Symbols() {
		if v, ok := s.(*symbol.Variable); ok {
			names = append(names, v.Name())
		}
	}

	return names
}

// GetParameters returns every declared parameter's name and current value,
// in declaration order.
func (c *Compiler) GetParameters() []Parameter {
	var out []Parameter

	for _, s := range c.lexicon.Symbols() {
		if p, ok := s.(*symbol.Parameter); ok {
			out = append(out, Parameter{Name: p.Name(), Value: p.Value})
		}
	}

	return out
}

// GetOutputs returns every output's name and parsed expression, in
// declaration order.
func (c *Compiler) GetOutputs() []NamedExpression {
	out := make([]NamedExpression, len(c.outputs))
	for i, s := range c.outputs {
		out[i] = NamedExpression{Name: s.Name(), Expression: s.Expression}
	}

	return out
}

// Compile lowers every output added so far into a Program: each output's
// expression is built into the Abstract Semantic Graph, the graph is run
// through the standard optimizing transform (constant folding, group
// flattening, cancellation/fusion, hash-consing), and the result is handed
// to the code generator.
func (c *Compiler) Compile() (*program.Program, error) {
	if len(c.outputs) == 0 {
		return nil, newCompileError("compile failed -- no outputs declared")
	}

	builder := &graphBuilder{}

	for _, out := range c.outputs {
		if !out.Expression.IsOK() {
			return nil, newCompileError(fmt.Sprintf("output '%s': %s", out.Name(), out.Expression.Error()))
		}

		if err := builder.addOutput(out.Name(), out.Expression); err != nil {
			return nil, newCompileError(fmt.Sprintf("output '%s': %s", out.Name(), err))
		}
	}

	graphRoot := asg.NewTransform().Apply(builder.makeGraph())

	return newCodeGenerator(graphRoot).generate(c.lexicon)
}
