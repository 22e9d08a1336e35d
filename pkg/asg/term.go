// Package asg implements the Abstract Semantic Graph: a maximally-shared DAG
// of algebraic terms that a compiled script is lowered to before rewriting
// and code generation. Unlike the parser's ast.Node tree (one node per
// syntax occurrence), a Term is built to be hash-consed — two terms that
// compute the same value the same way are expected to collapse to the same
// Go value once run through a Transform that includes Merge.
package asg

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/sixpack-lang/sixpack/pkg/ast"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// Term is a node of the graph. Depth and Key are both memoized on first
// call: once computed they never change, which is safe because every
// Transform stage builds fresh terms rather than mutating existing ones.
type Term interface {
	// Depth is the term's distance, in edges, from its deepest leaf.
	Depth() int
	// Key is the term's canonical structural fingerprint: two terms with
	// equal keys compute the same value the same way.
	Key() string
	// SourceNode is the AST node this term was built from, if any; a
	// rewrite that replaces a term propagates the original's source node
	// to its replacement when the replacement doesn't already have one.
	SourceNode() ast.Node
	// EvaluateConstant returns the term's value and true if it can be
	// computed without any Input, false otherwise.
	EvaluateConstant() (float64, bool)
	Accept(v Visitor)
}

// sourceSetter is implemented by every concrete term via base; it is
// unexported because provenance is meant to be set once, by a Transform,
// never by arbitrary callers.
type sourceSetter interface {
	setSourceNode(n ast.Node)
}

// setSourceNode propagates src's source node onto dst if dst doesn't
// already carry one. A no-op if src is nil or carries none itself.
func setSourceNode(dst, src Term) {
	if src == nil {
		return
	}

	if s, ok := dst.(sourceSetter); ok {
		s.setSourceNode(src.SourceNode())
	}
}

// SetSourceNode stamps n as t's provenance, if t doesn't already carry one.
// Exported for the ASG builder, which attributes each freshly built term to
// the AST node it was lowered from.
func SetSourceNode(t Term, n ast.Node) {
	if s, ok := t.(sourceSetter); ok {
		s.setSourceNode(n)
	}
}

// base is embedded by every concrete term to provide memoized depth/key
// storage and provenance.
type base struct {
	depth      int
	depthSet   bool
	key        string
	keySet     bool
	sourceNode ast.Node
}

func (b *base) SourceNode() ast.Node { return b.sourceNode }

func (b *base) setSourceNode(n ast.Node) {
	if b.sourceNode == nil {
		b.sourceNode = n
	}
}

func (b *base) cachedDepth(compute func() int) int {
	if !b.depthSet {
		b.depth = compute()
		b.depthSet = true
	}

	return b.depth
}

func (b *base) cachedKey(compute func() string) string {
	if !b.keySet {
		b.key = compute()
		b.keySet = true
	}

	return b.key
}

// sortedKeys returns the Key() of each term, sorted lexically.
func sortedKeys(terms []Term) []string {
	keys := make([]string, len(terms))
	for i, t := range terms {
		keys[i] = t.Key()
	}

	sort.Strings(keys)

	return keys
}

// Constant is a literal numeric value.
type Constant struct {
	base
	Value float64
}

// NewConstant constructs a constant term. -0 is normalized to +0 so Key()
// (and hence hash-consing) can't distinguish the two signs of zero.
func NewConstant(value float64) *Constant {
	if value == 0 {
		value = 0
	}

	return &Constant{Value: value}
}

// EvaluateConstant implements Term.
func (t *Constant) EvaluateConstant() (float64, bool) { return t.Value, true }

// Accept implements Term.
func (t *Constant) Accept(v Visitor) { v.VisitConstant(t) }

// Depth implements Term.
func (t *Constant) Depth() int { return 0 }

// Key implements Term.
func (t *Constant) Key() string {
	return t.cachedKey(func() string { return strconv.FormatFloat(t.Value, 'g', -1, 64) })
}

// Input is a named, externally-supplied value.
type Input struct {
	base
	Name string
}

// NewInput constructs an input term.
func NewInput(name string) *Input { return &Input{Name: name} }

// EvaluateConstant implements Term.
func (t *Input) EvaluateConstant() (float64, bool) { return 0, false }

// Accept implements Term.
func (t *Input) Accept(v Visitor) { v.VisitInput(t) }

// Depth implements Term.
func (t *Input) Depth() int { return 0 }

// Key implements Term.
func (t *Input) Key() string { return t.Name }

// Output binds a name to a term, marking it (and, transitively, its
// subgraph) as a program result.
type Output struct {
	base
	Name string
	Term Term
}

// NewOutput constructs an output term.
func NewOutput(name string, term Term) *Output { return &Output{Name: name, Term: term} }

// EvaluateConstant implements Term. An Output is never folded, even when
// its term is constant: it still needs to be written somewhere.
func (t *Output) EvaluateConstant() (float64, bool) { return 0, false }

// Accept implements Term.
func (t *Output) Accept(v Visitor) { v.VisitOutput(t) }

// Depth implements Term.
func (t *Output) Depth() int {
	return t.cachedDepth(func() int { return 1 + t.Term.Depth() })
}

// Key implements Term.
func (t *Output) Key() string {
	return t.cachedKey(func() string { return fmt.Sprintf("%s[%s]", t.Name, t.Term.Key()) })
}

// Sequence is an unordered bag of root terms (the Outputs of a compiled
// script), the top level of a graph handed to the code generator.
type Sequence struct {
	base
	Terms []Term
}

// NewSequence constructs a sequence term.
func NewSequence(terms ...Term) *Sequence { return &Sequence{Terms: terms} }

// EvaluateConstant implements Term.
func (t *Sequence) EvaluateConstant() (float64, bool) { return 0, false }

// Accept implements Term.
func (t *Sequence) Accept(v Visitor) { v.VisitSequence(t) }

// Depth implements Term.
func (t *Sequence) Depth() int {
	return t.cachedDepth(func() int {
		depth := -1
		for _, term := range t.Terms {
			if d := term.Depth(); d > depth {
				depth = d
			}
		}

		return 1 + depth
	})
}

// Key implements Term.
func (t *Sequence) Key() string {
	return t.cachedKey(func() string { return strings.Join(sortedKeys(t.Terms), "|") })
}

// UnaryFunction applies a named builtin function to a single argument.
type UnaryFunction struct {
	base
	Function *symbol.FunctionSymbol
	Argument Term
}

// NewUnaryFunction constructs a unary function application term.
func NewUnaryFunction(fn *symbol.FunctionSymbol, argument Term) *UnaryFunction {
	return &UnaryFunction{Function: fn, Argument: argument}
}

// EvaluateConstant implements Term.
func (t *UnaryFunction) EvaluateConstant() (float64, bool) {
	if v, ok := t.Argument.EvaluateConstant(); ok {
		return t.Function.Function(v), true
	}

	return 0, false
}

// Accept implements Term.
func (t *UnaryFunction) Accept(v Visitor) { v.VisitUnaryFunction(t) }

// Depth implements Term.
func (t *UnaryFunction) Depth() int {
	return t.cachedDepth(func() int { return 1 + t.Argument.Depth() })
}

// Key implements Term.
//
// The original fingerprints a unary function by its raw function-pointer
// address; Go func values aren't comparable or hashable that way (only to
// nil), so reflect.Value.Pointer() stands in for "the function's identity"
// here, which is stable for the lifetime of one compile.
func (t *UnaryFunction) Key() string {
	return t.cachedKey(func() string {
		return fmt.Sprintf("%#x(%s)", reflect.ValueOf(t.Function.Function).Pointer(), t.Argument.Key())
	})
}
