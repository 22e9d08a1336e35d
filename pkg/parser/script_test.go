package parser

import (
	"fmt"
	"testing"

	"github.com/sixpack-lang/sixpack/pkg/expression"
)

// fakeHost records every call a ScriptParser makes, standing in for the
// compiler's real ScriptHost implementation.
type fakeHost struct {
	variables  []string
	parameters map[string]float64
	constants  map[string]float64
	exprs      []struct {
		name       string
		text       string
		visibility Visibility
	}
	failNames map[string]error
}

func newFakeHost() *fakeHost {
	return &fakeHost{parameters: map[string]float64{}, constants: map[string]float64{}, failNames: map[string]error{}}
}

func (h *fakeHost) AddVariable(name string) error {
	h.variables = append(h.variables, name)

	return nil
}

func (h *fakeHost) AddParameter(name string, value float64) error {
	h.parameters[name] = value

	return nil
}

func (h *fakeHost) AddConstant(name string, value float64) error {
	h.constants[name] = value

	return nil
}

func (h *fakeHost) AddExpression(name, exprText string, visibility Visibility) (expression.Expression, error) {
	if err, ok := h.failNames[name]; ok {
		return expression.Expression{}, err
	}

	h.exprs = append(h.exprs, struct {
		name       string
		text       string
		visibility Visibility
	}{name, exprText, visibility})

	return expression.OK(exprText, nil), nil
}

func TestScriptParserInputDeclaration(t *testing.T) {
	h := newFakeHost()

	if err := NewScriptParser(h).ParseScript("input x\n"); err != nil {
		t.Fatal(err)
	}

	if len(h.variables) != 1 || h.variables[0] != "x" {
		t.Fatalf("variables = %v, want [x]", h.variables)
	}
}

func TestScriptParserParamDeclarationWithAndWithoutDefault(t *testing.T) {
	h := newFakeHost()

	script := "param m = 2.5\nparam n\n"
	if err := NewScriptParser(h).ParseScript(script); err != nil {
		t.Fatal(err)
	}

	if h.parameters["m"] != 2.5 {
		t.Fatalf("param m = %v, want 2.5", h.parameters["m"])
	}

	if h.parameters["n"] != 0 {
		t.Fatalf("param n = %v, want 0 (default)", h.parameters["n"])
	}
}

func TestScriptParserConstDeclarationRequiresValue(t *testing.T) {
	h := newFakeHost()

	if err := NewScriptParser(h).ParseScript("const k = 3\n"); err != nil {
		t.Fatal(err)
	}

	if h.constants["k"] != 3 {
		t.Fatalf("const k = %v, want 3", h.constants["k"])
	}

	if err := NewScriptParser(h).ParseScriptLine("const k\n"); err == nil {
		t.Fatal("expected a const without '=' to fail")
	}
}

func TestScriptParserOutputAndSymbolicBindings(t *testing.T) {
	h := newFakeHost()

	script := "helper = x + 1\noutput y = helper * 2\n"
	if err := NewScriptParser(h).ParseScript(script); err != nil {
		t.Fatal(err)
	}

	if len(h.exprs) != 2 {
		t.Fatalf("expected 2 expressions recorded, got %d", len(h.exprs))
	}

	if h.exprs[0].name != "helper" || h.exprs[0].visibility != Symbolic {
		t.Fatalf("unexpected first binding: %+v", h.exprs[0])
	}

	if h.exprs[1].name != "y" || h.exprs[1].visibility != Public {
		t.Fatalf("unexpected second binding: %+v", h.exprs[1])
	}

	if h.exprs[0].text != " x + 1\n" {
		t.Fatalf("helper expression text = %q, want %q", h.exprs[0].text, " x + 1\n")
	}
}

func TestScriptParserCommentsAndBlankLinesAreSkipped(t *testing.T) {
	h := newFakeHost()

	script := "# a comment\n\ninput x # trailing comment\n   \n"
	if err := NewScriptParser(h).ParseScript(script); err != nil {
		t.Fatal(err)
	}

	if len(h.variables) != 1 || h.variables[0] != "x" {
		t.Fatalf("variables = %v, want [x]", h.variables)
	}
}

func TestScriptParserUnknownKeywordIsTreatedAsSymbolicName(t *testing.T) {
	h := newFakeHost()

	if err := NewScriptParser(h).ParseScript("foo = 1\n"); err != nil {
		t.Fatal(err)
	}

	if len(h.exprs) != 1 || h.exprs[0].name != "foo" {
		t.Fatalf("expected a symbolic binding named foo, got %+v", h.exprs)
	}
}

func TestScriptParserMissingEqualsFails(t *testing.T) {
	h := newFakeHost()

	if err := NewScriptParser(h).ParseScriptLine("foo 1\n"); err == nil {
		t.Fatal("expected a missing '=' to fail")
	}
}

func TestScriptParserPropagatesHostErrorFromLaterLine(t *testing.T) {
	h := newFakeHost()
	h.failNames["bad"] = fmt.Errorf("boom")

	err := NewScriptParser(h).ParseScript("input x\noutput bad = 1\n")
	if err == nil {
		t.Fatal("expected AddExpression's error to propagate")
	}

	if err.Error() != "boom" {
		t.Fatalf("error = %v, want boom", err)
	}
}

func TestScriptParserRejectsMissingDeclarationKeyword(t *testing.T) {
	h := newFakeHost()

	if err := NewScriptParser(h).ParseScriptLine("123\n"); err == nil {
		t.Fatal("expected a line starting with a number to fail")
	}
}
