package parser

import (
	"fmt"
	"strings"

	"github.com/sixpack-lang/sixpack/pkg/expression"
	"github.com/sixpack-lang/sixpack/pkg/source"
	"github.com/sixpack-lang/sixpack/pkg/token"
)

// Visibility controls whether an expression added via ScriptHost.AddExpression
// becomes visible to later expressions, to the output set, both, or neither.
type Visibility uint8

const (
	// Public expressions are visible to later expressions and are an output.
	Public Visibility = iota
	// Private expressions are an output only, not referenceable by name.
	Private
	// Symbolic expressions are referenceable by name but not an output.
	Symbolic
)

// ScriptHost is the subset of the compiler a ScriptParser drives. Declared
// here (rather than importing pkg/compiler) to avoid a parser<->compiler
// import cycle: the compiler itself uses an ExpressionParser internally.
type ScriptHost interface {
	AddVariable(name string) error
	AddParameter(name string, value float64) error
	AddConstant(name string, value float64) error
	AddExpression(name, exprText string, visibility Visibility) (expression.Expression, error)
}

// ScriptParser parses a line-oriented declaration script:
//
//	input <name>
//	param <name> [ = <number> ]
//	const <name> = <number>
//	output <name> = <expression>
//	<name> = <expression>            (symbolic-only binding)
//
// '#' starts a line comment.
type ScriptParser struct {
	host ScriptHost
}

// NewScriptParser constructs a script parser driving the given host.
func NewScriptParser(host ScriptHost) *ScriptParser {
	return &ScriptParser{host: host}
}

// ParseScript parses every line of input, stopping at (and returning) the
// first error.
func (p *ScriptParser) ParseScript(input string) error {
	offset := 0

	for _, line := range strings.SplitAfter(input, "\n") {
		if line == "" {
			continue
		}

		if err := p.ParseScriptLine(line); err != nil {
			if se, ok := err.(*source.SyntaxError); ok {
				return se.Offset(offset)
			}

			return err
		}

		offset += len(line)
	}

	return nil
}

// ParseScriptLine parses a single line (as ParseScript does, but without
// whole-script position translation).
func (p *ScriptParser) ParseScriptLine(input string) (err error) {
	line := stripComment(input)
	if strings.TrimSpace(line) == "" {
		return nil
	}

	var syntaxErr *source.SyntaxError

	// Deferred calls run last-in first-out: recoverParse must run before
	// the closure that copies its result into err.
	defer func() {
		if syntaxErr != nil {
			err = syntaxErr
		}
	}()

	defer recoverParse(&syntaxErr)

	b := newBase(line)

	return p.parseDecl(b)
}

// stripComment removes a trailing '#'-comment, respecting none of the
// quoting rules a fuller language might need (the grammar has no string
// literals to protect a '#' inside).
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}

	return line
}

func (p *ScriptParser) parseDecl(b *base) error {
	if b.nextToken().Kind != token.IDENTIFIER {
		b.fail(fmt.Sprintf("expected a declaration keyword or name but found %s", b.nextToken().Kind), -1)
	}

	keyword := b.nextToken()

	switch keyword.Text {
	case "input":
		b.advance()

		name := expectName(b)

		return p.host.AddVariable(name)

	case "param":
		b.advance()

		name := expectName(b)
		value := 0.0

		if b.accept(token.EQUALS) {
			value = expectNumber(b)
		}

		return p.host.AddParameter(name, value)

	case "const":
		b.advance()

		name := expectName(b)
		b.expect(token.EQUALS, "expected '=' after const name")
		value := expectNumber(b)

		return p.host.AddConstant(name, value)

	case "output":
		b.advance()

		name := expectName(b)
		b.expect(token.EQUALS, "expected '=' after output name")

		return p.parseRHS(b, name, Public)

	default:
		// Symbolic binding: "<name> = <expression>".
		b.advance()

		b.expect(token.EQUALS, fmt.Sprintf("expected '=' after name '%s'", keyword.Text))

		return p.parseRHS(b, keyword.Text, Symbolic)
	}
}

// parseRHS hands everything from the character after '=' to end of line to
// the expression parser (via AddExpression), translating an embedded parse
// error back into this line's coordinates.
func (p *ScriptParser) parseRHS(b *base, name string, visibility Visibility) error {
	eqEnd := b.lastToken.Position + len(b.lastToken.Text)
	exprText := b.input()[eqEnd:]

	expr, err := p.host.AddExpression(name, exprText, visibility)
	if err != nil {
		return err
	}

	if !expr.IsOK() {
		b.fail(expr.Error(), eqEnd+expr.ErrorPosition())
	}

	return nil
}

func expectName(b *base) string {
	tok := b.nextToken()
	b.expect(token.IDENTIFIER, "expected a name")

	return tok.Text
}

func expectNumber(b *base) float64 {
	tok := b.nextToken()
	b.expect(token.NUMBER, "expected a number")

	return tok.Value
}
