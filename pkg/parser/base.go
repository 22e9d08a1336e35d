// Package parser implements the Pratt-style expression parser and the
// line-oriented script parser, both built on the shared base token cursor.
package parser

import (
	"fmt"

	"github.com/sixpack-lang/sixpack/pkg/lex"
	"github.com/sixpack-lang/sixpack/pkg/source"
	"github.com/sixpack-lang/sixpack/pkg/token"
)

// base provides the token-cursor primitives (accept/expect/fail) shared by
// the expression and script parsers.
type base struct {
	lexer     *lex.Lexer
	next      token.Token
	lastToken token.Token
}

func newBase(input string) *base {
	b := &base{lexer: lex.New(input)}
	b.next = b.lexer.Next()

	return b
}

func (p *base) input() string { return p.lexer.Input() }

func (p *base) nextToken() token.Token { return p.next }

func (p *base) advance() {
	p.lastToken = p.next
	p.next = p.lexer.Next()
}

// accept consumes the next token if it matches kind, reporting whether it
// did.
func (p *base) accept(kind token.Kind) bool {
	if p.next.Kind != kind {
		return false
	}

	p.advance()

	return true
}

// expect consumes the next token, which must match kind, or fails.
func (p *base) expect(kind token.Kind, message string) {
	if p.next.Kind != kind {
		if message == "" {
			message = fmt.Sprintf("expected %s but found %s", kind, p.next.Kind)
		}

		p.fail(message, -1)
	}

	p.advance()
}

// fail reports a parse failure at the given position (or the next token's
// position, if pos < 0).
func (p *base) fail(message string, pos source.Position) {
	if pos < 0 {
		pos = p.next.Position
	}

	end := pos + 1
	if p.next.IsEnd() {
		end = pos
	}

	panic(parseFailure{source.NewSyntaxError(source.NewSpan(pos, end), message)})
}

// parseFailure is recovered at the top of each public parse entry point so
// that deeply recursive descent parsing doesn't need to thread error returns
// through every call.
type parseFailure struct {
	err *source.SyntaxError
}

// recoverParse converts a panicked parseFailure into a returned error, and
// re-panics anything else.
func recoverParse(errp **source.SyntaxError) {
	if r := recover(); r != nil {
		if pf, ok := r.(parseFailure); ok {
			*errp = pf.err

			return
		}

		panic(r)
	}
}
