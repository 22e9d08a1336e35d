package parser

import (
	"fmt"

	"github.com/sixpack-lang/sixpack/pkg/ast"
	"github.com/sixpack-lang/sixpack/pkg/expression"
	"github.com/sixpack-lang/sixpack/pkg/source"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
	"github.com/sixpack-lang/sixpack/pkg/token"
)

// ExpressionParser parses expression text against a fixed Lexicon of bound
// names. The precedence levels, highest first, are: primaries (L0), '^'
// (L1, left-to-right chain), prefix unary '+'/'-' (L2, non-repeatable),
// '*'/'/' (L3, left-associative), '+'/'-' (L4, left-associative).
type ExpressionParser struct {
	lexicon *symbol.Lexicon
}

// NewExpressionParser constructs a parser resolving identifiers against the
// given lexicon.
func NewExpressionParser(lexicon *symbol.Lexicon) *ExpressionParser {
	return &ExpressionParser{lexicon: lexicon}
}

// ParseToTree parses input into a raw AST, returning a syntax error directly
// (used by callers, e.g. dump tooling, that want the tree without wrapping it
// in an Expression).
func (p *ExpressionParser) ParseToTree(input string) (root ast.Node, err *source.SyntaxError) {
	defer recoverParse(&err)

	impl := &exprParserImpl{base: newBase(input), lexicon: p.lexicon}
	root = impl.parseExpr()
	impl.expect(token.END, "expected end of expression")

	return root, nil
}

// ParseToExpression parses input into an Expression, capturing any parse
// error inside the result rather than returning it, matching the original
// API's "parse now, report later" Expression value.
func (p *ExpressionParser) ParseToExpression(input string) expression.Expression {
	root, err := p.ParseToTree(input)
	if err != nil {
		return expression.Failed(input, err)
	}

	return expression.OK(input, root)
}

// exprParserImpl holds the recursive-descent implementation.
type exprParserImpl struct {
	*base
	lexicon *symbol.Lexicon
}

// parseExpr == add, the lowest-precedence entry point.
func (p *exprParserImpl) parseExpr() ast.Node {
	return p.parseAdd()
}

func (p *exprParserImpl) parseAdd() ast.Node {
	left := p.parseMul()

	for {
		var opType ast.BinaryOperatorType

		switch {
		case p.accept(token.PLUS):
			opType = ast.BinPlus
		case p.accept(token.MINUS):
			opType = ast.BinMinus
		default:
			return left
		}

		opToken := p.lastToken
		right := p.parseMul()
		node := ast.NewBinaryOperator(opType, left, right)
		ast.SetSpans(node, opToken.Span(), left.Outer().Merge(right.Outer()))
		left = node
	}
}

func (p *exprParserImpl) parseMul() ast.Node {
	left := p.parseUnary()

	for {
		var opType ast.BinaryOperatorType

		switch {
		case p.accept(token.ASTERISK):
			opType = ast.BinAsterisk
		case p.accept(token.SLASH):
			opType = ast.BinSlash
		default:
			return left
		}

		opToken := p.lastToken
		right := p.parseUnary()
		node := ast.NewBinaryOperator(opType, left, right)
		ast.SetSpans(node, opToken.Span(), left.Outer().Merge(right.Outer()))
		left = node
	}
}

// parseUnary handles a single, non-repeatable prefix '+'/'-' before falling
// through to '^'.
func (p *exprParserImpl) parseUnary() ast.Node {
	var unaryType ast.UnaryOperatorType

	switch {
	case p.accept(token.PLUS):
		unaryType = ast.Plus
	case p.accept(token.MINUS):
		unaryType = ast.Minus
	default:
		return p.parsePow()
	}

	opToken := p.lastToken
	operand := p.parsePow()
	node := ast.NewUnaryOperator(unaryType, operand)
	ast.SetSpans(node, opToken.Span(), opToken.Span().Merge(operand.Outer()))

	return node
}

// parsePow implements '^' as a left-to-right chain over atoms.
func (p *exprParserImpl) parsePow() ast.Node {
	left := p.parseAtom()

	for p.accept(token.CARET) {
		opToken := p.lastToken
		right := p.parseAtom()
		node := ast.NewBinaryOperator(ast.BinCaret, left, right)
		ast.SetSpans(node, opToken.Span(), left.Outer().Merge(right.Outer()))
		left = node
	}

	return left
}

func (p *exprParserImpl) parseAtom() ast.Node {
	tok := p.nextToken()

	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		node := ast.NewLiteral(tok.Value)
		ast.SetSpans(node, tok.Span(), tok.Span())

		return node

	case token.IDENTIFIER:
		p.advance()

		return p.parseIdentifier(tok)

	case token.LPAREN:
		return p.parseBracketed(token.LPAREN, token.RPAREN)

	case token.LBRACKET:
		return p.parseBracketed(token.LBRACKET, token.RBRACKET)

	default:
		p.fail(fmt.Sprintf("expected an expression but found %s", tok.Kind), tok.Position)

		panic("unreachable")
	}
}

// parseBracketed parses "(expr)" or "[expr]"; the two bracket kinds are
// interchangeable but must balance by kind.
func (p *exprParserImpl) parseBracketed(open, close token.Kind) ast.Node {
	openTok := p.nextToken()
	p.advance() // consume the opening bracket, already verified by caller

	inner := p.parseExpr()

	if p.nextToken().Kind != close {
		p.fail(fmt.Sprintf("expected %s to close %s", close, open), -1)
	}

	closeTok := p.nextToken()
	p.advance()

	outer := openTok.Span().Merge(closeTok.Span())
	// Reuse the inner node but widen its outer span to include the brackets;
	// the brackets themselves introduce no new AST node, matching the
	// grammar's "interchangeable grouping" rule.
	ast.SetSpans(inner, inner.Inner(), outer)

	return inner
}

func (p *exprParserImpl) parseIdentifier(tok token.Token) ast.Node {
	sym := p.lexicon.Find(tok.Text)
	if sym == nil {
		p.fail(fmt.Sprintf("unknown identifier '%s'", tok.Text), tok.Position)
	}

	if fn, ok := sym.(*symbol.FunctionSymbol); ok {
		p.expect(token.LPAREN, fmt.Sprintf("expected '(' after function '%s'", tok.Text))

		argument := p.parseExpr()

		closeTok := p.nextToken()
		p.expect(token.RPAREN, "expected ')' to close function call")

		node := ast.NewUnaryFunction(fn, argument)
		ast.SetSpans(node, tok.Span(), tok.Span().Merge(closeTok.Span()))

		return node
	}

	node := ast.NewValue(sym)
	ast.SetSpans(node, tok.Span(), tok.Span())

	return node
}
