package parser

import (
	"github.com/corani/pytac/internal/ast"
	"github.com/corani/pytac/internal/lexer"
)

// Binding powers, low to high. `not` sits between `and` and the
// comparisons, so `not a == b` parses as `not (a == b)`.
const (
	precOr  = 1
	precAnd = 2
	precNot = 3
	precCmp = 4
	precAdd = 5
	precMul = 6
)

type binOp struct {
	kind ast.BinOpKind
	prec int
}

var binOps = map[lexer.TokenType]binOp{
	lexer.TypePlus:    {ast.BinOpAdd, precAdd},
	lexer.TypeMinus:   {ast.BinOpSub, precAdd},
	lexer.TypeStar:    {ast.BinOpMul, precMul},
	lexer.TypeSlash:   {ast.BinOpDiv, precMul},
	lexer.TypePercent: {ast.BinOpMod, precMul},
	lexer.TypeEq:      {ast.BinOpEq, precCmp},
	lexer.TypeNe:      {ast.BinOpNe, precCmp},
	lexer.TypeLt:      {ast.BinOpLt, precCmp},
	lexer.TypeLe:      {ast.BinOpLe, precCmp},
	lexer.TypeGt:      {ast.BinOpGt, precCmp},
	lexer.TypeGe:      {ast.BinOpGe, precCmp},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr is a precedence-climbing loop. All binary operators are
// left-associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.nextToken()
		if err != nil {
			return lhs, nil // EOF
		}

		op, prec, ok := p.binaryOp(tok)
		if !ok || prec < minPrec {
			p.index--

			return lhs, nil
		}

		rhs, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs = ast.NewBinaryOp(op, lhs, rhs, tok.Location)
	}
}

func (p *Parser) binaryOp(tok lexer.Token) (ast.BinOpKind, int, bool) {
	if tok.Type == lexer.TypeKeyword {
		switch tok.Keyword {
		case lexer.KeywordAnd:
			return ast.BinOpAnd, precAnd, true
		case lexer.KeywordOr:
			return ast.BinOpOr, precOr, true
		default:
			return "", 0, false
		}
	}

	op, ok := binOps[tok.Type]

	return op.kind, op.prec, ok
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Type == lexer.TypeMinus:
		// Unary minus binds tighter than any binary operator, so the
		// operand is another unary expression, not a whole term.
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return ast.NewUnaryOp(ast.UnaryOpMinus, operand, tok.Location), nil
	case tok.Type == lexer.TypeKeyword && tok.Keyword == lexer.KeywordNot:
		operand, err := p.parseBinaryExpr(precNot + 1)
		if err != nil {
			return nil, err
		}

		return ast.NewUnaryOp(ast.UnaryOpNot, operand, tok.Location), nil
	default:
		p.index--

		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case lexer.TypeNumber:
		return ast.NewIntLiteral(tok.NumberVal, tok.Location), nil
	case lexer.TypeFloat:
		return ast.NewFloatLiteral(tok.FloatVal, tok.Location), nil
	case lexer.TypeString:
		return ast.NewStringLiteral(tok.StringVal, tok.Location), nil
	case lexer.TypeIdent:
		next, err := p.peekType(lexer.TypeLparen)
		if err == nil && next.Type == lexer.TypeLparen {
			p.index--

			return p.parseCall(tok)
		}

		return ast.NewName(tok.StringVal, tok.Location), nil
	case lexer.TypeLparen:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectType(lexer.TypeRparen); err != nil {
			return nil, err
		}

		return expr, nil
	case lexer.TypeKeyword:
		switch tok.Keyword {
		case lexer.KeywordTrue:
			return ast.NewBoolLiteral(true, tok.Location), nil
		case lexer.KeywordFalse:
			return ast.NewBoolLiteral(false, tok.Location), nil
		case lexer.KeywordNone:
			return ast.NewNoneLiteral(tok.Location), nil
		default:
			return nil, p.errExpected("expression", tok)
		}
	default:
		return nil, p.errExpected("expression", tok)
	}
}

// parseCall parses the argument list of a call whose name token has already
// been consumed.
func (p *Parser) parseCall(name lexer.Token) (ast.Expression, error) {
	if _, err := p.expectType(lexer.TypeLparen); err != nil {
		return nil, err
	}

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	return ast.NewCall(name.Location, name.StringVal, args...), nil
}