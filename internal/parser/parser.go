package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/corani/pytac/internal/ast"
	"github.com/corani/pytac/internal/lexer"
)

// SyntaxError reports the first grammar violation encountered. Parsing stops
// at the first error, there is no recovery.
type SyntaxError struct {
	Loc      lexer.Location
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Loc, e.Expected, e.Found)
}

type Parser struct {
	tok   []lexer.Token
	index int
}

func New(tok []lexer.Token) *Parser {
	return &Parser{
		tok:   tok,
		index: 0,
	}
}

// Parse consumes the token stream and returns the program root.
func (p *Parser) Parse() (*ast.Program, error) {
	var loc lexer.Location

	if len(p.tok) > 0 {
		loc = p.tok[0].Location
	}

	program := ast.NewProgram(loc)

	for {
		next, err := p.nextToken()
		if err != nil {
			return program, nil // EOF
		}

		if next.Type == lexer.TypeEOF {
			return program, nil
		}

		p.index--

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		program.Statements = append(program.Statements, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	first, err := p.expectType(lexer.TypeKeyword, lexer.TypeIdent)
	if err != nil {
		return nil, err
	}

	switch first.Type {
	case lexer.TypeKeyword:
		switch first.Keyword {
		case lexer.KeywordDef:
			return p.parseFuncDef(first)
		case lexer.KeywordIf:
			return p.parseIf(first)
		case lexer.KeywordWhile:
			return p.parseWhile(first)
		case lexer.KeywordFor:
			return p.parseFor(first)
		case lexer.KeywordReturn:
			return p.parseReturn(first)
		case lexer.KeywordPrint:
			return p.parsePrint(first)
		default:
			return nil, p.errExpected("start of statement", first)
		}
	default:
		return p.parseAssignOrCall(first)
	}
}

// parseAssignOrCall handles the two statements that start with an identifier:
// an assignment or a bare call.
func (p *Parser) parseAssignOrCall(first lexer.Token) (ast.Statement, error) {
	next, err := p.expectType(lexer.TypeAssign, lexer.TypeLparen)
	if err != nil {
		return nil, err
	}

	switch next.Type {
	case lexer.TypeAssign:
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectType(lexer.TypeNewline); err != nil {
			return nil, err
		}

		return ast.NewAssign(first.Location, first.StringVal, value), nil
	default:
		p.index-- // parseCall consumes the lparen itself

		call, err := p.parseCall(first)
		if err != nil {
			return nil, err
		}

		if _, err := p.expectType(lexer.TypeNewline); err != nil {
			return nil, err
		}

		return ast.NewExprStmt(first.Location, call), nil
	}
}

func (p *Parser) parseReturn(first lexer.Token) (ast.Statement, error) {
	next, err := p.peekType(lexer.TypeNewline)
	if err != nil {
		return nil, err // EOF
	}

	if next.Type == lexer.TypeNewline {
		return ast.NewReturn(first.Location), nil
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeNewline); err != nil {
		return nil, err
	}

	return ast.NewReturn(first.Location, value), nil
}

func (p *Parser) parsePrint(first lexer.Token) (ast.Statement, error) {
	if _, err := p.expectType(lexer.TypeLparen); err != nil {
		return nil, err
	}

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeNewline); err != nil {
		return nil, err
	}

	return ast.NewPrint(first.Location, args...), nil
}

func (p *Parser) parseFuncDef(first lexer.Token) (ast.Statement, error) {
	name, err := p.expectType(lexer.TypeIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeLparen); err != nil {
		return nil, err
	}

	var params []string

	for {
		arg, err := p.expectType(lexer.TypeRparen, lexer.TypeIdent)
		if err != nil {
			return nil, err
		}

		if arg.Type == lexer.TypeRparen {
			break
		}

		params = append(params, arg.StringVal)

		tok, err := p.expectType(lexer.TypeComma, lexer.TypeRparen)
		if err != nil {
			return nil, err
		}

		if tok.Type == lexer.TypeRparen {
			break
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFuncDef(first.Location, name.StringVal, params, body), nil
}

func (p *Parser) parseIf(first lexer.Token) (ast.Statement, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	branches := []ast.Branch{ast.NewBranch(first.Location, cond, body)}

	var elseBody []ast.Statement

	for {
		next, err := p.peekType(lexer.TypeKeyword)
		if err != nil {
			break // EOF
		}

		if next.Type != lexer.TypeKeyword {
			break
		}

		switch next.Keyword {
		case lexer.KeywordElif:
			cond, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			branches = append(branches, ast.NewBranch(next.Location, cond, body))
		case lexer.KeywordElse:
			elseBody, err = p.parseBlock()
			if err != nil {
				return nil, err
			}

			return ast.NewIf(first.Location, branches, elseBody), nil
		default:
			p.index--

			return ast.NewIf(first.Location, branches, nil), nil
		}
	}

	return ast.NewIf(first.Location, branches, elseBody), nil
}

func (p *Parser) parseWhile(first lexer.Token) (ast.Statement, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewWhile(first.Location, cond, body), nil
}

// parseFor parses the restricted loop header
// `for <ident> in range(start, stop, step):` where 1, 2 or 3 arguments are
// accepted, defaulting start=0 and step=1.
func (p *Parser) parseFor(first lexer.Token) (ast.Statement, error) {
	loopVar, err := p.expectType(lexer.TypeIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword(lexer.KeywordIn); err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword(lexer.KeywordRange); err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeLparen); err != nil {
		return nil, err
	}

	args, err := p.parseExprList(lexer.TypeRparen)
	if err != nil {
		return nil, err
	}

	var start, stop, step ast.Expression

	switch len(args) {
	case 1:
		start = ast.NewIntLiteral(0, first.Location)
		stop = args[0]
		step = ast.NewIntLiteral(1, first.Location)
	case 2:
		start, stop = args[0], args[1]
		step = ast.NewIntLiteral(1, first.Location)
	case 3:
		start, stop, step = args[0], args[1], args[2]
	default:
		return nil, &SyntaxError{
			Loc:      first.Location,
			Expected: "1, 2 or 3 range arguments",
			Found:    fmt.Sprintf("%d arguments", len(args)),
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFor(first.Location, loopVar.StringVal, start, stop, step, body), nil
}

// parseBlock parses `':' NEWLINE INDENT statement+ DEDENT`. An empty block
// is a syntax error, the lexer never emits INDENT for a block with no
// statements.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expectType(lexer.TypeColon); err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeNewline); err != nil {
		return nil, err
	}

	if _, err := p.expectType(lexer.TypeIndent); err != nil {
		return nil, err
	}

	var body []ast.Statement

	for {
		next, err := p.expectType(lexer.TypeDedent, lexer.TypeEOF)
		if err == nil {
			if next.Type == lexer.TypeEOF {
				p.index--
			}

			break
		}

		p.index--

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	if len(body) == 0 {
		tok := p.tok[p.index-1]

		return nil, p.errExpected("at least one statement in block", tok)
	}

	return body, nil
}

func (p *Parser) parseArgList() ([]ast.Expression, error) {
	return p.parseExprList(lexer.TypeRparen)
}

// parseExprList parses a possibly-empty comma-separated expression list
// terminated by the given token type (consumed).
func (p *Parser) parseExprList(terminator lexer.TokenType) ([]ast.Expression, error) {
	var args []ast.Expression

	next, err := p.peekType(terminator)
	if err != nil {
		return nil, err // EOF
	}

	if next.Type == terminator {
		return args, nil
	}

	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, expr)

		next, err := p.expectType(lexer.TypeComma, terminator)
		if err != nil {
			return nil, err
		}

		if next.Type == terminator {
			return args, nil
		}
	}
}

func (p *Parser) errExpected(expected string, found lexer.Token) error {
	return &SyntaxError{
		Loc:      found.Location,
		Expected: expected,
		Found:    found.StringVal,
	}
}

func (p *Parser) expectKeyword(kws ...lexer.Keyword) (lexer.Token, error) {
	token, err := p.expectType(lexer.TypeKeyword)
	if err != nil {
		return token, err
	}

	var kwnames []string

	for _, kw := range kws {
		kwnames = append(kwnames, string(kw))

		if token.Keyword == kw {
			return token, nil
		}
	}

	return token, p.errExpected(strings.Join(kwnames, " or "), token)
}

func (p *Parser) peekType(tts ...lexer.TokenType) (lexer.Token, error) {
	tok, err := p.expectType(tts...)

	if errors.Is(err, io.EOF) {
		return tok, err
	} else if err != nil {
		p.index-- // Rollback index if not EOF
	}

	return tok, nil
}

func (p *Parser) expectType(tts ...lexer.TokenType) (lexer.Token, error) {
	token, err := p.nextToken()
	if err != nil {
		return token, err
	}

	var ttnames []string

	for _, tt := range tts {
		ttnames = append(ttnames, string(tt))
		if token.Type == tt {
			return token, nil
		}
	}

	return token, p.errExpected(strings.Join(ttnames, " or "), token)
}

func (p *Parser) nextToken() (lexer.Token, error) {
	if p.index >= len(p.tok) {
		return lexer.Token{}, io.EOF
	}

	token := p.tok[p.index]
	p.index++

	return token, nil
}
