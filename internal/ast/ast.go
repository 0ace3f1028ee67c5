package ast

import (
	"github.com/corani/pytac/internal/lexer"
)

// Visitor interface for double-dispatch on AST nodes.
type Visitor interface {
	VisitProgram(*Program)
	VisitFuncDef(*FuncDef)
	VisitAssign(*Assign)
	VisitIf(*If)
	VisitWhile(*While)
	VisitFor(*For)
	VisitReturn(*Return)
	VisitPrint(*Print)
	VisitExprStmt(*ExprStmt)
	VisitLiteral(*Literal)
	VisitName(*Name)
	VisitBinaryOp(*BinaryOp)
	VisitUnaryOp(*UnaryOp)
	VisitCall(*Call)
}

// Program is the root of the tree: the ordered top-level statements of one
// source file.
type Program struct {
	Statements []Statement
	Loc        lexer.Location
}

func NewProgram(location lexer.Location, statements ...Statement) *Program {
	return &Program{
		Statements: statements,
		Loc:        location,
	}
}

func (p *Program) Location() lexer.Location {
	return p.Loc
}

func (p *Program) Accept(v Visitor) {
	v.VisitProgram(p)
}

type Statement interface {
	isStatement()
	Location() lexer.Location
	Accept(v Visitor)
	String() string
}

var _ []Statement = []Statement{
	(*FuncDef)(nil),
	(*Assign)(nil),
	(*If)(nil),
	(*While)(nil),
	(*For)(nil),
	(*Return)(nil),
	(*Print)(nil),
	(*ExprStmt)(nil),
}

type Expression interface {
	isExpression()
	Location() lexer.Location
	Accept(v Visitor)
	String() string
}

var _ []Expression = []Expression{
	(*Literal)(nil),
	(*Name)(nil),
	(*BinaryOp)(nil),
	(*UnaryOp)(nil),
	(*Call)(nil),
}

// FuncDef represents a function definition. The body is never empty, the
// parser rejects empty blocks.
type FuncDef struct {
	Ident  string
	Params []string
	Body   []Statement
	Loc    lexer.Location
}

func NewFuncDef(location lexer.Location, ident string, params []string, body []Statement) *FuncDef {
	return &FuncDef{
		Ident:  ident,
		Params: params,
		Body:   body,
		Loc:    location,
	}
}

func (fd *FuncDef) Location() lexer.Location {
	return fd.Loc
}

func (fd *FuncDef) Accept(v Visitor) {
	v.VisitFuncDef(fd)
}

func (*FuncDef) isStatement() {}

// Assign represents `target = value`. Targets are plain identifiers, the
// language has no other lvalues.
type Assign struct {
	Target string
	Value  Expression
	Loc    lexer.Location
}

func NewAssign(location lexer.Location, target string, value Expression) *Assign {
	return &Assign{
		Target: target,
		Value:  value,
		Loc:    location,
	}
}

func (a *Assign) Location() lexer.Location {
	return a.Loc
}

func (a *Assign) Accept(v Visitor) {
	v.VisitAssign(a)
}

func (*Assign) isStatement() {}

// Branch is one `if`/`elif` arm: a condition and its (non-empty) body.
type Branch struct {
	Cond Expression
	Body []Statement
	Loc  lexer.Location
}

func NewBranch(location lexer.Location, cond Expression, body []Statement) Branch {
	return Branch{
		Cond: cond,
		Body: body,
		Loc:  location,
	}
}

// If represents an if/elif/else chain. Branches holds the `if` arm followed
// by the `elif` arms in source order; Else is nil when absent.
type If struct {
	Branches []Branch
	Else     []Statement
	Loc      lexer.Location
}

func NewIf(location lexer.Location, branches []Branch, elseBody []Statement) *If {
	return &If{
		Branches: branches,
		Else:     elseBody,
		Loc:      location,
	}
}

func (i *If) Location() lexer.Location {
	return i.Loc
}

func (i *If) Accept(v Visitor) {
	v.VisitIf(i)
}

func (*If) isStatement() {}

type While struct {
	Cond Expression
	Body []Statement
	Loc  lexer.Location
}

func NewWhile(location lexer.Location, cond Expression, body []Statement) *While {
	return &While{
		Cond: cond,
		Body: body,
		Loc:  location,
	}
}

func (w *While) Location() lexer.Location {
	return w.Loc
}

func (w *While) Accept(v Visitor) {
	v.VisitWhile(w)
}

func (*While) isStatement() {}

// For represents `for <var> in range(start, stop, step)`. The parser fills
// in the defaults start=0 and step=1 when the range call omits them.
type For struct {
	Var   string
	Start Expression
	Stop  Expression
	Step  Expression
	Body  []Statement
	Loc   lexer.Location
}

func NewFor(location lexer.Location, loopVar string, start, stop, step Expression, body []Statement) *For {
	return &For{
		Var:   loopVar,
		Start: start,
		Stop:  stop,
		Step:  step,
		Body:  body,
		Loc:   location,
	}
}

func (f *For) Location() lexer.Location {
	return f.Loc
}

func (f *For) Accept(v Visitor) {
	v.VisitFor(f)
}

func (*For) isStatement() {}

type Return struct {
	Value Expression // optional return value
	Loc   lexer.Location
}

func NewReturn(location lexer.Location, val ...Expression) *Return {
	switch len(val) {
	case 0:
		return &Return{Loc: location}
	case 1:
		return &Return{Value: val[0], Loc: location}
	default:
		panic("Return can only have one value")
	}
}

func (r *Return) Location() lexer.Location {
	return r.Loc
}

func (r *Return) Accept(v Visitor) {
	v.VisitReturn(r)
}

func (*Return) isStatement() {}

type Print struct {
	Args []Expression
	Loc  lexer.Location
}

func NewPrint(location lexer.Location, args ...Expression) *Print {
	return &Print{
		Args: args,
		Loc:  location,
	}
}

func (p *Print) Location() lexer.Location {
	return p.Loc
}

func (p *Print) Accept(v Visitor) {
	v.VisitPrint(p)
}

func (*Print) isStatement() {}

// ExprStmt is an expression evaluated for its side effect, in practice a
// bare function call.
type ExprStmt struct {
	Value Expression
	Loc   lexer.Location
}

func NewExprStmt(location lexer.Location, value Expression) *ExprStmt {
	return &ExprStmt{
		Value: value,
		Loc:   location,
	}
}

func (e *ExprStmt) Location() lexer.Location {
	return e.Loc
}

func (e *ExprStmt) Accept(v Visitor) {
	v.VisitExprStmt(e)
}

func (*ExprStmt) isStatement() {}

type LiteralKind string

const (
	LiteralInt    LiteralKind = "int"
	LiteralFloat  LiteralKind = "float"
	LiteralString LiteralKind = "string"
	LiteralBool   LiteralKind = "bool"
	LiteralNone   LiteralKind = "none"
)

type Literal struct {
	Kind        LiteralKind
	IntValue    int
	FloatValue  float64
	StringValue string
	BoolValue   bool
	Loc         lexer.Location
}

func NewIntLiteral(val int, location lexer.Location) *Literal {
	return &Literal{
		Kind:     LiteralInt,
		IntValue: val,
		Loc:      location,
	}
}

func NewFloatLiteral(val float64, location lexer.Location) *Literal {
	return &Literal{
		Kind:       LiteralFloat,
		FloatValue: val,
		Loc:        location,
	}
}

func NewStringLiteral(val string, location lexer.Location) *Literal {
	return &Literal{
		Kind:        LiteralString,
		StringValue: val,
		Loc:         location,
	}
}

func NewBoolLiteral(val bool, location lexer.Location) *Literal {
	return &Literal{
		Kind:      LiteralBool,
		BoolValue: val,
		Loc:       location,
	}
}

func NewNoneLiteral(location lexer.Location) *Literal {
	return &Literal{
		Kind: LiteralNone,
		Loc:  location,
	}
}

func (l *Literal) Location() lexer.Location {
	return l.Loc
}

func (l *Literal) Accept(v Visitor) {
	v.VisitLiteral(l)
}

func (*Literal) isExpression() {}

// Name is a reference to a source identifier.
type Name struct {
	Ident string
	Loc   lexer.Location
}

func NewName(ident string, location lexer.Location) *Name {
	return &Name{
		Ident: ident,
		Loc:   location,
	}
}

func (n *Name) Location() lexer.Location {
	return n.Loc
}

func (n *Name) Accept(v Visitor) {
	v.VisitName(n)
}

func (*Name) isExpression() {}

// BinOpKind represents the kind of binary operation.
type BinOpKind string

const (
	BinOpAdd BinOpKind = "+"
	BinOpSub BinOpKind = "-"
	BinOpMul BinOpKind = "*"
	BinOpDiv BinOpKind = "/"
	BinOpMod BinOpKind = "%"
	BinOpEq  BinOpKind = "=="
	BinOpNe  BinOpKind = "!="
	BinOpLt  BinOpKind = "<"
	BinOpLe  BinOpKind = "<="
	BinOpGt  BinOpKind = ">"
	BinOpGe  BinOpKind = ">="
	BinOpAnd BinOpKind = "and"
	BinOpOr  BinOpKind = "or"
)

type BinaryOp struct {
	Operation BinOpKind
	Lhs, Rhs  Expression
	Loc       lexer.Location
}

func NewBinaryOp(op BinOpKind, lhs, rhs Expression, location lexer.Location) *BinaryOp {
	return &BinaryOp{
		Operation: op,
		Lhs:       lhs,
		Rhs:       rhs,
		Loc:       location,
	}
}

func (b *BinaryOp) Location() lexer.Location {
	return b.Loc
}

func (b *BinaryOp) Accept(v Visitor) {
	v.VisitBinaryOp(b)
}

func (*BinaryOp) isExpression() {}

// UnaryOpKind represents the kind of unary operation.
type UnaryOpKind string

const (
	UnaryOpMinus UnaryOpKind = "-"
	UnaryOpNot   UnaryOpKind = "not"
)

type UnaryOp struct {
	Operation UnaryOpKind
	Expr      Expression
	Loc       lexer.Location
}

func NewUnaryOp(op UnaryOpKind, expr Expression, location lexer.Location) *UnaryOp {
	return &UnaryOp{
		Operation: op,
		Expr:      expr,
		Loc:       location,
	}
}

func (u *UnaryOp) Location() lexer.Location {
	return u.Loc
}

func (u *UnaryOp) Accept(v Visitor) {
	v.VisitUnaryOp(u)
}

func (*UnaryOp) isExpression() {}

type Call struct {
	Ident string
	Args  []Expression
	Loc   lexer.Location
}

func NewCall(location lexer.Location, ident string, args ...Expression) *Call {
	return &Call{
		Ident: ident,
		Args:  args,
		Loc:   location,
	}
}

func (c *Call) Location() lexer.Location {
	return c.Loc
}

func (c *Call) Accept(v Visitor) {
	v.VisitCall(c)
}

func (*Call) isExpression() {}
