package tac

import (
	"cmp"
	"fmt"

	"github.com/corani/pytac/internal/ast"
	"github.com/corani/pytac/internal/lexer"
)

// CodegenError reports a construct the generator cannot lower.
type CodegenError struct {
	Loc    lexer.Location
	Reason string
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Reason)
}

type funcInfo struct {
	params []string
}

// lowerer walks the tree and appends instructions in program order. Each
// expression visit leaves its result in lastOperand.
type lowerer struct {
	instructions []Instruction
	funcs        map[string]funcInfo
	lastOperand  Operand
	tmpCounter   int
	labelCounter int
	bodyDepth    int
	err          error
}

// Lower converts the program to its TAC form. Function bodies are emitted
// first, top-level statements after the last FUNC_END. Function names are
// collected up front so calls may precede the definition in source order.
func Lower(prog *ast.Program) (*Program, error) {
	l := &lowerer{
		funcs: make(map[string]funcInfo),
	}

	for _, stmt := range prog.Statements {
		def, ok := stmt.(*ast.FuncDef)
		if !ok {
			continue
		}

		if _, exists := l.funcs[def.Ident]; exists {
			return nil, &CodegenError{
				Loc:    def.Loc,
				Reason: fmt.Sprintf("function %q redefined", def.Ident),
			}
		}

		l.funcs[def.Ident] = funcInfo{params: def.Params}
	}

	prog.Accept(l)

	if l.err != nil {
		return nil, l.err
	}

	return &Program{Instructions: l.instructions}, nil
}

func (l *lowerer) emit(inst Instruction) {
	if l.err != nil {
		return
	}

	l.instructions = append(l.instructions, inst)
}

func (l *lowerer) fail(loc lexer.Location, format string, args ...any) {
	if l.err != nil {
		return
	}

	l.err = &CodegenError{Loc: loc, Reason: fmt.Sprintf(format, args...)}
}

func (l *lowerer) nextTemp() Operand {
	l.tmpCounter++

	return NewTempOperand(fmt.Sprintf("_t%d", l.tmpCounter))
}

func (l *lowerer) nextLabel() Operand {
	l.labelCounter++

	return NewLabelOperand(fmt.Sprintf("L%d", l.labelCounter))
}

// lowerExpr visits an expression and returns the operand holding its value.
func (l *lowerer) lowerExpr(expr ast.Expression) Operand {
	if l.err != nil {
		return Operand{}
	}

	expr.Accept(l)

	return l.lastOperand
}

func (l *lowerer) lowerBody(body []ast.Statement) {
	l.bodyDepth++
	defer func() { l.bodyDepth-- }()

	for _, stmt := range body {
		if l.err != nil {
			return
		}

		stmt.Accept(l)
	}
}

func (l *lowerer) VisitProgram(p *ast.Program) {
	for _, stmt := range p.Statements {
		if _, ok := stmt.(*ast.FuncDef); ok {
			stmt.Accept(l)
		}
	}

	for _, stmt := range p.Statements {
		if _, ok := stmt.(*ast.FuncDef); !ok {
			stmt.Accept(l)
		}
	}
}

func (l *lowerer) VisitFuncDef(fd *ast.FuncDef) {
	if l.err != nil {
		return
	}

	if l.bodyDepth > 0 {
		l.fail(fd.Loc, "function definitions are only allowed at top level")

		return
	}

	// ;; FUNC_BEGIN name, params...
	// ;;   <body>
	// ;;   RETURN          (implicit, when the body doesn't end in one)
	// ;; FUNC_END name
	l.emit(NewFuncBegin(fd.Loc, fd.Ident, fd.Params))
	l.lowerBody(fd.Body)

	if _, ok := fd.Body[len(fd.Body)-1].(*ast.Return); !ok {
		l.emit(NewReturn(fd.Loc))
	}

	l.emit(NewFuncEnd(fd.Loc, fd.Ident))
}

func (l *lowerer) VisitAssign(a *ast.Assign) {
	value := l.lowerExpr(a.Value)

	l.emit(NewAssign(a.Loc, NewIdentOperand(a.Target), value))
}

func (l *lowerer) VisitIf(i *ast.If) {
	// ;;   IF_FALSE_GOTO cond1, L_next1
	// ;;   <body1>
	// ;;   GOTO L_end
	// ;; L_next1:
	// ;;   ...
	// ;;   <else body>
	// ;; L_end:
	end := l.nextLabel()

	for _, branch := range i.Branches {
		cond := l.lowerExpr(branch.Cond)
		next := l.nextLabel()

		l.emit(NewIfFalseGoto(branch.Loc, cond, next))
		l.lowerBody(branch.Body)
		l.emit(NewGoto(branch.Loc, end))
		l.emit(NewLabel(branch.Loc, next))
	}

	l.lowerBody(i.Else)
	l.emit(NewLabel(i.Loc, end))
}

func (l *lowerer) VisitWhile(w *ast.While) {
	// ;; L_start:
	// ;;   IF_FALSE_GOTO cond, L_end
	// ;;   <body>
	// ;;   GOTO L_start
	// ;; L_end:
	start := l.nextLabel()
	end := l.nextLabel()

	l.emit(NewLabel(w.Loc, start))

	cond := l.lowerExpr(w.Cond)

	l.emit(NewIfFalseGoto(w.Loc, cond, end))
	l.lowerBody(w.Body)
	l.emit(NewGoto(w.Loc, start))
	l.emit(NewLabel(w.Loc, end))
}

func (l *lowerer) VisitFor(f *ast.For) {
	// Range arguments are evaluated once, before the loop.
	start := l.lowerExpr(f.Start)
	stop := l.lowerExpr(f.Stop)
	step := l.lowerExpr(f.Step)

	loopVar := NewIdentOperand(f.Var)

	l.emit(NewAssign(f.Loc, loopVar, start))

	sign, known := stepSign(f.Step)
	if known && sign == 0 {
		l.fail(f.Loc, "for-range step is zero")

		return
	}

	if known {
		l.lowerForKnownStep(f, loopVar, stop, step, sign)
	} else {
		l.lowerForRuntimeStep(f, loopVar, stop, step)
	}
}

// lowerForKnownStep handles a step whose sign is a compile-time constant.
//
//	;; L_cond:
//	;;   t = CMP_LT i, stop     (CMP_GT for a negative step)
//	;;   IF_FALSE_GOTO t, L_end
//	;;   <body>
//	;;   t2 = ADD i, step
//	;;   ASSIGN i, t2
//	;;   GOTO L_cond
//	;; L_end:
func (l *lowerer) lowerForKnownStep(f *ast.For, loopVar, stop, step Operand, sign int) {
	cmpOp := OpCmpLt
	if sign < 0 {
		cmpOp = OpCmpGt
	}

	cond := l.nextLabel()
	end := l.nextLabel()

	l.emit(NewLabel(f.Loc, cond))

	check := l.nextTemp()

	l.emit(NewBinary(f.Loc, cmpOp, check, loopVar, stop))
	l.emit(NewIfFalseGoto(f.Loc, check, end))
	l.lowerBody(f.Body)
	l.emitForIncrement(f, loopVar, step, cond)
	l.emit(NewLabel(f.Loc, end))
}

// lowerForRuntimeStep guards the comparison direction on the step's sign,
// re-checked each iteration since the step operand is not a constant.
//
//	;; L_cond:
//	;;   s = CMP_GT step, 0
//	;;   IF_FALSE_GOTO s, L_down
//	;;   up = CMP_LT i, stop
//	;;   IF_FALSE_GOTO up, L_end
//	;;   GOTO L_body
//	;; L_down:
//	;;   down = CMP_GT i, stop
//	;;   IF_FALSE_GOTO down, L_end
//	;; L_body:
//	;;   <body>
//	;;   t = ADD i, step
//	;;   ASSIGN i, t
//	;;   GOTO L_cond
//	;; L_end:
func (l *lowerer) lowerForRuntimeStep(f *ast.For, loopVar, stop, step Operand) {
	cond := l.nextLabel()
	down := l.nextLabel()
	body := l.nextLabel()
	end := l.nextLabel()

	l.emit(NewLabel(f.Loc, cond))

	signCheck := l.nextTemp()

	l.emit(NewBinary(f.Loc, OpCmpGt, signCheck, step, NewIntOperand(0)))
	l.emit(NewIfFalseGoto(f.Loc, signCheck, down))

	upCheck := l.nextTemp()

	l.emit(NewBinary(f.Loc, OpCmpLt, upCheck, loopVar, stop))
	l.emit(NewIfFalseGoto(f.Loc, upCheck, end))
	l.emit(NewGoto(f.Loc, body))
	l.emit(NewLabel(f.Loc, down))

	downCheck := l.nextTemp()

	l.emit(NewBinary(f.Loc, OpCmpGt, downCheck, loopVar, stop))
	l.emit(NewIfFalseGoto(f.Loc, downCheck, end))
	l.emit(NewLabel(f.Loc, body))
	l.lowerBody(f.Body)
	l.emitForIncrement(f, loopVar, step, cond)
	l.emit(NewLabel(f.Loc, end))
}

func (l *lowerer) emitForIncrement(f *ast.For, loopVar, step, cond Operand) {
	next := l.nextTemp()

	l.emit(NewBinary(f.Loc, OpAdd, next, loopVar, step))
	l.emit(NewAssign(f.Loc, loopVar, next))
	l.emit(NewGoto(f.Loc, cond))
}

// stepSign reports the sign of a literal step expression, looking through a
// leading unary minus. known is false for anything non-constant.
func stepSign(expr ast.Expression) (sign int, known bool) {
	neg := false

	if unary, ok := expr.(*ast.UnaryOp); ok && unary.Operation == ast.UnaryOpMinus {
		neg = true
		expr = unary.Expr
	}

	lit, ok := expr.(*ast.Literal)
	if !ok {
		return 0, false
	}

	switch lit.Kind {
	case ast.LiteralInt:
		sign = cmp.Compare(lit.IntValue, 0)
	case ast.LiteralFloat:
		sign = cmp.Compare(lit.FloatValue, 0)
	case ast.LiteralBool:
		if lit.BoolValue {
			sign = 1
		}
	case ast.LiteralNone:
		sign = 0
	default:
		return 0, false
	}

	if neg {
		sign = -sign
	}

	return sign, true
}

func (l *lowerer) VisitReturn(r *ast.Return) {
	if r.Value == nil {
		l.emit(NewReturn(r.Loc))

		return
	}

	value := l.lowerExpr(r.Value)

	l.emit(NewReturn(r.Loc, value))
}

func (l *lowerer) VisitPrint(p *ast.Print) {
	for _, arg := range p.Args {
		value := l.lowerExpr(arg)

		l.emit(NewPrint(p.Loc, value))
	}
}

func (l *lowerer) VisitExprStmt(e *ast.ExprStmt) {
	// The result operand, if any, is simply discarded.
	l.lowerExpr(e.Value)
}

func (l *lowerer) VisitLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LiteralInt:
		l.lastOperand = NewIntOperand(lit.IntValue)
	case ast.LiteralFloat:
		l.lastOperand = NewFloatOperand(lit.FloatValue)
	case ast.LiteralString:
		l.lastOperand = NewStringOperand(lit.StringValue)
	case ast.LiteralBool:
		if lit.BoolValue {
			l.lastOperand = NewIntOperand(1)
		} else {
			l.lastOperand = NewIntOperand(0)
		}
	case ast.LiteralNone:
		l.lastOperand = NewIntOperand(0)
	}
}

func (l *lowerer) VisitName(n *ast.Name) {
	l.lastOperand = NewIdentOperand(n.Ident)
}

var binOpcodes = map[ast.BinOpKind]Opcode{
	ast.BinOpAdd: OpAdd,
	ast.BinOpSub: OpSub,
	ast.BinOpMul: OpMul,
	ast.BinOpDiv: OpDiv,
	ast.BinOpMod: OpMod,
	ast.BinOpEq:  OpCmpEq,
	ast.BinOpNe:  OpCmpNe,
	ast.BinOpLt:  OpCmpLt,
	ast.BinOpLe:  OpCmpLe,
	ast.BinOpGt:  OpCmpGt,
	ast.BinOpGe:  OpCmpGe,
}

func (l *lowerer) VisitBinaryOp(b *ast.BinaryOp) {
	switch b.Operation {
	case ast.BinOpAnd:
		l.lowerAnd(b)
	case ast.BinOpOr:
		l.lowerOr(b)
	default:
		op, ok := binOpcodes[b.Operation]
		if !ok {
			l.fail(b.Loc, "unsupported binary operator %q", b.Operation)

			return
		}

		lhs := l.lowerExpr(b.Lhs)
		rhs := l.lowerExpr(b.Rhs)
		result := l.nextTemp()

		l.emit(NewBinary(b.Loc, op, result, lhs, rhs))

		l.lastOperand = result
	}
}

// lowerAnd short-circuits on a false left operand.
//
//	;;   IF_FALSE_GOTO lhs, L_short
//	;;   <rhs>
//	;;   ASSIGN t, rhs
//	;;   GOTO L_end
//	;; L_short:
//	;;   ASSIGN t, lhs
//	;; L_end:
func (l *lowerer) lowerAnd(b *ast.BinaryOp) {
	lhs := l.lowerExpr(b.Lhs)
	result := l.nextTemp()
	short := l.nextLabel()
	end := l.nextLabel()

	l.emit(NewIfFalseGoto(b.Loc, lhs, short))

	rhs := l.lowerExpr(b.Rhs)

	l.emit(NewAssign(b.Loc, result, rhs))
	l.emit(NewGoto(b.Loc, end))
	l.emit(NewLabel(b.Loc, short))
	l.emit(NewAssign(b.Loc, result, lhs))
	l.emit(NewLabel(b.Loc, end))

	l.lastOperand = result
}

// lowerOr short-circuits on a true left operand, so the right operand is
// only evaluated on the jump-taken path.
//
//	;;   IF_FALSE_GOTO lhs, L_rhs
//	;;   ASSIGN t, lhs
//	;;   GOTO L_end
//	;; L_rhs:
//	;;   <rhs>
//	;;   ASSIGN t, rhs
//	;; L_end:
func (l *lowerer) lowerOr(b *ast.BinaryOp) {
	lhs := l.lowerExpr(b.Lhs)
	result := l.nextTemp()
	rhsLabel := l.nextLabel()
	end := l.nextLabel()

	l.emit(NewIfFalseGoto(b.Loc, lhs, rhsLabel))
	l.emit(NewAssign(b.Loc, result, lhs))
	l.emit(NewGoto(b.Loc, end))
	l.emit(NewLabel(b.Loc, rhsLabel))

	rhs := l.lowerExpr(b.Rhs)

	l.emit(NewAssign(b.Loc, result, rhs))
	l.emit(NewLabel(b.Loc, end))

	l.lastOperand = result
}

func (l *lowerer) VisitUnaryOp(u *ast.UnaryOp) {
	operand := l.lowerExpr(u.Expr)
	result := l.nextTemp()

	switch u.Operation {
	case ast.UnaryOpMinus:
		l.emit(NewBinary(u.Loc, OpSub, result, NewIntOperand(0), operand))
	case ast.UnaryOpNot:
		l.emit(NewBinary(u.Loc, OpCmpEq, result, operand, NewIntOperand(0)))
	}

	l.lastOperand = result
}

func (l *lowerer) VisitCall(c *ast.Call) {
	info, ok := l.funcs[c.Ident]
	if !ok {
		l.fail(c.Loc, "call to undefined function %q", c.Ident)

		return
	}

	if len(c.Args) != len(info.params) {
		l.fail(c.Loc, "function %q takes %d arguments, got %d",
			c.Ident, len(info.params), len(c.Args))

		return
	}

	// Arguments lower first so their instructions precede the PARAM run,
	// keeping every PARAM immediately before its CALL.
	var args []Operand

	for _, arg := range c.Args {
		args = append(args, l.lowerExpr(arg))
	}

	for _, arg := range args {
		l.emit(NewParam(c.Loc, arg))
	}

	result := l.nextTemp()

	l.emit(NewCall(c.Loc, result, c.Ident, len(c.Args)))

	l.lastOperand = result
}
