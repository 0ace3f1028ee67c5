package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	return fmt.Sprintf("(program %s)", joinStatements(p.Statements))
}

func (fd *FuncDef) String() string {
	return fmt.Sprintf("\n\t(def %q (%s) %s)",
		fd.Ident, strings.Join(fd.Params, " "), joinStatements(fd.Body))
}

func (a *Assign) String() string {
	return fmt.Sprintf("(assign %s %s)", a.Target, a.Value)
}

func (i *If) String() string {
	var branches []string

	for _, br := range i.Branches {
		branches = append(branches, fmt.Sprintf("(branch %s %s)", br.Cond, joinStatements(br.Body)))
	}

	if i.Else != nil {
		branches = append(branches, fmt.Sprintf("(else %s)", joinStatements(i.Else)))
	}

	return fmt.Sprintf("(if %s)", strings.Join(branches, " "))
}

func (w *While) String() string {
	return fmt.Sprintf("(while %s %s)", w.Cond, joinStatements(w.Body))
}

func (f *For) String() string {
	return fmt.Sprintf("(for %s %s %s %s %s)",
		f.Var, f.Start, f.Stop, f.Step, joinStatements(f.Body))
}

func (r *Return) String() string {
	if r.Value != nil {
		return fmt.Sprintf("(return %s)", r.Value)
	}

	return "(return)"
}

func (p *Print) String() string {
	return fmt.Sprintf("(print %s)", joinExpressions(p.Args))
}

func (e *ExprStmt) String() string {
	return fmt.Sprintf("(expr %s)", e.Value)
}

func (l *Literal) String() string {
	switch l.Kind {
	case LiteralInt:
		return fmt.Sprintf("(lit %d)", l.IntValue)
	case LiteralFloat:
		return fmt.Sprintf("(lit %v)", l.FloatValue)
	case LiteralString:
		return fmt.Sprintf("(lit %q)", l.StringValue)
	case LiteralBool:
		return fmt.Sprintf("(lit %v)", l.BoolValue)
	case LiteralNone:
		return "(lit none)"
	default:
		return "(lit unknown)"
	}
}

func (n *Name) String() string {
	return fmt.Sprintf("(ref %s)", n.Ident)
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(binop %q %s %s)", b.Operation, b.Lhs, b.Rhs)
}

func (u *UnaryOp) String() string {
	return fmt.Sprintf("(unop %q %s)", u.Operation, u.Expr)
}

func (c *Call) String() string {
	return fmt.Sprintf("(call %q %s)", c.Ident, joinExpressions(c.Args))
}

func joinStatements(statements []Statement) string {
	var parts []string

	for _, stmt := range statements {
		parts = append(parts, fmt.Sprint(stmt))
	}

	return "(" + strings.Join(parts, " ") + ")"
}

func joinExpressions(expressions []Expression) string {
	var parts []string

	for _, expr := range expressions {
		parts = append(parts, fmt.Sprint(expr))
	}

	return "(" + strings.Join(parts, " ") + ")"
}
