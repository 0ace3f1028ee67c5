package tac

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corani/pytac/internal/lexer"
)

type Opcode string

const (
	OpAssign      Opcode = "ASSIGN"
	OpAdd         Opcode = "ADD"
	OpSub         Opcode = "SUB"
	OpMul         Opcode = "MUL"
	OpDiv         Opcode = "DIV"
	OpMod         Opcode = "MOD"
	OpCmpEq       Opcode = "CMP_EQ"
	OpCmpNe       Opcode = "CMP_NE"
	OpCmpLt       Opcode = "CMP_LT"
	OpCmpLe       Opcode = "CMP_LE"
	OpCmpGt       Opcode = "CMP_GT"
	OpCmpGe       Opcode = "CMP_GE"
	OpGoto        Opcode = "GOTO"
	OpIfFalseGoto Opcode = "IF_FALSE_GOTO"
	OpLabel       Opcode = "LABEL"
	OpParam       Opcode = "PARAM"
	OpCall        Opcode = "CALL"
	OpReturn      Opcode = "RETURN"
	OpFuncBegin   Opcode = "FUNC_BEGIN"
	OpFuncEnd     Opcode = "FUNC_END"
	OpPrint       Opcode = "PRINT"
)

type OperandKind string

const (
	OperandInt    OperandKind = "int"
	OperandFloat  OperandKind = "float"
	OperandString OperandKind = "string"
	OperandIdent  OperandKind = "ident"
	OperandTemp   OperandKind = "temp"
	OperandLabel  OperandKind = "label"
)

// Operand is an immutable instruction argument. Name carries the
// identifier, temporary, label or string payload depending on the kind.
type Operand struct {
	Kind  OperandKind
	Int   int
	Float float64
	Name  string
}

func NewIntOperand(v int) Operand {
	return Operand{Kind: OperandInt, Int: v}
}

func NewFloatOperand(v float64) Operand {
	return Operand{Kind: OperandFloat, Float: v}
}

func NewStringOperand(v string) Operand {
	return Operand{Kind: OperandString, Name: v}
}

func NewIdentOperand(name string) Operand {
	return Operand{Kind: OperandIdent, Name: name}
}

func NewTempOperand(name string) Operand {
	return Operand{Kind: OperandTemp, Name: name}
}

func NewLabelOperand(name string) Operand {
	return Operand{Kind: OperandLabel, Name: name}
}

func (o Operand) IsZero() bool {
	return o.Kind == ""
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandInt:
		return strconv.Itoa(o.Int)
	case OperandFloat:
		return strconv.FormatFloat(o.Float, 'g', -1, 64)
	case OperandString:
		return strconv.Quote(o.Name)
	default:
		return o.Name
	}
}

// Instruction is one emitted TAC operation. Result is the temporary or
// identifier the operation writes, zero when it writes nothing.
type Instruction struct {
	Op     Opcode
	Args   []Operand
	Result Operand
	Loc    lexer.Location
}

func NewAssign(loc lexer.Location, target, value Operand) Instruction {
	return Instruction{Op: OpAssign, Result: target, Args: []Operand{value}, Loc: loc}
}

func NewBinary(loc lexer.Location, op Opcode, result, lhs, rhs Operand) Instruction {
	return Instruction{Op: op, Result: result, Args: []Operand{lhs, rhs}, Loc: loc}
}

func NewGoto(loc lexer.Location, label Operand) Instruction {
	return Instruction{Op: OpGoto, Args: []Operand{label}, Loc: loc}
}

func NewIfFalseGoto(loc lexer.Location, cond, label Operand) Instruction {
	return Instruction{Op: OpIfFalseGoto, Args: []Operand{cond, label}, Loc: loc}
}

func NewLabel(loc lexer.Location, label Operand) Instruction {
	return Instruction{Op: OpLabel, Args: []Operand{label}, Loc: loc}
}

func NewParam(loc lexer.Location, value Operand) Instruction {
	return Instruction{Op: OpParam, Args: []Operand{value}, Loc: loc}
}

func NewCall(loc lexer.Location, result Operand, name string, argc int) Instruction {
	return Instruction{
		Op:     OpCall,
		Result: result,
		Args:   []Operand{NewIdentOperand(name), NewIntOperand(argc)},
		Loc:    loc,
	}
}

func NewReturn(loc lexer.Location, value ...Operand) Instruction {
	if len(value) > 1 {
		panic("return instruction carries at most one value")
	}

	return Instruction{Op: OpReturn, Args: value, Loc: loc}
}

func NewFuncBegin(loc lexer.Location, name string, params []string) Instruction {
	args := []Operand{NewIdentOperand(name)}

	for _, param := range params {
		args = append(args, NewIdentOperand(param))
	}

	return Instruction{Op: OpFuncBegin, Args: args, Loc: loc}
}

func NewFuncEnd(loc lexer.Location, name string) Instruction {
	return Instruction{Op: OpFuncEnd, Args: []Operand{NewIdentOperand(name)}, Loc: loc}
}

func NewPrint(loc lexer.Location, value Operand) Instruction {
	return Instruction{Op: OpPrint, Args: []Operand{value}, Loc: loc}
}

// String renders the instruction in the one-per-line textual form. Labels
// render as "L<N>:", calls put the result temporary last, every other
// result-producing opcode puts the result first.
func (i Instruction) String() string {
	switch i.Op {
	case OpLabel:
		return i.Args[0].String() + ":"
	case OpCall:
		parts := operandStrings(i.Args)
		parts = append(parts, i.Result.String())

		return fmt.Sprintf("%s %s", i.Op, strings.Join(parts, ", "))
	default:
		var parts []string

		if !i.Result.IsZero() {
			parts = append(parts, i.Result.String())
		}

		parts = append(parts, operandStrings(i.Args)...)

		if len(parts) == 0 {
			return string(i.Op)
		}

		return fmt.Sprintf("%s %s", i.Op, strings.Join(parts, ", "))
	}
}

func operandStrings(args []Operand) []string {
	var parts []string

	for _, arg := range args {
		parts = append(parts, arg.String())
	}

	return parts
}

// Program is the ordered instruction sequence for one compilation run.
type Program struct {
	Instructions []Instruction
}

func (p *Program) String() string {
	var sb strings.Builder

	for _, inst := range p.Instructions {
		sb.WriteString(inst.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
