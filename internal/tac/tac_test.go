package tac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corani/pytac/internal/lexer"
)

func TestInstructionString(t *testing.T) {
	t.Parallel()

	loc := lexer.Location{Filename: "test.py", Line: 1, Column: 1}

	cases := []struct {
		name     string
		input    Instruction
		expected string
	}{
		{
			name:     "assign",
			input:    NewAssign(loc, NewIdentOperand("x"), NewIntOperand(5)),
			expected: "ASSIGN x, 5",
		},
		{
			name:     "binary",
			input:    NewBinary(loc, OpAdd, NewTempOperand("_t1"), NewIdentOperand("x"), NewIntOperand(1)),
			expected: "ADD _t1, x, 1",
		},
		{
			name:     "comparison",
			input:    NewBinary(loc, OpCmpLt, NewTempOperand("_t2"), NewIdentOperand("i"), NewIntOperand(10)),
			expected: "CMP_LT _t2, i, 10",
		},
		{
			name:     "label",
			input:    NewLabel(loc, NewLabelOperand("L1")),
			expected: "L1:",
		},
		{
			name:     "goto",
			input:    NewGoto(loc, NewLabelOperand("L2")),
			expected: "GOTO L2",
		},
		{
			name:     "conditional branch",
			input:    NewIfFalseGoto(loc, NewTempOperand("_t1"), NewLabelOperand("L3")),
			expected: "IF_FALSE_GOTO _t1, L3",
		},
		{
			name:     "call",
			input:    NewCall(loc, NewTempOperand("_t4"), "inc", 2),
			expected: "CALL inc, 2, _t4",
		},
		{
			name:     "bare return",
			input:    NewReturn(loc),
			expected: "RETURN",
		},
		{
			name:     "return with value",
			input:    NewReturn(loc, NewTempOperand("_t1")),
			expected: "RETURN _t1",
		},
		{
			name:     "function boundaries",
			input:    NewFuncBegin(loc, "add", []string{"a", "b"}),
			expected: "FUNC_BEGIN add, a, b",
		},
		{
			name:     "print string constant",
			input:    NewPrint(loc, NewStringOperand("hi")),
			expected: `PRINT "hi"`,
		},
		{
			name:     "print float constant",
			input:    NewPrint(loc, NewFloatOperand(1.5)),
			expected: "PRINT 1.5",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, tc.input.String())
		})
	}
}

func TestProgramString(t *testing.T) {
	t.Parallel()

	loc := lexer.Location{Filename: "test.py", Line: 1, Column: 1}

	prog := &Program{Instructions: []Instruction{
		NewAssign(loc, NewIdentOperand("x"), NewIntOperand(1)),
		NewLabel(loc, NewLabelOperand("L1")),
		NewGoto(loc, NewLabelOperand("L1")),
	}}

	require.Equal(t, "ASSIGN x, 1\nL1:\nGOTO L1\n", prog.String())
}
