package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corani/pytac/internal/ast"
	"github.com/corani/pytac/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()

	s, err := lexer.NewScanner("test.py", strings.NewReader(src))
	require.NoError(t, err)

	toks, err := lexer.NewLexer(s).Tokens()
	require.NoError(t, err)

	return New(toks).Parse()
}

func TestParseExpressions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "precedence mul over add",
			input:    "x = a + b * c\n",
			expected: `(assign x (binop "+" (ref a) (binop "*" (ref b) (ref c))))`,
		},
		{
			name:     "parenthesized grouping",
			input:    "x = (a + b) * c\n",
			expected: `(assign x (binop "*" (binop "+" (ref a) (ref b)) (ref c)))`,
		},
		{
			name:     "left associativity",
			input:    "x = a - b - c\n",
			expected: `(assign x (binop "-" (binop "-" (ref a) (ref b)) (ref c)))`,
		},
		{
			name:     "and binds tighter than or",
			input:    "x = a or b and c\n",
			expected: `(assign x (binop "or" (ref a) (binop "and" (ref b) (ref c))))`,
		},
		{
			name:     "not takes a comparison operand",
			input:    "x = not a == b\n",
			expected: `(assign x (unop "not" (binop "==" (ref a) (ref b))))`,
		},
		{
			name:     "not releases to and",
			input:    "x = not a and b\n",
			expected: `(assign x (binop "and" (unop "not" (ref a)) (ref b)))`,
		},
		{
			name:     "unary minus binds tighter than mul",
			input:    "x = -a * b\n",
			expected: `(assign x (binop "*" (unop "-" (ref a)) (ref b)))`,
		},
		{
			name:     "comparisons combine with and",
			input:    "x = a < b and b <= c\n",
			expected: `(assign x (binop "and" (binop "<" (ref a) (ref b)) (binop "<=" (ref b) (ref c))))`,
		},
		{
			name:     "nested calls",
			input:    "x = f(1, g(2))\n",
			expected: `(assign x (call "f" ((lit 1) (call "g" ((lit 2))))))`,
		},
		{
			name:     "modulo",
			input:    "x = a % 2 == 0\n",
			expected: `(assign x (binop "==" (binop "%" (ref a) (lit 2)) (lit 0)))`,
		},
		{
			name:     "literals",
			input:    "x = 1.5\n",
			expected: `(assign x (lit 1.5))`,
		},
		{
			name:     "bool literal",
			input:    "x = True\n",
			expected: `(assign x (lit true))`,
		},
		{
			name:     "none literal",
			input:    "x = None\n",
			expected: `(assign x (lit none))`,
		},
		{
			name:     "string literal",
			input:    "x = \"hi\"\n",
			expected: `(assign x (lit "hi"))`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			program, err := parse(t, tc.input)
			require.NoError(t, err)
			require.Len(t, program.Statements, 1)
			require.Equal(t, tc.expected, program.Statements[0].String())
		})
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "function definition",
			input:    "def add(a, b):\n    return a + b\n",
			expected: "\n\t(def \"add\" (a b) ((return (binop \"+\" (ref a) (ref b)))))",
		},
		{
			name:     "function without parameters",
			input:    "def main():\n    return\n",
			expected: "\n\t(def \"main\" () ((return)))",
		},
		{
			name:     "if elif else",
			input:    "if a:\n    print(1)\nelif b:\n    print(2)\nelse:\n    print(3)\n",
			expected: `(if (branch (ref a) ((print ((lit 1))))) (branch (ref b) ((print ((lit 2))))) (else ((print ((lit 3))))))`,
		},
		{
			name:     "if without else",
			input:    "if a:\n    x = 1\n",
			expected: `(if (branch (ref a) ((assign x (lit 1)))))`,
		},
		{
			name:     "while loop",
			input:    "while n > 0:\n    n = n - 1\n",
			expected: `(while (binop ">" (ref n) (lit 0)) ((assign n (binop "-" (ref n) (lit 1)))))`,
		},
		{
			name:     "range with stop only",
			input:    "for i in range(5):\n    print(i)\n",
			expected: `(for i (lit 0) (lit 5) (lit 1) ((print ((ref i)))))`,
		},
		{
			name:     "range with start and stop",
			input:    "for i in range(1, 5):\n    print(i)\n",
			expected: `(for i (lit 1) (lit 5) (lit 1) ((print ((ref i)))))`,
		},
		{
			name:     "range counting down",
			input:    "for i in range(10, 0, -1):\n    print(i)\n",
			expected: `(for i (lit 10) (lit 0) (unop "-" (lit 1)) ((print ((ref i)))))`,
		},
		{
			name:     "bare call statement",
			input:    "f(1)\n",
			expected: `(expr (call "f" ((lit 1))))`,
		},
		{
			name:     "print with multiple arguments",
			input:    "print(\"x is\", x)\n",
			expected: `(print ((lit "x is") (ref x)))`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			program, err := parse(t, tc.input)
			require.NoError(t, err)
			require.Len(t, program.Statements, 1)
			require.Equal(t, tc.expected, program.Statements[0].String())
		})
	}
}

func TestParseBlockEnds(t *testing.T) {
	t.Parallel()

	// The statement after the dedent belongs to the enclosing level.
	program, err := parse(t, "if a:\n    x = 1\ny = 2\n")
	require.NoError(t, err)
	require.Len(t, program.Statements, 2)

	_, ok := program.Statements[0].(*ast.If)
	require.True(t, ok)

	assign, ok := program.Statements[1].(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "y", assign.Target)
}

func TestParseDeterminism(t *testing.T) {
	t.Parallel()

	input := "def fac(n):\n    if n <= 1:\n        return 1\n    return n * fac(n - 1)\n\nprint(fac(5))\n"

	first, err := parse(t, input)
	require.NoError(t, err)

	second, err := parse(t, input)
	require.NoError(t, err)

	require.Equal(t, first.String(), second.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		line  int
	}{
		{
			name:  "missing colon",
			input: "if a\n    x = 1\n",
			line:  1,
		},
		{
			name:  "empty block",
			input: "if a:\nx = 1\n",
			line:  2,
		},
		{
			name:  "for over non-range iterable",
			input: "for i in items:\n    print(i)\n",
			line:  1,
		},
		{
			name:  "too many range arguments",
			input: "for i in range(1, 2, 3, 4):\n    print(i)\n",
			line:  1,
		},
		{
			name:  "unclosed paren",
			input: "x = (1 + 2\n",
			line:  1,
		},
		{
			name:  "missing assignment value",
			input: "x =\n",
			line:  1,
		},
		{
			name:  "statement starts with a number",
			input: "42\n",
			line:  1,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := parse(t, tc.input)
			require.Error(t, err)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			require.Equal(t, tc.line, synErr.Loc.Line)
		})
	}
}
