package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func lexTokens(t *testing.T, input string) ([]Token, error) {
	t.Helper()

	s, err := NewScanner("test.py", strings.NewReader(input))
	require.NoError(t, err)

	return NewLexer(s).Tokens()
}

func TestLexerTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  string
		tokens []TokenType
	}{
		{
			name:   "assignment",
			input:  "x = 1\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:  "operators",
			input: "a + b - c * d / e % f == g != h <= i >= j < k > l\n",
			tokens: []TokenType{
				TypeIdent, TypePlus, TypeIdent, TypeMinus, TypeIdent, TypeStar,
				TypeIdent, TypeSlash, TypeIdent, TypePercent, TypeIdent, TypeEq,
				TypeIdent, TypeNe, TypeIdent, TypeLe, TypeIdent, TypeGe,
				TypeIdent, TypeLt, TypeIdent, TypeGt, TypeIdent,
				TypeNewline, TypeEOF,
			},
		},
		{
			name:  "indented block",
			input: "if x:\n    y = 1\n",
			tokens: []TokenType{
				TypeKeyword, TypeIdent, TypeColon, TypeNewline,
				TypeIndent, TypeIdent, TypeAssign, TypeNumber, TypeNewline,
				TypeDedent, TypeEOF,
			},
		},
		{
			name:  "parens suppress newline",
			input: "z = (1 +\n     2)\n",
			tokens: []TokenType{
				TypeIdent, TypeAssign, TypeLparen, TypeNumber, TypePlus,
				TypeNumber, TypeRparen, TypeNewline, TypeEOF,
			},
		},
		{
			name:   "comment only lines are skipped",
			input:  "# leading comment\nx = 1  # trailing comment\n# trailing line\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:   "blank lines are skipped",
			input:  "x = 1\n\n\ny = 2\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:   "int and float literals",
			input:  "a = 1.5 + 2\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeFloat, TypePlus, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:   "string literal",
			input:  "s = \"hello\"\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeString, TypeNewline, TypeEOF},
		},
		{
			name:   "crlf line endings",
			input:  "x = 1\r\ny = 2\r\n",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:   "missing final newline",
			input:  "x = 1",
			tokens: []TokenType{TypeIdent, TypeAssign, TypeNumber, TypeNewline, TypeEOF},
		},
		{
			name:  "dedent at end of input",
			input: "while x:\n    if y:\n        z = 1",
			tokens: []TokenType{
				TypeKeyword, TypeIdent, TypeColon, TypeNewline,
				TypeIndent, TypeKeyword, TypeIdent, TypeColon, TypeNewline,
				TypeIndent, TypeIdent, TypeAssign, TypeNumber, TypeNewline,
				TypeDedent, TypeDedent, TypeEOF,
			},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			toks, err := lexTokens(t, tc.input)
			require.NoError(t, err)

			var types []TokenType
			for _, tok := range toks {
				types = append(types, tok.Type)
			}

			require.Equal(t, tc.tokens, types)
		})
	}
}

func TestLexerKeywords(t *testing.T) {
	t.Parallel()

	toks, err := lexTokens(t, "def if elif else while for in range return print and or not True False None\n")
	require.NoError(t, err)

	expected := []Keyword{
		KeywordDef, KeywordIf, KeywordElif, KeywordElse, KeywordWhile,
		KeywordFor, KeywordIn, KeywordRange, KeywordReturn, KeywordPrint,
		KeywordAnd, KeywordOr, KeywordNot, KeywordTrue, KeywordFalse, KeywordNone,
	}

	for i, kw := range expected {
		require.Equal(t, TypeKeyword, toks[i].Type, "token %d", i)
		require.Equal(t, kw, toks[i].Keyword, "token %d", i)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	t.Parallel()

	toks, err := lexTokens(t, `s = "a\nb\tc\"d\\e"`+"\n")
	require.NoError(t, err)

	require.Equal(t, TypeString, toks[2].Type)
	require.Equal(t, "a\nb\tc\"d\\e", toks[2].StringVal)
}

func TestLexerDeterminism(t *testing.T) {
	t.Parallel()

	input := "def f(a, b):\n    return a + b\n\nx = f(1, 2)\nprint(x)\n"

	first, err := lexTokens(t, input)
	require.NoError(t, err)

	second, err := lexTokens(t, input)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestLexerIndentBalance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{
			name:  "flat",
			input: "x = 1\ny = 2\n",
		},
		{
			name:  "nested blocks",
			input: "if a:\n    if b:\n        x = 1\n    y = 2\nz = 3\n",
		},
		{
			name:  "unterminated last block",
			input: "while a:\n    while b:\n        x = 1",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			toks, err := lexTokens(t, tc.input)
			require.NoError(t, err)

			indents, dedents := 0, 0

			for _, tok := range toks {
				switch tok.Type {
				case TypeIndent:
					indents++
				case TypeDedent:
					dedents++
				}
			}

			require.Equal(t, indents, dedents)
		})
	}
}

func TestLexerTabWidth(t *testing.T) {
	t.Parallel()

	// With a tab width of 4, a tab and four spaces indent to the same depth.
	input := "if a:\n\tx = 1\n    y = 2\n"

	s, err := NewScanner("test.py", strings.NewReader(input))
	require.NoError(t, err)

	toks, err := NewLexer(s).WithTabWidth(4).Tokens()
	require.NoError(t, err)

	indents, dedents := 0, 0

	for _, tok := range toks {
		switch tok.Type {
		case TypeIndent:
			indents++
		case TypeDedent:
			dedents++
		}
	}

	require.Equal(t, 1, indents)
	require.Equal(t, 1, dedents)
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		line  int
	}{
		{
			name:  "unrecognized character",
			input: "x = 1\ny = @\n",
			line:  2,
		},
		{
			name: "unterminated string",
			input: "a = 1\nb = 2\nc = 3\nd = 4\ne = 5\nf = 6\n" +
				"g = \"oops\n",
			line: 7,
		},
		{
			name:  "unterminated string at end of input",
			input: "s = \"oops",
			line:  1,
		},
		{
			name:  "inconsistent dedent",
			input: "if a:\n        x = 1\n    y = 2\n",
			line:  3,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := lexTokens(t, tc.input)
			require.Error(t, err)

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			require.Equal(t, tc.line, lexErr.Loc.Line)
		})
	}
}
