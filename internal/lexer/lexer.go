package lexer

import (
	"errors"
	"fmt"
	"io"
)

// DefaultTabWidth is the number of columns a tab advances to when measuring
// indentation.
const DefaultTabWidth = 8

// LexError reports a lexical failure with the offending source location.
type LexError struct {
	Loc    Location
	Reason string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Reason)
}

type Lexer struct {
	Scan        *Scanner
	Buffer      []Token
	indentStack []int
	parenDepth  int
	tabWidth    int
	atLineStart bool
	eofEmitted  bool
}

func NewLexer(scan *Scanner) *Lexer {
	return &Lexer{
		Scan:        scan,
		Buffer:      nil,
		indentStack: []int{0},
		parenDepth:  0,
		tabWidth:    DefaultTabWidth,
		atLineStart: true,
		eofEmitted:  false,
	}
}

func (t *Lexer) WithTabWidth(width int) *Lexer {
	if width > 0 {
		t.tabWidth = width
	}

	return t
}

func (t *Lexer) Tokens() ([]Token, error) {
	var tokens []Token

	for {
		token, err := t.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}

			return nil, err
		}

		tokens = append(tokens, token)
	}
}

func (t *Lexer) Next() (Token, error) {
	if len(t.Buffer) > 0 {
		token := t.Buffer[0]
		t.Buffer = t.Buffer[1:]

		return token, nil
	}

	if t.eofEmitted {
		return Token{}, io.EOF
	}

	// NOTE(daniel): inside parentheses there are no logical line boundaries,
	// so indentation is only measured at the start of a top-level line.
	if t.atLineStart && t.parenDepth == 0 {
		if tok, ok, err := t.measureIndent(); err != nil {
			return Token{}, err
		} else if ok {
			return tok, nil
		}
	}

	var buf []byte

	for {
		c, err := t.Scan.Next()
		if err != nil {
			return t.finish() // EOF
		}

		start := t.Scan.Location()

		switch {
		case c == '\n':
			if t.parenDepth > 0 {
				// Parenthesized expressions continue across lines.
				continue
			}

			t.atLineStart = true

			// Report the newline on the line it terminates.
			t.Scan.Unread(1)
			start = t.Scan.Location()
			_, _ = t.Scan.Next()

			return Token{Type: TypeNewline, StringVal: "\\n", Location: start}, nil
		case c == '\r' || c == ' ' || c == '\t':
			continue
		case c == '#':
			// Skip comment up to (not including) the newline.
			for {
				c, err = t.Scan.Next()
				if err != nil {
					break // EOF
				}
				if c == '\n' {
					t.Scan.Unread(1)
					break
				}
			}

			continue
		case c == '(':
			t.parenDepth++

			return Token{Type: TypeLparen, StringVal: "(", Location: start}, nil
		case c == ')':
			if t.parenDepth > 0 {
				t.parenDepth--
			}

			return Token{Type: TypeRparen, StringVal: ")", Location: start}, nil
		case c == '"':
			return t.lexString(start)
		case isNumeric(c):
			buf = append(buf, c)

			return t.lexNumber(buf, start)
		case isAlpha(c):
			// Handle identifiers and keywords
			buf = append(buf, c)
			for {
				c, err = t.Scan.Next()
				if err != nil {
					break // EOF, we still want to return the token
				}
				if isAlphanumeric(c) {
					buf = append(buf, c)
				} else {
					t.Scan.Unread(1)
					break
				}
			}

			return NewIdentOrKeywordToken(string(buf), start)
		default:
			// Maximal munch for symbolic tokens
			mmType := TypeEOF
			mmToken := ""
			prefix := []byte{c}
			for {
				foundPrefix := false
				for k, v := range symbols {
					if len(k) >= len(prefix) && k[:len(prefix)] == string(prefix) {
						foundPrefix = true
						if k == string(prefix) {
							mmToken = k
							mmType = v
						}
					}
				}
				if !foundPrefix {
					break
				}
				c2, err := t.Scan.Next()
				if err != nil {
					break
				}
				prefix = append(prefix, c2)
			}
			if mmToken != "" {
				if count := len(prefix) - len(mmToken); count > 0 {
					t.Scan.Unread(count)
				}

				return Token{Type: mmType, StringVal: mmToken, Location: start}, nil
			}

			return Token{}, &LexError{
				Loc:    start,
				Reason: fmt.Sprintf("unrecognized character %q", c),
			}
		}
	}
}

// measureIndent consumes leading whitespace at the start of a logical line and
// queues the INDENT/DEDENT tokens implied by the change in depth. Blank and
// comment-only lines never affect the indentation stack.
func (t *Lexer) measureIndent() (Token, bool, error) {
	width := 0

	for {
		c, err := t.Scan.Next()
		if err != nil {
			return Token{}, false, nil // EOF, handled by the caller
		}

		switch c {
		case ' ':
			width++
		case '\t':
			width = (width/t.tabWidth + 1) * t.tabWidth
		case '\r':
			// ignored, the following '\n' resets the line
		case '\n':
			width = 0 // blank line
		case '#':
			// Comment-only line: skip to the newline and start over.
			for {
				c, err = t.Scan.Next()
				if err != nil {
					return Token{}, false, nil // EOF
				}
				if c == '\n' {
					break
				}
			}

			width = 0
		default:
			t.Scan.Unread(1)
			t.atLineStart = false

			return t.applyIndent(width)
		}
	}
}

func (t *Lexer) applyIndent(width int) (Token, bool, error) {
	loc := t.Scan.Location()
	top := t.indentStack[len(t.indentStack)-1]

	switch {
	case width > top:
		t.indentStack = append(t.indentStack, width)

		return Token{Type: TypeIndent, StringVal: "indent", Location: loc}, true, nil
	case width < top:
		var pending []Token

		for len(t.indentStack) > 1 && width < t.indentStack[len(t.indentStack)-1] {
			t.indentStack = t.indentStack[:len(t.indentStack)-1]
			pending = append(pending, Token{Type: TypeDedent, StringVal: "dedent", Location: loc})
		}

		if width != t.indentStack[len(t.indentStack)-1] {
			return Token{}, false, &LexError{
				Loc:    loc,
				Reason: fmt.Sprintf("inconsistent indentation: width %d matches no enclosing block", width),
			}
		}

		t.Buffer = append(t.Buffer, pending[1:]...)

		return pending[0], true, nil
	default:
		return Token{}, false, nil
	}
}

func (t *Lexer) lexString(start Location) (Token, error) {
	var buf []byte

	for {
		c, err := t.Scan.Next()
		if err != nil || c == '\n' {
			return Token{}, &LexError{
				Loc:    start,
				Reason: "unterminated string literal",
			}
		}

		if c == '"' {
			break
		}

		if c == '\\' {
			c, err = t.Scan.Next()
			if err != nil {
				return Token{}, &LexError{
					Loc:    start,
					Reason: "unterminated string literal",
				}
			}

			switch c {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '\\', '"', '\'':
				buf = append(buf, c)
			default:
				buf = append(buf, '\\', c)
			}
		} else {
			buf = append(buf, c)
		}
	}

	return NewStringToken(string(buf), start)
}

func (t *Lexer) lexNumber(buf []byte, start Location) (Token, error) {
	isFloat := false

	for {
		c, err := t.Scan.Next()
		if err != nil {
			break // EOF, we still want to return the token
		}

		switch {
		case isNumeric(c):
			buf = append(buf, c)
		case c == '.' && !isFloat:
			// A decimal point must be followed by a digit to make a float.
			c2, err := t.Scan.Peek()
			if err != nil || !isNumeric(c2) {
				t.Scan.Unread(1)

				return NewNumberToken(string(buf), start)
			}

			isFloat = true
			buf = append(buf, c)
		default:
			t.Scan.Unread(1)

			if isFloat {
				return NewFloatToken(string(buf), start)
			}

			return NewNumberToken(string(buf), start)
		}
	}

	if isFloat {
		return NewFloatToken(string(buf), start)
	}

	return NewNumberToken(string(buf), start)
}

// finish unwinds the indentation stack at end of input and emits the final
// EOF token.
func (t *Lexer) finish() (Token, error) {
	loc := t.Scan.Location()

	if !t.atLineStart {
		// The last line was not newline-terminated.
		t.atLineStart = true
		t.Buffer = append(t.Buffer, Token{Type: TypeNewline, StringVal: "\\n", Location: loc})
	}

	for len(t.indentStack) > 1 {
		t.indentStack = t.indentStack[:len(t.indentStack)-1]
		t.Buffer = append(t.Buffer, Token{Type: TypeDedent, StringVal: "dedent", Location: loc})
	}

	t.Buffer = append(t.Buffer, Token{Type: TypeEOF, StringVal: "$", Location: loc})
	t.eofEmitted = true

	token := t.Buffer[0]
	t.Buffer = t.Buffer[1:]

	return token, nil
}

func isAlphanumeric(a byte) bool { return isAlpha(a) || isNumeric(a) }
func isAlpha(a byte) bool        { return (a >= 'a' && a <= 'z') || (a >= 'A' && a <= 'Z') || a == '_' }
func isNumeric(d byte) bool      { return d >= '0' && d <= '9' }
