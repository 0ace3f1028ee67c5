package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/corani/pytac/internal/ast"
	"github.com/corani/pytac/internal/lexer"
	"github.com/corani/pytac/internal/parser"
)

// Loader runs the front half of the pipeline: source text in, program out.
type Loader struct {
	tabWidth int
}

func NewLoader() *Loader {
	return &Loader{
		tabWidth: lexer.DefaultTabWidth,
	}
}

func (l *Loader) WithTabWidth(width int) *Loader {
	l.tabWidth = width

	return l
}

// Load reads and parses the file at the given path.
func (l *Loader) Load(filename string) (*ast.Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	scan, err := lexer.NewScanner(filename, f)
	if err != nil {
		return nil, err
	}

	return l.parse(scan)
}

// LoadSource parses source held in memory. The filename only feeds the
// locations in diagnostics.
func (l *Loader) LoadSource(filename, src string) (*ast.Program, error) {
	scan, err := lexer.NewScanner(filename, strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	return l.parse(scan)
}

func (l *Loader) parse(scan *lexer.Scanner) (*ast.Program, error) {
	tokens, err := lexer.NewLexer(scan).WithTabWidth(l.tabWidth).Tokens()
	if err != nil {
		return nil, err
	}

	return parser.New(tokens).Parse()
}
