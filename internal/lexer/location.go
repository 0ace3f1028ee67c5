package lexer

import "fmt"

type Location struct {
	Filename     string
	Line, Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}
