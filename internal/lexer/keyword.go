package lexer

import "slices"

type Keyword string

const (
	KeywordDef    Keyword = "def"
	KeywordIf     Keyword = "if"
	KeywordElif   Keyword = "elif"
	KeywordElse   Keyword = "else"
	KeywordWhile  Keyword = "while"
	KeywordFor    Keyword = "for"
	KeywordIn     Keyword = "in"
	KeywordRange  Keyword = "range"
	KeywordReturn Keyword = "return"
	KeywordPrint  Keyword = "print"
	KeywordAnd    Keyword = "and"
	KeywordOr     Keyword = "or"
	KeywordNot    Keyword = "not"
	KeywordTrue   Keyword = "True"
	KeywordFalse  Keyword = "False"
	KeywordNone   Keyword = "None"
)

var keywords = []Keyword{
	KeywordDef,
	KeywordIf,
	KeywordElif,
	KeywordElse,
	KeywordWhile,
	KeywordFor,
	KeywordIn,
	KeywordRange,
	KeywordReturn,
	KeywordPrint,
	KeywordAnd,
	KeywordOr,
	KeywordNot,
	KeywordTrue,
	KeywordFalse,
	KeywordNone,
}

func checkKeyword(ident string) (Keyword, bool) {
	if slices.Contains(keywords, Keyword(ident)) {
		return Keyword(ident), true
	}

	return "", false
}
