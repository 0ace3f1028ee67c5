package lexer

import (
	"fmt"
	"strconv"
)

type TokenType string

const (
	TypeEOF     TokenType = "EOF"
	TypeIdent   TokenType = "Identifier"
	TypeKeyword TokenType = "Keyword"
	TypeNumber  TokenType = "Number"  // Integer literal
	TypeFloat   TokenType = "Float"   // Floating-point literal
	TypeString  TokenType = "String"  // Double-quoted string
	TypeLparen  TokenType = "LeftParen"
	TypeRparen  TokenType = "RightParen"
	TypeComma   TokenType = "Comma"
	TypeColon   TokenType = "Colon"
	TypeAssign  TokenType = "Assign"     // "="
	TypePlus    TokenType = "Plus"       // "+"
	TypeMinus   TokenType = "Minus"      // "-"
	TypeStar    TokenType = "Star"       // "*"
	TypeSlash   TokenType = "Slash"      // "/"
	TypePercent TokenType = "Percent"    // "%"
	TypeEq      TokenType = "Eq"         // "=="
	TypeNe      TokenType = "Ne"         // "!="
	TypeLt      TokenType = "Lt"         // "<"
	TypeLe      TokenType = "Le"         // "<="
	TypeGt      TokenType = "Gt"         // ">"
	TypeGe      TokenType = "Ge"         // ">="
	TypeNewline TokenType = "Newline"
	TypeIndent  TokenType = "Indent"
	TypeDedent  TokenType = "Dedent"
)

// Symbols is a map of string to TokenType for maximal munch.
var symbols = map[string]TokenType{
	"(":  TypeLparen,
	")":  TypeRparen,
	",":  TypeComma,
	":":  TypeColon,
	"=":  TypeAssign,
	"+":  TypePlus,
	"-":  TypeMinus,
	"*":  TypeStar,
	"/":  TypeSlash,
	"%":  TypePercent,
	"==": TypeEq,
	"!=": TypeNe,
	"<":  TypeLt,
	"<=": TypeLe,
	">":  TypeGt,
	">=": TypeGe,
}

type Token struct {
	Type       TokenType
	Keyword    Keyword
	Identifier string
	StringVal  string
	NumberVal  int
	FloatVal   float64
	Location   Location
}

func NewStringToken(val string, location Location) (Token, error) {
	return Token{
		Type:      TypeString,
		StringVal: val,
		Location:  location,
	}, nil
}

func NewNumberToken(val string, location Location) (Token, error) {
	num, err := strconv.Atoi(val)
	if err != nil {
		return Token{}, err
	}

	return Token{
		Type:      TypeNumber,
		NumberVal: num,
		StringVal: val,
		Location:  location,
	}, nil
}

func NewFloatToken(val string, location Location) (Token, error) {
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Token{}, err
	}

	return Token{
		Type:      TypeFloat,
		FloatVal:  num,
		StringVal: val,
		Location:  location,
	}, nil
}

func NewIdentOrKeywordToken(val string, location Location) (Token, error) {
	kw, ok := checkKeyword(val)
	if !ok {
		// If it's not a keyword, it's an identifier.
		return Token{
			Type:       TypeIdent,
			Identifier: val,
			StringVal:  val,
			Location:   location,
		}, nil
	}

	return Token{
		Type:       TypeKeyword,
		Keyword:    kw,
		Identifier: val,
		StringVal:  val,
		Location:   location,
	}, nil
}

func (t Token) String() string {
	switch t.Type {
	case TypeEOF:
		return fmt.Sprintf("%s: EOF", t.Location)
	case TypeIdent:
		return fmt.Sprintf("%s: Identifier(%s)", t.Location, t.Identifier)
	case TypeKeyword:
		return fmt.Sprintf("%s: Keyword(%s)", t.Location, t.Keyword)
	case TypeNumber:
		return fmt.Sprintf("%s: Number(%d)", t.Location, t.NumberVal)
	case TypeFloat:
		return fmt.Sprintf("%s: Float(%s)", t.Location, t.StringVal)
	case TypeString:
		return fmt.Sprintf("%s: String(%q)", t.Location, t.StringVal)
	case TypeNewline:
		return fmt.Sprintf("%s: Newline", t.Location)
	case TypeIndent:
		return fmt.Sprintf("%s: Indent", t.Location)
	case TypeDedent:
		return fmt.Sprintf("%s: Dedent", t.Location)
	default:
		return fmt.Sprintf("%s: %s(%s)", t.Location, t.Type, t.StringVal)
	}
}
