package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Keywords
	LET    TokenType = "LET"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	TYPE   TokenType = "TYPE"
	MATCH  TokenType = "MATCH"
	MODULE TokenType = "MODULE"
	PUBLIC TokenType = "PUBLIC"
	REF    TokenType = "REF"
	IMPORT TokenType = "IMPORT"
	IF     TokenType = "IF"
	ELSEIF TokenType = "ELSEIF"
	ELSE   TokenType = "ELSE"
	WHILE  TokenType = "WHILE"
	FN     TokenType = "FN"

	// Punctuation
	ARROW     TokenType = "->"
	FAT_ARROW TokenType = "=>"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	BACKSLASH TokenType = "\\"
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	PIPE      TokenType = "|"
	COMMA     TokenType = ","

	// Operators
	ASSIGN   TokenType = "="
	EQ       TokenType = "=="
	LT       TokenType = "<"
	GT       TokenType = ">"
	PERCENT  TokenType = "%"
	OR       TokenType = "||"
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	BANG     TokenType = "!"
	INDEX    TokenType = "!!"
)

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for NUMBER, string for STRING and IDENT
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

var keywords = map[string]TokenType{
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"type":   TYPE,
	"match":  MATCH,
	"module": MODULE,
	"public": PUBLIC,
	"ref":    REF,
	"import": IMPORT,
	"if":     IF,
	"elseif": ELSEIF,
	"else":   ELSE,
	"while":  WHILE,
	"fn":     FN,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
