package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/galelang/gale/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The last token is always EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	line, col := l.line, l.column
	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	case '-':
		if l.peekChar() == '>' {
			return l.twoCharToken(token.ARROW)
		}
		return l.oneCharToken(token.MINUS)
	case '=':
		switch l.peekChar() {
		case '>':
			return l.twoCharToken(token.FAT_ARROW)
		case '=':
			return l.twoCharToken(token.EQ)
		}
		return l.oneCharToken(token.ASSIGN)
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken(token.OR)
		}
		return l.oneCharToken(token.PIPE)
	case '!':
		if l.peekChar() == '!' {
			return l.twoCharToken(token.INDEX)
		}
		return l.oneCharToken(token.BANG)
	case '[':
		return l.oneCharToken(token.LBRACKET)
	case ']':
		return l.oneCharToken(token.RBRACKET)
	case '(':
		return l.oneCharToken(token.LPAREN)
	case ')':
		return l.oneCharToken(token.RPAREN)
	case '{':
		return l.oneCharToken(token.LBRACE)
	case '}':
		return l.oneCharToken(token.RBRACE)
	case '\\':
		return l.oneCharToken(token.BACKSLASH)
	case ':':
		return l.oneCharToken(token.COLON)
	case ';':
		return l.oneCharToken(token.SEMICOLON)
	case ',':
		return l.oneCharToken(token.COMMA)
	case '<':
		return l.oneCharToken(token.LT)
	case '>':
		return l.oneCharToken(token.GT)
	case '%':
		return l.oneCharToken(token.PERCENT)
	case '+':
		return l.oneCharToken(token.PLUS)
	case '*':
		return l.oneCharToken(token.ASTERISK)
	case '"':
		s, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Lexeme: `"` + s, Literal: "unterminated string", Line: line, Column: col}
		}
		return token.Token{Type: token.STRING, Lexeme: strconv.Quote(s), Literal: s, Line: line, Column: col}
	}

	if isDigit(l.ch) {
		return l.readNumber(line, col)
	}
	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
	}
	return l.oneCharToken(token.ILLEGAL)
}

func (l *Lexer) oneCharToken(t token.TokenType) token.Token {
	tok := token.Token{Type: t, Lexeme: string(l.ch), Line: l.line, Column: l.column}
	tok.Literal = tok.Lexeme
	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(t token.TokenType) token.Token {
	line, col := l.line, l.column
	first := l.ch
	l.readChar()
	lexeme := string(first) + string(l.ch)
	l.readChar()
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

// readString consumes a double-quoted string without escape processing.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // opening quote
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 {
			return l.input[start:], false
		}
		l.readChar()
	}
	s := l.input[start:l.position]
	l.readChar() // closing quote
	return s, true
}

// Identifiers may contain dots so that qualified names like std.print are one token.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer literal out of range", Line: line, Column: col}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: n, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}
