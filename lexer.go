package slip

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LPAREN // "("
	RPAREN // ")"

	// Literals & identifiers
	IDENT
	NUMBER
	STRING
	BOOLEAN
	NIL
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
	Col     int
}

// keywords map: identifier spellings that lex as literal tokens.
var keywords = map[string]TokenType{
	"nil":   NIL,
	"false": BOOLEAN,
	"true":  BOOLEAN,
}

// Lexer scans a slip source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	// Rewind only within the current token; tokStartLine/Col were captured
	// before scanning began, so they restore the position exactly.
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isIdentByte reports whether b may appear in an identifier: any printable
// byte except parentheses, the string quote, the comment marker, and
// whitespace. Multi-byte UTF-8 sequences pass through byte-wise.
func isIdentByte(b byte) bool {
	switch b {
	case '(', ')', '"', ';':
		return false
	}
	return b > 0x20 && b != 0x7f
}

// ----- errors -----

type LexErrorKind int

const (
	LexUnexpectedChar LexErrorKind = iota
	LexUnterminatedString
)

type LexError struct {
	Kind LexErrorKind
	Char byte // offending byte for LexUnexpectedChar
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// errAtStart anchors the error at the current token's first byte, for
// tokens that fail somewhere past their opening character.
func (l *Lexer) errAtStart(kind LexErrorKind, msg string) error {
	return &LexError{Kind: kind, Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanString reads a double-quoted string literal. There are no escape
// sequences; every byte up to the closing quote is taken verbatim, so
// strings may span newlines.
func (l *Lexer) scanString() (string, error) {
	// consume the opening quote
	l.advance()

	for {
		ch, ok := l.advance()
		if !ok {
			return "", l.errAtStart(LexUnterminatedString, "string was not terminated")
		}
		if ch == '"' {
			return l.src[l.start+1 : l.cur-1], nil
		}
	}
}

// scanIdentifier reads a maximal run of identifier bytes.
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isIdentByte(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber reads digits with one optional fractional part. The dot is
// consumed only when a digit follows it, so "3." lexes as 3 then ".".
// No sign, no exponent.
func (l *Lexer) scanNumber() float64 {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			l.advance() // consume '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	// The lexeme is digits with at most one interior dot; the only way
	// ParseFloat can object is range overflow, which saturates to +Inf.
	v, _ := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	return v
}

// ignoreUntilNewline eats until '\n' or EOF.
func (l *Lexer) ignoreUntilNewline() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	for {
		l.skipWhitespace()
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		l.start = l.cur

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		ch, _ := l.advance()

		switch ch {
		case '(':
			return l.addToken(LPAREN, "("), nil
		case ')':
			return l.addToken(RPAREN, ")"), nil
		}

		// Comments run to end of line.
		if ch == ';' {
			l.ignoreUntilNewline()
			l.start = l.cur
			continue
		}

		// Strings
		if ch == '"' {
			l.rewindToStart()
			text, err := l.scanString()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(STRING, text), nil
		}

		// Numbers (starting with digit)
		if isDigit(ch) {
			l.rewindToStart()
			return l.addToken(NUMBER, l.scanNumber()), nil
		}

		// Identifiers / literal keywords
		if isIdentByte(ch) {
			l.rewindToStart()
			lex := l.scanIdentifier()
			if tt, ok := keywords[lex]; ok {
				switch tt {
				case NIL:
					return l.addToken(NIL, nil), nil
				case BOOLEAN:
					return l.addToken(BOOLEAN, lex == "true"), nil
				}
			}
			return l.addToken(IDENT, lex), nil
		}

		return Token{}, &LexError{
			Kind: LexUnexpectedChar,
			Char: ch,
			Line: l.tokStartLine,
			Col:  l.tokStartCol,
			Msg:  fmt.Sprintf("unexpected character: %q", ch),
		}
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
