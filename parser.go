// parser.go — recursive-descent parser producing slip expression trees.
//
// The grammar is the S-expression core:
//
//	expr := atom | "(" expr* ")"
//	atom := number | string | boolean | nil | identifier
//
// Nodes (closed union, Expr.Kind):
//
//	NumberLit  float64 payload in Num
//	StringLit  text in Text
//	BoolLit    bool payload in Bool
//	NilLit     no payload
//	IdentExpr  name in Text
//	ListExpr   ordered children in List
//
// Trees are immutable after parsing; the evaluator re-walks them freely
// (a lambda body is evaluated on every call).
//
// Next parses exactly one top-level expression per call and the caller
// loops; the parser does no semantic validation — operand counts for
// let/if/lambda are the evaluator's business.
package slip

import (
	"fmt"
)

// ExprKind tags the variant held by an Expr.
type ExprKind int

const (
	NumberLit ExprKind = iota
	StringLit
	BoolLit
	NilLit
	IdentExpr
	ListExpr
)

// Expr is one node of the expression tree.
type Expr struct {
	Kind ExprKind
	Num  float64 // NumberLit
	Text string  // StringLit, IdentExpr
	Bool bool    // BoolLit
	List []Expr  // ListExpr
}

// Node constructors. Handy for building trees directly in tests and hosts.

func NumberNode(f float64) Expr   { return Expr{Kind: NumberLit, Num: f} }
func StringNode(s string) Expr    { return Expr{Kind: StringLit, Text: s} }
func BoolNode(b bool) Expr        { return Expr{Kind: BoolLit, Bool: b} }
func NilNode() Expr               { return Expr{Kind: NilLit} }
func IdentNode(name string) Expr  { return Expr{Kind: IdentExpr, Text: name} }
func ListNode(items ...Expr) Expr { return Expr{Kind: ListExpr, List: items} }

// exprKindName names a node kind for diagnostics.
func exprKindName(e Expr) string {
	switch e.Kind {
	case NumberLit:
		return "number literal"
	case StringLit:
		return "string literal"
	case BoolLit:
		return "boolean literal"
	case NilLit:
		return "nil"
	case IdentExpr:
		return "identifier"
	case ListExpr:
		return "list"
	default:
		return "unknown"
	}
}

// ----- errors -----

type ParseErrorKind int

const (
	ParseUnmatchedParen ParseErrorKind = iota
	ParseUnexpectedToken
	ParseUnexpectedEOF
)

type ParseError struct {
	Kind  ParseErrorKind
	Found Token // the token that triggered the error (EOF when input ran out)
	Line  int
	Col   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func perr(kind ParseErrorKind, found Token, msg string) error {
	return &ParseError{Kind: kind, Found: found, Line: found.Line, Col: found.Col, Msg: msg}
}

// ----- public API -----

// ParseProgram scans and parses a complete source string, returning its
// top-level expressions in order.
func ParseProgram(src string) ([]Expr, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := NewParser(toks)
	var prog []Expr
	for p.More() {
		e, err := p.Next()
		if err != nil {
			return nil, err
		}
		prog = append(prog, e)
	}
	return prog, nil
}

// Parser consumes a token stream one top-level expression at a time.
type Parser struct {
	toks []Token
	i    int
}

// NewParser wraps a token stream as produced by Lexer.Scan. The stream is
// expected to end with an EOF token; one is supplied if missing.
func NewParser(toks []Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Type != EOF {
		toks = append(toks, Token{Type: EOF, Line: 1, Col: 0})
	}
	return &Parser{toks: toks}
}

// More reports whether another top-level expression remains.
func (p *Parser) More() bool { return !p.atEnd() }

// Next parses exactly one top-level expression. Callers repeat while More()
// to consume the full stream.
func (p *Parser) Next() (Expr, error) {
	return p.parseExpr()
}

// ----- token basics -----

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

// ----- descent -----

func (p *Parser) parseExpr() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case LPAREN:
		return p.parseList()
	case RPAREN:
		return Expr{}, perr(ParseUnmatchedParen, tok, "unmatched closing parenthesis")
	case NUMBER:
		return NumberNode(tok.Literal.(float64)), nil
	case STRING:
		return StringNode(tok.Literal.(string)), nil
	case BOOLEAN:
		return BoolNode(tok.Literal.(bool)), nil
	case NIL:
		return NilNode(), nil
	case IDENT:
		return IdentNode(tok.Lexeme), nil
	case EOF:
		return Expr{}, perr(ParseUnexpectedEOF, tok, "unexpected end of input")
	default:
		return Expr{}, perr(ParseUnexpectedToken, tok, fmt.Sprintf("unexpected token %q", tok.Lexeme))
	}
}

// parseList is entered with the opening parenthesis already consumed and
// collects expressions until the matching closer.
func (p *Parser) parseList() (Expr, error) {
	var items []Expr
	for {
		switch p.peek().Type {
		case RPAREN:
			p.advance()
			return ListNode(items...), nil
		case EOF:
			return Expr{}, perr(ParseUnmatchedParen, p.peek(), "missing closing parenthesis")
		}
		item, err := p.parseExpr()
		if err != nil {
			return Expr{}, err
		}
		items = append(items, item)
	}
}
