// lexer_test.go
package slip

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func scanErr(t *testing.T, src string) *LexError {
	t.Helper()
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatalf("Scan(%q): want error, got none", src)
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("Scan(%q): want *LexError, got %T: %v", src, err, err)
	}
	return le
}

func Test_Lexer_Parens_And_EOF(t *testing.T) {
	got := wantTypes(t, "(())", []TokenType{LPAREN, LPAREN, RPAREN, RPAREN})
	if got[len(got)-1].Type != EOF {
		t.Fatalf("stream must end with EOF, got %v", got[len(got)-1])
	}
}

func Test_Lexer_EmptySource_YieldsOnlyEOF(t *testing.T) {
	got := toks(t, "")
	if len(got) != 1 || got[0].Type != EOF {
		t.Fatalf("want exactly one EOF token, got %v", got)
	}
}

func Test_Lexer_Numbers_IntegerAndDecimal(t *testing.T) {
	got := wantTypes(t, "42 3.14 0.5", []TokenType{NUMBER, NUMBER, NUMBER})
	want := []float64{42, 3.14, 0.5}
	for i, w := range want {
		if got[i].Literal.(float64) != w {
			t.Fatalf("token %d: want %g, got %v", i, w, got[i].Literal)
		}
	}
}

func Test_Lexer_Numbers_RenderRoundTrip(t *testing.T) {
	for _, src := range []string{"0", "7", "42", "3.14", "0.5", "100.25", "123456789"} {
		got := toks(t, src)
		if got[0].Type != NUMBER {
			t.Fatalf("%q: want NUMBER, got %v", src, got[0])
		}
		rendered := formatNumber(got[0].Literal.(float64))
		back := toks(t, rendered)
		if back[0].Literal.(float64) != got[0].Literal.(float64) {
			t.Fatalf("%q: round trip via %q lost value: %v vs %v",
				src, rendered, got[0].Literal, back[0].Literal)
		}
	}
}

func Test_Lexer_Number_TrailingDot_IsSeparateToken(t *testing.T) {
	// The dot is consumed only when a digit follows it.
	got := wantTypes(t, "3.", []TokenType{NUMBER, IDENT})
	if got[0].Literal.(float64) != 3 || got[1].Lexeme != "." {
		t.Fatalf("want 3 then \".\", got %v %v", got[0], got[1])
	}
}

func Test_Lexer_NegativeLooking_IsIdentifier(t *testing.T) {
	// No sign handling: -5 is an identifier, negation is spelled (- 5).
	got := wantTypes(t, "-5", []TokenType{IDENT})
	if got[0].Lexeme != "-5" {
		t.Fatalf("want identifier -5, got %q", got[0].Lexeme)
	}
}

func Test_Lexer_Strings_Basic(t *testing.T) {
	got := wantTypes(t, `"hello world"`, []TokenType{STRING})
	if got[0].Literal.(string) != "hello world" {
		t.Fatalf("want literal %q, got %v", "hello world", got[0].Literal)
	}
}

func Test_Lexer_Strings_SpanNewlines_NoEscapes(t *testing.T) {
	got := wantTypes(t, "\"a\nb\\c\"", []TokenType{STRING})
	if got[0].Literal.(string) != "a\nb\\c" {
		t.Fatalf("want every byte verbatim, got %q", got[0].Literal)
	}
}

func Test_Lexer_Strings_Unterminated(t *testing.T) {
	le := scanErr(t, "(print \"oops")
	if le.Kind != LexUnterminatedString {
		t.Fatalf("want LexUnterminatedString, got kind %d", le.Kind)
	}
	// anchored at the opening quote
	if le.Line != 1 || le.Col != 7 {
		t.Fatalf("want anchor 1:7, got %d:%d", le.Line, le.Col)
	}
}

func Test_Lexer_Keywords_TrueFalseNil(t *testing.T) {
	got := wantTypes(t, "true false nil", []TokenType{BOOLEAN, BOOLEAN, NIL})
	if got[0].Literal.(bool) != true || got[1].Literal.(bool) != false {
		t.Fatalf("boolean literals wrong: %v %v", got[0].Literal, got[1].Literal)
	}
	if got[2].Literal != nil {
		t.Fatalf("nil token should carry no literal, got %v", got[2].Literal)
	}
}

func Test_Lexer_Keywords_ArePrefixSafe(t *testing.T) {
	// Maximal munch: these are plain identifiers, not keyword tokens.
	wantTypes(t, "truely nil? false-start", []TokenType{IDENT, IDENT, IDENT})
}

func Test_Lexer_Identifiers_PunctuationAllowed(t *testing.T) {
	got := wantTypes(t, "+ != >= foo-bar x2 <=?", []TokenType{
		IDENT, IDENT, IDENT, IDENT, IDENT, IDENT,
	})
	want := []string{"+", "!=", ">=", "foo-bar", "x2", "<=?"}
	for i, w := range want {
		if got[i].Lexeme != w {
			t.Fatalf("token %d: want %q, got %q", i, w, got[i].Lexeme)
		}
	}
}

func Test_Lexer_Comments_RunToEndOfLine(t *testing.T) {
	src := "; leading comment\n(+ 1 2) ; trailing (ignored \"junk\n3"
	wantTypes(t, src, []TokenType{LPAREN, IDENT, NUMBER, NUMBER, RPAREN, NUMBER})
}

func Test_Lexer_LineAndColumn_Tracking(t *testing.T) {
	src := "(let x\n  42)"
	got := toks(t, src)
	// token:    (     let   x     42    )
	wantLine := []int{1, 1, 1, 2, 2}
	wantCol := []int{0, 1, 5, 2, 4}
	for i := range wantLine {
		if got[i].Line != wantLine[i] || got[i].Col != wantCol[i] {
			t.Fatalf("token %d (%q): want %d:%d, got %d:%d",
				i, got[i].Lexeme, wantLine[i], wantCol[i], got[i].Line, got[i].Col)
		}
	}
}

func Test_Lexer_Columns_NoDriftAcrossTokens(t *testing.T) {
	// Rescanning a token's first byte must not advance the running column;
	// otherwise every later token on the line is anchored one column late
	// per preceding identifier/number/string.
	got := toks(t, `ab cd 12 "s" ef`)
	wantCol := []int{0, 3, 6, 9, 13}
	for i := range wantCol {
		if got[i].Col != wantCol[i] {
			t.Fatalf("token %d (%q): want col %d, got %d",
				i, got[i].Lexeme, wantCol[i], got[i].Col)
		}
	}
}

func Test_Lexer_UnexpectedCharacter(t *testing.T) {
	le := scanErr(t, "(+ 1 \x01)")
	if le.Kind != LexUnexpectedChar {
		t.Fatalf("want LexUnexpectedChar, got kind %d", le.Kind)
	}
	if le.Char != 0x01 {
		t.Fatalf("want offending byte 0x01, got %#x", le.Char)
	}
	if le.Line != 1 || le.Col != 5 {
		t.Fatalf("want position 1:5, got %d:%d", le.Line, le.Col)
	}
}
