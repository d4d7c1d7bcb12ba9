// printer.go — textual renderings of runtime values and expression trees.
//
// FormatValue is the rendering print and the REPL echo use; FormatExpr is
// the canonical source form backing `slip fmt`.
package slip

import (
	"strconv"
	"strings"
)

// FormatValue renders a runtime Value:
//
//	Number   decimal text, no forced trailing zeros ("10", not "10.0")
//	String   raw text, no quotes
//	Boolean  true / false
//	Nil      nil
//	Function opaque: <builtin: name> or <fun: (params)>
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return formatNumber(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTFun:
		f := v.Data.(*Fun)
		if f.Native != nil {
			return "<builtin: " + f.Name + ">"
		}
		return "<fun: (" + strings.Join(f.Params, " ") + ")>"
	default:
		return "<unknown>"
	}
}

// FormatExpr renders an expression tree back to canonical source: atoms as
// written, lists single-spaced inside one pair of parentheses. The output
// parses back to an identical tree (strings have no escapes, so quoting is
// a plain wrap).
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// FormatProgram renders a sequence of top-level expressions, one per line,
// with a trailing newline. Empty input renders as empty text.
func FormatProgram(prog []Expr) string {
	var b strings.Builder
	for _, e := range prog {
		writeExpr(&b, e)
		b.WriteByte('\n')
	}
	return b.String()
}

// formatNumber renders a float in the shortest decimal form the number
// grammar can read back: 'g' normally, plain 'f' when 'g' would use an
// exponent (the lexer accepts neither signs nor exponents).
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e.Kind {
	case NumberLit:
		b.WriteString(formatNumber(e.Num))
	case StringLit:
		b.WriteByte('"')
		b.WriteString(e.Text)
		b.WriteByte('"')
	case BoolLit:
		if e.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case NilLit:
		b.WriteString("nil")
	case IdentExpr:
		b.WriteString(e.Text)
	case ListExpr:
		b.WriteByte('(')
		for i, item := range e.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeExpr(b, item)
		}
		b.WriteByte(')')
	}
}
