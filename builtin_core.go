package slip

import (
	"fmt"
	"strings"
)

// ---- core built-ins ----------------------------------------------------

// registerCoreBuiltins installs the arithmetic, comparison, and print
// natives into the Core frame. Natives receive already-evaluated arguments
// and validate their own arity and operand types.
func registerCoreBuiltins(ip *Interp) {
	native := func(name string, fn NativeFn) {
		ip.Core.Define(name, FunVal(&Fun{Name: name, Native: fn}))
	}

	// (+ n n ...) -> number: sum of all operands.
	native("+", func(_ *Interp, args []Value) (Value, error) {
		ns, err := numArgs("+", args, 1)
		if err != nil {
			return Nil, err
		}
		sum := 0.0
		for _, n := range ns {
			sum += n
		}
		return Num(sum), nil
	})

	// (- n) -> negation; (- n n ...) -> first minus the sum of the rest.
	native("-", func(_ *Interp, args []Value) (Value, error) {
		ns, err := numArgs("-", args, 1)
		if err != nil {
			return Nil, err
		}
		if len(ns) == 1 {
			return Num(-ns[0]), nil
		}
		rest := 0.0
		for _, n := range ns[1:] {
			rest += n
		}
		return Num(ns[0] - rest), nil
	})

	// (* n n ...) -> number: product of all operands.
	native("*", func(_ *Interp, args []Value) (Value, error) {
		ns, err := numArgs("*", args, 1)
		if err != nil {
			return Nil, err
		}
		product := 1.0
		for _, n := range ns {
			product *= n
		}
		return Num(product), nil
	})

	// (/ a b) -> number: exactly two operands, zero divisor is an error.
	native("/", func(_ *Interp, args []Value) (Value, error) {
		a, b, err := twoNumArgs("/", args)
		if err != nil {
			return Nil, err
		}
		if b == 0 {
			return Nil, errDivZero()
		}
		return Num(a / b), nil
	})

	// Ordering comparisons take exactly two number operands.
	native(">", func(_ *Interp, args []Value) (Value, error) {
		a, b, err := twoNumArgs(">", args)
		if err != nil {
			return Nil, err
		}
		return Bool(a > b), nil
	})
	native("<", func(_ *Interp, args []Value) (Value, error) {
		a, b, err := twoNumArgs("<", args)
		if err != nil {
			return Nil, err
		}
		return Bool(a < b), nil
	})
	native(">=", func(_ *Interp, args []Value) (Value, error) {
		a, b, err := twoNumArgs(">=", args)
		if err != nil {
			return Nil, err
		}
		return Bool(a >= b), nil
	})
	native("<=", func(_ *Interp, args []Value) (Value, error) {
		a, b, err := twoNumArgs("<=", args)
		if err != nil {
			return Nil, err
		}
		return Bool(a <= b), nil
	})

	// (= a b) / (!= a b): equality over any two values.
	native("=", func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 2 {
			return Nil, errArity("=", 2, len(args))
		}
		return Bool(valueEq(args[0], args[1])), nil
	})
	native("!=", func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 2 {
			return Nil, errArity("!=", 2, len(args))
		}
		return Bool(!valueEq(args[0], args[1])), nil
	})

	// (print v ...) -> nil: renders each value, single space between,
	// newline at the end, written to the interpreter's output sink.
	native("print", func(ip *Interp, args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = FormatValue(a)
		}
		fmt.Fprintln(ip.Out, strings.Join(parts, " "))
		return Nil, nil
	})
}

// ---- operand helpers ---------------------------------------------------

// numArgs checks the operand count and that every operand is a number,
// unpacking the payloads.
func numArgs(what string, args []Value, min int) ([]float64, error) {
	if len(args) < min {
		return nil, errArityAtLeast(what, min, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		if a.Tag != VTNum {
			return nil, errType(what, "number operands", typeName(a))
		}
		out[i] = a.Data.(float64)
	}
	return out, nil
}

func twoNumArgs(what string, args []Value) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, errArity(what, 2, len(args))
	}
	ns, err := numArgs(what, args, 2)
	if err != nil {
		return 0, 0, err
	}
	return ns[0], ns[1], nil
}

// valueEq compares same-tag values by content and functions by identity;
// differing tags are simply unequal, never an error.
func valueEq(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	default:
		return false
	}
}
