// interpreter.go — public surface of the slip runtime.
//
// This file holds the value model (Value, ValueTag, constructors), functions
// and closures (Fun), lexical environments (Env), the typed runtime error
// (EvalError), and the Interp entry points. The tree-walking evaluation
// itself lives in interpreter_exec.go; built-ins in builtin_core.go.
//
// Scoping: Interp exposes two well-known frames. Core holds the built-ins;
// Global is the persistent user frame, a child of Core. EvalSource runs in a
// fresh child of Global (ephemeral, script-style); EvalPersistentSource runs
// in Global itself (REPL-style, bindings survive across calls); Eval runs in
// whatever environment the host passes.
//
// All entry points return (Value, error). Errors from evaluation are
// *EvalError; lexer/parser failures surface as caret-rendered messages via
// errors.go.
package slip

import (
	"fmt"
	"io"
	"os"
)

// Version is the slip release string, surfaced by the CLI banner.
var Version = "0.1.0"

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil  ValueTag = iota // nil (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // *Fun (builtin or lambda closure)
)

// Value is the runtime result carrier. Tag is the discriminant; Data holds
// the Go value appropriate for the tag (nil payload for VTNil). Values are
// immutable once produced.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// FunVal wraps *Fun into a Value (Tag=VTFun).
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// typeName names a value's kind for diagnostics.
func typeName(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return "boolean"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	case VTFun:
		return "function"
	default:
		return "unknown"
	}
}

// NativeFn is the implementation signature for built-in functions. Natives
// receive the interpreter (for the output sink) and the already-evaluated
// argument values; they validate their own arity and operand types.
type NativeFn func(ip *Interp, args []Value) (Value, error)

// Fun represents a callable: either a registered built-in or a user lambda.
//
//   - Native non-nil: a built-in; Name is its bound name, the remaining
//     fields are unused.
//   - Native nil: a lambda closure; Params are the parameter names in
//     order, Body is the single body expression, and Env is the environment
//     frame captured when the lambda expression was evaluated. The frame
//     reference is fixed at capture and never reassigned; its contents stay
//     live and mutable, which is what makes recursion through a let-bound
//     name work.
type Fun struct {
	Name   string
	Params []string
	Body   Expr
	Env    *Env

	Native NativeFn
}

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; the chain terminates at the global frame. Frames are shared
// by pointer — a closure keeps its captured frame alive for as long as the
// closure itself is reachable.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
// Lookups never mutate; Define touches exactly this frame.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest existing binding of name to v. If no binding
// exists in any visible frame, Set reports UndefinedVariable rather than
// implicitly defining.
func (e *Env) Set(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Set(name, v)
	}
	return errUndefined(name)
}

// Get retrieves the nearest visible binding for name; the first frame that
// holds the name wins.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, errUndefined(name)
}

// ----- runtime errors -----

type EvalErrKind int

const (
	EvalUndefinedVariable EvalErrKind = iota
	EvalArityMismatch
	EvalTypeMismatch
	EvalDivisionByZero
	EvalNotCallable
)

// EvalError is an execution-time failure. Kind is inspectable by callers;
// Name and Expected/Got carry kind-specific context (the variable for
// UndefinedVariable, the counts for ArityMismatch).
type EvalError struct {
	Kind     EvalErrKind
	Name     string
	Expected int
	Got      int
	Msg      string
}

func (e *EvalError) Error() string {
	return "RUNTIME ERROR: " + e.Msg
}

func errUndefined(name string) error {
	return &EvalError{Kind: EvalUndefinedVariable, Name: name, Msg: "undefined variable: " + name}
}

func errArity(what string, expected, got int) error {
	return &EvalError{
		Kind: EvalArityMismatch, Expected: expected, Got: got,
		Msg: fmt.Sprintf("%s expected %d arguments, got %d", what, expected, got),
	}
}

func errArityAtLeast(what string, min, got int) error {
	return &EvalError{
		Kind: EvalArityMismatch, Expected: min, Got: got,
		Msg: fmt.Sprintf("%s expected at least %d argument, got %d", what, min, got),
	}
}

func errType(what, want, got string) error {
	return &EvalError{
		Kind: EvalTypeMismatch,
		Msg:  fmt.Sprintf("%s expected %s, got %s", what, want, got),
	}
}

func errDivZero() error {
	return &EvalError{Kind: EvalDivisionByZero, Msg: "division by zero"}
}

func errNotCallable(v Value) error {
	return &EvalError{Kind: EvalNotCallable, Msg: "cannot call value of type " + typeName(v)}
}

// ----- interpreter -----

// Interp evaluates slip programs.
//
//   - Core   — built-ins, parent of Global. Populated by NewInterp.
//   - Global — persistent user frame (REPL/program state).
//   - Out    — sink for the print built-in; defaults to os.Stdout. Hosts
//     and tests may swap it.
type Interp struct {
	Core   *Env
	Global *Env
	Out    io.Writer
}

// NewInterp constructs an interpreter with built-ins installed in Core and
// an empty Global child frame.
func NewInterp() *Interp {
	ip := &Interp{Out: os.Stdout}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	registerCoreBuiltins(ip)
	return ip
}

// Eval evaluates one expression in the given environment.
func (ip *Interp) Eval(e Expr, env *Env) (Value, error) {
	return ip.evalExpr(e, env)
}

// Apply invokes a function value with the given argument values.
func (ip *Interp) Apply(fn Value, args []Value) (Value, error) {
	return ip.applyFun(fn, args)
}

// EvalSource parses and evaluates source in a fresh child of Global:
// bindings land in the throwaway child and Global is unchanged. Top-level
// expressions run in order; the value of the last one is returned, Nil for
// an empty program. The first error stops the run.
func (ip *Interp) EvalSource(src string) (Value, error) {
	return ip.evalProgram(src, NewEnv(ip.Global), "<main>")
}

// EvalPersistentSource parses and evaluates source in Global itself, so
// bindings persist across calls (REPL-style).
func (ip *Interp) EvalPersistentSource(src string) (Value, error) {
	return ip.evalProgram(src, ip.Global, "<repl>")
}

func (ip *Interp) evalProgram(src string, env *Env, name string) (Value, error) {
	prog, err := ParseProgram(src)
	if err != nil {
		return Nil, WrapErrorWithName(err, name, src)
	}
	result := Nil
	for _, e := range prog {
		v, err := ip.Eval(e, env)
		if err != nil {
			return Nil, err
		}
		result = v
	}
	return result, nil
}
