// interpreter_exec.go — the tree-walking evaluator.
//
// Evaluation is a pure recursive descent over the immutable expression tree
// with the current environment threaded through every call. A failing
// sub-expression aborts its enclosing expression and propagates up the
// (Value, error) chain; nothing recovers mid-walk and there are no partial
// results.
//
// let/if/lambda are special forms matched on the head identifier before
// anything is evaluated, so they are not first-class values and cannot be
// shadowed in call position. Every other list is ordinary application:
// evaluate the head, require a function, evaluate the operands left to
// right, invoke.
//
// There is no tail-call elimination; deeply recursive programs consume Go
// stack proportional to their recursion depth.
package slip

import "fmt"

func (ip *Interp) evalExpr(e Expr, env *Env) (Value, error) {
	switch e.Kind {
	case NumberLit:
		return Num(e.Num), nil
	case StringLit:
		return Str(e.Text), nil
	case BoolLit:
		return Bool(e.Bool), nil
	case NilLit:
		return Nil, nil
	case IdentExpr:
		return env.Get(e.Text)
	case ListExpr:
		return ip.evalList(e, env)
	default:
		return Nil, fmt.Errorf("internal: unknown expression kind %d", e.Kind)
	}
}

func (ip *Interp) evalList(e Expr, env *Env) (Value, error) {
	if len(e.List) == 0 {
		return Nil, nil
	}
	if head := e.List[0]; head.Kind == IdentExpr {
		switch head.Text {
		case "let":
			return ip.evalLet(e.List[1:], env)
		case "if":
			return ip.evalIf(e.List[1:], env)
		case "lambda":
			return ip.evalLambda(e.List[1:], env)
		}
	}
	return ip.evalCall(e, env)
}

// evalLet binds a name in the current frame and yields nil. The name
// operand is not evaluated.
func (ip *Interp) evalLet(ops []Expr, env *Env) (Value, error) {
	if len(ops) != 2 {
		return Nil, errArity("let", 2, len(ops))
	}
	name := ops[0]
	if name.Kind != IdentExpr {
		return Nil, errType("let", "an identifier to bind", exprKindName(name))
	}
	v, err := ip.evalExpr(ops[1], env)
	if err != nil {
		return Nil, err
	}
	env.Define(name.Text, v)
	return Nil, nil
}

// evalIf evaluates the condition, then exactly one branch.
func (ip *Interp) evalIf(ops []Expr, env *Env) (Value, error) {
	if len(ops) != 3 {
		return Nil, errArity("if", 3, len(ops))
	}
	cond, err := ip.evalExpr(ops[0], env)
	if err != nil {
		return Nil, err
	}
	if isTruthy(cond) {
		return ip.evalExpr(ops[1], env)
	}
	return ip.evalExpr(ops[2], env)
}

// isTruthy: only false and nil are falsy. 0 and "" count as true.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// evalLambda builds a closure over the current environment. The frame
// reference is captured as-is, so bindings added to that frame later are
// visible to the closure when it runs.
func (ip *Interp) evalLambda(ops []Expr, env *Env) (Value, error) {
	if len(ops) != 2 {
		return Nil, errArity("lambda", 2, len(ops))
	}
	params := ops[0]
	if params.Kind != ListExpr {
		return Nil, errType("lambda", "a parameter list", exprKindName(params))
	}
	names := make([]string, 0, len(params.List))
	for _, p := range params.List {
		if p.Kind != IdentExpr {
			return Nil, errType("lambda", "identifier parameters", exprKindName(p))
		}
		names = append(names, p.Text)
	}
	return FunVal(&Fun{Params: names, Body: ops[1], Env: env}), nil
}

func (ip *Interp) evalCall(e Expr, env *Env) (Value, error) {
	fn, err := ip.evalExpr(e.List[0], env)
	if err != nil {
		return Nil, err
	}
	args := make([]Value, 0, len(e.List)-1)
	for _, operand := range e.List[1:] {
		v, err := ip.evalExpr(operand, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}
	return ip.applyFun(fn, args)
}

// applyFun dispatches a call. Natives check their own arity and operand
// types; lambdas require an exact argument count, get one fresh frame
// parented at the captured environment, and evaluate their body there.
func (ip *Interp) applyFun(fn Value, args []Value) (Value, error) {
	if fn.Tag != VTFun {
		return Nil, errNotCallable(fn)
	}
	f := fn.Data.(*Fun)
	if f.Native != nil {
		return f.Native(ip, args)
	}
	if len(args) != len(f.Params) {
		return Nil, errArity(funDesc(f), len(f.Params), len(args))
	}
	frame := NewEnv(f.Env)
	for i, p := range f.Params {
		frame.Define(p, args[i])
	}
	return ip.evalExpr(f.Body, frame)
}

func funDesc(f *Fun) string {
	if f.Name != "" {
		return f.Name
	}
	return "function"
}
