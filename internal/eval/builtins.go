package eval

import (
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
)

type builtinFn func(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error)

var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"number?":   predicate(func(h *heap.Heap, v heap.Handle) bool { return h.Kind(v) == heap.KindNumber }),
		"symbol?":   predicate(func(h *heap.Heap, v heap.Handle) bool { return h.Kind(v) == heap.KindSymbol }),
		"boolean?":  predicate(isBoolean),
		"null?":     predicate(func(_ *heap.Heap, v heap.Handle) bool { return v == heap.Null }),
		"pair?":     predicate(func(h *heap.Heap, v heap.Handle) bool { return pairLength(h, v) == 2 }),
		"list?":     predicate(isProperList),
		"cons":      biCons,
		"list":      biList,
		"car":       biCar,
		"cdr":       biCdr,
		"list-ref":  biListRef,
		"list-tail": biListTail,
		"not":       biNot,
		"and":       biAnd,
		"or":        biOr,
		"+":         arith("+", 0, func(a, b int64) int64 { return a + b }),
		"*":         arith("*", 1, func(a, b int64) int64 { return a * b }),
		"-":         foldNonEmpty("-", func(a, b int64) int64 { return a - b }),
		"/":         biDivide,
		"max":       foldNonEmpty("max", func(a, b int64) int64 { return maxInt(a, b) }),
		"min":       foldNonEmpty("min", func(a, b int64) int64 { return minInt(a, b) }),
		"abs":       biAbs,
		"=":         compare("=", func(a, b int64) bool { return a == b }),
		">":         compare(">", func(a, b int64) bool { return a > b }),
		"<":         compare("<", func(a, b int64) bool { return a < b }),
		">=":        compare(">=", func(a, b int64) bool { return a >= b }),
		"<=":        compare("<=", func(a, b int64) bool { return a <= b }),
		"define":    biDefine,
		"set!":      biSetBang,
		"set-car!":  biSetCarBang,
		"set-cdr!":  biSetCdrBang,
		"if":        biIf,
		"lambda":    biLambda,
		"quote":     biQuote,
	}
}

func isBoolean(h *heap.Heap, v heap.Handle) bool {
	return h.Kind(v) == heap.KindSymbol && (h.SymbolName(v) == "#t" || h.SymbolName(v) == "#f")
}

// predicate adapts a one-argument (heap, value) -> bool test into a
// builtinFn that evaluates its single operand first.
func predicate(test func(h *heap.Heap, v heap.Handle) bool) builtinFn {
	return func(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
		args, err := parseArgs(h, scope, tail)
		if err != nil {
			return heap.Null, err
		}

		if err := requireArity(args, 1, 1); err != nil {
			return heap.Null, err
		}

		return boolVal(h, test(h, args[0])), nil
	}
}

func biCons(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 2, 2); err != nil {
		return heap.Null, err
	}

	return h.MakePair(args[0], args[1]), nil
}

func biList(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	result := heap.Null
	for i := len(args) - 1; i >= 0; i-- {
		result = h.MakePair(args[i], result)
	}

	return result, nil
}

func biCar(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 1, 1); err != nil {
		return heap.Null, err
	}

	if args[0] == heap.Null {
		return heap.Null, lisperr.NewRuntime("can't get head of empty list")
	}

	if h.Kind(args[0]) != heap.KindPair {
		return heap.Null, lisperr.NewRuntime("argument to car is not a pair")
	}

	return h.Car(args[0]), nil
}

func biCdr(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 1, 1); err != nil {
		return heap.Null, err
	}

	if args[0] == heap.Null {
		return heap.Null, lisperr.NewRuntime("can't get tail of empty list")
	}

	if h.Kind(args[0]) != heap.KindPair {
		return heap.Null, lisperr.NewRuntime("argument to cdr is not a pair")
	}

	return h.Cdr(args[0]), nil
}

func biListRef(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 2, 2); err != nil {
		return heap.Null, err
	}

	if h.Kind(args[1]) != heap.KindNumber {
		return heap.Null, lisperr.NewRuntime("list-ref index must be a number")
	}

	if h.Number(args[1]) < 0 {
		return heap.Null, lisperr.NewRuntime("list-ref index out of bounds")
	}

	cur := args[0]
	for n := h.Number(args[1]); n > 0; n-- {
		if h.Kind(cur) != heap.KindPair {
			return heap.Null, lisperr.NewRuntime("list-ref index out of bounds")
		}

		cur = h.Cdr(cur)
	}

	if h.Kind(cur) != heap.KindPair {
		return heap.Null, lisperr.NewRuntime("list-ref index out of bounds")
	}

	return h.Car(cur), nil
}

func biListTail(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 2, 2); err != nil {
		return heap.Null, err
	}

	if h.Kind(args[1]) != heap.KindNumber {
		return heap.Null, lisperr.NewRuntime("list-tail index must be a number")
	}

	if h.Number(args[1]) < 0 {
		return heap.Null, lisperr.NewRuntime("list-tail index out of bounds")
	}

	cur := args[0]
	for n := h.Number(args[1]); n > 0; n-- {
		if h.Kind(cur) != heap.KindPair {
			return heap.Null, lisperr.NewRuntime("list-tail index out of bounds")
		}

		cur = h.Cdr(cur)
	}

	return cur, nil
}

func biNot(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 1, 1); err != nil {
		return heap.Null, err
	}

	return boolVal(h, !isTruthy(h, args[0])), nil
}

// biAnd and biOr are short-circuiting, so unlike the other builtins they
// receive the raw operand tree rather than a pre-evaluated argument slice.
func biAnd(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	if tail == heap.Null {
		return boolVal(h, true), nil
	}

	last := heap.Null

	for cur := tail; cur != heap.Null; cur = h.Cdr(cur) {
		v, err := Evaluate(h, scope, h.Car(cur))
		if err != nil {
			return heap.Null, err
		}

		if !isTruthy(h, v) {
			return boolVal(h, false), nil
		}

		last = v
	}

	return last, nil
}

func biOr(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	for cur := tail; cur != heap.Null; cur = h.Cdr(cur) {
		v, err := Evaluate(h, scope, h.Car(cur))
		if err != nil {
			return heap.Null, err
		}

		if isTruthy(h, v) {
			return v, nil
		}
	}

	return boolVal(h, false), nil
}

func arith(name string, identity int64, op func(a, b int64) int64) builtinFn {
	return func(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
		args, err := parseArgs(h, scope, tail)
		if err != nil {
			return heap.Null, err
		}

		if err := requireNumbers(h, args); err != nil {
			return heap.Null, err
		}

		acc := identity
		for _, a := range args {
			acc = op(acc, h.Number(a))
		}

		return h.MakeNumber(acc), nil
	}
}

func foldNonEmpty(name string, op func(a, b int64) int64) builtinFn {
	return func(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
		args, err := parseArgs(h, scope, tail)
		if err != nil {
			return heap.Null, err
		}

		if err := requireArity(args, 1, 1<<30); err != nil {
			return heap.Null, lisperr.NewRuntime(name + " requires at least one argument")
		}

		if err := requireNumbers(h, args); err != nil {
			return heap.Null, err
		}

		acc := h.Number(args[0])
		for _, a := range args[1:] {
			acc = op(acc, h.Number(a))
		}

		return h.MakeNumber(acc), nil
	}
}

func biDivide(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if len(args) == 0 {
		return heap.Null, lisperr.NewRuntime("/ requires at least one argument")
	}

	if err := requireNumbers(h, args); err != nil {
		return heap.Null, err
	}

	acc := h.Number(args[0])
	for _, a := range args[1:] {
		d := h.Number(a)
		if d == 0 {
			return heap.Null, lisperr.NewRuntime("division by zero")
		}

		acc /= d
	}

	return h.MakeNumber(acc), nil
}

func biAbs(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	args, err := parseArgs(h, scope, tail)
	if err != nil {
		return heap.Null, err
	}

	if err := requireArity(args, 1, 1); err != nil {
		return heap.Null, err
	}

	if err := requireNumbers(h, args); err != nil {
		return heap.Null, err
	}

	n := h.Number(args[0])
	if n < 0 {
		n = -n
	}

	return h.MakeNumber(n), nil
}

func compare(name string, op func(a, b int64) bool) builtinFn {
	return func(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
		args, err := parseArgs(h, scope, tail)
		if err != nil {
			return heap.Null, err
		}

		if err := requireNumbers(h, args); err != nil {
			return heap.Null, err
		}

		for i := 1; i < len(args); i++ {
			if !op(h.Number(args[i-1]), h.Number(args[i])) {
				return boolVal(h, false), nil
			}
		}

		return boolVal(h, true), nil
	}
}

func maxInt(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}

// biQuote is the value bound to quote in the global scope. Evaluate
// intercepts a call form whose head is the symbol quote itself, so this
// runs only when that value is called under another name (for example
// after (define q quote)), and such a call is a RuntimeError.
func biQuote(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	return heap.Null, lisperr.NewRuntime("quote is not directly callable")
}
