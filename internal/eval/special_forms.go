package eval

import (
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
)

// biDefine handles both (define name expr) and the lambda-sugar form
// (define (name params...) body...).
func biDefine(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	if tail == heap.Null || h.Kind(tail) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("define requires 2 arguments")
	}

	target := h.Car(tail)

	if h.Kind(target) == heap.KindPair {
		name := h.Car(target)
		if h.Kind(name) != heap.KindSymbol {
			return heap.Null, lisperr.NewSyntax("bad argument to define")
		}

		params := h.Cdr(target)
		body := h.Cdr(tail)

		fn, err := constructLambda(h, scope, h.MakePair(params, body))
		if err != nil {
			return heap.Null, err
		}

		scope.Define(h.SymbolName(name), fn)

		return heap.Null, nil
	}

	if h.Kind(target) != heap.KindSymbol {
		return heap.Null, lisperr.NewSyntax("bad argument to define")
	}

	rest := h.Cdr(tail)
	if rest == heap.Null || h.Kind(rest) != heap.KindPair || h.Cdr(rest) != heap.Null {
		return heap.Null, lisperr.NewSyntax("define requires 2 arguments")
	}

	val, err := Evaluate(h, scope, h.Car(rest))
	if err != nil {
		return heap.Null, err
	}

	scope.Define(h.SymbolName(target), val)

	return heap.Null, nil
}

func biSetBang(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	if tail == heap.Null || h.Kind(tail) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("set! requires 2 arguments")
	}

	target := h.Car(tail)
	if h.Kind(target) != heap.KindSymbol {
		return heap.Null, lisperr.NewSyntax("bad argument to set!")
	}

	rest := h.Cdr(tail)
	if rest == heap.Null || h.Kind(rest) != heap.KindPair || h.Cdr(rest) != heap.Null {
		return heap.Null, lisperr.NewSyntax("set! requires 2 arguments")
	}

	val, err := Evaluate(h, scope, h.Car(rest))
	if err != nil {
		return heap.Null, err
	}

	if err := scope.Set(h.SymbolName(target), val); err != nil {
		return heap.Null, err
	}

	return heap.Null, nil
}

func biSetCarBang(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	pairVal, rest, err := twoOperands(h, scope, tail, "set-car!")
	if err != nil {
		return heap.Null, err
	}

	if h.Kind(pairVal) != heap.KindPair {
		return heap.Null, lisperr.NewRuntime("set-car!: not a pair")
	}

	val, err := Evaluate(h, scope, rest)
	if err != nil {
		return heap.Null, err
	}

	h.SetCar(pairVal, val)

	return heap.Null, nil
}

func biSetCdrBang(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	pairVal, rest, err := twoOperands(h, scope, tail, "set-cdr!")
	if err != nil {
		return heap.Null, err
	}

	if h.Kind(pairVal) != heap.KindPair {
		return heap.Null, lisperr.NewRuntime("set-cdr!: not a pair")
	}

	val, err := Evaluate(h, scope, rest)
	if err != nil {
		return heap.Null, err
	}

	h.SetCdr(pairVal, val)

	return heap.Null, nil
}

// twoOperands evaluates the first of exactly two raw operands and returns
// it alongside the second operand's unevaluated expression, for the
// set-car!/set-cdr! forms which must not evaluate their mutated pair's
// replacement value before confirming the pair argument's type.
func twoOperands(h *heap.Heap, scope *heap.Scope, tail heap.Handle, form string) (heap.Handle, heap.Handle, error) {
	if tail == heap.Null || h.Kind(tail) != heap.KindPair {
		return heap.Null, heap.Null, lisperr.NewSyntax(form + " requires 2 arguments")
	}

	rest := h.Cdr(tail)
	if rest == heap.Null || h.Kind(rest) != heap.KindPair || h.Cdr(rest) != heap.Null {
		return heap.Null, heap.Null, lisperr.NewSyntax(form + " requires 2 arguments")
	}

	pairVal, err := Evaluate(h, scope, h.Car(tail))
	if err != nil {
		return heap.Null, heap.Null, err
	}

	return pairVal, h.Car(rest), nil
}

func biIf(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	if tail == heap.Null || h.Kind(tail) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("if requires 2 or 3 arguments")
	}

	rest := h.Cdr(tail)
	if rest == heap.Null || h.Kind(rest) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("if requires 2 or 3 arguments")
	}

	elseTail := h.Cdr(rest)
	if elseTail != heap.Null {
		if h.Kind(elseTail) != heap.KindPair || h.Cdr(elseTail) != heap.Null {
			return heap.Null, lisperr.NewSyntax("if requires 2 or 3 arguments")
		}
	}

	cond, err := Evaluate(h, scope, h.Car(tail))
	if err != nil {
		return heap.Null, err
	}

	if isTruthy(h, cond) {
		return Evaluate(h, scope, h.Car(rest))
	}

	if elseTail == heap.Null {
		return heap.Null, nil
	}

	return Evaluate(h, scope, h.Car(elseTail))
}

func biLambda(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	return constructLambda(h, scope, tail)
}

// constructLambda builds a Closure from an operand tree shaped
// (params . bodyForms), shared by the lambda special form and define's
// lambda-sugar.
func constructLambda(h *heap.Heap, scope *heap.Scope, tail heap.Handle) (heap.Handle, error) {
	if tail == heap.Null || h.Kind(tail) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("invalid number of arguments for lambda construction")
	}

	paramsNode := h.Car(tail)
	if paramsNode != heap.Null && h.Kind(paramsNode) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("argument list required for lambda construction")
	}

	body := h.Cdr(tail)
	if body == heap.Null || h.Kind(body) != heap.KindPair {
		return heap.Null, lisperr.NewSyntax("can't create empty lambda")
	}

	paramHandles := parseArgsNoEval(h, paramsNode)
	params := make([]string, len(paramHandles))

	for i, p := range paramHandles {
		if h.Kind(p) != heap.KindSymbol {
			return heap.Null, lisperr.NewRuntime("lambda parameter must be a symbol")
		}

		params[i] = h.SymbolName(p)
	}

	return h.MakeClosure(scope, params, body), nil
}

// applyClosure invokes a Closure: a fresh scope enclosed by the closure's
// captured scope, arguments evaluated in the caller's scope and bound in
// that fresh scope, body forms evaluated in sequence.
func applyClosure(h *heap.Heap, scope *heap.Scope, closureHandle, tail heap.Handle) (heap.Handle, error) {
	params := h.ClosureParams(closureHandle)
	captured := h.ClosureScope(closureHandle)

	child := heap.NewScope(h, captured)
	child.Retain()
	defer child.Release()

	cur := tail

	for _, p := range params {
		if cur == heap.Null {
			return heap.Null, lisperr.NewRuntime("incorrect number of arguments for lambda function")
		}

		argVal, err := Evaluate(h, scope, h.Car(cur))
		if err != nil {
			return heap.Null, err
		}

		child.Define(p, argVal)
		cur = h.Cdr(cur)
	}

	if cur != heap.Null {
		return heap.Null, lisperr.NewRuntime("incorrect number of arguments for lambda function")
	}

	body := h.ClosureBody(closureHandle)
	result := heap.Null

	for b := body; b != heap.Null; b = h.Cdr(b) {
		v, err := Evaluate(h, child, h.Car(b))
		if err != nil {
			return heap.Null, err
		}

		result = v
	}

	return result, nil
}
