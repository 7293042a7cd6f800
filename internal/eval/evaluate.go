package eval

import (
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
)

// Evaluate reduces node to a value in scope. Numbers evaluate to
// themselves; Symbols resolve through scope; a Pair is a call form whose
// head determines whether the tail is evaluated eagerly (an applicative
// procedure) or passed raw (a special form, including the
// always-intercepted quote). Null and any other value (a Builtin or a
// Closure) are a RuntimeError.
func Evaluate(h *heap.Heap, scope *heap.Scope, node heap.Handle) (heap.Handle, error) {
	if node == heap.Null {
		return heap.Null, lisperr.NewRuntime("evaluating null not allowed")
	}

	switch h.Kind(node) {
	case heap.KindNumber:
		return node, nil
	case heap.KindSymbol:
		return scope.Resolve(h.SymbolName(node))
	case heap.KindPair:
		return evalPair(h, scope, node)
	default:
		return heap.Null, lisperr.NewRuntime("value has no evaluation")
	}
}

func evalPair(h *heap.Heap, scope *heap.Scope, node heap.Handle) (heap.Handle, error) {
	head := h.Car(node)
	tail := h.Cdr(node)

	if h.Kind(head) == heap.KindSymbol {
		name := h.SymbolName(head)

		if name == "quote" {
			if tail == heap.Null || h.Kind(tail) != heap.KindPair {
				return heap.Null, lisperr.NewSyntax("quote requires 1 argument")
			}

			return h.Car(tail), nil
		}

		proc, err := scope.Resolve(name)
		if err != nil {
			return heap.Null, err
		}

		return invoke(h, scope, proc, tail)
	}

	proc, err := Evaluate(h, scope, head)
	if err != nil {
		return heap.Null, err
	}

	if h.Kind(proc) != heap.KindClosure {
		return heap.Null, lisperr.NewRuntime("function name has to be callable")
	}

	return invoke(h, scope, proc, tail)
}

func invoke(h *heap.Heap, scope *heap.Scope, proc, tail heap.Handle) (heap.Handle, error) {
	switch h.Kind(proc) {
	case heap.KindBuiltin:
		name := h.BuiltinName(proc)

		fn, ok := builtins[name]
		if !ok {
			return heap.Null, lisperr.NewRuntime("unknown builtin: " + name)
		}

		return fn(h, scope, tail)
	case heap.KindClosure:
		return applyClosure(h, scope, proc, tail)
	default:
		return heap.Null, lisperr.NewRuntime("calling a non-procedure")
	}
}
