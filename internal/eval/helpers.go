// Package eval implements slisp's recursive tree-walking evaluator: the
// dispatch between special forms and applicative procedures, the full set
// of primitive procedures, and the printer.
package eval

import (
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
)

// isTruthy reports whether v is truthy: every value is truthy except the
// symbol #f (and, per spec, null is truthy).
func isTruthy(h *heap.Heap, v heap.Handle) bool {
	if v == heap.Null {
		return true
	}

	return !(h.Kind(v) == heap.KindSymbol && h.SymbolName(v) == "#f")
}

// boolVal allocates a fresh #t or #f symbol. Symbols are interning-free
// per spec's data model, so each call allocates a new value rather than
// sharing the global scope's canonical #t/#f handles.
func boolVal(h *heap.Heap, b bool) heap.Handle {
	if b {
		return h.MakeSymbol("#t")
	}

	return h.MakeSymbol("#f")
}

func requireArity(args []heap.Handle, min, max int) error {
	if len(args) < min || len(args) > max {
		return lisperr.NewRuntime("incorrect number of arguments")
	}

	return nil
}

func requireNumbers(h *heap.Heap, args []heap.Handle) error {
	for _, a := range args {
		if h.Kind(a) != heap.KindNumber {
			return lisperr.NewRuntime("certain argument type required, invalid type given")
		}
	}

	return nil
}

// parseArgs walks an operand tree evaluating each car left-to-right. A
// non-list tail is evaluated as a single final argument, permitting dotted
// application of an already-materialized list. If the current position's
// car is literally the bare symbol quote, the rest of the tree is captured
// unevaluated as one argument and parsing stops — this mirrors the
// special-form quote handling inline.
func parseArgs(h *heap.Heap, scope *heap.Scope, tree heap.Handle) ([]heap.Handle, error) {
	if tree == heap.Null {
		return nil, nil
	}

	if h.Kind(tree) != heap.KindPair {
		v, err := Evaluate(h, scope, tree)
		if err != nil {
			return nil, err
		}

		return []heap.Handle{v}, nil
	}

	head := h.Car(tree)
	if h.Kind(head) == heap.KindSymbol && h.SymbolName(head) == "quote" {
		return []heap.Handle{h.Cdr(tree)}, nil
	}

	v, err := Evaluate(h, scope, head)
	if err != nil {
		return nil, err
	}

	rest, err := parseArgs(h, scope, h.Cdr(tree))
	if err != nil {
		return nil, err
	}

	return append([]heap.Handle{v}, rest...), nil
}

// parseArgsNoEval produces a flat list of cars without evaluation, used by
// lambda to read its parameter list.
func parseArgsNoEval(h *heap.Heap, tree heap.Handle) []heap.Handle {
	var out []heap.Handle

	for cur := tree; cur != heap.Null; cur = h.Cdr(cur) {
		out = append(out, h.Car(cur))
	}

	return out
}

// pairLength walks a cdr chain counting hops: one hop per Pair visited,
// plus one final hop if the chain ends in a non-null, non-Pair atom. A
// naive fold over this chain would re-walk and never terminate on a
// self-referential cdr (introduced by set-cdr!); this walks the
// structure directly and treats revisiting an already-seen Pair as the
// chain's final hop, so that (pair? x) terminates on a cyclic structure
// while agreeing with the naive count on every acyclic input.
func pairLength(h *heap.Heap, v heap.Handle) int64 {
	visited := map[heap.Handle]bool{}

	var count int64

	cur := v

	for {
		if cur == heap.Null {
			return count
		}

		if h.Kind(cur) != heap.KindPair || visited[cur] {
			return count + 1
		}

		visited[cur] = true
		count++
		cur = h.Cdr(cur)
	}
}

// isProperList reports whether v is a null-terminated chain of Pairs,
// using the same cycle-stopping walk as pairLength so that a
// self-referential list (via set-cdr!) is correctly classified as
// improper rather than looping forever.
func isProperList(h *heap.Heap, v heap.Handle) bool {
	visited := map[heap.Handle]bool{}

	cur := v

	for cur != heap.Null {
		if h.Kind(cur) != heap.KindPair || visited[cur] {
			return false
		}

		visited[cur] = true
		cur = h.Cdr(cur)
	}

	return true
}
