package slisp

import (
	"github.com/ehollis/slisp/internal/eval"
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/reader"
)

// Interpreter is one independent evaluation context: a Heap plus the
// global Scope bootstrapped with slisp's builtin procedures and special
// forms. Interpreters do not share state; construct one per program.
type Interpreter struct {
	heap   *heap.Heap
	global *heap.Scope
}

// New constructs an Interpreter with a fresh Heap and a global Scope
// bound with every builtin name.
func New() *Interpreter {
	h := heap.New()
	g := eval.SetupGlobal(h)

	return &Interpreter{heap: h, global: g}
}

// Run reads exactly one expression from program, evaluates it in the
// global scope, and returns its printed form. The Heap is collected
// after every call, whether Run succeeds or fails, so that no
// expression's partial or final structure outlives the call unless it
// is still reachable from the global scope (e.g. via define).
func (in *Interpreter) Run(program string) (string, error) {
	defer in.heap.Collect()

	node, err := reader.ReadProgram(in.heap, program)
	if err != nil {
		return "", err
	}

	result, err := eval.Evaluate(in.heap, in.global, node)
	if err != nil {
		return "", err
	}

	return eval.Print(in.heap, result)
}

// Close tears the Interpreter down: the global scope is released, then
// every remaining value on the Heap is destroyed.
func (in *Interpreter) Close() {
	in.global.Release()
	in.heap.Shutdown()
}
