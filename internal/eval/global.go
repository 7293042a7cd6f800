package eval

import "github.com/ehollis/slisp/internal/heap"

// globalNames lists every name SetupGlobal binds to a Builtin value, per
// spec's enumerated global-names list.
var globalNames = []string{
	"number?", "symbol?", "boolean?", "null?", "pair?", "list?",
	"cons", "list", "car", "cdr", "list-ref", "list-tail",
	"not", "and", "or",
	"+", "-", "*", "/", "=", ">", "<", ">=", "<=", "max", "min", "abs",
	"define", "set!", "set-car!", "set-cdr!", "if", "lambda", "quote",
}

// SetupGlobal allocates the outermost Scope and binds every primitive name
// and the #t/#f symbols into it. The returned Scope is retained once on
// the Interpreter's behalf; the caller owns that reference.
func SetupGlobal(h *heap.Heap) *heap.Scope {
	g := heap.NewScope(h, nil)
	g.Retain()

	for _, name := range globalNames {
		g.Define(name, h.MakeBuiltin(name))
	}

	g.Define("#t", h.MakeSymbol("#t"))
	g.Define("#f", h.MakeSymbol("#f"))

	return g
}
