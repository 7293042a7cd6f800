package eval

import (
	"strconv"
	"strings"

	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
)

// Print renders v in slisp's canonical external form: the empty list as
// "()", Numbers as decimal text, Symbols verbatim, and Pairs space
// separated with a " . tail)" suffix for an improper tail. Printing a
// cyclic structure built via set-car!/set-cdr! does not terminate.
func Print(h *heap.Heap, v heap.Handle) (string, error) {
	if v == heap.Null {
		return "()", nil
	}

	switch h.Kind(v) {
	case heap.KindNumber:
		return strconv.FormatInt(h.Number(v), 10), nil
	case heap.KindSymbol:
		return h.SymbolName(v), nil
	case heap.KindPair:
		return printPair(h, v)
	default:
		return "", lisperr.NewRuntime("value has no canonical printed form")
	}
}

func printPair(h *heap.Heap, v heap.Handle) (string, error) {
	var b strings.Builder

	b.WriteByte('(')

	cur := v
	first := true

	for {
		if !first {
			b.WriteByte(' ')
		}

		first = false

		carStr, err := Print(h, h.Car(cur))
		if err != nil {
			return "", err
		}

		b.WriteString(carStr)

		cdr := h.Cdr(cur)
		if cdr == heap.Null {
			break
		}

		if h.Kind(cdr) != heap.KindPair {
			tailStr, err := Print(h, cdr)
			if err != nil {
				return "", err
			}

			b.WriteString(" . ")
			b.WriteString(tailStr)

			break
		}

		cur = cdr
	}

	b.WriteByte(')')

	return b.String(), nil
}
