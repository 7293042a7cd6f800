// Package reader builds slisp's S-expression graph from a token stream
// via recursive descent, including dotted-pair notation and the 'x
// quote-sugar rewrite to (quote x).
package reader

import (
	"github.com/ehollis/slisp/internal/heap"
	"github.com/ehollis/slisp/internal/lisperr"
	"github.com/ehollis/slisp/internal/token"
)

// ReadProgram parses exactly one expression from src and allocates it into
// h. It fails with a SyntaxError if src contains anything other than a
// single expression, per spec's one-expression-per-Run contract.
func ReadProgram(h *heap.Heap, src string) (heap.Handle, error) {
	t, err := token.New(src)
	if err != nil {
		h.Collect()
		return heap.Null, err
	}

	v, err := Read(h, t)
	if err != nil {
		return heap.Null, err
	}

	if !t.IsEnd() {
		h.Collect()
		return heap.Null, lisperr.NewSyntax("single expression required")
	}

	return v, nil
}

// Read parses one S-expression from t, allocating into h.
func Read(h *heap.Heap, t *token.Tokenizer) (heap.Handle, error) {
	if t.IsEnd() {
		h.Collect()
		return heap.Null, lisperr.NewSyntax("unexpected end of input")
	}

	cur := t.Current()

	switch cur.Kind {
	case token.Open:
		return readList(h, t)
	case token.Number:
		if err := t.Next(); err != nil {
			return heap.Null, err
		}

		return h.MakeNumber(cur.Num), nil
	case token.Symbol:
		if err := t.Next(); err != nil {
			return heap.Null, err
		}

		return h.MakeSymbol(cur.Symbol), nil
	case token.Quote:
		if err := t.Next(); err != nil {
			return heap.Null, err
		}

		inner, err := Read(h, t)
		if err != nil {
			return heap.Null, err
		}

		q := h.MakeSymbol("quote")
		tail := h.MakePair(inner, heap.Null)

		return h.MakePair(q, tail), nil
	default:
		h.Collect()
		return heap.Null, lisperr.NewSyntax("invalid syntax")
	}
}

func readList(h *heap.Heap, t *token.Tokenizer) (heap.Handle, error) {
	if t.IsEnd() || t.Current().Kind != token.Open {
		h.Collect()
		return heap.Null, lisperr.NewSyntax("invalid syntax")
	}

	if err := advance(h, t); err != nil {
		return heap.Null, err
	}

	if t.Current().Kind == token.Close {
		if err := t.Next(); err != nil {
			return heap.Null, err
		}

		return heap.Null, nil
	}

	first, err := Read(h, t)
	if err != nil {
		return heap.Null, err
	}

	head := h.MakePair(first, heap.Null)
	cur := head

	for t.Current().Kind != token.Close {
		if t.Current().Kind == token.Dot {
			if err := advance(h, t); err != nil {
				return heap.Null, err
			}

			tail, err := Read(h, t)
			if err != nil {
				return heap.Null, err
			}

			h.SetCdr(cur, tail)

			if t.IsEnd() {
				h.Collect()
				return heap.Null, lisperr.NewSyntax("unexpected end of input")
			}

			if t.Current().Kind != token.Close {
				h.Collect()
				return heap.Null, lisperr.NewSyntax("malformed dotted pair")
			}

			break
		}

		elem, err := Read(h, t)
		if err != nil {
			return heap.Null, err
		}

		next := h.MakePair(elem, heap.Null)
		h.SetCdr(cur, next)
		cur = next
	}

	if t.IsEnd() || t.Current().Kind != token.Close {
		h.Collect()
		return heap.Null, lisperr.NewSyntax("invalid syntax")
	}

	if err := t.Next(); err != nil {
		return heap.Null, err
	}

	return head, nil
}

func advance(h *heap.Heap, t *token.Tokenizer) error {
	if err := t.Next(); err != nil {
		return err
	}

	if t.IsEnd() {
		h.Collect()
		return lisperr.NewSyntax("unexpected end of input")
	}

	return nil
}
