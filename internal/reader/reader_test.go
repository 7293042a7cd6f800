package reader

import (
	"testing"

	"github.com/ehollis/slisp/internal/eval"
	"github.com/ehollis/slisp/internal/heap"
)

func mustRead(t *testing.T, h *heap.Heap, src string) heap.Handle {
	t.Helper()

	v, err := ReadProgram(h, src)
	if err != nil {
		t.Fatalf("ReadProgram(%q) returned error: %v", src, err)
	}

	return v
}

func TestReadAtoms(t *testing.T) {
	h := heap.New()

	n := mustRead(t, h, "42")
	if h.Kind(n) != heap.KindNumber || h.Number(n) != 42 {
		t.Fatalf("unexpected number read")
	}

	s := mustRead(t, h, "foo")
	if h.Kind(s) != heap.KindSymbol || h.SymbolName(s) != "foo" {
		t.Fatalf("unexpected symbol read")
	}
}

func TestReadProperList(t *testing.T) {
	h := heap.New()

	v := mustRead(t, h, "(1 2 3)")

	out, err := eval.Print(h, v)
	if err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	if out != "(1 2 3)" {
		t.Fatalf("Print = %q, want (1 2 3)", out)
	}
}

func TestReadDottedPair(t *testing.T) {
	h := heap.New()

	v := mustRead(t, h, "(1 . 2)")

	out, err := eval.Print(h, v)
	if err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	if out != "(1 . 2)" {
		t.Fatalf("Print = %q, want (1 . 2)", out)
	}
}

func TestReadQuoteSugar(t *testing.T) {
	h := heap.New()

	v := mustRead(t, h, "'x")

	out, err := eval.Print(h, v)
	if err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	if out != "(quote x)" {
		t.Fatalf("Print = %q, want (quote x)", out)
	}
}

func TestReadEmptyList(t *testing.T) {
	h := heap.New()

	v := mustRead(t, h, "()")
	if v != heap.Null {
		t.Fatalf("expected () to read as Null")
	}
}

func TestMalformedDottedPairIsSyntaxError(t *testing.T) {
	h := heap.New()

	if _, err := ReadProgram(h, "(1 2 . 3 4)"); err == nil {
		t.Fatalf("expected syntax error for malformed dotted pair")
	}
}

func TestUnclosedListIsSyntaxError(t *testing.T) {
	h := heap.New()

	if _, err := ReadProgram(h, "(1 2"); err == nil {
		t.Fatalf("expected syntax error for unclosed list")
	}
}

func TestMultipleExpressionsIsSyntaxError(t *testing.T) {
	h := heap.New()

	if _, err := ReadProgram(h, "1 2"); err == nil {
		t.Fatalf("expected syntax error for more than one expression")
	}
}
