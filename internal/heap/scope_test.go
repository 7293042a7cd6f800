package heap

import "testing"

func TestDefineAndResolve(t *testing.T) {
	h := New()
	s := NewScope(h, nil)

	v := h.MakeNumber(7)
	s.Define("x", v)

	got, err := s.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if got != v {
		t.Fatalf("Resolve = %v, want %v", got, v)
	}
}

func TestResolveWalksEnclosingScopes(t *testing.T) {
	h := New()
	outer := NewScope(h, nil)
	inner := NewScope(h, outer)

	v := h.MakeNumber(9)
	outer.Define("y", v)

	got, err := inner.Resolve("y")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if got != v {
		t.Fatalf("Resolve = %v, want %v", got, v)
	}
}

func TestResolveUnboundIsNameError(t *testing.T) {
	h := New()
	s := NewScope(h, nil)

	if _, err := s.Resolve("nope"); err == nil {
		t.Fatalf("expected error resolving an unbound name")
	}
}

func TestSetRebindsInDefiningScope(t *testing.T) {
	h := New()
	outer := NewScope(h, nil)
	inner := NewScope(h, outer)

	outer.Define("z", h.MakeNumber(1))

	v := h.MakeNumber(2)
	if err := inner.Set("z", v); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, _ := outer.Resolve("z")
	if got != v {
		t.Fatalf("outer scope was not updated by inner Set")
	}
}

func TestSetUnboundIsNameError(t *testing.T) {
	h := New()
	s := NewScope(h, nil)

	if err := s.Set("nope", h.MakeNumber(1)); err == nil {
		t.Fatalf("expected error setting an unbound name")
	}
}
