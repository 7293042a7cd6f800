package heap

import "github.com/ehollis/slisp/internal/lisperr"

// Scope is one link in the lexically scoped binding chain: a name->Handle
// table plus a pointer to the enclosing scope. The head scope is the
// innermost; the chain's tail is the global scope.
//
// Scope's own lifetime is reference counted rather than garbage collected:
// a Scope is not itself a Heap value, so the collector cannot discover it
// by marking. Instead, every Closure that captures a Scope retains it, and
// a call's own local scope is retained for the call's duration. When a
// Scope's count drops to zero, its bindings are unrooted and the enclosing
// scope is released in turn — the same cascade a reference-counted
// ownership chain produces.
type Scope struct {
	heap     *Heap
	vars     map[string]Handle
	parent   *Scope
	refcount int
}

// NewScope creates a scope enclosed by parent (nil for the global scope).
// Construction retains parent once, holding one reference to its
// enclosing scope for the lifetime of this scope.
func NewScope(h *Heap, parent *Scope) *Scope {
	if parent != nil {
		parent.retain()
	}

	return &Scope{heap: h, vars: map[string]Handle{}, parent: parent}
}

// Enclosing returns the parent scope, or nil for the global scope.
func (s *Scope) Enclosing() *Scope {
	return s.parent
}

func (s *Scope) retain() {
	s.refcount++
}

func (s *Scope) release() {
	if s == nil {
		return
	}

	s.refcount--
	if s.refcount > 0 {
		return
	}

	for _, hnd := range s.vars {
		s.heap.RemoveRoot(hnd)
	}

	s.parent.release()
}

// Retain marks s as held by one more owner outside the normal
// construction/call bracketing — used by Interpreter to keep the global
// scope alive for the interpreter's entire lifetime.
func (s *Scope) Retain() {
	s.retain()
}

// Release drops the reference Retain (or construction) established.
func (s *Scope) Release() {
	s.release()
}

// Define binds name to hnd in this scope, rooting hnd. A prior binding of
// the same name in this scope is unrooted first.
func (s *Scope) Define(name string, hnd Handle) {
	if old, ok := s.vars[name]; ok {
		s.heap.RemoveRoot(old)
	}

	s.vars[name] = hnd
	s.heap.AddRoot(hnd)
}

// Set rebinds name in the nearest enclosing scope where it is already
// bound. It returns a NameError if name is unbound anywhere in the chain.
func (s *Scope) Set(name string, hnd Handle) error {
	for sc := s; sc != nil; sc = sc.parent {
		if old, ok := sc.vars[name]; ok {
			sc.heap.RemoveRoot(old)
			sc.vars[name] = hnd
			sc.heap.AddRoot(hnd)

			return nil
		}
	}

	return lisperr.NewName("can't set value of undefined symbol: " + name)
}

// Resolve looks up name starting from this scope and walking outward. It
// returns a NameError if name is unbound anywhere in the chain.
func (s *Scope) Resolve(name string) (Handle, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if hnd, ok := sc.vars[name]; ok {
			return hnd, nil
		}
	}

	return Null, lisperr.NewName("symbol not found: " + name)
}
