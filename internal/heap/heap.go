// Package heap implements slisp's value model, allocator, mark-and-sweep
// collector, and the lexically scoped binding chain whose bindings form the
// collector's root set.
//
// Values are not Go pointers but Handles — indices into the Heap's slot
// slice — so that the mark-and-sweep pass can walk the live set without
// chasing raw pointers and so that Scope bindings (which are themselves
// just Handles) are cheap to store and root.
package heap

// Handle is a non-owning reference to a value stored in a Heap. The zero
// value is an ordinary handle (the Heap's first slot), not "no value"; use
// Null for "no value" / the empty list.
type Handle int32

// Null is the distinguished handle representing both the empty list and
// "no value", per spec's null-handle sentinel.
const Null Handle = -1

// Kind tags the variant a live Handle holds.
type Kind int

// KindNull is the Kind reported for the Null handle itself: it matches no
// real variant, so every Kind-switch and Kind-equality check is safe to
// call with Null without a separate nil check at each call site.
const KindNull Kind = -1

const (
	// KindNumber holds a signed 64-bit integer.
	KindNumber Kind = iota
	// KindSymbol holds an interning-free string name.
	KindSymbol
	// KindPair holds two mutable Handle slots, car and cdr.
	KindPair
	// KindBuiltin holds the name of a primitive procedure or special form.
	KindBuiltin
	// KindClosure holds a captured Scope, a parameter list, and a body.
	KindClosure
)

type closure struct {
	scope  *Scope
	params []string
	body   Handle
}

type object struct {
	kind Kind

	num int64
	sym string

	car, cdr Handle

	builtin string

	cl *closure

	marked bool
}

// Heap owns every live value and the root set that anchors the collector.
type Heap struct {
	slots []*object
	free  []Handle

	// roots is a multiset: the same Handle may be rooted more than once
	// (e.g. two distinct Scope bindings that happen to hold the same
	// literal handle), so it must be reference-counted rather than a set.
	roots map[Handle]int
}

// New creates an empty Heap with no roots.
func New() *Heap {
	return &Heap{roots: map[Handle]int{}}
}

func (h *Heap) alloc(o *object) Handle {
	if n := len(h.free); n > 0 {
		idx := h.free[n-1]
		h.free = h.free[:n-1]
		h.slots[idx] = o
		return idx
	}

	h.slots = append(h.slots, o)

	return Handle(len(h.slots) - 1)
}

func (h *Heap) get(hnd Handle, k Kind) *object {
	o := h.slots[hnd]
	if o == nil || o.kind != k {
		panic("heap: handle does not hold the expected kind")
	}

	return o
}

// Kind reports the variant held by hnd, or KindNull if hnd is Null. Every
// other accessor (Car, Number, BuiltinName, ...) still requires a live,
// non-Null handle of the matching kind.
func (h *Heap) Kind(hnd Handle) Kind {
	if hnd == Null {
		return KindNull
	}

	return h.slots[hnd].kind
}

// MakeNumber allocates a new Number value.
func (h *Heap) MakeNumber(n int64) Handle {
	return h.alloc(&object{kind: KindNumber, num: n})
}

// Number returns the integer held by hnd, which must be KindNumber.
func (h *Heap) Number(hnd Handle) int64 {
	return h.get(hnd, KindNumber).num
}

// MakeSymbol allocates a new Symbol value.
func (h *Heap) MakeSymbol(name string) Handle {
	return h.alloc(&object{kind: KindSymbol, sym: name})
}

// SymbolName returns the name held by hnd, which must be KindSymbol.
func (h *Heap) SymbolName(hnd Handle) string {
	return h.get(hnd, KindSymbol).sym
}

// MakePair allocates a new Pair value with the given car and cdr.
func (h *Heap) MakePair(car, cdr Handle) Handle {
	return h.alloc(&object{kind: KindPair, car: car, cdr: cdr})
}

// Car returns the car slot of hnd, which must be KindPair.
func (h *Heap) Car(hnd Handle) Handle {
	return h.get(hnd, KindPair).car
}

// Cdr returns the cdr slot of hnd, which must be KindPair.
func (h *Heap) Cdr(hnd Handle) Handle {
	return h.get(hnd, KindPair).cdr
}

// SetCar mutates the car slot of hnd, which must be KindPair. The next
// Collect observes the new edge because marking reads car/cdr directly
// from the slot rather than from a cached edge set.
func (h *Heap) SetCar(hnd, v Handle) {
	h.get(hnd, KindPair).car = v
}

// SetCdr mutates the cdr slot of hnd, which must be KindPair.
func (h *Heap) SetCdr(hnd, v Handle) {
	h.get(hnd, KindPair).cdr = v
}

// MakeBuiltin allocates a new Builtin value identifying a primitive by
// name. The interpretation of name (special form vs. applicative
// procedure) lives entirely in the eval package's dispatch table.
func (h *Heap) MakeBuiltin(name string) Handle {
	return h.alloc(&object{kind: KindBuiltin, builtin: name})
}

// BuiltinName returns the name held by hnd, which must be KindBuiltin.
func (h *Heap) BuiltinName(hnd Handle) string {
	return h.get(hnd, KindBuiltin).builtin
}

// MakeClosure allocates a new Closure value capturing scope, params, and
// body. Construction retains scope: the closure's captured scope outlives
// the closure only by holding this one reference.
func (h *Heap) MakeClosure(scope *Scope, params []string, body Handle) Handle {
	scope.retain()

	return h.alloc(&object{
		kind: KindClosure,
		cl:   &closure{scope: scope, params: params, body: body},
	})
}

// ClosureScope returns the captured scope of hnd, which must be KindClosure.
func (h *Heap) ClosureScope(hnd Handle) *Scope {
	return h.get(hnd, KindClosure).cl.scope
}

// ClosureParams returns the parameter name list of hnd, which must be
// KindClosure.
func (h *Heap) ClosureParams(hnd Handle) []string {
	return h.get(hnd, KindClosure).cl.params
}

// ClosureBody returns the body handle of hnd, which must be KindClosure.
func (h *Heap) ClosureBody(hnd Handle) Handle {
	return h.get(hnd, KindClosure).cl.body
}

// AddRoot registers hnd as a GC root. Roots are a multiset: registering the
// same handle twice requires two matching RemoveRoot calls before hnd can
// be collected.
func (h *Heap) AddRoot(hnd Handle) {
	if hnd == Null {
		return
	}

	h.roots[hnd]++
}

// RemoveRoot unregisters one prior AddRoot registration of hnd.
func (h *Heap) RemoveRoot(hnd Handle) {
	if hnd == Null {
		return
	}

	if h.roots[hnd] <= 1 {
		delete(h.roots, hnd)
		return
	}

	h.roots[hnd]--
}

// Collect runs a mark-and-sweep pass. Every value reachable from the root
// set survives; everything else is reclaimed and its slot is returned to
// the free list (spec's "storage is compacted" alternative: stable
// indices via a free list rather than rewriting every live Handle).
func (h *Heap) Collect() {
	for hnd, count := range h.roots {
		if count > 0 {
			h.mark(hnd)
		}
	}

	for idx, o := range h.slots {
		if o == nil || o.marked {
			continue
		}

		hnd := Handle(idx)
		if o.kind == KindClosure {
			o.cl.scope.release()
		}

		h.slots[idx] = nil
		h.free = append(h.free, hnd)
	}

	for _, o := range h.slots {
		if o != nil {
			o.marked = false
		}
	}
}

func (h *Heap) mark(hnd Handle) {
	if hnd == Null {
		return
	}

	o := h.slots[hnd]
	if o == nil || o.marked {
		return
	}

	o.marked = true

	switch o.kind {
	case KindPair:
		h.mark(o.car)
		h.mark(o.cdr)
	case KindClosure:
		h.mark(o.cl.body)
	case KindNumber, KindSymbol, KindBuiltin:
		// No outgoing edges.
	}
}

// Shutdown destroys every value, releasing every closure's captured scope
// on the way, leaving the Heap empty. Called once, when the owning
// Interpreter is torn down.
func (h *Heap) Shutdown() {
	for idx, o := range h.slots {
		if o == nil {
			continue
		}

		if o.kind == KindClosure {
			o.cl.scope.release()
		}

		h.slots[idx] = nil
	}

	h.free = nil
	h.roots = map[Handle]int{}
}
