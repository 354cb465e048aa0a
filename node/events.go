package node

import "slices"

// registry is an ordered list of handlers for one (node, event) pair.
// fire iterates over a snapshot so handlers may subscribe re-entrantly,
// including on the registry currently being dispatched; handlers added
// during dispatch do not see the in-flight event.
type registry[T any] struct {
	fns []func(T)
}

func (r *registry[T]) on(fn func(T)) {
	r.fns = append(r.fns, fn)
}

func (r *registry[T]) fire(v T) {
	for _, fn := range slices.Clone(r.fns) {
		fn(v)
	}
}
