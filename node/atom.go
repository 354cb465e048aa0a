package node

import (
	"encoding/json"
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

// Atom holds a scalar or structurally nested value that has no safe
// partial meaning: no append events, one completion event carrying the
// fully decoded value once the value is structurally closed.
type Atom[T any] struct {
	base
	completeReg registry[T]

	raw *ir.Node
	val T
}

func NewAtom[T any]() *Atom[T] { return &Atom[T]{} }

func (a *Atom[T]) Kind() Kind { return KindAtom }

func (a *Atom[T]) OnComplete(fn func(v T)) { a.completeReg.on(fn) }

func (a *Atom[T]) Value() any {
	if a.done {
		return a.val
	}
	return a.raw.ToGo()
}

func (a *Atom[T]) Update(raw *ir.Node) error {
	if a.done {
		return nil
	}
	// the raw value is replaced wholesale; decoding happens at
	// completion, when the value can no longer be revised
	a.raw = raw
	return nil
}

func (a *Atom[T]) Complete() error {
	if a.done {
		return nil
	}
	if a.raw != nil && a.raw.Type != ir.NullType {
		if err := decodeRaw(a.raw, &a.val); err != nil {
			a.done = true
			return fmt.Errorf("atom at %q: %w", Path(a).Pointer(), err)
		}
	}
	a.done = true
	logEvent(a, "complete")
	a.completeReg.fire(a.val)
	return nil
}

func (a *Atom[T]) onCompleteAny(fn func(v any)) {
	a.OnComplete(func(v T) { fn(v) })
}

// decodeRaw coerces a raw value into the atom's Go type through a JSON
// round trip.
func decodeRaw(raw *ir.Node, dst any) error {
	d, err := json.Marshal(raw.ToGo())
	if err != nil {
		return err
	}
	return json.Unmarshal(d, dst)
}
