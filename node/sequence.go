package node

import (
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

// Sequence is an ordered, strictly growing list of child nodes built by
// a factory. Append events fire once an element is provably
// final-or-finalizable: streamable children (Text, Record, Sequence)
// materialize on first sight, since they absorb later revisions
// themselves; Atom children materialize only once a longer observation
// proves them final, or when finalization is forced.
type Sequence[T Node] struct {
	base
	newElem     func() T
	elemAtomic  bool
	probe       T
	appendReg   registry[seqAppend[T]]
	completeReg registry[[]any]

	children []T
	raw      *ir.Node
	observed bool
}

type seqAppend[T Node] struct {
	child T
	index int
}

func NewSequence[T Node](newElem func() T) *Sequence[T] {
	probe := newElem()
	return &Sequence[T]{
		newElem:    newElem,
		elemAtomic: probe.Kind() == KindAtom,
		probe:      probe,
	}
}

func (s *Sequence[T]) Kind() Kind { return KindSequence }

// Element returns a representative element node, for read-only
// reflection. It is never updated.
func (s *Sequence[T]) Element() Node { return s.probe }

// OnAppend subscribes to element appends. Indices are dense and
// strictly increasing from 0.
func (s *Sequence[T]) OnAppend(fn func(child T, index int)) {
	s.appendReg.on(func(a seqAppend[T]) { fn(a.child, a.index) })
}

// OnComplete subscribes to the one-time completion event carrying the
// fully resolved list of unwrapped element values.
func (s *Sequence[T]) OnComplete(fn func(items []any)) {
	s.completeReg.on(fn)
}

func (s *Sequence[T]) Value() any {
	res := make([]any, len(s.children))
	for i, c := range s.children {
		res[i] = c.Value()
	}
	return res
}

func (s *Sequence[T]) Update(raw *ir.Node) error {
	if s.done {
		return nil
	}
	if raw == nil || raw.Type == ir.NullType {
		// not yet known; indistinguishable from eventual emptiness
		return nil
	}
	if raw.Type != ir.ArrayType {
		return mismatch(s, "array", raw)
	}
	m := len(raw.Values)
	// observations only ever extend the list
	if s.raw != nil && m < len(s.raw.Values) {
		return &MismatchError{
			Path: Path(s),
			Want: fmt.Sprintf("array of at least %d elements", len(s.raw.Values)),
			Got:  fmt.Sprintf("array of %d", m),
		}
	}
	s.observed = true
	s.raw = raw
	if s.elemAtomic {
		// only elements with a successor are provably final
		for i := len(s.children); i < m-1; i++ {
			if err := s.emitAtomic(raw.Values[i], i); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < m; i++ {
		if i >= len(s.children) {
			child := s.newElem()
			child.setParent(s, "", i)
			s.children = append(s.children, child)
			logEvent(child, "append")
			s.appendReg.fire(seqAppend[T]{child: child, index: i})
		}
		child := s.children[i]
		if child.Done() {
			continue
		}
		if err := child.Update(raw.Values[i]); err != nil {
			return err
		}
		if i < m-1 {
			// a longer observation proves this element final
			if err := child.Complete(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Sequence[T]) emitAtomic(raw *ir.Node, i int) error {
	child := s.newElem()
	child.setParent(s, "", i)
	if err := child.Update(raw); err != nil {
		return err
	}
	s.children = append(s.children, child)
	logEvent(child, "append")
	s.appendReg.fire(seqAppend[T]{child: child, index: i})
	return child.Complete()
}

func (s *Sequence[T]) Complete() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.elemAtomic && s.raw != nil {
		for i := len(s.children); i < len(s.raw.Values); i++ {
			if err := s.emitAtomic(s.raw.Values[i], i); err != nil {
				return err
			}
		}
	}
	for _, c := range s.children {
		if c.Done() {
			continue
		}
		if err := c.Complete(); err != nil {
			return err
		}
	}
	values := make([]any, len(s.children))
	for i, c := range s.children {
		values[i] = c.Value()
	}
	logEvent(s, "complete")
	s.completeReg.fire(values)
	return nil
}

func (s *Sequence[T]) onAppendNode(fn func(child Node, index int)) {
	s.OnAppend(func(c T, i int) { fn(c, i) })
}
