package node

import (
	"github.com/globalaiplatform/go-langdiff/ir"
)

// Event is the dynamic view of a node event, used where the static
// per-variant subscription types are not known (the CLI, schema-built
// trees).
type Event struct {
	Type  string // "append" or "complete"
	Path  ir.Path
	Index int // element index for sequence appends, else -1
	Value any
}

type anyCompleter interface {
	onCompleteAny(fn func(v any))
}

type nodeAppender interface {
	onAppendNode(fn func(child Node, index int))
}

// Watch subscribes fn to every append and completion event in the
// subtree rooted at n, including elements appended later. Subscriptions
// are fire-forward-only, so Watch must be installed before data flows.
func Watch(n Node, fn func(Event)) {
	if t, ok := n.(*Text); ok {
		t.OnAppend(func(chunk string) {
			fn(Event{Type: "append", Path: Path(t), Index: -1, Value: chunk})
		})
	}
	if a, ok := n.(nodeAppender); ok {
		a.onAppendNode(func(child Node, index int) {
			fn(Event{Type: "append", Path: Path(child), Index: index, Value: child.Value()})
			Watch(child, fn)
		})
	}
	if r, ok := n.(*Record); ok {
		for _, f := range r.Fields() {
			Watch(f.Node, fn)
		}
	}
	if c, ok := n.(anyCompleter); ok {
		c.onCompleteAny(func(v any) {
			fn(Event{Type: "complete", Path: Path(n), Index: -1, Value: v})
		})
	}
}

func (t *Text) onCompleteAny(fn func(v any)) {
	t.OnComplete(func(s string) { fn(s) })
}

func (s *Sequence[T]) onCompleteAny(fn func(v any)) {
	s.OnComplete(func(items []any) { fn(items) })
}

func (r *Record) onCompleteAny(fn func(v any)) {
	r.OnComplete(func(v map[string]any) { fn(v) })
}
