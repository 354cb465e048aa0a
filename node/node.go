package node

import (
	"github.com/globalaiplatform/go-langdiff/debug"
	"github.com/globalaiplatform/go-langdiff/ir"
)

type Kind int

const (
	KindAtom Kind = iota
	KindText
	KindSequence
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Node is one typed element of the streaming tree. The variant set is
// closed: Text, Atom, Sequence and Record are the only implementations.
type Node interface {
	// Update merges newly observed raw data into the node's state,
	// firing value events for anything newly known. Updating a
	// completed node is a no-op.
	Update(raw *ir.Node) error
	// Complete force-finalizes every pending node in the subtree,
	// children before parents. Idempotent.
	Complete() error
	// Done reports whether the node has completed. The transition is
	// monotonic and happens exactly once.
	Done() bool
	// Value returns the last known, possibly partial, value.
	Value() any
	Kind() Kind

	setParent(parent Node, field string, index int)
	parentInfo() (Node, string, int)
}

// base carries the parent back-reference and completion status shared
// by all variants. The parent link never owns: ownership runs parent
// to child only.
type base struct {
	parent      Node
	parentField string
	parentIndex int
	done        bool
}

func (b *base) Done() bool { return b.done }

func (b *base) setParent(parent Node, field string, index int) {
	b.parent = parent
	b.parentField = field
	b.parentIndex = index
}

func (b *base) parentInfo() (Node, string, int) {
	return b.parent, b.parentField, b.parentIndex
}

func logEvent(n Node, typ string) {
	if debug.Events() {
		debug.Logf("events: %s %s %s\n", typ, n.Kind(), Path(n).Pointer())
	}
}

// Path returns the node's path from the tree root.
func Path(n Node) ir.Path {
	parent, field, index := n.parentInfo()
	if parent == nil {
		return nil
	}
	prefix := Path(parent)
	if field != "" {
		return append(prefix, ir.Field(field))
	}
	return append(prefix, ir.Index(index))
}
