package track

import (
	"fmt"

	"github.com/globalaiplatform/go-langdiff/debug"
	"github.com/globalaiplatform/go-langdiff/ir"
)

// Tracker owns a document and a log of the mutations routed through
// it. The direct strategy logs one operation per mutation call; the
// minimizing strategy instead snapshots the document at flush
// boundaries and emits the smallest sufficient patch between
// snapshots, so repeated edits to one path collapse.
type Tracker struct {
	doc        *ir.Node
	minimizing bool
	detached   bool
	log        Patch
	snap       *ir.Node // pre-flush snapshot, minimizing only
}

type Option func(*Tracker)

// WithMinimizing selects the minimizing emission strategy.
func WithMinimizing() Option {
	return func(t *Tracker) { t.minimizing = true }
}

func NewTracker(doc *ir.Node, opts ...Option) *Tracker {
	t := &Tracker{doc: doc}
	for _, opt := range opts {
		opt(t)
	}
	if t.minimizing {
		t.snap = doc.Clone()
	}
	return t
}

// Doc returns the live tracked document.
func (t *Tracker) Doc() *ir.Node { return t.doc }

// Detach disconnects the tracker from its document. Further mutation
// calls fail with ErrDetached; Flush still drains what was recorded.
func (t *Tracker) Detach() { t.detached = true }

// Set writes a value at path: a new object field is an add, an
// existing field or array element a replace. An empty path replaces
// the document root.
func (t *Tracker) Set(path ir.Path, v *ir.Node) error {
	if t.detached {
		return ErrDetached
	}
	if len(path) == 0 {
		return t.Replace(path, v)
	}
	parent, last, err := t.container(path)
	if err != nil {
		return err
	}
	switch parent.Type {
	case ir.ObjectType:
		if parent.Get(last.Key) == nil {
			parent.Set(last.Key, v.Clone())
			t.record(add(path, v))
			return nil
		}
		parent.Set(last.Key, v.Clone())
		t.record(replace(path, v))
		return nil
	case ir.ArrayType:
		if last.Index < 0 || last.Index >= len(parent.Values) {
			return fmt.Errorf("%w: index %q out of range", ir.ErrNotFound, last.Key)
		}
		parent.ReplaceAt(last.Index, v.Clone())
		t.record(replace(path, v))
		return nil
	default:
		return fmt.Errorf("%s is a %s, not a container", path[:len(path)-1].Pointer(), parent.Type)
	}
}

// Append adds v at the end of the array at path.
func (t *Tracker) Append(path ir.Path, v *ir.Node) error {
	if t.detached {
		return ErrDetached
	}
	arr, err := t.doc.Lookup(path)
	if err != nil {
		return err
	}
	if arr.Type != ir.ArrayType {
		return fmt.Errorf("%s is a %s, not an array", path.Pointer(), arr.Type)
	}
	idx := len(arr.Values)
	arr.Append(v.Clone())
	t.record(add(path.Child(ir.Index(idx)), v))
	return nil
}

// Insert inserts v at the array position path addresses, shifting
// later elements. One-past-the-end appends.
func (t *Tracker) Insert(path ir.Path, v *ir.Node) error {
	if t.detached {
		return ErrDetached
	}
	parent, last, err := t.container(path)
	if err != nil {
		return err
	}
	if parent.Type != ir.ArrayType {
		return fmt.Errorf("%s is a %s, not an array", path[:len(path)-1].Pointer(), parent.Type)
	}
	n := len(parent.Values)
	if last.Index < 0 || last.Index > n {
		return fmt.Errorf("%w: index %q out of range", ir.ErrNotFound, last.Key)
	}
	if last.Index == n {
		parent.Append(v.Clone())
	} else {
		parent.InsertAt(last.Index, v.Clone())
	}
	t.record(add(path, v))
	return nil
}

// Remove deletes the value at path.
func (t *Tracker) Remove(path ir.Path) error {
	if t.detached {
		return ErrDetached
	}
	if len(path) == 0 {
		return fmt.Errorf("cannot remove the document root")
	}
	parent, last, err := t.container(path)
	if err != nil {
		return err
	}
	switch parent.Type {
	case ir.ObjectType:
		if !parent.Delete(last.Key) {
			return fmt.Errorf("%w: no field %q", ir.ErrNotFound, last.Key)
		}
	case ir.ArrayType:
		if last.Index < 0 || last.Index >= len(parent.Values) {
			return fmt.Errorf("%w: index %q out of range", ir.ErrNotFound, last.Key)
		}
		parent.RemoveAt(last.Index)
	default:
		return fmt.Errorf("%s is a %s, not a container", path[:len(path)-1].Pointer(), parent.Type)
	}
	t.record(remove(path))
	return nil
}

// Replace overwrites the existing value at path, the whole document
// for an empty path.
func (t *Tracker) Replace(path ir.Path, v *ir.Node) error {
	if t.detached {
		return ErrDetached
	}
	if len(path) == 0 {
		t.doc = v.Clone()
		t.record(replace(path, v))
		return nil
	}
	if _, err := t.doc.Lookup(path); err != nil {
		return err
	}
	parent, last, err := t.container(path)
	if err != nil {
		return err
	}
	if parent.Type == ir.ObjectType {
		parent.Set(last.Key, v.Clone())
	} else {
		parent.ReplaceAt(last.Index, v.Clone())
	}
	t.record(replace(path, v))
	return nil
}

// Flush drains the accumulated operations into a Patch and resets the
// buffer. For the minimizing strategy the patch is the minimal diff
// between the previous flush point and the live document.
func (t *Tracker) Flush() Patch {
	if t.minimizing {
		res := Diff(t.snap, t.doc)
		t.snap = t.doc.Clone()
		t.log = nil
		return res
	}
	res := t.log
	t.log = nil
	return res
}

func (t *Tracker) container(path ir.Path) (*ir.Node, ir.Step, error) {
	parent, err := t.doc.Lookup(path[:len(path)-1])
	if err != nil {
		return nil, ir.Step{}, err
	}
	return parent, path[len(path)-1], nil
}

func (t *Tracker) record(op Operation) {
	if debug.Track() {
		debug.Logf("track: %s\n", op)
	}
	t.log = append(t.log, op)
}
