package track

import (
	"errors"
	"fmt"

	"github.com/globalaiplatform/go-langdiff/debug"
	"github.com/globalaiplatform/go-langdiff/ir"
)

// Apply applies a patch to a document, operation by operation, and
// returns the resulting document. The input document is never mutated.
// On failure the returned document carries every operation before the
// failing one; the error is an *ApplyError naming the failing index.
// Applying an empty patch returns an unchanged copy.
func Apply(doc *ir.Node, p Patch) (*ir.Node, error) {
	res := doc.Clone()
	for i, op := range p {
		if debug.Patch() {
			debug.Logf("track: apply %s\n", op)
		}
		var err error
		res, err = applyOp(res, op)
		if err != nil {
			return res, &ApplyError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
	}
	return res, nil
}

func applyOp(root *ir.Node, op Operation) (*ir.Node, error) {
	if len(op.Path) == 0 {
		switch op.Op {
		case OpAdd, OpReplace:
			return op.Value.Clone(), nil
		default:
			return root, errors.New("cannot remove the document root")
		}
	}
	parent, err := root.Lookup(op.Path[:len(op.Path)-1])
	if err != nil {
		return root, err
	}
	last := op.Path[len(op.Path)-1]
	switch parent.Type {
	case ir.ObjectType:
		return root, applyObjOp(parent, op, last)
	case ir.ArrayType:
		return root, applyArrOp(parent, op, last)
	default:
		return root, fmt.Errorf("%s is a %s, not a container", op.Path[:len(op.Path)-1].Pointer(), parent.Type)
	}
}

func applyObjOp(obj *ir.Node, op Operation, last ir.Step) error {
	switch op.Op {
	case OpAdd:
		obj.Set(last.Key, op.Value.Clone())
	case OpRemove:
		if !obj.Delete(last.Key) {
			return fmt.Errorf("%w: no field %q", ir.ErrNotFound, last.Key)
		}
	case OpReplace:
		if obj.Get(last.Key) == nil {
			return fmt.Errorf("%w: no field %q", ir.ErrNotFound, last.Key)
		}
		obj.Set(last.Key, op.Value.Clone())
	}
	return nil
}

func applyArrOp(arr *ir.Node, op Operation, last ir.Step) error {
	n := len(arr.Values)
	idx := last.Index
	if last.Key == "-" {
		idx = n
	}
	switch op.Op {
	case OpAdd:
		// one-past-the-end appends
		if idx < 0 || idx > n {
			return fmt.Errorf("%w: index %q out of range 0..%d", ir.ErrNotFound, last.Key, n)
		}
		if idx == n {
			arr.Append(op.Value.Clone())
		} else {
			arr.InsertAt(idx, op.Value.Clone())
		}
	case OpRemove:
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %q out of range 0..%d", ir.ErrNotFound, last.Key, n-1)
		}
		arr.RemoveAt(idx)
	case OpReplace:
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %q out of range 0..%d", ir.ErrNotFound, last.Key, n-1)
		}
		arr.ReplaceAt(idx, op.Value.Clone())
	}
	return nil
}
