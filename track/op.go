package track

import (
	"encoding/json"
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
)

// Operation is one immutable add/remove/replace edit at a path.
type Operation struct {
	Op    OpKind
	Path  ir.Path
	Value *ir.Node
}

// Patch is an ordered sequence of operations representing one diff
// unit. Later operations observe the effects of earlier ones.
type Patch []Operation

func add(path ir.Path, v *ir.Node) Operation {
	return Operation{Op: OpAdd, Path: path, Value: v.Clone()}
}

func remove(path ir.Path) Operation {
	return Operation{Op: OpRemove, Path: path}
}

func replace(path ir.Path, v *ir.Node) Operation {
	return Operation{Op: OpReplace, Path: path, Value: v.Clone()}
}

type wireOp struct {
	Op    OpKind          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

func (o Operation) MarshalJSON() ([]byte, error) {
	w := wireOp{Op: o.Op, Path: o.Path.Pointer()}
	if o.Op != OpRemove {
		d, err := json.Marshal(o.Value)
		if err != nil {
			return nil, err
		}
		w.Value = d
	}
	return json.Marshal(w)
}

func (o *Operation) UnmarshalJSON(d []byte) error {
	var w wireOp
	if err := json.Unmarshal(d, &w); err != nil {
		return err
	}
	switch w.Op {
	case OpAdd, OpRemove, OpReplace:
	default:
		return fmt.Errorf("unsupported op %q", w.Op)
	}
	path, err := ir.ParsePointer(w.Path)
	if err != nil {
		return err
	}
	o.Op = w.Op
	o.Path = path
	o.Value = nil
	if w.Value != nil {
		var v any
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return err
		}
		o.Value, err = ir.FromGo(v)
		if err != nil {
			return err
		}
	}
	return nil
}

func (o Operation) String() string {
	if o.Op == OpRemove {
		return fmt.Sprintf("%s %s", o.Op, o.Path.Pointer())
	}
	return fmt.Sprintf("%s %s = %v", o.Op, o.Path.Pointer(), o.Value.ToGo())
}
