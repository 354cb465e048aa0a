package node

import (
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

// Field declares one named child of a Record.
type Field struct {
	Name string
	Node Node
	doc  string
}

type FieldOpt func(*Field)

// Doc attaches a documentation string to a field declaration. It is
// surfaced through FieldInfo for external schema derivation.
func Doc(s string) FieldOpt {
	return func(f *Field) { f.doc = s }
}

func F(name string, n Node, opts ...FieldOpt) Field {
	f := Field{Name: name, Node: n}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// FieldInfo is the read-only reflection view of a declared field.
type FieldInfo struct {
	Name string
	Kind Kind
	Doc  string
	Node Node
}

// Record is a fixed set of schema-declared named fields. Fields
// complete in arrival order: once a later declared field is observed,
// every declared field before it in the observation is proven final.
// Unknown keys are ignored and prove nothing.
type Record struct {
	base
	fields      []Field
	index       map[string]int
	doc         string
	completeReg registry[map[string]any]
}

func NewRecord(fields ...Field) *Record {
	r := &Record{fields: fields, index: make(map[string]int, len(fields))}
	for i := range fields {
		f := &fields[i]
		if _, dup := r.index[f.Name]; dup {
			panic(fmt.Sprintf("duplicate record field %q", f.Name))
		}
		r.index[f.Name] = i
		f.Node.setParent(r, f.Name, -1)
	}
	return r
}

func (r *Record) Kind() Kind { return KindRecord }

// WithDoc attaches a record-level documentation string.
func (r *Record) WithDoc(s string) *Record {
	r.doc = s
	return r
}

func (r *Record) Doc() string { return r.doc }

// Fields returns the declared fields in declaration order.
func (r *Record) Fields() []FieldInfo {
	res := make([]FieldInfo, len(r.fields))
	for i, f := range r.fields {
		res[i] = FieldInfo{Name: f.Name, Kind: f.Node.Kind(), Doc: f.doc, Node: f.Node}
	}
	return res
}

// OnComplete subscribes to the one-time completion event carrying the
// materialized field values.
func (r *Record) OnComplete(fn func(v map[string]any)) {
	r.completeReg.on(fn)
}

func (r *Record) Value() any {
	res := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		res[f.Name] = f.Node.Value()
	}
	return res
}

func (r *Record) Update(raw *ir.Node) error {
	if r.done {
		return nil
	}
	if raw == nil || raw.Type == ir.NullType {
		return nil
	}
	if raw.Type != ir.ObjectType {
		return mismatch(r, "object", raw)
	}
	// declared fields present in the observation, in arrival order
	present := make([]int, 0, len(raw.Fields))
	for i, key := range raw.Fields {
		if _, ok := r.index[key]; ok {
			present = append(present, i)
		}
	}
	for pos, rawIdx := range present {
		child := r.fields[r.index[raw.Fields[rawIdx]]].Node
		if child.Done() {
			continue
		}
		if err := child.Update(raw.Values[rawIdx]); err != nil {
			return err
		}
		if pos < len(present)-1 {
			// a later field proves this one final
			if err := child.Complete(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Record) Complete() error {
	if r.done {
		return nil
	}
	r.done = true
	for _, f := range r.fields {
		if f.Node.Done() {
			continue
		}
		if err := f.Node.Complete(); err != nil {
			return err
		}
	}
	logEvent(r, "complete")
	r.completeReg.fire(r.Value().(map[string]any))
	return nil
}
