package schema

import (
	"github.com/globalaiplatform/go-langdiff/node"
)

// Descriptor is the serializable reflection of a node tree: kinds,
// field names and docs, without any runtime state. It is the bridge
// for deriving external schemas from a tree built in code.
type Descriptor struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Doc    string            `json:"doc,omitempty" yaml:"doc,omitempty"`
	Fields []FieldDescriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
	Elem   *Descriptor       `json:"elem,omitempty" yaml:"elem,omitempty"`
}

type FieldDescriptor struct {
	Name   string      `json:"name" yaml:"name"`
	Doc    string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Schema *Descriptor `json:"schema" yaml:"schema"`
}

// Describe reflects a node tree into its descriptor.
func Describe(n node.Node) *Descriptor {
	d := &Descriptor{Kind: n.Kind().String()}
	switch t := n.(type) {
	case *node.Record:
		d.Doc = t.Doc()
		for _, f := range t.Fields() {
			d.Fields = append(d.Fields, FieldDescriptor{
				Name:   f.Name,
				Doc:    f.Doc,
				Schema: Describe(f.Node),
			})
		}
	case interface{ Element() node.Node }:
		d.Elem = Describe(t.Element())
	}
	return d
}
