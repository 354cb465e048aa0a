package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/globalaiplatform/go-langdiff/node"
)

var ErrSchema = errors.New("invalid schema")

// Decl is one node declaration. Kind selects the variant:
//
//	record   — Fields required, in declaration order
//	sequence — Elem required
//	text     — streaming string leaf
//	atom     — opaque leaf, delivered whole at completion
type Decl struct {
	Kind   string      `yaml:"kind" json:"kind"`
	Doc    string      `yaml:"doc,omitempty" json:"doc,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty" json:"fields,omitempty"`
	Elem   *Decl       `yaml:"elem,omitempty" json:"elem,omitempty"`
}

// FieldDecl declares one named record field.
type FieldDecl struct {
	Name string `yaml:"name" json:"name"`
	Doc  string `yaml:"doc,omitempty" json:"doc,omitempty"`
	Decl `yaml:",inline"`
}

// Load parses a YAML (or JSON) schema declaration and validates it.
func Load(data []byte) (*Decl, error) {
	var d Decl
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if err := d.validate(""); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Decl) validate(at string) error {
	if at == "" {
		at = "root"
	}
	switch d.Kind {
	case "text", "atom":
		if len(d.Fields) != 0 || d.Elem != nil {
			return fmt.Errorf("%w: %s: %s takes no fields or elem", ErrSchema, at, d.Kind)
		}
		return nil
	case "record":
		if len(d.Fields) == 0 {
			return fmt.Errorf("%w: %s: record needs fields", ErrSchema, at)
		}
		seen := map[string]bool{}
		for i := range d.Fields {
			f := &d.Fields[i]
			if f.Name == "" {
				return fmt.Errorf("%w: %s: field %d has no name", ErrSchema, at, i)
			}
			if seen[f.Name] {
				return fmt.Errorf("%w: %s: duplicate field %q", ErrSchema, at, f.Name)
			}
			seen[f.Name] = true
			if err := f.Decl.validate(at + "." + f.Name); err != nil {
				return err
			}
		}
		return nil
	case "sequence":
		if d.Elem == nil {
			return fmt.Errorf("%w: %s: sequence needs elem", ErrSchema, at)
		}
		return d.Elem.validate(at + "[]")
	case "":
		return fmt.Errorf("%w: %s: missing kind", ErrSchema, at)
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrSchema, at, d.Kind)
	}
}

// Build constructs the typed node tree the declaration describes.
func (d *Decl) Build() (node.Node, error) {
	if err := d.validate(""); err != nil {
		return nil, err
	}
	return d.build(), nil
}

// build assumes a validated declaration.
func (d *Decl) build() node.Node {
	switch d.Kind {
	case "text":
		return node.NewText()
	case "atom":
		return node.NewAtom[any]()
	case "sequence":
		elem := d.Elem
		return node.NewSequence[node.Node](func() node.Node { return elem.build() })
	default: // record
		fields := make([]node.Field, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = node.F(f.Name, f.Decl.build(), node.Doc(f.Doc))
		}
		return node.NewRecord(fields...).WithDoc(d.Doc)
	}
}
