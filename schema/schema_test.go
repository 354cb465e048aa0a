package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/globalaiplatform/go-langdiff/node"
	"github.com/globalaiplatform/go-langdiff/parse"
)

const blockSchema = `
kind: record
doc: a streamed response
fields:
  - name: id
    kind: text
  - name: count
    kind: atom
    doc: total number of blocks
  - name: tags
    kind: sequence
    elem:
      kind: text
`

func TestLoadBuild(t *testing.T) {
	d, err := Load([]byte(blockSchema))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r, ok := n.(*node.Record)
	if !ok {
		t.Fatalf("root = %T, want *node.Record", n)
	}
	if r.Doc() != "a streamed response" {
		t.Errorf("doc = %q", r.Doc())
	}
	fields := r.Fields()
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	wantKinds := []node.Kind{node.KindText, node.KindAtom, node.KindSequence}
	for i, f := range fields {
		if f.Kind != wantKinds[i] {
			t.Errorf("field %s kind = %s, want %s", f.Name, f.Kind, wantKinds[i])
		}
	}
	if fields[1].Doc != "total number of blocks" {
		t.Errorf("count doc = %q", fields[1].Doc)
	}
}

func TestBuiltTreeParses(t *testing.T) {
	d, err := Load([]byte(blockSchema))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	root, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var events []string
	node.Watch(root, func(ev node.Event) {
		if ev.Type == "complete" {
			events = append(events, ev.Path.Pointer())
		}
	})

	p := parse.NewParser(root)
	if err := p.Push(`{"id":"r1","count":2,"tags":["a","b"]}`); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	want := []string{"/id", "/count", "/tags/0", "/tags/1", "/tags", ""}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("completions (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"unknown kind", `kind: struct`},
		{"missing kind", `doc: x`},
		{"record without fields", `kind: record`},
		{"sequence without elem", `kind: sequence`},
		{"duplicate field", "kind: record\nfields:\n  - {name: a, kind: text}\n  - {name: a, kind: text}"},
		{"unnamed field", "kind: record\nfields:\n  - {kind: text}"},
		{"text with elem", "kind: text\nelem: {kind: text}"},
	}
	for _, tc := range cases {
		if _, err := Load([]byte(tc.in)); !errors.Is(err, ErrSchema) {
			t.Errorf("%s: err = %v, want ErrSchema", tc.name, err)
		}
	}
}

func TestDescribe_RoundTrip(t *testing.T) {
	d, err := Load([]byte(blockSchema))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	desc := Describe(n)
	if desc.Kind != "record" || len(desc.Fields) != 3 {
		t.Fatalf("descriptor = %+v", desc)
	}
	if desc.Fields[2].Schema.Kind != "sequence" || desc.Fields[2].Schema.Elem.Kind != "text" {
		t.Errorf("tags descriptor = %+v", desc.Fields[2].Schema)
	}
	// descriptors are JSON-serializable for external consumers
	if _, err := json.Marshal(desc); err != nil {
		t.Errorf("marshal: %v", err)
	}
}
