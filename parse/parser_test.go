package parse

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/globalaiplatform/go-langdiff/ir"
	"github.com/globalaiplatform/go-langdiff/node"
)

// blockRoot is the fixture most tests share: a record with two text
// fields and a text sequence.
func blockRoot() (*node.Record, *node.Text, *node.Text, *node.Sequence[*node.Text]) {
	id := node.NewText()
	title := node.NewText()
	tags := node.NewSequence[*node.Text](node.NewText)
	root := node.NewRecord(
		node.F("id", id),
		node.F("title", title),
		node.F("tags", tags),
	)
	return root, id, title, tags
}

func feed(t *testing.T, p *Parser, doc string, chunk int) {
	t.Helper()
	for i := 0; i < len(doc); i += chunk {
		end := min(i+chunk, len(doc))
		if err := p.Push(doc[i:end]); err != nil {
			t.Fatalf("Push(%q): %v", doc[i:end], err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestParser_CharAtATimeEventOrder(t *testing.T) {
	root, id, title, tags := blockRoot()

	var events []string
	var titleChunks []string
	id.OnComplete(func(s string) { events = append(events, "id="+s) })
	title.OnAppend(func(c string) { titleChunks = append(titleChunks, c) })
	title.OnComplete(func(s string) { events = append(events, "title="+s) })
	tags.OnAppend(func(c *node.Text, i int) {
		events = append(events, fmt.Sprintf("tags[%d]", i))
		c.OnComplete(func(s string) {
			events = append(events, fmt.Sprintf("tags[%d]=%s", i, s))
		})
	})
	tags.OnComplete(func(items []any) {
		events = append(events, fmt.Sprintf("tags=%v", items))
	})
	root.OnComplete(func(map[string]any) { events = append(events, "record") })

	feed(t, NewParser(root), `{"id":"b1","title":"Block One","tags":["x","y"]}`, 1)

	want := []string{
		"id=b1",
		"title=Block One",
		"tags[0]",
		"tags[0]=x",
		"tags[1]",
		"tags[1]=y",
		"tags=[x y]",
		"record",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("event order (-want +got):\n%s", diff)
	}
	if got := strings.Join(titleChunks, ""); got != "Block One" {
		t.Errorf("title chunks concat = %q, want %q", got, "Block One")
	}
	for _, c := range titleChunks {
		if c == "" {
			t.Error("empty chunk in streamed title")
		}
	}
}

func TestParser_FragmentationDoesNotChangeCompletions(t *testing.T) {
	doc := `{"id":"b1","title":"Block One","tags":["x","y",""]}`
	var runs [][]string
	for _, chunk := range []int{1, 3, 7, len(doc)} {
		root, id, title, tags := blockRoot()
		var events []string
		id.OnComplete(func(s string) { events = append(events, "id="+s) })
		title.OnComplete(func(s string) { events = append(events, "title="+s) })
		tags.OnAppend(func(c *node.Text, i int) {
			c.OnComplete(func(s string) {
				events = append(events, fmt.Sprintf("tags[%d]=%q", i, s))
			})
		})
		tags.OnComplete(func([]any) { events = append(events, "tags") })
		root.OnComplete(func(map[string]any) { events = append(events, "record") })

		feed(t, NewParser(root), doc, chunk)
		runs = append(runs, events)
	}
	for i := 1; i < len(runs); i++ {
		if diff := cmp.Diff(runs[0], runs[i]); diff != "" {
			t.Errorf("run %d differs from run 0 (-want +got):\n%s", i, diff)
		}
	}
}

func TestParser_EscapesAcrossFragments(t *testing.T) {
	for _, chunk := range []int{1, 2, 5} {
		txt := node.NewText()
		feed(t, NewParser(txt), `"aéb\n😀c"`, chunk)
		want := "aéb\n\U0001F600c"
		if got := txt.Value().(string); got != want {
			t.Errorf("chunk %d: value = %q, want %q", chunk, got, want)
		}
	}
}

func TestParser_LoneSurrogateBecomesReplacementChar(t *testing.T) {
	txt := node.NewText()
	feed(t, NewParser(txt), `"a\ud83db"`, 1)
	if got := txt.Value().(string); got != "a�b" {
		t.Errorf("value = %q, want %q", got, "a�b")
	}
}

func TestParser_NumbersAreAtomic(t *testing.T) {
	a := node.NewAtom[float64]()
	root := node.NewRecord(node.F("n", a), node.F("s", node.NewText()))
	got := -1.0
	a.OnComplete(func(v float64) { got = v })

	p := NewParser(root)
	// the digits arrive split; nothing may surface until the delimiter
	for _, frag := range []string{`{"n":12`, `3.5`, `,"s":"x"}`} {
		if err := p.Push(frag); err != nil {
			t.Fatalf("Push(%q): %v", frag, err)
		}
		if frag != `,"s":"x"}` && got != -1.0 {
			t.Fatalf("number surfaced before closing delimiter: %v", got)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got != 123.5 {
		t.Errorf("n = %v, want 123.5", got)
	}
}

func TestParser_TrailingNumberTakenAtClose(t *testing.T) {
	a := node.NewAtom[int]()
	got := 0
	a.OnComplete(func(v int) { got = v })
	feed(t, NewParser(a), `42`, 1)
	if got != 42 {
		t.Errorf("value = %d, want 42", got)
	}
}

func TestParser_KeywordsAndNull(t *testing.T) {
	b := node.NewAtom[bool]()
	root := node.NewRecord(node.F("ok", b), node.F("none", node.NewText()))
	feed(t, NewParser(root), `{"ok":true,"none":null}`, 2)
	if v, _ := b.Value().(bool); !v {
		t.Errorf("ok = %v, want true", b.Value())
	}
}

func TestParser_RejectsNonJSONNumerals(t *testing.T) {
	bad := []string{
		`[012]`, `[12.]`, `[.5]`, `[1.2e]`, `[1e+]`, `[--1]`,
		`[nan]`, `[-inf]`, `[1.2.3]`, `[-]`,
	}
	for _, in := range bad {
		p := NewParser(node.NewAtom[any]())
		if err := p.Push(in); !errors.Is(err, ErrParse) {
			t.Errorf("Push(%s): err = %v, want ErrParse", in, err)
		}
	}
	for _, in := range []string{"012", "12.", "nan"} {
		if _, err := Document([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("Document(%s): err = %v, want ErrParse", in, err)
		}
	}
}

func TestParser_AcceptedNumberForms(t *testing.T) {
	a := node.NewAtom[[]float64]()
	var got []float64
	a.OnComplete(func(v []float64) { got = v })
	feed(t, NewParser(a), `[0, -0, 0.5, -1.25, 1e3, 1E-2, 12e+1, 10]`, 3)
	want := []float64{0, 0, 0.5, -1.25, 1000, 0.01, 120, 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestParser_BadLiteralInIgnoredKeyStillFails(t *testing.T) {
	// an undeclared key does not exempt its value from well-formedness
	root := node.NewRecord(node.F("a", node.NewText()))
	p := NewParser(root)
	if err := p.Push(`{"a":"x","junk":nan}`); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestParser_MalformedInputPoisonsSession(t *testing.T) {
	p := NewParser(node.NewAtom[any]())
	err := p.Push(`{"a" 1}`)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if pe.Offset != 5 {
		t.Errorf("offset = %d, want 5", pe.Offset)
	}
	if err := p.Push(`x`); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("Push after failure = %v, want ErrSessionFailed", err)
	}
	if err := p.Close(); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("Close after failure = %v, want ErrSessionFailed", err)
	}
	if p.Err() == nil {
		t.Error("Err() = nil after failure")
	}
}

func TestParser_SchemaMismatchPoisonsSession(t *testing.T) {
	p := NewParser(node.NewText())
	err := p.Push(`[1,`)
	if !errors.Is(err, node.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
	if err := p.Push(`2]`); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("Push after mismatch = %v, want ErrSessionFailed", err)
	}
}

func TestParser_TrailingDataRejected(t *testing.T) {
	p := NewParser(node.NewAtom[any]())
	if err := p.Push(`{"a":1} `); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := p.Push(`2`); !errors.Is(err, ErrParse) {
		t.Errorf("trailing data err = %v, want ErrParse", err)
	}
}

func TestParser_PushAfterClose(t *testing.T) {
	p := NewParser(node.NewAtom[any]())
	if err := p.Push(`1`); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := p.Push(`2`); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Push after Close = %v, want ErrSessionClosed", err)
	}
}

func TestParser_CloseForcesCompletion(t *testing.T) {
	root, id, title, tags := blockRoot()
	done := false
	root.OnComplete(func(map[string]any) { done = true })

	p := NewParser(root)
	// the source stops mid-document
	if err := p.Push(`{"id":"b1","title":"Blo`); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !done {
		t.Fatal("root did not complete")
	}
	if !id.Done() || !title.Done() || !tags.Done() {
		t.Error("not all fields completed")
	}
	if got := title.Value().(string); got != "Blo" {
		t.Errorf("title = %q, want partial %q", got, "Blo")
	}
}

func TestParser_WhitespaceTolerated(t *testing.T) {
	txt := node.NewText()
	feed(t, NewParser(txt), " \n\t \"hi\" \r\n ", 1)
	if got := txt.Value().(string); got != "hi" {
		t.Errorf("value = %q, want %q", got, "hi")
	}
}

func TestDocument(t *testing.T) {
	doc, err := Document([]byte(`{"z":1,"a":[true,null,"s"],"m":2.5}`))
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, doc.Fields); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
	want, err := ir.FromGo(map[string]any{
		"z": int64(1),
		"a": []any{true, nil, "s"},
		"m": 2.5,
	})
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	if !ir.Equal(doc, want) {
		t.Errorf("Document = %v, want %v", doc.ToGo(), want.ToGo())
	}

	if _, err := Document([]byte("  ")); err == nil {
		t.Error("empty document parsed")
	}
	if _, err := Document([]byte(`{"a":`)); err == nil {
		t.Error("truncated document parsed via Document")
	}
}
