package node

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/globalaiplatform/go-langdiff/ir"
)

func textArray(vs ...string) *ir.Node {
	arr := ir.Array()
	for _, v := range vs {
		arr.Append(ir.FromString(v))
	}
	return arr
}

func intArray(vs ...int64) *ir.Node {
	arr := ir.Array()
	for _, v := range vs {
		arr.Append(ir.FromInt(v))
	}
	return arr
}

func TestSequence_StreamableChildrenAppendOnFirstSight(t *testing.T) {
	s := NewSequence[*Text](NewText)
	var events []string
	s.OnAppend(func(c *Text, i int) {
		events = append(events, "append")
		c.OnComplete(func(v string) { events = append(events, "complete="+v) })
	})

	if err := s.Update(textArray("a")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// first element visible while still open
	if diff := cmp.Diff([]string{"append"}, events); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}

	// a second element proves the first final
	if err := s.Update(textArray("a", "b")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff([]string{"append", "complete=a", "append"}, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSequence_AtomicChildrenWaitForProof(t *testing.T) {
	s := NewSequence[*Atom[int]](NewAtom[int])
	var got []int
	s.OnAppend(func(c *Atom[int], i int) {
		c.OnComplete(func(v int) { got = append(got, v) })
	})

	// the trailing element may still be revised, so it stays unmaterialized
	if err := s.Update(intArray(1)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("trailing atomic element materialized early: %v", got)
	}
	if err := s.Update(intArray(1, 2, 3)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}

	var items []any
	s.OnComplete(func(vs []any) { items = vs })
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("after complete (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestSequence_SameLengthDoesNotRefire(t *testing.T) {
	s := NewSequence[*Text](NewText)
	appends := 0
	s.OnAppend(func(*Text, int) { appends++ })

	if err := s.Update(textArray("a", "b")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Update(textArray("a", "bc")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if appends != 2 {
		t.Errorf("appends = %d, want 2", appends)
	}
}

func TestSequence_IndicesDenseAndIncreasing(t *testing.T) {
	s := NewSequence[*Text](NewText)
	var idx []int
	completed := false
	s.OnAppend(func(_ *Text, i int) {
		if completed {
			t.Error("append after sequence completion")
		}
		idx = append(idx, i)
	})
	s.OnComplete(func([]any) { completed = true })

	if err := s.Update(textArray("a", "b", "c")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, idx); diff != "" {
		t.Errorf("indices (-want +got):\n%s", diff)
	}
	if !completed {
		t.Error("sequence never completed")
	}
}

func TestSequence_NullResolvesEmpty(t *testing.T) {
	s := NewSequence[*Text](NewText)
	var items []any
	s.OnComplete(func(vs []any) { items = vs })

	if err := s.Update(ir.Null()); err != nil {
		t.Fatalf("Update(null): %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(items) != 0 || items == nil {
		t.Errorf("items = %#v, want empty non-nil slice", items)
	}
}

func TestSequence_ShrinkIsMismatch(t *testing.T) {
	s := NewSequence[*Text](NewText)
	if err := s.Update(textArray("a", "b")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Update(textArray("a")); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("shrink err = %v, want ErrSchemaMismatch", err)
	}

	// atomic elements enforce the same growth invariant
	sa := NewSequence[*Atom[int]](NewAtom[int])
	if err := sa.Update(intArray(1, 2, 3)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := sa.Update(intArray(1, 2)); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("atomic shrink err = %v, want ErrSchemaMismatch", err)
	}
}

func TestSequence_Mismatch(t *testing.T) {
	s := NewSequence[*Text](NewText)
	if err := s.Update(ir.FromString("not an array")); err == nil {
		t.Error("Update succeeded on non-array")
	}
}

func TestWatch_DynamicTree(t *testing.T) {
	blocks := NewSequence[*Text](NewText)
	root := NewRecord(F("blocks", blocks))

	var events []string
	Watch(root, func(ev Event) {
		events = append(events, ev.Type+" "+ev.Path.Pointer())
	})

	raw := ir.Object()
	raw.Set("blocks", textArray("x", "y"))
	if err := root.Update(raw); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := root.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	want := []string{
		"append /blocks/0",
		"append /blocks/0", // chunk "x" on the just-watched child
		"complete /blocks/0",
		"append /blocks/1",
		"append /blocks/1",
		"complete /blocks/1",
		"complete /blocks",
		"complete ",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}
