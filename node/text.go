package node

import (
	"strings"

	"github.com/globalaiplatform/go-langdiff/ir"
)

// Text is an incrementally observed string. Each Update may extend the
// value; the newly observed suffix fires an append event. A null
// observation before any chunk means "not yet known", not "empty":
// streaming input cannot disambiguate an early null from eventual
// omission, so resolution happens at completion, to the empty string.
type Text struct {
	base
	appendReg   registry[string]
	completeReg registry[string]

	cur      string
	observed bool
	appended bool
}

func NewText() *Text { return &Text{} }

func (t *Text) Kind() Kind { return KindText }

// OnAppend subscribes to newly observed chunks. An empty chunk is
// delivered only when the value is an empty string that is
// simultaneously its first and final update.
func (t *Text) OnAppend(fn func(chunk string)) { t.appendReg.on(fn) }

// OnComplete subscribes to the one-time completion event carrying the
// final string.
func (t *Text) OnComplete(fn func(s string)) { t.completeReg.on(fn) }

func (t *Text) Value() any { return t.cur }

func (t *Text) Update(raw *ir.Node) error {
	if t.done {
		return nil
	}
	if raw == nil || raw.Type == ir.NullType {
		return nil
	}
	if raw.Type != ir.StringType {
		return mismatch(t, "string", raw)
	}
	s := raw.String
	if !strings.HasPrefix(s, t.cur) {
		return &MismatchError{Path: Path(t), Want: "extension of " + t.cur, Got: s}
	}
	chunk := s[len(t.cur):]
	t.cur = s
	t.observed = true
	if chunk != "" {
		t.appended = true
		logEvent(t, "append")
		t.appendReg.fire(chunk)
	}
	return nil
}

func (t *Text) Complete() error {
	if t.done {
		return nil
	}
	t.done = true
	if t.observed && !t.appended {
		// empty string, first and final update at once
		t.appendReg.fire("")
	}
	logEvent(t, "complete")
	t.completeReg.fire(t.cur)
	return nil
}
