package track

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/globalaiplatform/go-langdiff/ir"
)

// Colors selects the sprintf functions used by Render.
type Colors struct {
	Add     func(string, ...any) string
	Remove  func(string, ...any) string
	Replace func(string, ...any) string
	Path    func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Add:     color.GreenString,
		Remove:  color.RedString,
		Replace: color.YellowString,
		Path:    color.CyanString,
	}
}

func noColors() *Colors {
	plain := fmt.Sprintf
	return &Colors{Add: plain, Remove: plain, Replace: plain, Path: plain}
}

// Render writes a human-readable listing of a patch. before is the
// document the patch applies to and may be nil; when present, replace
// operations on string leaves are shown as intra-string diffs. A nil
// colors renders plain text.
func Render(w io.Writer, p Patch, before *ir.Node, colors *Colors) error {
	if colors == nil {
		colors = noColors()
	}
	for _, op := range p {
		if err := renderOp(w, op, before, colors); err != nil {
			return err
		}
	}
	return nil
}

func renderOp(w io.Writer, op Operation, before *ir.Node, colors *Colors) error {
	path := colors.Path("%s", op.Path.Pointer())
	switch op.Op {
	case OpAdd:
		_, err := fmt.Fprintf(w, "%s %s %s\n", colors.Add("+"), path, mustJSON(op.Value))
		return err
	case OpRemove:
		_, err := fmt.Fprintf(w, "%s %s\n", colors.Remove("-"), path)
		return err
	default:
		old := lookupString(before, op.Path)
		if old != nil && op.Value.Type == ir.StringType {
			_, err := fmt.Fprintf(w, "%s %s %s\n", colors.Replace("~"), path,
				renderStringDiff(*old, op.Value.String, colors))
			return err
		}
		_, err := fmt.Fprintf(w, "%s %s %s\n", colors.Replace("~"), path, mustJSON(op.Value))
		return err
	}
}

// renderStringDiff shows a replace of one string by another as spans:
// unchanged text plain, insertions in the add color, deletions in the
// remove color.
func renderStringDiff(from, to string, colors *Colors) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	res := ""
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			res += colors.Add("%s", d.Text)
		case diffpatch.DiffDelete:
			res += colors.Remove("%s", d.Text)
		default:
			res += d.Text
		}
	}
	return fmt.Sprintf("%q", res)
}

func lookupString(doc *ir.Node, path ir.Path) *string {
	if doc == nil {
		return nil
	}
	n, err := doc.Lookup(path)
	if err != nil || n.Type != ir.StringType {
		return nil
	}
	return &n.String
}

func mustJSON(n *ir.Node) string {
	d, err := json.Marshal(n)
	if err != nil {
		return fmt.Sprintf("%v", n.ToGo())
	}
	return string(d)
}
