package track

import (
	"github.com/globalaiplatform/go-langdiff/ir"
)

// Diff computes a patch transforming before into after. Objects diff by
// key, arrays by index: a common prefix is diffed element-wise, a grown
// tail becomes appends, a shrunk tail becomes removes emitted in
// descending index order so earlier operations do not shift the targets
// of later ones. Minimality is best-effort: applying the result to
// before always reproduces after.
func Diff(before, after *ir.Node) Patch {
	return diffAt(nil, before, after)
}

func diffAt(path ir.Path, before, after *ir.Node) Patch {
	switch {
	case before == nil && after == nil:
		return nil
	case before == nil:
		return Patch{add(path, after)}
	case after == nil:
		return Patch{remove(path)}
	}
	if before.Type != after.Type {
		if ir.Equal(before, after) {
			return nil
		}
		return Patch{replace(path, after)}
	}
	switch before.Type {
	case ir.ObjectType:
		return diffObj(path, before, after)
	case ir.ArrayType:
		return diffArr(path, before, after)
	default:
		if ir.Equal(before, after) {
			return nil
		}
		return Patch{replace(path, after)}
	}
}

func diffObj(path ir.Path, before, after *ir.Node) Patch {
	var res Patch
	for i, f := range before.Fields {
		av := after.Get(f)
		if av == nil {
			res = append(res, remove(path.Child(ir.Field(f))))
			continue
		}
		res = append(res, diffAt(path.Child(ir.Field(f)), before.Values[i], av)...)
	}
	for i, f := range after.Fields {
		if before.Get(f) != nil {
			continue
		}
		res = append(res, add(path.Child(ir.Field(f)), after.Values[i]))
	}
	return res
}

func diffArr(path ir.Path, before, after *ir.Node) Patch {
	var res Patch
	n := min(len(before.Values), len(after.Values))
	for i := 0; i < n; i++ {
		res = append(res, diffAt(path.Child(ir.Index(i)), before.Values[i], after.Values[i])...)
	}
	for i := n; i < len(after.Values); i++ {
		res = append(res, add(path.Child(ir.Index(i)), after.Values[i]))
	}
	for i := len(before.Values) - 1; i >= n; i-- {
		res = append(res, remove(path.Child(ir.Index(i))))
	}
	return res
}
