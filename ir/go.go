package ir

import (
	"fmt"
	"maps"
	"slices"
)

// FromGo converts a plain Go value (the shapes produced by
// encoding/json unmarshalling into any) to a Node. Map fields are
// ordered by key so conversion is deterministic.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		res := Array()
		for _, e := range x {
			n, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			res.Append(n)
		}
		return res, nil
	case map[string]any:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromGo(x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	case *Node:
		return x.Clone(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrConvert, v)
	}
}

// ToGo converts a Node back to plain Go values: nil, bool, int64,
// float64, string, []any, map[string]any.
func (n *Node) ToGo() any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case IntType:
		return n.Int64
	case FloatType:
		return n.Float64
	case StringType:
		return n.String
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = v.ToGo()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f] = n.Values[i].ToGo()
		}
		return res
	}
	return nil
}
