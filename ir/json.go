package ir

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON encodes the node as JSON with object fields in tree
// order. Round-tripping through ToGo instead would sort keys.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encodeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(n.Int64, 10))
	case FloatType:
		d, err := json.Marshal(n.Float64)
		if err != nil {
			return err
		}
		buf.Write(d)
	case StringType:
		d, err := json.Marshal(n.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(f)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := n.Values[i].encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
