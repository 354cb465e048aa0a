package ir

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	default:
		return "unknown"
	}
}

// Node is one raw document value. Objects keep Fields and Values in
// parallel, in arrival order. Parent/ParentIndex/ParentField are
// back-references for path computation and never ownership edges.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Fields []string // object keys, arrival order
	Values []*Node  // object or array values

	String  string
	Bool    bool
	Int64   int64
	Float64 float64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func Object() *Node {
	return &Node{Type: ObjectType}
}

func Array() *Node {
	return &Node{Type: ArrayType}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, len(vs))}
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		v.ParentField = ""
		res.Values[i] = v
	}
	return res
}

// Get returns the value of the named object field, or nil.
func (n *Node) Get(field string) *Node {
	for i, f := range n.Fields {
		if f == field {
			return n.Values[i]
		}
	}
	return nil
}

// Set adds the field at the end of the object, or replaces its value
// in place if the field already exists.
func (n *Node) Set(field string, v *Node) {
	v.Parent = n
	v.ParentField = field
	for i, f := range n.Fields {
		if f == field {
			v.ParentIndex = i
			n.Values[i] = v
			return
		}
	}
	v.ParentIndex = len(n.Fields)
	n.Fields = append(n.Fields, field)
	n.Values = append(n.Values, v)
}

// Delete removes the named object field, reporting whether it existed.
func (n *Node) Delete(field string) bool {
	for i, f := range n.Fields {
		if f != field {
			continue
		}
		n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
		n.Values = append(n.Values[:i], n.Values[i+1:]...)
		n.reindex(i)
		return true
	}
	return false
}

// Append adds v at the end of the array.
func (n *Node) Append(v *Node) {
	v.Parent = n
	v.ParentIndex = len(n.Values)
	v.ParentField = ""
	n.Values = append(n.Values, v)
}

// InsertAt inserts v at index i, shifting later elements.
func (n *Node) InsertAt(i int, v *Node) {
	v.Parent = n
	v.ParentField = ""
	n.Values = append(n.Values, nil)
	copy(n.Values[i+1:], n.Values[i:])
	n.Values[i] = v
	n.reindex(i)
}

// RemoveAt removes the element at index i, shifting later elements.
func (n *Node) RemoveAt(i int) {
	n.Values = append(n.Values[:i], n.Values[i+1:]...)
	n.reindex(i)
}

// ReplaceAt replaces the element at index i.
func (n *Node) ReplaceAt(i int, v *Node) {
	v.Parent = n
	v.ParentIndex = i
	v.ParentField = ""
	n.Values[i] = v
}

func (n *Node) reindex(from int) {
	for i := from; i < len(n.Values); i++ {
		n.Values[i].ParentIndex = i
		if n.Type == ObjectType {
			n.Values[i].ParentField = n.Fields[i]
		}
	}
}

func (n *Node) Clone() *Node {
	res := &Node{}
	n.cloneTo(res)
	return res
}

func (n *Node) cloneTo(dst *Node) {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Int64 = n.Int64
	dst.Float64 = n.Float64
	if n.Fields != nil {
		dst.Fields = make([]string, len(n.Fields))
		copy(dst.Fields, n.Fields)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			c := &Node{Parent: dst, ParentIndex: i}
			if dst.Type == ObjectType {
				c.ParentField = dst.Fields[i]
			}
			v.cloneTo(c)
			dst.Values[i] = c
		}
	}
}

// Equal reports deep structural equality. Int and Float nodes holding
// the same numeric value compare equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		if numEqual(a, b) {
			return true
		}
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case IntType:
		return a.Int64 == b.Int64
	case FloatType:
		return a.Float64 == b.Float64
	case StringType:
		return a.String == b.String
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			bv := b.Get(f)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numEqual(a, b *Node) bool {
	if a.Type == IntType && b.Type == FloatType {
		return float64(a.Int64) == b.Float64
	}
	if a.Type == FloatType && b.Type == IntType {
		return a.Float64 == float64(b.Int64)
	}
	return false
}

// Visit walks the tree pre- and post-order. f is called with isPost
// false before children and true after; returning dive=false skips
// children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
