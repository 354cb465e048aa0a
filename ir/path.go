package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one path segment: an object field or an array index. Key
// always holds the raw token; Index is its numeric value, or -1 when
// the token is not a valid index. Which one applies is decided by the
// container being traversed.
type Step struct {
	Key   string
	Index int
}

func Field(name string) Step {
	return Step{Key: name, Index: parseIndex(name)}
}

func Index(i int) Step {
	return Step{Key: strconv.Itoa(i), Index: i}
}

func parseIndex(tok string) int {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return -1
	}
	i, err := strconv.Atoi(tok)
	if err != nil || i < 0 {
		return -1
	}
	return i
}

// Path addresses a node from the document root.
type Path []Step

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(escapeToken(s.Key))
	}
	return b.String()
}

func (p Path) String() string {
	return p.Pointer()
}

func (p Path) Child(s Step) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, s)
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// ParsePointer parses an RFC 6901 JSON Pointer into a Path.
func ParsePointer(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: pointer %q must start with '/'", ErrPath, s)
	}
	toks := strings.Split(s[1:], "/")
	res := make(Path, len(toks))
	for i, tok := range toks {
		tok = unescapeToken(tok)
		res[i] = Step{Key: tok, Index: parseIndex(tok)}
	}
	return res, nil
}

// Path returns this node's path from the document root, computed
// through parent back-references.
func (n *Node) Path() Path {
	if n.Parent == nil {
		return nil
	}
	prefix := n.Parent.Path()
	switch n.Parent.Type {
	case ObjectType:
		return append(prefix, Field(n.ParentField))
	case ArrayType:
		return append(prefix, Index(n.ParentIndex))
	default:
		return prefix
	}
}

// Lookup navigates to the node addressed by p, or fails with
// ErrNotFound wrapped with the offending prefix.
func (n *Node) Lookup(p Path) (*Node, error) {
	res := n
	for i, s := range p {
		switch res.Type {
		case ObjectType:
			v := res.Get(s.Key)
			if v == nil {
				return nil, fmt.Errorf("%w: no field %q at %s", ErrNotFound, s.Key, p[:i].Pointer())
			}
			res = v
		case ArrayType:
			if s.Index < 0 || s.Index >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %q out of range at %s", ErrNotFound, s.Key, p[:i].Pointer())
			}
			res = res.Values[s.Index]
		default:
			return nil, fmt.Errorf("%w: %s is a %s, not a container", ErrNotFound, p[:i].Pointer(), res.Type)
		}
	}
	return res, nil
}
