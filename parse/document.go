package parse

import (
	"github.com/globalaiplatform/go-langdiff/ir"
	"github.com/globalaiplatform/go-langdiff/node"
)

// Document parses one complete document into a raw tree, with no schema
// beyond well-formedness. Object field order follows the input.
func Document(data []byte) (*ir.Node, error) {
	p := NewParser(node.NewAtom[any]())
	if err := p.Push(string(data)); err != nil {
		return nil, err
	}
	// unlike a streaming session, a document must be structurally closed
	if len(p.stack) != 0 || p.st == stateString {
		return nil, &Error{Offset: p.offset, Msg: "unexpected end of document"}
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	if p.raw == nil {
		return nil, &Error{Offset: 0, Msg: "empty document"}
	}
	return p.raw, nil
}
