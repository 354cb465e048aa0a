package langdiff

import (
	"errors"
	"io"

	"github.com/globalaiplatform/go-langdiff/ir"
	"github.com/globalaiplatform/go-langdiff/node"
	"github.com/globalaiplatform/go-langdiff/parse"
	"github.com/globalaiplatform/go-langdiff/track"
)

// Diff computes a patch transforming before into after.
func Diff(before, after *ir.Node) track.Patch {
	return track.Diff(before, after)
}

// Apply applies a patch to a document, returning the result. The input
// document is never mutated.
func Apply(doc *ir.Node, p track.Patch) (*ir.Node, error) {
	return track.Apply(doc, p)
}

// ParseInto streams r through an incremental parse session against
// root, reading chunkSize bytes at a time, and closes the session at
// EOF. A chunkSize below 1 reads in 4096-byte chunks.
func ParseInto(root node.Node, r io.Reader, chunkSize int) error {
	if chunkSize < 1 {
		chunkSize = 4096
	}
	p := parse.NewParser(root)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if perr := p.Push(string(buf[:n])); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			return p.Close()
		}
		if err != nil {
			return err
		}
	}
}
