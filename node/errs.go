package node

import (
	"errors"
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// MismatchError reports an observed value whose shape contradicts the
// declared node variant. It is fatal to the parsing session.
type MismatchError struct {
	Path ir.Path
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("schema mismatch at %q: want %s, got %s", e.Path.Pointer(), e.Want, e.Got)
}

func (e *MismatchError) Unwrap() error { return ErrSchemaMismatch }

func mismatch(n Node, want string, raw *ir.Node) error {
	return &MismatchError{Path: Path(n), Want: want, Got: raw.Type.String()}
}
