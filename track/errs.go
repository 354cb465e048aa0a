package track

import (
	"errors"
	"fmt"

	"github.com/globalaiplatform/go-langdiff/ir"
)

var (
	ErrApply    = errors.New("patch apply error")
	ErrDetached = errors.New("tracker detached")
)

// ApplyError reports the operation that failed during Apply. Earlier
// operations in the same patch remain applied.
type ApplyError struct {
	Index int
	Op    OpKind
	Path  ir.Path
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("patch op %d (%s %s): %v", e.Index, e.Op, e.Path.Pointer(), e.Err)
}

func (e *ApplyError) Unwrap() []error { return []error{ErrApply, e.Err} }
