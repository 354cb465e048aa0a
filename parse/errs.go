package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse         = errors.New("parse error")
	ErrSessionFailed = errors.New("session failed")
	ErrSessionClosed = errors.New("session closed")
)

// Error reports malformed input that cannot be completed to a value,
// with the absolute byte offset of the offending byte.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Msg)
}

func (e *Error) Unwrap() error { return ErrParse }
