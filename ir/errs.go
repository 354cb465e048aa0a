package ir

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrPath     = errors.New("bad path")
	ErrConvert  = errors.New("cannot convert")
)
