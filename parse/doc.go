// Package parse feeds raw text fragments of arbitrary granularity into
// a typed node tree. The lexer state is carried across fragments, so
// boundaries may fall mid-key, mid-escape, mid-number or mid-delimiter.
// Strings stream chunk by chunk; numbers, booleans and null have no
// safe partial meaning and enter the tree only once unambiguously
// closed.
package parse
