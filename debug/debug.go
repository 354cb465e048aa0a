// Package debug provides env-var gated debug tracing to stderr.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Events bool
	Track  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("LANGDIFF_DEBUG_PARSE")
	d.Events = boolEnv("LANGDIFF_DEBUG_EVENTS")
	d.Track = boolEnv("LANGDIFF_DEBUG_TRACK")
	d.Patch = boolEnv("LANGDIFF_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Events() bool {
	return d.Events
}
func Track() bool {
	return d.Track
}
func Patch() bool {
	return d.Patch
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
