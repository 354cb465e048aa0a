// Package langdiff turns incrementally arriving structured text into
// typed value events and minimal change patches.
//
// The building blocks live in the subpackages: ir holds the raw ordered
// document tree, node the typed streaming tree with its subscriptions,
// parse the fragment-tolerant parser, track the change tracker and
// patch machinery, and schema the declarative schema loader. This
// package ties them together with high-level entry points.
package langdiff
