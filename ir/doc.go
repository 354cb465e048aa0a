// Package ir holds the raw document representation shared by the
// incremental parser, the typed node layer, and the change tracker.
//
// An ir.Node is an ordered tree: object fields keep the order in which
// they were first observed, which the streaming semantics depend on
// (a field is proven final once a later field arrives). Parent links
// are back-references only; ownership runs strictly parent to child.
package ir
