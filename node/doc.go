// Package node implements the typed streaming value tree: Text, Atom,
// Sequence and Record nodes that absorb partial raw data through
// Update and fire append/completion events as sub-values become known.
//
// Nodes are single-threaded. Event handlers run synchronously on the
// caller's goroutine, in registration order, and may re-entrantly
// install further subscriptions; handler lists are snapshotted before
// dispatch so this is safe. Subscribing after an event has fired does
// not replay it.
package node
