// Package track records mutations made to a live document as a patch
// stream a remote observer can replay. A Tracker wraps an ir.Node
// document and exposes the mutation surface; mutations performed by
// bypassing the tracker are not observed, by contract. Flush drains the
// accumulated operations into a Patch, a subset of JSON Patch
// (RFC 6902: add, remove, replace with JSON Pointer paths).
package track
