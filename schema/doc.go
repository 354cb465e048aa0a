// Package schema loads declarative schema files and builds the typed
// node trees they describe. A declaration names a node kind (record,
// text, sequence, atom) with its fields or element; Build turns it into
// a live node tree, and Describe reflects an existing tree back into a
// serializable descriptor.
package schema
