package track

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyJSON applies a patch to a raw JSON document, for callers that
// hold wire bytes rather than an ir tree.
func ApplyJSON(doc []byte, p Patch) ([]byte, error) {
	d, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, err
	}
	return ops.Apply(doc)
}
