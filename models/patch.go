package models

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// MergePatch returns a patch applying body to an input as a JSON merge patch (RFC 7386).
// Objects merge key by key, lists and plain values are replaced and null clears a field.
func MergePatch[I any](body []byte) func(*I) error {
	return func(in *I) error {
		current, err := json.Marshal(in)
		if err != nil {
			return err
		}
		merged, err := jsonpatch.MergePatch(current, body)
		if err != nil {
			return NewValidationError("body", err.Error())
		}
		// a fresh value, decoding over *in would keep fields of replaced list items
		var result I
		if err = json.Unmarshal(merged, &result); err != nil {
			return NewValidationError("body", err.Error())
		}
		*in = result
		return nil
	}
}
