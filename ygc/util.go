//
// util.go
//
// Shared helpers for decoding messages out of a Node's generically
// JSON-decoded buffer into this package's concrete types.
//

package ygc

import (
	"encoding/json"
	"fmt"
)

// decodeInto re-encodes a value pulled from a Node's buffer (an
// interface{} tree produced by encoding/json's default decoding) and
// decodes it into out, recovering a concrete struct type.
func decodeInto(raw interface{}, out interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("ygc: re-encode buffered message: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ygc: decode buffered message: %w", err)
	}
	return nil
}
