//
// json.go
//
// JSON marshalling for big.Int-bearing protocol messages: JSON
// numbers cannot losslessly carry 2048-bit integers, so the wire
// representation is the decimal string instead.
//

package bigint

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// JSON wraps a *big.Int so it marshals to/from a JSON string of its
// decimal digits instead of a JSON number, which would lose
// precision or fail outright for values larger than float64 can
// represent exactly.
type JSON struct {
	*big.Int
}

// FromInt wraps x for JSON transport.
func FromInt(x *big.Int) JSON {
	return JSON{x}
}

// MarshalJSON implements json.Marshaler.
func (j JSON) MarshalJSON() ([]byte, error) {
	if j.Int == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(j.Int.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSON) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bigint: unmarshal JSON: %w", err)
	}
	if s == nil {
		j.Int = nil
		return nil
	}
	x, ok := new(big.Int).SetString(*s, 10)
	if !ok {
		return fmt.Errorf("bigint: invalid decimal integer %q", *s)
	}
	j.Int = x
	return nil
}
