package bigint

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	x := new(big.Int)
	x.SetString("123456789012345678901234567890", 10)

	data, err := json.Marshal(FromInt(x))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got JSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Int.Cmp(x) != 0 {
		t.Errorf("round trip = %v, want %v", got.Int, x)
	}
}

func TestJSONEncodesAsString(t *testing.T) {
	data, err := json.Marshal(FromInt(big.NewInt(42)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"42"` {
		t.Errorf("Marshal = %s, want \"42\"", data)
	}
}
