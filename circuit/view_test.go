package circuit

import (
	"encoding/json"
	"testing"
)

// TestGarbledViewJSONRoundTrip confirms a GarbledView survives a JSON
// marshal/unmarshal round trip with full evaluation fidelity — the
// property that matters for transport, not byte-for-byte equality.
func TestGarbledViewJSONRoundTrip(t *testing.T) {
	b, err := NewCircuitBuilder(16, 2)
	if err != nil {
		t.Fatalf("NewCircuitBuilder: %v", err)
	}
	if err := b.SetInput(0, 1); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := b.AddGate(Xor(), []WireID{0, 1}, true); err != nil {
		t.Fatalf("AddGate: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	view, err := c.Garble()
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTripped GarbledView
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	held := buildHeld(t, c, &roundTripped, map[WireID]int{1: 0})
	outputs, err := Evaluate(&roundTripped, held)
	if err != nil {
		t.Fatalf("Evaluate after round trip: %v", err)
	}
	gateID := c.Gates[0].TextID
	if outputs[gateID] != 1 {
		t.Errorf("XOR(1,0) after JSON round trip = %d, want 1", outputs[gateID])
	}
}

// TestAddGateRejectsOutOfOrderInputs confirms the builder enforces
// the strictly-increasing-WireID precondition the Evaluator's
// gate-input disambiguation depends on.
func TestAddGateRejectsOutOfOrderInputs(t *testing.T) {
	b, err := NewCircuitBuilder(16, 2)
	if err != nil {
		t.Fatalf("NewCircuitBuilder: %v", err)
	}
	if _, err := b.AddGate(Xor(), []WireID{1, 0}, true); err == nil {
		t.Fatal("AddGate with out-of-order inputs succeeded, want ErrWireOrderViolation")
	}
}

// TestAddGateRejectsUnallocatedInput confirms the builder rejects a
// gate referencing a wire ID that has not yet been allocated.
func TestAddGateRejectsUnallocatedInput(t *testing.T) {
	b, err := NewCircuitBuilder(16, 1)
	if err != nil {
		t.Fatalf("NewCircuitBuilder: %v", err)
	}
	if _, err := b.AddGate(Xor(), []WireID{0, 5}, true); err == nil {
		t.Fatal("AddGate with unallocated input succeeded, want error")
	}
}

// TestDecodeOutputRejectsForeignLabel confirms a label that is not
// one of the gate output wire's two genuine labels fails to decode
// rather than silently returning a value.
func TestDecodeOutputRejectsForeignLabel(t *testing.T) {
	b, err := NewCircuitBuilder(16, 1)
	if err != nil {
		t.Fatalf("NewCircuitBuilder: %v", err)
	}
	if err := b.SetInput(0, 0); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := b.AddGate(Not(), []WireID{0}, true); err != nil {
		t.Fatalf("AddGate: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bogus := LabelPerm{Label: "0000000000000000", P: 0}
	if _, err := decodeOutput(wrapInts(c.Gates[0].DecodingTable), bogus, c.Gates[0].TextID); err == nil {
		t.Fatal("decodeOutput accepted a foreign label, want ErrDecodeFailure")
	}
}
