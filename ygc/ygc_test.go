package ygc

import (
	"testing"

	"github.com/crm4042/ygc/circuit"
	"github.com/crm4042/ygc/ot"
)

// runSession wires up a Generator and an Evaluator over four fixed
// loopback ports (primary + OT channel per side) and runs both roles
// to completion concurrently.
func runSession(t *testing.T, genAddr, genOTAddr, evalAddr, evalOTAddr string, circ *circuit.Circuit, evalInputs map[int]int) (genOutputs, evalOutputs map[string]int) {
	t.Helper()

	params := ot.ToyParams()

	gen, err := NewGenerator(genAddr, genOTAddr, evalAddr, evalOTAddr, params, circ)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer gen.Close()

	eval, err := NewEvaluator(evalAddr, evalOTAddr, genAddr, genOTAddr, params, evalInputs)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	defer eval.Close()

	genCh := make(chan result, 1)
	evalCh := make(chan result, 1)

	go func() {
		out, err := gen.Run()
		genCh <- result{out, err}
	}()
	go func() {
		out, err := eval.Run()
		evalCh <- result{out, err}
	}()

	gr := <-genCh
	er := <-evalCh
	if gr.err != nil {
		t.Fatalf("Generator.Run: %v", gr.err)
	}
	if er.err != nil {
		t.Fatalf("Evaluator.Run: %v", er.err)
	}
	return gr.out, er.out
}

type result struct {
	out map[string]int
	err error
}

// TestEndToEndXorGate runs a single XOR gate over all four input
// combinations, one Generator-owned and one Evaluator-owned wire.
func TestEndToEndXorGate(t *testing.T) {
	ports := []struct{ genAddr, genOT, evalAddr, evalOT string }{
		{"127.0.0.1:19001", "127.0.0.1:19002", "127.0.0.1:19003", "127.0.0.1:19004"},
		{"127.0.0.1:19011", "127.0.0.1:19012", "127.0.0.1:19013", "127.0.0.1:19014"},
		{"127.0.0.1:19021", "127.0.0.1:19022", "127.0.0.1:19023", "127.0.0.1:19024"},
		{"127.0.0.1:19031", "127.0.0.1:19032", "127.0.0.1:19033", "127.0.0.1:19034"},
	}
	idx := 0
	for a := 0; a <= 1; a++ {
		for b := 0; b <= 1; b++ {
			p := ports[idx]
			idx++

			builder, err := circuit.NewCircuitBuilder(16, 2)
			if err != nil {
				t.Fatalf("NewCircuitBuilder: %v", err)
			}
			if err := builder.SetInput(0, a); err != nil {
				t.Fatalf("SetInput: %v", err)
			}
			if _, err := builder.AddGate(circuit.Xor(), []circuit.WireID{0, 1}, true); err != nil {
				t.Fatalf("AddGate: %v", err)
			}
			circ, err := builder.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			_, evalOutputs := runSession(t, p.genAddr, p.genOT, p.evalAddr, p.evalOT, circ, map[int]int{1: b})

			gateID := circ.Gates[0].TextID
			want := a ^ b
			if evalOutputs[gateID] != want {
				t.Errorf("XOR(%d,%d) = %d, want %d", a, b, evalOutputs[gateID], want)
			}
		}
	}
}
