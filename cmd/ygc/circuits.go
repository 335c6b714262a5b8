//
// circuits.go
//
// Per-circuit input packing for the CLI's two demonstration circuits:
// which bits of -i belong to which wire, for each role.
//

package main

import (
	"fmt"

	"github.com/crm4042/ygc/circuit"
	"github.com/crm4042/ygc/examples"
)

// buildGeneratorCircuit builds the named demonstration circuit with
// the Generator's packed input bits, returning the circuit and a
// human-readable label of the bits it assigned.
func buildGeneratorCircuit(circName string, input int) (*circuit.Circuit, string, error) {
	switch circName {
	case "adder":
		w0 := (input >> 1) & 1
		w2 := input & 1
		c, _, _, err := examples.BuildAdder(w0, w2)
		if err != nil {
			return nil, "", err
		}
		return c, fmt.Sprintf("addend=%d carryIn=%d", w0, w2), nil
	case "comparator":
		high := (input >> 1) & 1
		low := input & 1
		c, _, err := examples.BuildComparator(high, low)
		if err != nil {
			return nil, "", err
		}
		return c, fmt.Sprintf("value=%d%d", high, low), nil
	default:
		return nil, "", fmt.Errorf("ygc: unknown circuit %q, want adder or comparator", circName)
	}
}

// evaluatorInputs maps the named demonstration circuit's input to the
// Evaluator-owned wire indices it packs, for the given -i value.
func evaluatorInputs(circName string, input int) (map[int]int, error) {
	switch circName {
	case "adder":
		return map[int]int{1: input & 1}, nil
	case "comparator":
		return map[int]int{
			1: (input >> 1) & 1,
			3: input & 1,
		}, nil
	default:
		return nil, fmt.Errorf("ygc: unknown circuit %q, want adder or comparator", circName)
	}
}
