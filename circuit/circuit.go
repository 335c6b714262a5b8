//
// circuit.go
//
// Arena-addressed circuit: wires and gates referenced by stable
// integer IDs instead of shared mutable object identity, so the
// graph has no back-edges and serialises trivially. Built once by
// the Generator with fresh randomness; garbled tables never mutate
// after construction.
//

// Package circuit implements the garbled-circuit scheme: wire
// labelling, garbled truth tables, output-decoding tables, the
// Generator-side builder, and the Evaluator-side gate decryption and
// output decoding that operate on the serialised garbled view.
package circuit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/crm4042/ygc/ot"
)

// WireID addresses a Wire in a Circuit's arena.
type WireID int

// OUTTag is the fixed ASCII domain-separation bit string mixed into
// every output-decoding hash, spelling the three characters "out" in
// binary.
const OUTTag = "011011110111010101110100"

// ErrWireOrderViolation is returned when a gate's declared input
// wires are not in strictly increasing WireID order, or when
// evaluation assigns an output wire ID that does not match the
// position the Generator's builder guaranteed it would have.
var ErrWireOrderViolation = errors.New("circuit: wire-assignment ordering violated")

// Gate is one gate: its function, its input and output wires, a
// textual gate identifier used as a hash domain separator, and
// whether it is a circuit output.
type Gate struct {
	TextID   string
	Fn       GateFn
	Inputs   []WireID
	Output   WireID
	IsOutput bool

	GarbledTable  []*big.Int
	DecodingTable []*big.Int  // nil/empty unless IsOutput
	Catalogue     []LabelPerm // shuffled (label, p) candidates for this gate's inputs
}

// Circuit is an ordered arena of Wires and Gates (topologically
// sorted: every gate's inputs precede it), plus the Generator's own
// cleartext input assignment over a subset of the leaf wire IDs.
type Circuit struct {
	K             int
	Wires         []ot.Wire
	Gates         []Gate
	NumInputWires int
	GenInputs     map[WireID]int // this party's cleartext input bits
}

// CircuitBuilder constructs a Circuit gate by gate, guaranteeing by
// construction that gate N's output wire ID equals NumInputWires+N —
// the wire-assignment-ordering invariant the Evaluator's gate-input
// disambiguation (see circuit/evaluate.go) depends on.
type CircuitBuilder struct {
	k         int
	wires     []ot.Wire
	numInputs int
	gates     []Gate
	genInputs map[WireID]int
}

// NewCircuitBuilder draws numInputWires fresh random K-bit Wires to
// serve as the circuit's leaf input wires, and returns a builder
// ready to append gates.
func NewCircuitBuilder(k, numInputWires int) (*CircuitBuilder, error) {
	wires := make([]ot.Wire, numInputWires)
	for i := range wires {
		w, err := ot.NewWire(k)
		if err != nil {
			return nil, fmt.Errorf("circuit: building input wire %d: %w", i, err)
		}
		wires[i] = w
	}
	return &CircuitBuilder{
		k:         k,
		wires:     wires,
		numInputs: numInputWires,
		genInputs: make(map[WireID]int),
	}, nil
}

// SetInput records this party's cleartext bit for leaf wire w. w
// must be one of the input wires drawn by NewCircuitBuilder.
func (b *CircuitBuilder) SetInput(w WireID, bit int) error {
	if int(w) < 0 || int(w) >= b.numInputs {
		return fmt.Errorf("circuit: wire %d is not an input wire", w)
	}
	if bit != 0 && bit != 1 {
		return fmt.Errorf("circuit: input bit must be 0 or 1, got %d", bit)
	}
	b.genInputs[w] = bit
	return nil
}

// AddGate appends a gate computing fn over inputs (which must be in
// strictly increasing WireID order — the formalised wire-assignment
// precondition — and all already allocated), allocates a fresh
// random output Wire, and returns the new gate's output WireID.
func (b *CircuitBuilder) AddGate(fn GateFn, inputs []WireID, isOutput bool) (WireID, error) {
	if len(inputs) != fn.Arity() {
		return 0, fmt.Errorf("circuit: gate needs %d inputs, got %d", fn.Arity(), len(inputs))
	}
	for i, w := range inputs {
		if int(w) < 0 || int(w) >= len(b.wires) {
			return 0, fmt.Errorf("circuit: input wire %d not yet allocated", w)
		}
		if i > 0 && inputs[i-1] >= w {
			return 0, fmt.Errorf("%w: gate inputs must be strictly increasing WireIDs, got %v", ErrWireOrderViolation, inputs)
		}
	}

	outID := WireID(len(b.wires))
	expected := WireID(b.numInputs + len(b.gates))
	if outID != expected {
		return 0, fmt.Errorf("%w: next output wire %d, expected %d", ErrWireOrderViolation, outID, expected)
	}

	w, err := ot.NewWire(b.k)
	if err != nil {
		return 0, fmt.Errorf("circuit: building gate output wire: %w", err)
	}
	b.wires = append(b.wires, w)

	b.gates = append(b.gates, Gate{
		Fn:       fn,
		Inputs:   append([]WireID(nil), inputs...),
		Output:   outID,
		IsOutput: isOutput,
	})
	return outID, nil
}

// Build assigns each gate's textual ID (a zero-padded binary string
// wide enough for the total gate count), garbles every gate's table
// and, where applicable, its output-decoding table, and returns the
// finished Circuit.
func (b *CircuitBuilder) Build() (*Circuit, error) {
	width := textIDWidth(len(b.gates))
	for i := range b.gates {
		b.gates[i].TextID = toBinString(i, width)
	}

	c := &Circuit{
		K:             b.k,
		Wires:         b.wires,
		Gates:         b.gates,
		NumInputWires: b.numInputs,
		GenInputs:     b.genInputs,
	}
	for i := range c.Gates {
		if err := garbleGate(c.Wires, &c.Gates[i], c.K); err != nil {
			return nil, fmt.Errorf("circuit: garbling gate %d: %w", i, err)
		}
		if err := buildCatalogue(c.Wires, &c.Gates[i]); err != nil {
			return nil, fmt.Errorf("circuit: building catalogue for gate %d: %w", i, err)
		}
	}
	return c, nil
}

// textIDWidth returns the number of bits needed to write every index
// in [0, n) as a zero-padded binary string, at least 1.
func textIDWidth(n int) int {
	width := 1
	for (1 << width) < n {
		width++
	}
	return width
}

// toBinString renders i as a width-wide zero-padded binary string.
func toBinString(i, width int) string {
	buf := make([]byte, width)
	for pos := width - 1; pos >= 0; pos-- {
		if i&1 == 1 {
			buf[pos] = '1'
		} else {
			buf[pos] = '0'
		}
		i >>= 1
	}
	return string(buf)
}
