//
// view.go
//
// The garbled view: the transport-serialisable projection of a
// Circuit the Generator sends to the Evaluator. It carries the
// garbled tables, decoding tables, permuted input catalogues, and the
// Generator's own input labels. Each gate's catalogue lists both
// (label, p) pairs of every one of its input wires, shuffled, without
// saying which pair stands for which logical value.
//

package circuit

import (
	"fmt"
	"math/big"

	"github.com/crm4042/ygc/bigint"
	"github.com/crm4042/ygc/ot"
)

// LabelPerm is a (label, permutation bit) pair: either a candidate
// catalogue entry, a party's input assignment, or a recovered gate
// output, depending on context.
type LabelPerm struct {
	Label ot.Label `json:"label"`
	P     int      `json:"p"`
}

// GateMeta is the per-gate metadata the Evaluator needs alongside
// the ordered table lists: its textual ID (hash domain separator and
// catalogue lookup key), arity, and output-gate flag.
type GateMeta struct {
	TextID   string `json:"gate_id"`
	Arity    int    `json:"arity"`
	IsOutput bool   `json:"is_output"`
}

// GarbledView is the wire-format projection of a garbled Circuit:
// ordered garbled tables and decoding tables (parallel to Gates),
// the per-gate permuted input catalogue keyed by gate text ID, and
// the Generator's own input-wire label assignment.
type GarbledView struct {
	K               int                    `json:"k"`
	NumInputWires   int                    `json:"num_input_wires"`
	Gates           []GateMeta             `json:"gates"`
	GarbledTables   [][]bigint.JSON        `json:"garbled_tables"`
	DecodingTables  [][]bigint.JSON        `json:"decoding_tables"`
	Catalogue       map[string][]LabelPerm `json:"catalogue"`
	GeneratorInputs map[string]LabelPerm   `json:"generator_inputs"`
}

// Garble projects c into its transport-serialisable GarbledView.
func (c *Circuit) Garble() (*GarbledView, error) {
	view := &GarbledView{
		K:               c.K,
		NumInputWires:   c.NumInputWires,
		Gates:           make([]GateMeta, len(c.Gates)),
		GarbledTables:   make([][]bigint.JSON, len(c.Gates)),
		DecodingTables:  make([][]bigint.JSON, len(c.Gates)),
		Catalogue:       make(map[string][]LabelPerm, len(c.Gates)),
		GeneratorInputs: make(map[string]LabelPerm, len(c.GenInputs)),
	}

	for i, g := range c.Gates {
		view.Gates[i] = GateMeta{TextID: g.TextID, Arity: g.Fn.Arity(), IsOutput: g.IsOutput}
		view.GarbledTables[i] = wrapInts(g.GarbledTable)
		view.DecodingTables[i] = wrapInts(g.DecodingTable)
		view.Catalogue[g.TextID] = g.Catalogue
	}

	for w, bit := range c.GenInputs {
		wire := c.Wires[w]
		key := fmt.Sprintf("%d", w)
		view.GeneratorInputs[key] = LabelPerm{Label: wire.Label(bit), P: wire.Perm(bit)}
	}

	return view, nil
}

func wrapInts(xs []*big.Int) []bigint.JSON {
	out := make([]bigint.JSON, len(xs))
	for i, x := range xs {
		out[i] = bigint.FromInt(x)
	}
	return out
}

func unwrapInts(xs []bigint.JSON) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = x.Int
	}
	return out
}
