//
// garble.go
//
// Garbled-table and output-decoding-table construction for one gate,
// and the permuted input-label catalogue the Evaluator uses to
// disambiguate which held label feeds which gate input position.
//

package circuit

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/crm4042/ygc/gcrypto"
	"github.com/crm4042/ygc/ot"
)

// garbleGate fills in g.GarbledTable and, if g.IsOutput, g.DecodingTable.
//
// Each wire's two permutation bits are complementary, so the map from
// a wire's logical value b to its permutation bit Perm(b) is a
// bijection {0,1}->{0,1}; composed across a gate's inputs, the map
// from a logical input combination to the resulting permutation-bit
// pattern is itself a bijection. That lets the table be built by
// iterating permutation-bit patterns directly — inverting each
// wire's bijection to recover the input combination it came from —
// rather than the textbook approach of iterating logical
// combinations and searching for the one matching a target pattern.
func garbleGate(wires []ot.Wire, g *Gate, k int) error {
	a := g.Fn.Arity()
	n := 1 << a
	g.GarbledTable = make([]*big.Int, n)

	for row := 0; row < n; row++ {
		pBits := bitsMSBFirst(row, a)

		var labels strings.Builder
		combo := make([]bool, a)
		for pos, pBit := range pBits {
			w := wires[g.Inputs[pos]]
			b := pBit ^ w.P0
			combo[pos] = b == 1
			labels.WriteString(string(w.Label(b)))
		}
		labels.WriteString(g.TextID)

		hv := gcrypto.LEToInt(gcrypto.Hash(labels.String()))

		outVal := 0
		if g.Fn.Eval(combo) {
			outVal = 1
		}
		outWire := wires[g.Output]
		outPacked, err := binaryConcat(outWire.Label(outVal), outWire.Perm(outVal), k)
		if err != nil {
			return err
		}
		g.GarbledTable[row] = new(big.Int).Xor(hv, outPacked)
	}

	if g.IsOutput {
		outWire := wires[g.Output]
		g.DecodingTable = make([]*big.Int, 2)
		for v := 0; v < 2; v++ {
			hv := gcrypto.LEToInt(gcrypto.Hash(string(outWire.Label(v)) + OUTTag + g.TextID))
			g.DecodingTable[v] = new(big.Int).Xor(hv, big.NewInt(int64(v)))
		}
	}
	return nil
}

// buildCatalogue fills g.Catalogue with a randomly shuffled list of
// the 2*arity (label, p) pairs that could appear on this gate's
// inputs: both values of every input wire. The Evaluator intersects
// its held labels against this list to find out which of its labels
// feed this gate, without the Generator revealing which label means
// which logical value.
func buildCatalogue(wires []ot.Wire, g *Gate) error {
	cat := make([]LabelPerm, 0, 2*len(g.Inputs))
	for _, w := range g.Inputs {
		wire := wires[w]
		cat = append(cat, LabelPerm{Label: wire.K0, P: wire.P0})
		cat = append(cat, LabelPerm{Label: wire.K1, P: wire.P1})
	}
	if err := shuffleLabelPerms(cat); err != nil {
		return fmt.Errorf("circuit: shuffling catalogue: %w", err)
	}
	g.Catalogue = cat
	return nil
}

// shuffleLabelPerms performs an in-place Fisher-Yates shuffle using
// crypto/rand, the same randomness source Wire generation uses, so
// the catalogue's presentation order leaks nothing predictable.
func shuffleLabelPerms(cat []LabelPerm) error {
	for i := len(cat) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		cat[i], cat[j.Int64()] = cat[j.Int64()], cat[i]
	}
	return nil
}

// bitsMSBFirst expands i into a bits-long slice of 0/1 values, most
// significant bit first.
func bitsMSBFirst(i, bits int) []int {
	out := make([]int, bits)
	for pos := bits - 1; pos >= 0; pos-- {
		out[pos] = i & 1
		i >>= 1
	}
	return out
}

// PackLabelPerm packs lp's label and permutation bit into one
// (K+1)-bit unsigned integer, the form the OT sub-protocol transfers
// a wire's secret as. It is the exported counterpart of binaryConcat,
// for callers (the ygc orchestrator) that drive OT directly against a
// Wire's labels rather than a garbled table entry.
func PackLabelPerm(lp LabelPerm, k int) (*big.Int, error) {
	return binaryConcat(lp.Label, lp.P, k)
}

// UnpackLabelPerm is the exported counterpart of splitLabelPerm, for
// callers recovering a (label, p) pair from an OT-transferred integer.
func UnpackLabelPerm(v *big.Int, k int) (LabelPerm, error) {
	return splitLabelPerm(v, k)
}

// binaryConcat packs label (K bits) and p (a single bit) into one
// (K+1)-bit unsigned integer, label as the high bits.
func binaryConcat(label ot.Label, p, k int) (*big.Int, error) {
	if len(label) != k {
		return nil, fmt.Errorf("circuit: label has %d bits, want %d", len(label), k)
	}
	text := string(label) + strconv.Itoa(p)
	v, ok := new(big.Int).SetString(text, 2)
	if !ok {
		return nil, fmt.Errorf("circuit: malformed label/perm bit string %q", text)
	}
	return v, nil
}

// splitLabelPerm is the inverse of binaryConcat: it reinterprets a
// (K+1)-bit integer as a K-bit label string followed by one
// permutation bit.
func splitLabelPerm(v *big.Int, k int) (LabelPerm, error) {
	if v.Sign() < 0 {
		return LabelPerm{}, fmt.Errorf("circuit: negative label/perm value")
	}
	text := v.Text(2)
	if len(text) > k+1 {
		return LabelPerm{}, fmt.Errorf("circuit: label/perm value too wide: %d bits, want %d", len(text), k+1)
	}
	text = strings.Repeat("0", k+1-len(text)) + text
	label := ot.Label(text[:k])
	p := 0
	if text[k] == '1' {
		p = 1
	}
	return LabelPerm{Label: label, P: p}, nil
}
