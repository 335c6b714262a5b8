//
// evaluate.go
//
// Evaluator-side gate decryption and output decoding, operating
// entirely on a GarbledView and the set of (label, p) pairs the
// Evaluator currently holds — it never sees a Circuit or a Wire
// secret it wasn't given.
//

package circuit

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/crm4042/ygc/bigint"
	"github.com/crm4042/ygc/gcrypto"
)

// ErrDecodeFailure is returned when an output gate's decoding table
// yields zero or more than one candidate in {0, 1}, which signals a
// tampered or malformed transcript.
var ErrDecodeFailure = errors.New("circuit: output decoding failed")

// Evaluate walks view's gates in definition order, decrypting each
// one from the (label, p) pairs held holds keys for, and returns the
// decoded output bits keyed by output-gate text ID. held is mutated:
// every gate's recovered output is installed under its wire ID.
func Evaluate(view *GarbledView, held map[int]LabelPerm) (map[string]int, error) {
	outputs := make(map[int]LabelPerm, len(view.Gates)) // gate index -> output label/p, for decoding

	for gateIdx, meta := range view.Gates {
		matched, err := matchGateInputs(view, meta, held)
		if err != nil {
			return nil, fmt.Errorf("circuit: gate %s: %w", meta.TextID, err)
		}

		row, hashInput := buildRowAndHashInput(matched, meta.TextID)
		table := unwrapInts(view.GarbledTables[gateIdx])
		if row < 0 || row >= len(table) {
			return nil, fmt.Errorf("%w: gate %s: row %d out of range", ErrWireOrderViolation, meta.TextID, row)
		}

		hv := gcrypto.LEToInt(gcrypto.Hash(hashInput))
		outVal := new(big.Int).Xor(hv, table[row])
		lp, err := splitLabelPerm(outVal, view.K)
		if err != nil {
			return nil, fmt.Errorf("circuit: gate %s: %w", meta.TextID, err)
		}

		expected := view.NumInputWires + gateIdx
		if _, taken := held[expected]; taken {
			return nil, fmt.Errorf("%w: wire %d already assigned before gate %s", ErrWireOrderViolation, expected, meta.TextID)
		}
		held[expected] = lp
		outputs[gateIdx] = lp
	}

	result := make(map[string]int)
	for gateIdx, meta := range view.Gates {
		if !meta.IsOutput {
			continue
		}
		lp := outputs[gateIdx]
		v, err := decodeOutput(view.DecodingTables[gateIdx], lp, meta.TextID)
		if err != nil {
			return nil, fmt.Errorf("circuit: gate %s: %w", meta.TextID, err)
		}
		result[meta.TextID] = v
	}
	return result, nil
}

// matchGateInputs intersects held against this gate's permuted
// candidate catalogue, and orders the held candidates that matched
// by ascending wire ID — the canonical receipt order that reproduces
// the gate's originally declared input order, guaranteed by the
// CircuitBuilder's strictly-increasing-WireID precondition.
func matchGateInputs(view *GarbledView, meta GateMeta, held map[int]LabelPerm) ([]LabelPerm, error) {
	candidates := view.Catalogue[meta.TextID]

	type match struct {
		wireID int
		lp     LabelPerm
	}
	var matched []match
	for wireID, lp := range held {
		for _, cand := range candidates {
			if cand.Label == lp.Label && cand.P == lp.P {
				matched = append(matched, match{wireID, lp})
				break
			}
		}
	}
	if len(matched) != meta.Arity {
		return nil, fmt.Errorf("found %d held inputs, want %d", len(matched), meta.Arity)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].wireID < matched[j].wireID })

	out := make([]LabelPerm, len(matched))
	for i, m := range matched {
		out[i] = m.lp
	}
	return out, nil
}

// buildRowAndHashInput packs the matched inputs' permutation bits
// into the garbled-table row index, and concatenates their labels
// with the gate's text ID into the literal hash input string.
func buildRowAndHashInput(matched []LabelPerm, textID string) (int, string) {
	row := 0
	var labels strings.Builder
	for _, lp := range matched {
		row = row<<1 | lp.P
		labels.WriteString(string(lp.Label))
	}
	labels.WriteString(textID)
	return row, labels.String()
}

// decodeOutput recovers the single clear bit a gate's decoding table
// encodes for its output label, or ErrDecodeFailure if zero or more
// than one candidate entry lands in {0, 1}.
func decodeOutput(table []bigint.JSON, out LabelPerm, textID string) (int, error) {
	if len(table) == 0 {
		return 0, fmt.Errorf("%w: gate %s has no decoding table", ErrDecodeFailure, textID)
	}
	hv := gcrypto.LEToInt(gcrypto.Hash(string(out.Label) + OUTTag + textID))

	found := -1
	for _, e := range unwrapInts(table) {
		cand := new(big.Int).Xor(hv, e)
		if cand.Sign() >= 0 && cand.Cmp(big.NewInt(1)) <= 0 {
			if found != -1 {
				return 0, ErrDecodeFailure
			}
			found = int(cand.Int64())
		}
	}
	if found == -1 {
		return 0, ErrDecodeFailure
	}
	return found, nil
}
