//
// label.go
//
// Wire labels as fixed-width bit strings, and the random sourcing of
// label pairs and permutation bits a Generator needs to build Wires.
//

package ot

import (
	"crypto/rand"
	"fmt"
)

// Label is a K-bit wire label, represented as a string of '0'/'1'
// characters. The classical garbling scheme in this module hashes
// labels by their literal text (see gcrypto.Hash), so the bit-string
// representation is not an implementation detail — it is the wire
// format the hash inputs are built from.
type Label string

// RandomLabel returns a uniformly random K-bit Label.
func RandomLabel(k int) (Label, error) {
	buf := make([]byte, k)
	bits := make([]byte, (k+7)/8)
	if _, err := rand.Read(bits); err != nil {
		return "", fmt.Errorf("ot: random label: %w", err)
	}
	for i := 0; i < k; i++ {
		byteIdx, bitIdx := i/8, i%8
		if bits[byteIdx]&(1<<bitIdx) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return Label(buf), nil
}

// RandomBit returns a uniformly random single bit, 0 or 1.
func RandomBit() (int, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("ot: random bit: %w", err)
	}
	return int(b[0] & 1), nil
}

// Wire is a labelled boolean wire: two labels K0, K1 and two
// complementary permutation bits P0, P1 (P1 = 1 - P0).
type Wire struct {
	K0, K1 Label
	P0, P1 int
}

// NewWire draws a fresh random Wire with K-bit labels.
func NewWire(k int) (Wire, error) {
	k0, err := RandomLabel(k)
	if err != nil {
		return Wire{}, err
	}
	k1, err := RandomLabel(k)
	if err != nil {
		return Wire{}, err
	}
	p0, err := RandomBit()
	if err != nil {
		return Wire{}, err
	}
	return Wire{K0: k0, K1: k1, P0: p0, P1: 1 - p0}, nil
}

// Label returns the label for logical value v (0 or 1).
func (w Wire) Label(v int) Label {
	if v == 0 {
		return w.K0
	}
	return w.K1
}

// Perm returns the permutation bit for logical value v (0 or 1).
func (w Wire) Perm(v int) int {
	if v == 0 {
		return w.P0
	}
	return w.P1
}
