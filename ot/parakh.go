//
// parakh.go
//
// The 1-out-of-2 Oblivious Transfer sub-protocol (Parakh, 2009):
// https://arxiv.org/pdf/0909.2852.pdf. Three rounds over a Channel;
// the Sender never learns the Receiver's choice, and the Receiver
// recovers exactly one of the Sender's two secrets.
//

package ot

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/crm4042/ygc/bigint"
	"github.com/crm4042/ygc/gcrypto"
)

// ErrInvalidChoice is returned by NewReceiver when choice is outside
// {1, 2}.
var ErrInvalidChoice = errors.New("ot: choice must be 1 or 2")

// ErrDecrypt wraps a failed recovery of the chosen secret: either the
// authentication tag did not verify, or the transcript was malformed.
var ErrDecrypt = errors.New("ot: receiver could not recover chosen secret")

// round2 is the Receiver's round-2 payload: M2 = (A, B).
type round2 struct {
	A bigint.JSON `json:"a"`
	B bigint.JSON `json:"b"`
}

// round3 is the Sender's round-3 payload: M3 plus the two ciphertexts
// and their (always-zero) nonces, transmitted in the original's
// positional order for fidelity with the source protocol.
type round3 struct {
	M3     bigint.JSON `json:"m3"`
	C1     []byte      `json:"c1"`
	Nonce1 int         `json:"nonce1"`
	C2     []byte      `json:"c2"`
	Nonce2 int         `json:"nonce2"`
}

// randomInRange returns a uniform random integer in [lo, hi].
func randomInRange(lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return nil, fmt.Errorf("ot: random in range: %w", err)
	}
	return n.Add(n, lo), nil
}

// Sender runs the OT-Sender (Alice) role: it holds two secrets and
// learns nothing about which one the Receiver chose.
type Sender struct {
	params  Params
	secret1 *big.Int
	secret2 *big.Int
	ch      Channel
}

// NewSender constructs a Sender holding secret1 and secret2, either
// of which the Receiver may obliviously obtain.
func NewSender(params Params, secret1, secret2 *big.Int, ch Channel) (*Sender, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Sender{params: params, secret1: secret1, secret2: secret2, ch: ch}, nil
}

// Run drives the Sender's three protocol rounds to completion.
func (s *Sender) Run() error {
	p := s.params.Prime
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))

	// Round 1: draw N_A1, send M1 = g^(x1+N_A1) mod p.
	nA1, err := randomInRange(big.NewInt(1), pMinus1)
	if err != nil {
		return err
	}
	exp1 := new(big.Int).Add(s.params.X1, nA1)
	m1 := bigint.SquareMultiply(s.params.Generator, exp1, p)
	if err := s.ch.Send(bigint.FromInt(m1)); err != nil {
		return fmt.Errorf("ot: sender round 1 send: %w", err)
	}

	// Round 2: receive M2 = (A, B).
	var m2 round2
	if err := s.ch.Receive(&m2); err != nil {
		return fmt.Errorf("ot: sender round 2 receive: %w", err)
	}
	a, b := m2.A.Int, m2.B.Int

	// Round 3: draw N_A2, compute M3 = A^{N_A2}, and both keys.
	nA2, err := randomInRange(big.NewInt(1), pMinus1)
	if err != nil {
		return err
	}
	m3 := bigint.SquareMultiply(a, nA2, p)

	k1Exp := new(big.Int).Mul(nA1, nA2)
	k1 := bigint.SquareMultiply(b, k1Exp, p)

	k2Base := new(big.Int).Sub(s.params.X1, s.params.X2)
	k2Base.Add(k2Base, nA1)
	k2Inner := bigint.SquareMultiply(b, k2Base, p)
	k2 := bigint.SquareMultiply(k2Inner, nA2, p)

	c1, err := sealSecret(k1, s.secret1)
	if err != nil {
		return err
	}
	c2, err := sealSecret(k2, s.secret2)
	if err != nil {
		return err
	}

	payload := round3{
		M3: bigint.FromInt(m3),
		C1: c1,
		C2: c2,
	}
	if err := s.ch.Send(payload); err != nil {
		return fmt.Errorf("ot: sender round 3 send: %w", err)
	}
	return nil
}

// sealSecret packs secret into its minimal byte encoding and
// authenticates/encrypts it under a key derived from the raw
// Diffie-Hellman integer key, with the fixed zero nonce spec.md §4.7
// calls for.
func sealSecret(key *big.Int, secret *big.Int) ([]byte, error) {
	var nonce [gcrypto.NonceSize]byte
	k := gcrypto.KeyFromInt(key)
	plaintext := secret.Bytes() // big-endian is fine: opaque payload, unpacked the same way on receipt
	return gcrypto.Seal(k, nonce, plaintext), nil
}

func openSecret(key *big.Int, ciphertext []byte) (*big.Int, error) {
	var nonce [gcrypto.NonceSize]byte
	k := gcrypto.KeyFromInt(key)
	plaintext, err := gcrypto.Open(k, nonce, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return new(big.Int).SetBytes(plaintext), nil
}

// Receiver runs the OT-Receiver (Bob) role: it supplies a choice in
// {1, 2} and recovers the corresponding secret without revealing the
// choice to the Sender.
type Receiver struct {
	params Params
	choice int
	ch     Channel
}

// NewReceiver constructs a Receiver that will obtain the Sender's
// first secret if choice == 1, or the second if choice == 2.
func NewReceiver(params Params, choice int, ch Channel) (*Receiver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if choice != 1 && choice != 2 {
		return nil, ErrInvalidChoice
	}
	return &Receiver{params: params, choice: choice, ch: ch}, nil
}

// Run drives the Receiver's three protocol rounds and returns the
// recovered secret.
func (r *Receiver) Run() (*big.Int, error) {
	p := r.params.Prime
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))

	// Round 1: receive M1.
	var m1j bigint.JSON
	if err := r.ch.Receive(&m1j); err != nil {
		return nil, fmt.Errorf("ot: receiver round 1 receive: %w", err)
	}
	m1 := m1j.Int

	// Round 2: x_B = x1 if choice==1 else x2. Draw N_B, N_B1 coprime
	// to p-1 by rejection sampling.
	xB := r.params.X2
	if r.choice == 1 {
		xB = r.params.X1
	}
	nB, err := randomInRange(big.NewInt(1), pMinus1)
	if err != nil {
		return nil, err
	}
	nB1, err := r.sampleNB1(pMinus1)
	if err != nil {
		return nil, err
	}

	gxB := bigint.SquareMultiply(r.params.Generator, xB, p)
	gxBInv, err := bigint.Inverse(gxB, p)
	if err != nil {
		return nil, fmt.Errorf("ot: receiver computing g^x_B inverse: %w", err)
	}
	base := new(big.Int).Mul(m1, gxBInv)
	base.Mod(base, p)

	aExp := new(big.Int).Mul(nB, nB1)
	a := bigint.SquareMultiply(base, aExp, p)
	b := bigint.SquareMultiply(r.params.Generator, nB, p)

	if err := r.ch.Send(round2{A: bigint.FromInt(a), B: bigint.FromInt(b)}); err != nil {
		return nil, fmt.Errorf("ot: receiver round 2 send: %w", err)
	}

	// Round 3: receive (M3, C1, nonce1, C2, nonce2).
	var m3msg round3
	if err := r.ch.Receive(&m3msg); err != nil {
		return nil, fmt.Errorf("ot: receiver round 3 receive: %w", err)
	}

	nB1Inv, err := bigint.Inverse(nB1, pMinus1)
	if err != nil {
		return nil, fmt.Errorf("ot: receiver computing N_B1 inverse: %w", err)
	}
	kB := bigint.SquareMultiply(m3msg.M3.Int, nB1Inv, p)

	ciphertext := m3msg.C1
	if r.choice == 2 {
		ciphertext = m3msg.C2
	}
	return openSecret(kB, ciphertext)
}

// sampleNB1 rejection-samples N_B1 in [1, p-2] with gcd(N_B1, p-1) == 1.
func (r *Receiver) sampleNB1(pMinus1 *big.Int) (*big.Int, error) {
	upper := new(big.Int).Sub(pMinus1, big.NewInt(1))
	for {
		cand, err := randomInRange(big.NewInt(1), upper)
		if err != nil {
			return nil, err
		}
		if bigint.Coprime(cand, pMinus1) {
			return cand, nil
		}
	}
}
