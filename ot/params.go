//
// params.go
//
// Shared Parakh OT parameters and validation.
//

package ot

import (
	"errors"
	"math/big"

	"github.com/crm4042/ygc/bigint"
)

// Params holds the public parameters a Sender and Receiver must
// agree on before running the protocol: a prime p, a generator g of
// the multiplicative group mod p, and two public uniform integers
// x1 > x2 used to index the Sender's two secrets.
type Params struct {
	Prime     *big.Int
	Generator *big.Int
	X1        *big.Int
	X2        *big.Int
}

// ErrInvalidParams is returned by Validate when the parameters do
// not satisfy the structural assumptions the protocol depends on.
var ErrInvalidParams = errors.New("ot: invalid parameters")

// Validate checks the structural assumptions spec.md §9 calls for:
// 1 < x2 < x1 < prime, and the generator is coprime to the prime
// (trivially true for a genuine generator of a prime-order subgroup,
// but cheap to check and catches gross misconfiguration).
func (p *Params) Validate() error {
	one := big.NewInt(1)
	if p.Prime == nil || p.Generator == nil || p.X1 == nil || p.X2 == nil {
		return ErrInvalidParams
	}
	if p.Prime.Cmp(big.NewInt(2)) <= 0 {
		return ErrInvalidParams
	}
	if !(p.X2.Cmp(one) > 0 && p.X1.Cmp(p.X2) > 0 && p.X1.Cmp(p.Prime) < 0) {
		return ErrInvalidParams
	}
	if !bigint.Coprime(p.Generator, p.Prime) {
		return ErrInvalidParams
	}
	return nil
}

// ToyParams returns the small, deterministic parameter set used by
// the E3 regression scenario: prime=2903, generator=5, x1=1500,
// x2=700. Suitable only for tests — 2903 is trivially factorable and
// offers no real security margin.
func ToyParams() Params {
	return Params{
		Prime:     big.NewInt(2903),
		Generator: big.NewInt(5),
		X1:        big.NewInt(1500),
		X2:        big.NewInt(700),
	}
}

// defaultPrimeHex is the RFC 3526 Group 14 2048-bit MODP safe prime.
const defaultPrimeHex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
	"129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B" +
	"302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0" +
	"BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2" +
	"007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C6" +
	"2F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"

// DefaultParams returns a production-sized safe-prime MODP group
// (RFC 3526 Group 14, 2048 bits) with generator 2, and a pair of
// fixed public indices x1, x2. Callers that need session-fresh x1/x2
// should draw them independently and still call Validate.
func DefaultParams() Params {
	prime, ok := new(big.Int).SetString(defaultPrimeHex, 16)
	if !ok {
		panic("ot: malformed default prime constant")
	}
	return Params{
		Prime:     prime,
		Generator: big.NewInt(2),
		X1:        big.NewInt(1500),
		X2:        big.NewInt(700),
	}
}
