//
// bigint.go
//
// Modular arithmetic primitives used by the OT sub-protocol.
//

// Package bigint provides the arbitrary-precision modular arithmetic
// primitives the rest of the module builds on: square-and-multiply
// exponentiation, GCD, the extended Euclidean algorithm, and modular
// inverse.
package bigint

import (
	"errors"
	"math/big"
)

// ErrNotInvertible is returned by Inverse when x and n are not
// coprime, so no modular inverse exists.
var ErrNotInvertible = errors.New("bigint: x has no inverse mod n")

// SquareMultiply computes b^e mod n using square-and-multiply,
// scanning e's binary expansion most-significant bit first.
func SquareMultiply(b, e, n *big.Int) *big.Int {
	result := big.NewInt(1)
	base := new(big.Int).Mod(b, n)

	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, n)
		if e.Bit(i) == 1 {
			result.Mul(result, base)
			result.Mod(result, n)
		}
	}
	return result
}

// GCD returns the greatest common divisor of x1 and x2 using
// classical Euclidean reduction.
func GCD(x1, x2 *big.Int) *big.Int {
	a, b := new(big.Int).Abs(x1), new(big.Int).Abs(x2)
	if a.Cmp(b) < 0 {
		a, b = b, a
	}
	for b.Sign() != 0 {
		a, b = b, new(big.Int).Mod(a, b)
	}
	return a
}

// ExtGCD performs the extended Euclidean algorithm and returns (g, u,
// v) such that u*x1 + v*x2 == g == gcd(x1, x2).
func ExtGCD(x1, x2 *big.Int) (g, u, v *big.Int) {
	oldR, r := new(big.Int).Set(x1), new(big.Int).Set(x2)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int)
		rem := new(big.Int)
		q.QuoRem(oldR, r, rem)

		oldR, r = r, rem

		newS := new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldS, s = s, newS

		newT := new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
		oldT, t = t, newT
	}
	return oldR, oldS, oldT
}

// Inverse returns the modular inverse of x modulo n, i.e. the unique
// y in [0, n) such that x*y ≡ 1 (mod n). It returns ErrNotInvertible
// if gcd(x, n) != 1.
func Inverse(x, n *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	if x.Cmp(one) == 0 {
		return big.NewInt(1), nil
	}

	g, u, _ := ExtGCD(x, n)
	if g.CmpAbs(one) != 0 {
		return nil, ErrNotInvertible
	}

	result := new(big.Int).Mod(u, n)
	if result.Sign() < 0 {
		result.Add(result, n)
	}
	return result, nil
}

// Coprime reports whether gcd(x, n) == 1.
func Coprime(x, n *big.Int) bool {
	return GCD(x, n).Cmp(big.NewInt(1)) == 0
}
