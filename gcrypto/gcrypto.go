//
// gcrypto.go
//
// Hash and authenticated-encryption façade. The garbling scheme and
// the OT sub-protocol both treat hashing and symmetric encryption as
// black boxes; this package is where the black box lives.
//

// Package gcrypto wraps SHA-512 and an authenticated symmetric cipher
// behind the narrow interface the garbled-circuit and OT protocols
// need: hash a byte string / text string / integer, and seal/open a
// secret under a key derived from an OT session.
package gcrypto

import (
	"crypto/sha512"
	"errors"
	"math/big"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize and NonceSize match golang.org/x/crypto/nacl/secretbox's
// XSalsa20-Poly1305 construction, and the 32-byte/24-byte convention
// spec.md §4.2 assumes (it was originally written against PyNaCl's
// SecretBox, the same construction family).
const (
	KeySize   = 32
	NonceSize = 24
)

// ErrAuthenticationFailed is returned by Open when the ciphertext's
// authentication tag does not verify.
var ErrAuthenticationFailed = errors.New("gcrypto: authentication failed")

// Hash returns the SHA-512 digest of m. m must be a []byte, a string
// (hashed as its UTF-8 bytes), or a *big.Int (hashed as its
// little-endian byte encoding, zero-padded to the minimum width that
// holds its bit length). Any other type is a programmer error.
func Hash(m interface{}) []byte {
	h := sha512.New()
	switch v := m.(type) {
	case []byte:
		h.Write(v)
	case string:
		h.Write([]byte(v))
	case *big.Int:
		h.Write(leBytes(v))
	default:
		panic("gcrypto: Hash: unsupported message type")
	}
	return h.Sum(nil)
}

// leBytes returns x encoded little-endian in the minimum number of
// bytes that holds its bit length (ceil(bitlen/8), at least 1 byte).
func leBytes(x *big.Int) []byte {
	n := (x.BitLen() + 7) / 8
	if n == 0 {
		n = 1
	}
	be := x.Bytes() // big-endian, no leading zero byte
	buf := make([]byte, n)
	// Place be's bytes at the low end of buf (big-endian within the
	// tail), then reverse the whole buffer to get little-endian.
	copy(buf[n-len(be):], be)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// LEToInt reinterprets digest (or any byte slice) as an unsigned
// integer in little-endian order. This is the inverse reading
// direction gcrypto.Hash's callers need: SHA-512 produces a
// big-endian byte slice, but the protocol treats hashed values as
// little-endian integers for XOR.
func LEToInt(digest []byte) *big.Int {
	rev := make([]byte, len(digest))
	for i, b := range digest {
		rev[len(digest)-1-i] = b
	}
	return new(big.Int).SetBytes(rev)
}

// KeyFromInt packs a shared-secret integer (e.g. one of an OT
// session's two Diffie-Hellman results) into a 32-byte secretbox key,
// little-endian, truncated or zero-padded to exactly KeySize bytes.
// This is the "32 bytes (hash output truncated/padded)" construction
// spec.md §4.2 describes: the value being packed is itself already a
// group element the OT protocol produced, not a fresh SHA-512 digest.
func KeyFromInt(x *big.Int) [KeySize]byte {
	var key [KeySize]byte
	le := leBytes(x)
	n := len(le)
	if n > KeySize {
		n = KeySize
	}
	copy(key[:n], le[:n])
	return key
}

// Seal authenticates and encrypts plaintext under key and nonce,
// returning the ciphertext (which includes the Poly1305 tag).
//
// Every caller in this module uses an all-zero nonce: each OT session
// derives a fresh key from fresh Diffie-Hellman randomness, so nonce
// reuse never occurs across sessions for a fixed key. See
// SPEC_FULL.md's nonce-discipline redesign note.
func Seal(key [KeySize]byte, nonce [NonceSize]byte, plaintext []byte) []byte {
	return secretbox.Seal(nil, plaintext, &nonce, &key)
}

// Open verifies and decrypts ciphertext under key and nonce. It
// returns ErrAuthenticationFailed if the tag does not verify.
func Open(key [KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	plaintext, ok := secretbox.Open(nil, ciphertext, &nonce, &key)
	if !ok {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
