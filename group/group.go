// Package group provides the hash-to-scalar primitive shared by the trapdoor commitment and the Fiat–Shamir signer:
// a deterministic map from a serializable message to an element of the Ristretto255 scalar field.
package group

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/sigma"
)

// HashToScalar hashes m's canonical encoding with SHA-512 and wide-reduces the 64-byte digest into a scalar.
func HashToScalar(m sigma.Message) (*ristretto255.Scalar, error) {
	h := sha512.New()
	if err := m.Write(h); err != nil {
		return nil, err
	}

	var digest [64]byte
	h.Sum(digest[:0])
	return sigma.NewChallenge(digest), nil
}

// HashToScalarOrZero hashes m as HashToScalar does, except a nil m (an absent commitment slot) maps to the zero
// scalar, matching the trapdoor commitment's treatment of empty slots.
func HashToScalarOrZero(m sigma.Message) (*ristretto255.Scalar, error) {
	if m == nil {
		return ristretto255.NewScalar(), nil
	}
	return HashToScalar(m)
}
