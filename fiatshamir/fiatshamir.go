// Package fiatshamir collapses an interactive Σ-protocol into a non-interactive signature by deriving the verifier's
// challenge as a hash of the first message and the signed data, instead of sampling it at random.
package fiatshamir

import (
	"crypto/sha512"
	"io"

	"github.com/ringsig/stackring/sigma"
)

// Signature is the non-interactive proof produced by Sign: a first message and a matching third message.
type Signature struct {
	A sigma.Message
	Z sigma.Message
}

// Write serializes the signature as A.Write ∥ Z.Write, per spec.md §6.
func (s Signature) Write(w io.Writer) error {
	if err := s.A.Write(w); err != nil {
		return err
	}
	return s.Z.Write(w)
}

// Sign runs proto's first message, derives a challenge from it and msg via SHA-512, then runs proto's third message
// against that challenge. The resulting (A, Z) pair is the signature; the precompute hint from the third message is
// discarded, since signing never needs to simulate its own transcript.
func Sign(rand io.Reader, proto sigma.Protocol, sk, pk any, msg []byte) (Signature, error) {
	state, a, err := proto.SigmaA(rand, sk)
	if err != nil {
		return Signature{}, err
	}

	h := sha512.New()
	if err := a.Write(h); err != nil {
		return Signature{}, err
	}
	if _, err := h.Write(msg); err != nil {
		return Signature{}, err
	}

	var digest [64]byte
	h.Sum(digest[:0])
	challenge := sigma.NewChallenge(digest)

	_, z := proto.SigmaZ(pk, sk, state, challenge)

	return Signature{A: a, Z: z}, nil
}
