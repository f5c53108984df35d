// Package sigma defines the contract shared by every Σ-protocol in this module: a three-move, public-coin proof of
// knowledge with special honest-verifier zero-knowledge simulation.
//
// Go has neither higher-kinded generics nor associated types, so Protocol is expressed the way spec.md §9 recommends
// for that situation: a single interface over any-typed witnesses, states, statements and precomputed hints, concretely
// implemented by exactly two types — schnorr.Leaf (the base case) and stack.Node (the recursive 1-of-2 combinator).
// The challenge type is not abstracted further: every protocol in this module shares the same *ristretto255.Scalar
// challenge, which is what lets the stacking combinator reuse a single challenge at every recursion depth.
package sigma

import (
	"io"

	"github.com/gtank/ristretto255"
)

// Message is anything that can serialize itself to a canonical byte encoding. Statements, first messages, third
// messages, commitments, commitment keys and randomness all implement Message.
type Message interface {
	Write(w io.Writer) error
}

// Protocol is a Σ-protocol: commit (SigmaA), respond (SigmaZ), and simulate (EHVZK).
//
// SigmaA samples fresh randomness and produces a first message, along with whatever private state the protocol needs
// to produce its third message later.
//
// SigmaZ produces a third message for the given challenge, plus a Precompute value usable by EHVZK to reconstruct
// the same first message from (statement, challenge, z) without redoing the real prover's work.
//
// EHVZK is the extended honest-verifier zero-knowledge simulator: given any valid (precompute, statement, challenge,
// z) tuple it reconstructs the unique first message a verifier would accept. When precompute comes from a real
// SigmaZ call this recomputes the real first message; when the caller manufactures precompute from a freely-chosen
// z, it produces a simulated first message indistinguishable from a real one.
type Protocol interface {
	SigmaA(rand io.Reader, witness any) (state any, a Message, err error)
	SigmaZ(statement any, witness any, state any, challenge *ristretto255.Scalar) (precompute any, z Message)
	EHVZK(pre any, statement any, challenge *ristretto255.Scalar, z Message) Message

	// Clauses reports the number of disjunctive clauses this protocol instance proves one of. A leaf protocol
	// reports 1; a Compiled/Node wrapping a protocol with c clauses reports 2*c.
	Clauses() int
}

// NewChallenge derives a challenge scalar from a 64-byte digest via wide reduction, matching the Schnorr leaf's
// Scalar::from_bytes_mod_order_wide semantics. Every level of the stack shares this same construction since the
// challenge type is not specialized per protocol.
func NewChallenge(digest [64]byte) *ristretto255.Scalar {
	c, err := ristretto255.NewScalar().SetUniformBytes(digest[:])
	if err != nil {
		// SetUniformBytes only fails if given fewer than 64 bytes; digest is always exactly 64.
		panic("sigma: wide reduction of a 64-byte digest failed: " + err.Error())
	}
	return c
}
