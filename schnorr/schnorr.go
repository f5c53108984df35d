// Package schnorr implements the Schnorr identification protocol over Ristretto255 as the leaf Σ-protocol: a proof
// of knowledge of the discrete log x of a statement X = x*G.
package schnorr

import (
	"io"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/sigma"
)

// MessageA is a Schnorr first message: the compressed commitment point k*G.
type MessageA [32]byte

// Write serializes the first message's raw bytes.
func (a MessageA) Write(w io.Writer) error {
	_, err := w.Write(a[:])
	return err
}

// MessageZ is a Schnorr third message: the response scalar z = c*x + k.
type MessageZ struct {
	Z *ristretto255.Scalar
}

// Write serializes the response scalar's canonical encoding.
func (z MessageZ) Write(w io.Writer) error {
	_, err := w.Write(z.Z.Bytes())
	return err
}

// Precompute carries the pieces EHVZK needs to recompute a first message without redoing the prover's scalar
// multiplication: P = z*G and CNeg = -challenge, so that EHVZK need only compute P + CNeg*statement.
type Precompute struct {
	P    *ristretto255.Element
	CNeg *ristretto255.Scalar
}

// Leaf is the Schnorr Σ-protocol. It carries no state of its own; every SigmaA call is independent.
type Leaf struct{}

var _ sigma.Protocol = Leaf{}

// Clauses reports 1: a leaf proves a single statement, not a disjunction.
func (Leaf) Clauses() int { return 1 }

// SigmaA samples a uniform nonce k and commits to A = k*G.
func (Leaf) SigmaA(rand io.Reader, witness any) (state any, a sigma.Message, err error) {
	_ = witness.(*ristretto255.Scalar) // witness is unused by SigmaA but asserted for shape consistency.

	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, nil, err
	}

	k, err := ristretto255.NewScalar().SetUniformBytes(seed[:])
	if err != nil {
		return nil, nil, err
	}

	commitment := ristretto255.NewIdentityElement().ScalarBaseMult(k)

	var msg MessageA
	copy(msg[:], commitment.Bytes())
	return k, msg, nil
}

// SigmaZ computes the response z = c*x + k, along with the precompute hint EHVZK needs.
func (Leaf) SigmaZ(statement any, witness any, state any, challenge *ristretto255.Scalar) (precompute any, z sigma.Message) {
	x := witness.(*ristretto255.Scalar)
	k := state.(*ristretto255.Scalar)

	zVal := ristretto255.NewScalar().Multiply(challenge, x)
	zVal = zVal.Add(zVal, k)

	p := ristretto255.NewIdentityElement().ScalarBaseMult(zVal)
	cNeg := ristretto255.NewScalar().Negate(challenge)

	return Precompute{P: p, CNeg: cNeg}, MessageZ{Z: zVal}
}

// EHVZK reconstructs the first message A = P + CNeg*statement = z*G - c*X.
//
// When (P, CNeg) were produced by a real SigmaZ call this equals z*G - c*X = (c*x+k)*G - c*(x*G) = k*G, the real
// first message — this is exactly the verification equation. When the caller instead chooses z freely and sets
// P := z*G, CNeg := -c directly (without ever running SigmaZ), EHVZK produces a simulated first message for any
// statement, which is how stack.Node uses it to simulate sibling transcripts.
func (Leaf) EHVZK(pre any, statement any, challenge *ristretto255.Scalar, z sigma.Message) sigma.Message {
	p := pre.(Precompute)
	x := statement.(*ristretto255.Element)

	point := ristretto255.NewIdentityElement().ScalarMult(p.CNeg, x)
	point = point.Add(point, p.P)

	var msg MessageA
	copy(msg[:], point.Bytes())
	return msg
}

// NewChallenge wide-reduces a 64-byte digest into a challenge scalar. It is an alias for sigma.NewChallenge, kept
// here so callers constructing a bare Schnorr leaf signature don't need to import the sigma package directly.
func NewChallenge(digest [64]byte) *ristretto255.Scalar {
	return sigma.NewChallenge(digest)
}
