// Package stack implements the stacking combinator: given any Σ-protocol Π, Node(Π) realizes a 1-of-2 OR-composition
// of Π with itself, using a trapdoor commitment to bind together a real transcript on the witness's side and a
// simulated transcript on the other side. Wrapping a Node around another Node recursively yields a 1-of-2^d proof for
// any depth d; package ringtree builds that wrapping for an arbitrary power-of-two ring size.
package stack

import (
	"io"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/sigma"
	"github.com/ringsig/stackring/trapdoor"
)

// Side records which half of a pair carries the real witness.
type Side = trapdoor.Side

const (
	Left  = trapdoor.Left
	Right = trapdoor.Right
)

// Statement is a pair of inner statements, one per side.
type Statement struct {
	Left, Right any
}

// Witness is an inner witness tagged with which side of this level is the real one.
type Witness struct {
	Inner any
	Side  Side
}

// state is the private data SigmaA produces and SigmaZ consumes for one Node.
type state struct {
	inner  any // the inner protocol's own State
	a      sigma.Message
	ck     trapdoor.CommitKey
	td     trapdoor.Trapdoor
	random trapdoor.Randomness
}

// MessageZ is a compiled third message: the inner third message, the commitment key used to bind this level, and
// the (possibly equivocated) randomness that opens the outer commitment to both the real and simulated first
// messages.
type MessageZ struct {
	Inner  sigma.Message
	CK     trapdoor.CommitKey
	Random trapdoor.Randomness
}

// Write serializes, in order, the inner message, the commitment key (left generator only — see
// trapdoor.CommitKey.Write), and the randomness's canonical scalar encoding.
func (z MessageZ) Write(w io.Writer) error {
	if err := z.Inner.Write(w); err != nil {
		return err
	}
	if err := z.CK.Write(w); err != nil {
		return err
	}
	_, err := w.Write(z.Random.Bytes())
	return err
}

// Node is the 1-of-2 stacking combinator over an inner Σ-protocol.
type Node struct {
	Inner sigma.Protocol
}

var _ sigma.Protocol = Node{}

// Clauses reports 2 * Inner.Clauses(), per spec.md §3 (CLAUSES = 2 · Π.CLAUSES).
func (n Node) Clauses() int { return 2 * n.Inner.Clauses() }

// SigmaA runs the inner protocol's real first message on the witness's side, generates a fresh trapdoor commitment
// key whose fixed slot is that same side, and commits to the inner first message alone (the sibling slot is left
// empty).
func (n Node) SigmaA(rand io.Reader, witness any) (st any, a sigma.Message, err error) {
	w := witness.(Witness)

	innerState, innerA, err := n.Inner.SigmaA(rand, w.Inner)
	if err != nil {
		return nil, nil, err
	}

	ck, td, err := trapdoor.Gen(rand, w.Side)
	if err != nil {
		return nil, nil, err
	}

	r, err := randomScalar(rand)
	if err != nil {
		return nil, nil, err
	}

	var comm trapdoor.Commitment
	switch w.Side {
	case Left:
		comm, err = ck.Commit(r, innerA, nil)
	case Right:
		comm, err = ck.Commit(r, nil, innerA)
	}
	if err != nil {
		return nil, nil, err
	}

	return state{inner: innerState, a: innerA, ck: ck, td: td, random: r}, comm, nil
}

// SigmaZ runs the inner protocol's real third message on the witness's side, simulates the sibling's first message
// by applying the inner protocol's EHVZK to the real response (valid by the inner protocol's HVZK property), then
// equivocates the outer commitment so it opens to both the real and simulated first messages under one randomness.
func (n Node) SigmaZ(statement any, witness any, stateAny any, challenge *ristretto255.Scalar) (precompute any, z sigma.Message) {
	stmt := statement.(Statement)
	w := witness.(Witness)
	st := stateAny.(state)

	var realStatement, simStatement any
	switch w.Side {
	case Left:
		realStatement, simStatement = stmt.Left, stmt.Right
	case Right:
		realStatement, simStatement = stmt.Right, stmt.Left
	}

	innerPrecompute, innerZ := n.Inner.SigmaZ(realStatement, w.Inner, st.inner, challenge)
	simA := n.Inner.EHVZK(innerPrecompute, simStatement, challenge, innerZ)

	var newRandom trapdoor.Randomness
	var err error
	switch w.Side {
	case Left:
		newRandom, err = st.td.Equiv(st.random, st.a, nil, st.a, simA)
	case Right:
		newRandom, err = st.td.Equiv(st.random, nil, st.a, simA, st.a)
	}
	if err != nil {
		// Two things could make Equiv fail, and neither can happen here: a Write error (every Message
		// implementation in this module writes to a sha512.Hasher, which never returns one), and
		// ErrEquivocationPrecondition (st.a is passed unchanged as both the old and new value of the fixed slot
		// above, by construction). This is the "programmer error, fatal" category of spec.md §7.
		panic("stack: unexpected equivocation failure: " + err.Error())
	}

	return innerPrecompute, MessageZ{Inner: innerZ, CK: st.ck, Random: newRandom}
}

// EHVZK reconstructs the outer commitment by simulating both sides' first messages via the inner protocol's EHVZK
// and committing to the pair under the message's published randomness.
func (n Node) EHVZK(pre any, statement any, challenge *ristretto255.Scalar, z sigma.Message) sigma.Message {
	stmt := statement.(Statement)
	mz := z.(MessageZ)

	left := n.Inner.EHVZK(pre, stmt.Left, challenge, mz.Inner)
	right := n.Inner.EHVZK(pre, stmt.Right, challenge, mz.Inner)

	comm, err := mz.CK.Commit(mz.Random, left, right)
	if err != nil {
		// Commit only fails if hashing a message fails, which does not happen for the in-module Message
		// implementations (all of which serialize to a fixed-size buffer).
		panic("stack: unexpected commitment failure: " + err.Error())
	}
	return comm
}

func randomScalar(rand io.Reader) (*ristretto255.Scalar, error) {
	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return ristretto255.NewScalar().SetUniformBytes(seed[:])
}
