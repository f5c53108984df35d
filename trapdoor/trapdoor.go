// Package trapdoor implements the two-generator, equivocable commitment scheme at the heart of the stacking
// combinator. A CommitKey has a fixed side, whose slot holds the real transcript and is never reopened, and an
// equivocated side, whose generator's discrete log the Trapdoor holder knows; that knowledge lets the Trapdoor holder
// re-derive the randomness that opens a published commitment to new contents on the equivocated side, without ever
// touching the fixed side.
package trapdoor

import (
	"errors"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/feistel"
	"github.com/ringsig/stackring/group"
	"github.com/ringsig/stackring/sigma"
)

// Side identifies a CommitKey's fixed slot — the one whose content is real and never changes across an
// equivocation. The opposite slot, Side.Other(), is the one a matching Trapdoor can equivocate.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// maxKeyGenAttempts bounds the Gen retry loop. Only about 1 in 16 of all 32-byte strings is a canonical Ristretto255
// encoding, so a decompression on the fixed side fails with probability roughly 15/16 per attempt (see Gen), and
// 1024 attempts all fail with probability below 2^-95.
const maxKeyGenAttempts = 1024

// ErrKeyGenExhausted is returned by Gen if maxKeyGenAttempts consecutive samples all failed to decompress on the
// fixed side. This should not happen in practice; its probability is below 2^-95 per invocation.
var ErrKeyGenExhausted = errors.New("trapdoor: key generation exhausted retry budget")

// ErrEquivocationPrecondition is returned by Trapdoor.Equiv when the fixed side's slot content differs between old
// and new — Equiv can only compensate a change on the side opposite its Trapdoor's known discrete log.
var ErrEquivocationPrecondition = errors.New("trapdoor: equivocation changed the fixed side's slot")

// CommitKey is an ordered pair of commitment generators (left, right). The two always satisfy
// compress(right) = P(compress(left)), where P is the public Feistel permutation in package feistel.
type CommitKey struct {
	left, right *ristretto255.Element
}

// Left returns the key's left generator.
func (k CommitKey) Left() *ristretto255.Element { return k.left }

// Right returns the key's right generator.
func (k CommitKey) Right() *ristretto255.Element { return k.right }

// Write serializes only the left generator; the right is always recoverable by applying P to it, so the wire format
// omits it (spec.md §6).
func (k CommitKey) Write(w io.Writer) error {
	b := k.left.Bytes()
	_, err := w.Write(b)
	return err
}

// Trapdoor is the discrete log of a CommitKey's equivocated-side generator (the generator on side.Other(), where
// side is the Side a Trapdoor was generated for). It must never be retained beyond the signing invocation that
// produced it.
type Trapdoor struct {
	td   *ristretto255.Scalar
	side Side
}

// Gen samples a fresh CommitKey whose fixed slot is side, along with its Trapdoor.
//
// Generation samples a uniform scalar t, sets the equivocated side's (side.Other()'s) generator to t*G, and derives
// the fixed side's generator's compressed encoding by applying the Feistel permutation P to the equivocated side's
// encoding. If that encoding fails to decompress to a valid group element (non-canonical or off-curve — the common
// case, about 15 times in 16, since P has no relationship to the curve equation), Gen resamples t and retries, up to
// maxKeyGenAttempts times.
func Gen(rand io.Reader, side Side) (CommitKey, Trapdoor, error) {
	for range maxKeyGenAttempts {
		var seed [64]byte
		if _, err := io.ReadFull(rand, seed[:]); err != nil {
			return CommitKey{}, Trapdoor{}, err
		}

		td, err := ristretto255.NewScalar().SetUniformBytes(seed[:])
		if err != nil {
			return CommitKey{}, Trapdoor{}, err
		}

		bound := ristretto255.NewIdentityElement().ScalarBaseMult(td)

		var boundBytes [32]byte
		copy(boundBytes[:], bound.Bytes())
		otherBytes := feistel.Permute(boundBytes)

		other, err := ristretto255.NewIdentityElement().SetCanonicalBytes(otherBytes[:])
		if err != nil {
			continue
		}

		// bound = t*G must land on side.Other() — the slot Equiv is allowed to change — not on side itself, which
		// stays fixed across an equivocation.
		var ck CommitKey
		switch side {
		case Left:
			ck = CommitKey{left: other, right: bound}
		case Right:
			ck = CommitKey{left: bound, right: other}
		}
		return ck, Trapdoor{td: td, side: side}, nil
	}
	return CommitKey{}, Trapdoor{}, ErrKeyGenExhausted
}

// Randomness is the blinding scalar of a Commitment.
type Randomness = *ristretto255.Scalar

// Commitment is the 32-byte compressed encoding of r*G + h(left)*H_L + h(right)*H_R, where an absent slot
// contributes zero.
type Commitment [32]byte

// Write serializes the commitment's raw bytes.
func (c Commitment) Write(w io.Writer) error {
	_, err := w.Write(c[:])
	return err
}

// Commit computes a commitment to (left, right) under randomness r. Either slot may be nil, contributing nothing.
func (k CommitKey) Commit(r Randomness, left, right sigma.Message) (Commitment, error) {
	acc := ristretto255.NewIdentityElement().ScalarBaseMult(r)

	if left != nil {
		hl, err := group.HashToScalar(left)
		if err != nil {
			return Commitment{}, err
		}
		acc.Add(acc, ristretto255.NewIdentityElement().ScalarMult(hl, k.left))
	}

	if right != nil {
		hr, err := group.HashToScalar(right)
		if err != nil {
			return Commitment{}, err
		}
		acc.Add(acc, ristretto255.NewIdentityElement().ScalarMult(hr, k.right))
	}

	var out Commitment
	copy(out[:], acc.Bytes())
	return out, nil
}

// Equiv computes the randomness that opens a commitment originally made to (oldLeft, oldRight) so that it instead
// opens to (newLeft, newRight), given the original randomness r.
//
// Correctness requires that the trapdoor's fixed-side slot (t.side) is unchanged between old and new — the delta
// must land entirely on the equivocated side (t.side.Other()), whose generator's discrete log t.td is known. Equiv
// asserts this precondition itself, returning ErrEquivocationPrecondition if the fixed side's slot changed.
func (t Trapdoor) Equiv(r Randomness, oldLeft, oldRight, newLeft, newRight sigma.Message) (Randomness, error) {
	oldL, err := group.HashToScalarOrZero(oldLeft)
	if err != nil {
		return nil, err
	}
	oldR, err := group.HashToScalarOrZero(oldRight)
	if err != nil {
		return nil, err
	}
	newL, err := group.HashToScalarOrZero(newLeft)
	if err != nil {
		return nil, err
	}
	newR, err := group.HashToScalarOrZero(newRight)
	if err != nil {
		return nil, err
	}

	var fixedOld, fixedNew *ristretto255.Scalar
	switch t.side {
	case Left:
		fixedOld, fixedNew = oldL, newL
	case Right:
		fixedOld, fixedNew = oldR, newR
	}
	if fixedOld.Equal(fixedNew) != 1 {
		return nil, ErrEquivocationPrecondition
	}

	deltaL := ristretto255.NewScalar().Subtract(oldL, newL)
	deltaR := ristretto255.NewScalar().Subtract(oldR, newR)
	delta := ristretto255.NewScalar().Add(deltaL, deltaR)

	adjustment := ristretto255.NewScalar().Multiply(t.td, delta)
	return ristretto255.NewScalar().Add(r, adjustment), nil
}
