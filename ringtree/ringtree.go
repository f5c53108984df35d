// Package ringtree builds the balanced binary tree of statements the stacking combinator proves over: given a flat
// list of N = 2^d ring members and the index of the one the caller can prove knowledge of, it produces the nested
// Σ-protocol, the nested statement, and the nested witness that package fiatshamir signs with.
//
// Pairing N leaves into pairs, those pairs into pairs of pairs, and so on d times until one root remains is the same
// balanced tree original_source/src/main.rs builds with its repeated compile! macro invocations; this package is the
// general-purpose, arbitrary-witness-index version of that pairing (the macro always placed the signer's key at
// index 0, a benchmark-harness convenience spec.md §9 notes is not a constraint of the combinator itself).
package ringtree

import (
	"errors"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/schnorr"
	"github.com/ringsig/stackring/sigma"
	"github.com/ringsig/stackring/stack"
)

var (
	// ErrEmptyRing is returned by Build when given zero ring members.
	ErrEmptyRing = errors.New("ringtree: ring must contain at least one member")

	// ErrNotPowerOfTwo is returned by Build when the ring size is not a power of two.
	ErrNotPowerOfTwo = errors.New("ringtree: ring size must be a power of two")

	// ErrWitnessIndexRange is returned by Build when witnessIndex is outside [0, len(leaves)).
	ErrWitnessIndexRange = errors.New("ringtree: witness index out of range")
)

// Tree is the result of Build: the nested Σ-protocol for the whole ring, its nested statement, and the nested
// witness for the member at the index Build was given.
type Tree struct {
	// Protocol is schnorr.Leaf wrapped by stack.Node d times, where 2^d == len(leaves).
	Protocol sigma.Protocol
	// Statement is the nested stack.Statement tree (or, for a single-member ring, the bare *ristretto255.Element).
	Statement any
	// Witness is the nested stack.Witness tree (or, for a single-member ring, the bare *ristretto255.Scalar).
	Witness any
	// Depth is the number of stack.Node levels: log2(len(leaves)).
	Depth int
}

// Build balances leaves into a tree and tags the path to witnessIndex with the Left/Right side at every level.
//
// witness must be the discrete log of leaves[witnessIndex]; Build does not check this (the combinator is only
// sound if it holds, but verifying it would require a scalar multiplication Build has no other reason to perform,
// and a mismatched witness simply produces a signature that fails to verify rather than corrupting state).
func Build(leaves []*ristretto255.Element, witnessIndex int, witness *ristretto255.Scalar) (Tree, error) {
	n := len(leaves)
	if n == 0 {
		return Tree{}, ErrEmptyRing
	}
	if n&(n-1) != 0 {
		return Tree{}, ErrNotPowerOfTwo
	}
	if witnessIndex < 0 || witnessIndex >= n {
		return Tree{}, ErrWitnessIndexRange
	}

	depth := 0
	for 1<<depth < n {
		depth++
	}

	return Tree{
		Protocol:  buildProtocol(depth),
		Statement: buildStatement(leaves),
		Witness:   buildWitness(witnessIndex, n, witness),
		Depth:     depth,
	}, nil
}

func buildProtocol(depth int) sigma.Protocol {
	var p sigma.Protocol = schnorr.Leaf{}
	for range depth {
		p = stack.Node{Inner: p}
	}
	return p
}

func buildStatement(leaves []*ristretto255.Element) any {
	if len(leaves) == 1 {
		return leaves[0]
	}
	half := len(leaves) / 2
	return stack.Statement{
		Left:  buildStatement(leaves[:half]),
		Right: buildStatement(leaves[half:]),
	}
}

func buildWitness(index, n int, witness *ristretto255.Scalar) any {
	if n == 1 {
		return witness
	}
	half := n / 2
	if index < half {
		return stack.Witness{Inner: buildWitness(index, half, witness), Side: stack.Left}
	}
	return stack.Witness{Inner: buildWitness(index-half, half, witness), Side: stack.Right}
}
