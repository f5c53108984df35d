// Package ring is the signer-facing convenience layer: given a flat list of ring member public keys, the index and
// private key of the one the caller controls, and a message, it builds the balanced statement tree (package
// ringtree), signs it via the Fiat–Shamir transform (package fiatshamir), and serializes the result to the wire
// format of spec.md §6.
//
// original_source/src/main.rs and lib.rs perform these same three steps inline at every call site, via the compile!
// / compilen! macros followed by a SignatureScheme::sign call; this package is that call sequence given a name and a
// single entry point, the way a production repository would expose it rather than asking every caller to re-derive
// the macro expansion.
package ring

import (
	"bytes"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/fiatshamir"
	"github.com/ringsig/stackring/ringtree"
)

// Signature is a ring signature over a balanced tree of 2^Depth members: a first message and a third message, whose
// combined wire size is exactly 64*(Depth+1) bytes (spec.md §6).
type Signature struct {
	proof fiatshamir.Signature
	depth int
}

// Depth is the number of stacking levels (log2 of the ring size) this signature was produced over.
func (s Signature) Depth() int { return s.depth }

// Size returns the signature's encoded length in bytes: 64*(Depth+1).
func (s Signature) Size() int { return 64 * (s.depth + 1) }

// Encode serializes the signature to its wire format: the first message followed by the third message, per
// spec.md §6.
func (s Signature) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.proof.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sign builds a balanced tree over members, proves knowledge of the discrete log of members[signerIndex] (which must
// equal signerKey*G), and signs msg with the result.
//
// len(members) must be a power of two and signerIndex must be in range; see package ringtree for the exact
// validation performed.
func Sign(rand io.Reader, members []*ristretto255.Element, signerIndex int, signerKey *ristretto255.Scalar, msg []byte) (Signature, error) {
	tree, err := ringtree.Build(members, signerIndex, signerKey)
	if err != nil {
		return Signature{}, err
	}

	proof, err := fiatshamir.Sign(rand, tree.Protocol, tree.Witness, tree.Statement, msg)
	if err != nil {
		return Signature{}, err
	}

	return Signature{proof: proof, depth: tree.Depth}, nil
}
