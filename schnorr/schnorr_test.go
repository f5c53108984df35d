package schnorr_test

import (
	"testing"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/internal/testdata"
	"github.com/ringsig/stackring/schnorr"
)

func scalarFromUint64(v uint64) *ristretto255.Scalar {
	var b [64]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	s, err := ristretto255.NewScalar().SetUniformBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// TestScenarioS1 is spec.md §8 scenario S1: witness x=7, challenge c=3, state k=5 ⇒ Z=26, and A must equal
// compress(5*G).
func TestScenarioS1(t *testing.T) {
	x := scalarFromUint64(7)
	c := scalarFromUint64(3)
	k := scalarFromUint64(5)

	statement := ristretto255.NewIdentityElement().ScalarBaseMult(x)

	pre, z := schnorr.Leaf{}.SigmaZ(statement, x, k, c)
	zMsg := z.(schnorr.MessageZ)

	want := scalarFromUint64(26)
	if zMsg.Z.Equal(want) != 1 {
		t.Fatalf("Z = %x, want %x", zMsg.Z.Bytes(), want.Bytes())
	}

	a := schnorr.Leaf{}.EHVZK(pre, statement, c, z)
	wantA := ristretto255.NewIdentityElement().ScalarBaseMult(k)
	var wantMsg schnorr.MessageA
	copy(wantMsg[:], wantA.Bytes())
	if a.(schnorr.MessageA) != wantMsg {
		t.Fatalf("EHVZK = %x, want compress(5*G) = %x", a, wantMsg)
	}
}

// TestProverSimulatorConsistency is spec.md §8 invariant 4 at depth 0: re-running EHVZK on the (precompute, Z)
// produced by SigmaZ must reproduce the A emitted by SigmaA.
func TestProverSimulatorConsistency(t *testing.T) {
	drbg := testdata.New("schnorr prover-simulator consistency")
	witness, statement := drbg.KeyPair()
	leaf := schnorr.Leaf{}

	state, a, err := leaf.SigmaA(drbg.Reader(), witness)
	if err != nil {
		t.Fatal(err)
	}

	c := scalarFromUint64(42)
	pre, z := leaf.SigmaZ(statement, witness, state, c)

	gotA := leaf.EHVZK(pre, statement, c, z)
	if gotA.(schnorr.MessageA) != a.(schnorr.MessageA) {
		t.Fatalf("EHVZK(SigmaZ(...)) = %x, want %x", gotA, a)
	}
}
