package ringtree_test

import (
	"testing"

	"github.com/gtank/ristretto255"

	"github.com/ringsig/stackring/internal/testdata"
	"github.com/ringsig/stackring/ringtree"
	"github.com/ringsig/stackring/schnorr"
	"github.com/ringsig/stackring/stack"
)

func makeLeaves(drbg *testdata.DRBG, n int) ([]*ristretto255.Scalar, []*ristretto255.Element) {
	sks := make([]*ristretto255.Scalar, n)
	pks := make([]*ristretto255.Element, n)
	for i := range n {
		sks[i], pks[i] = drbg.KeyPair()
	}
	return sks, pks
}

func TestBuildRejectsEmptyRing(t *testing.T) {
	drbg := testdata.New("ringtree empty")
	_, pks := makeLeaves(drbg, 0)
	x, _ := drbg.KeyPair()
	if _, err := ringtree.Build(pks, 0, x); err != ringtree.ErrEmptyRing {
		t.Fatalf("Build(empty) = %v, want ErrEmptyRing", err)
	}
}

func TestBuildRejectsNonPowerOfTwo(t *testing.T) {
	drbg := testdata.New("ringtree non-pow2")
	_, pks := makeLeaves(drbg, 3)
	x, _ := drbg.KeyPair()
	if _, err := ringtree.Build(pks, 0, x); err != ringtree.ErrNotPowerOfTwo {
		t.Fatalf("Build(3 leaves) = %v, want ErrNotPowerOfTwo", err)
	}
}

func TestBuildRejectsWitnessIndexOutOfRange(t *testing.T) {
	drbg := testdata.New("ringtree oob index")
	_, pks := makeLeaves(drbg, 4)
	x, _ := drbg.KeyPair()
	for _, idx := range []int{-1, 4, 100} {
		if _, err := ringtree.Build(pks, idx, x); err != ringtree.ErrWitnessIndexRange {
			t.Fatalf("Build(index=%d) = %v, want ErrWitnessIndexRange", idx, err)
		}
	}
}

func TestBuildDepthAndShapeForFour(t *testing.T) {
	drbg := testdata.New("ringtree shape 4")
	sks, pks := makeLeaves(drbg, 4)

	tree, err := ringtree.Build(pks, 2, sks[2])
	if err != nil {
		t.Fatal(err)
	}
	if tree.Depth != 2 {
		t.Fatalf("Depth = %d, want 2", tree.Depth)
	}

	outer, ok := tree.Protocol.(stack.Node)
	if !ok {
		t.Fatalf("Protocol = %T, want stack.Node", tree.Protocol)
	}
	if _, ok := outer.Inner.(stack.Node); !ok {
		t.Fatalf("Protocol.Inner = %T, want stack.Node", outer.Inner)
	}

	stmt, ok := tree.Statement.(stack.Statement)
	if !ok {
		t.Fatalf("Statement = %T, want stack.Statement", tree.Statement)
	}
	leftPair, ok := stmt.Left.(stack.Statement)
	if !ok {
		t.Fatalf("Statement.Left = %T, want stack.Statement", stmt.Left)
	}
	if leftPair.Left != pks[0] || leftPair.Right != pks[1] {
		t.Fatal("left subtree does not hold leaves 0 and 1 in order")
	}
	rightPair, ok := stmt.Right.(stack.Statement)
	if !ok {
		t.Fatalf("Statement.Right = %T, want stack.Statement", stmt.Right)
	}
	if rightPair.Left != pks[2] || rightPair.Right != pks[3] {
		t.Fatal("right subtree does not hold leaves 2 and 3 in order")
	}

	// Witness index 2 lives in the right subtree's left slot.
	w, ok := tree.Witness.(stack.Witness)
	if !ok {
		t.Fatalf("Witness = %T, want stack.Witness", tree.Witness)
	}
	if w.Side != stack.Right {
		t.Fatalf("outer Side = %v, want Right", w.Side)
	}
	inner, ok := w.Inner.(stack.Witness)
	if !ok {
		t.Fatalf("Witness.Inner = %T, want stack.Witness", w.Inner)
	}
	if inner.Side != stack.Left {
		t.Fatalf("inner Side = %v, want Left", inner.Side)
	}
	if inner.Inner.(*ristretto255.Scalar).Equal(sks[2]) != 1 {
		t.Fatal("leaf witness scalar does not match sks[2]")
	}
}

func TestBuildSingleMemberRing(t *testing.T) {
	drbg := testdata.New("ringtree single")
	sks, pks := makeLeaves(drbg, 1)

	tree, err := ringtree.Build(pks, 0, sks[0])
	if err != nil {
		t.Fatal(err)
	}
	if tree.Depth != 0 {
		t.Fatalf("Depth = %d, want 0", tree.Depth)
	}
	if _, ok := tree.Protocol.(schnorr.Leaf); !ok {
		t.Fatalf("Protocol = %T, want schnorr.Leaf", tree.Protocol)
	}
	if tree.Statement.(*ristretto255.Element) != pks[0] {
		t.Fatal("Statement does not match the single leaf")
	}
	if tree.Witness.(*ristretto255.Scalar) != sks[0] {
		t.Fatal("Witness does not match the single secret key")
	}
}

func TestBuildEveryWitnessIndexForEight(t *testing.T) {
	drbg := testdata.New("ringtree every index")
	sks, pks := makeLeaves(drbg, 8)

	for i := range 8 {
		tree, err := ringtree.Build(pks, i, sks[i])
		if err != nil {
			t.Fatalf("index %d: %v", i, err)
		}
		if tree.Depth != 3 {
			t.Fatalf("index %d: Depth = %d, want 3", i, tree.Depth)
		}
	}
}
