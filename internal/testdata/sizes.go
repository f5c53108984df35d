package testdata

// Depth is a named ring depth used by benchmarks and the signature-size property tests: a ring of 2^N members
// produces a signature of 64*(N+1) bytes, per spec.md §6.
type Depth struct {
	Name string
	N    int
}

// Depths enumerates the ring depths exercised by this module's size-property tests and benchmarks, matching the
// benchmark ladder in original_source/src/lib.rs (bench_sig2 .. bench_sig2048).
var Depths = []Depth{
	{"2", 1},
	{"4", 2},
	{"8", 3},
	{"16", 4},
	{"32", 5},
	{"64", 6},
	{"128", 7},
	{"256", 8},
	{"512", 9},
	{"1024", 10},
	{"2048", 11},
}
