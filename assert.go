package brotli

// assert panics if cond is false. It guards invariants that the encoder's
// own call graph is responsible for upholding (e.g. a Huffman alphabet
// never exceeding its maximum depth) rather than anything derived from
// caller input; tripping one is an internalInvariantViolation bug in this
// package, not a reportable input error.
func assert(cond bool) {
	if !cond {
		panic("brotli: internal invariant violation")
	}
}
