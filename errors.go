package brotli

import "errors"

// Error kinds this encoder can report (Section 7). Configuration mistakes
// are surfaced at construction time; anything discovered mid-encode that
// the source treats as a programmer error is instead an assert.
var (
	// ErrInvalidWindowBits is returned by NewCompressor when windowBits is
	// not a value the stream header can encode (validWindowBits: 16, or
	// 18..24).
	ErrInvalidWindowBits = errors.New("brotli: window_bits out of range")

	// ErrInvalidDistanceParams is returned by NewCompressor when ndirect is
	// not a multiple of 1<<npostfix, or npostfix exceeds maxNpostfix.
	ErrInvalidDistanceParams = errors.New("brotli: invalid direct/postfix distance parameters")
)
