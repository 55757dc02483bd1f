package brotli

/* Copyright 2016 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Specification: 7.3. Encoding of the context map */
const contextMapMaxRle = 16

/* Specification: 2. Compressed representation overview */
const maxNumberOfBlockTypes = 256

/* Specification: 3.3. Alphabet sizes: insert-and-copy length */
const numLiteralSymbols = 256

const numCommandSymbols = 704

const numBlockLenSymbols = 26

const maxContextMapSymbols = maxNumberOfBlockTypes + contextMapMaxRle

const maxBlockTypeSymbols = maxNumberOfBlockTypes + 2

/* Specification: 3.5. Complex prefix codes */
const repeatPreviousCodeLength = 16

const repeatZeroCodeLength = 17

const codeLengthCodes = repeatZeroCodeLength + 1

/* "code length of 8 is repeated" */
const initialRepeatedCodeLength = 8

/* Specification: 4. Encoding of distances */
const numDistanceShortCodes = 16

const maxNpostfix = 3

const maxNdirect = 120

const maxDistanceBits = 24

func distanceAlphabetSize(npostfix, ndirect, maxNBits uint) uint {
	return numDistanceShortCodes + ndirect + maxNBits<<(npostfix+1)
}

const maxDistance = 0x3FFFFFC

/* 7.1. Context modes and context ID lookup for literals */
/* "context IDs for literals are in the range of 0..63" */
const literalContextBits = 6

/* 7.2. Context ID for distances */
const distanceContextBits = 2

/* 9.1. Format of the Stream Header. Number of slack bytes for window size. */
const windowGap = 16

func maxBackwardLimit(windowBits uint) uint {
	return (uint(1) << windowBits) - windowGap
}

const minWindowBits = 10

const maxWindowBits = 24

// validWindowBits reports whether windowBits is one this encoder's
// WriteStreamHeader can actually encode: the single-bit shortcut for 16, or
// the 1+3 bit form for 18..24. 17 and values below 16 have no representation
// in the stream header (Section 9.1) that this encoder implements, so they
// are rejected even though they fall inside [minWindowBits, maxWindowBits].
func validWindowBits(windowBits uint) bool {
	if windowBits < minWindowBits || windowBits > maxWindowBits {
		return false
	}
	return windowBits == 16 || (windowBits >= 18 && windowBits <= maxWindowBits)
}

// Fixed encoder configuration (Section 6, "Fixed constants used by this
// encoder"). This encoder does not expose a quality/window-size dial; it
// always targets these values.
const (
	// windowBits is the base-2 logarithm of the sliding window size.
	windowBits = 22

	// metaBlockBits bounds the number of input bytes folded into a single
	// meta-block: 1<<metaBlockBits = 2 MiB.
	metaBlockBits = 21

	// ringBufferBits is the base-2 logarithm of the size of the
	// compressor's circular input buffer.
	ringBufferBits = 23

	// fixedNumDirectDistanceCodes and fixedDistancePostfixBits parameterize
	// the distance code alphabet used for every meta-block this encoder
	// produces.
	fixedNumDirectDistanceCodes = 12
	fixedDistancePostfixBits    = 1

	// maxHistogramsPerStream caps the number of clusters kept per stream;
	// 16 IDs are reserved for context-map run-length symbols.
	maxHistogramsPerStream = 240
)

// initialDistanceRing is the encoder's start-of-stream distance cache.
var initialDistanceRing = [4]uint32{4, 11, 15, 16}

// literalContextModeSigned selects the "signed" literal context function
// (Section 7.1) that context.go's literalContext implements; this is the
// only literal context mode this encoder ever transmits.
const literalContextModeSigned = 3
