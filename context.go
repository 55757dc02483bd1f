package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Context ID computation for literals (Section 7.1). This encoder always
   runs in the "signed" context mode: each of the two preceding bytes is
   bucketed into a signed-magnitude-like 3-bit class (values near 0x00 and
   near 0xff, the common padding/sign-extension neighborhoods of small
   signed integers, get their own narrow buckets; everything else falls
   into progressively wider buckets moving away from both ends), and the
   two 3-bit classes are concatenated into the 6-bit context id. */

// kSigned3BitContextLookup buckets a single byte for the signed literal
// context mode: the standard table every conformant Brotli decoder uses to
// recompute a literal's context from the two preceding output bytes. This
// encoder and the decoder it targets must agree on it bit for bit; it is
// not a value this encoder is free to choose (Section 7.1).
var kSigned3BitContextLookup = [256]byte{
	0, 0, 1, 2, 2, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 7,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4,
}

// literalContext returns the 6-bit context id for a literal following
// prev1 (the immediately preceding byte) and prev2 (the byte before that).
func literalContext(prev1, prev2 byte) uint32 {
	return uint32(kSigned3BitContextLookup[prev1])<<3 | uint32(kSigned3BitContextLookup[prev2])
}

// distanceContext maps a command's copy length to one of the small number
// of distance-context buckets used to select a distance histogram
// (Section 7.2): short copies get their own context, since they're
// disproportionately likely to reuse a recently seen distance.
func distanceContext(copyLength uint32) uint32 {
	if copyLength < 5 {
		return copyLength - 2
	}
	return 3
}
