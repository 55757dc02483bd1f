package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Encoding of a distance_code into a distance prefix symbol plus its extra
   bits (Section 4.3, "Distance short codes"). distanceCode here is already
   the intermediate code computeDistanceShortCodes produces: either a short
   code in [1, numDistanceShortCodes], a direct code, or
   literalDistance+numDistanceShortCodes. */

// prefixEncodeCopyDistance factors distanceCode into a prefix symbol and,
// for anything past the short codes and direct codes, a run of extra bits
// recovering the low-order part of the distance the symbol's bucket
// doesn't distinguish.
func prefixEncodeCopyDistance(distanceCode, ndirect, npostfix uint32, code *uint16, extraBits, extraBitsValue *uint32) {
	if distanceCode < numDistanceShortCodes+ndirect {
		*code = uint16(distanceCode)
		*extraBits = 0
		*extraBitsValue = 0
		return
	}
	dist := (uint32(1) << (npostfix + 2)) + (distanceCode - numDistanceShortCodes - ndirect)
	bucket := log2FloorNonZero(uint(dist)) - 1
	postfixMask := (uint32(1) << npostfix) - 1
	postfix := dist & postfixMask
	prefix := (dist >> bucket) & 1
	offset := (2 + prefix) << bucket
	nbits := bucket - npostfix
	*code = uint16(numDistanceShortCodes + ndirect + ((2*(nbits-1)+prefix)<<npostfix) + postfix)
	*extraBits = nbits
	*extraBitsValue = (dist - offset) >> npostfix
}

// blockLengthPrefixRange is one bucket of the block-length prefix code:
// lengths >= offset (and below the next bucket's offset) are coded as this
// symbol plus nbits extra bits giving the offset within the bucket.
type blockLengthPrefixRange struct {
	offset uint32
	nbits  uint32
}

var kBlockLengthPrefixCode = [numBlockLenSymbols]blockLengthPrefixRange{
	{1, 2}, {5, 2}, {9, 2}, {13, 2}, {17, 3}, {25, 3}, {33, 3}, {41, 3},
	{49, 4}, {65, 4}, {81, 4}, {97, 4}, {113, 5}, {145, 5}, {177, 5}, {209, 5},
	{241, 6}, {305, 6}, {369, 7}, {497, 8}, {753, 9}, {1265, 10}, {2289, 11},
	{4337, 12}, {8433, 13}, {16625, 24},
}

// blockLengthPrefixCode maps a block length to its bucket index in
// kBlockLengthPrefixCode (Section 4.5, "Block-length coding").
func blockLengthPrefixCode(length uint32) uint32 {
	var code uint32
	switch {
	case length >= 753:
		code = 20
	case length >= 177:
		code = 14
	case length >= 41:
		code = 7
	default:
		code = 0
	}
	for code < numBlockLenSymbols-1 && length >= kBlockLengthPrefixCode[code+1].offset {
		code++
	}
	return code
}

// encodeBlockLength writes length as a prefix-coded symbol, using depths
// and bits (an entropy code over the numBlockLenSymbols alphabet), followed
// by its raw extra bits. It returns the symbol written, for callers that
// need it to build the block-length histogram.
func encodeBlockLength(bw *bitWriter, depths []byte, bits []uint16, length uint32) uint32 {
	code := blockLengthPrefixCode(length)
	r := kBlockLengthPrefixCode[code]
	bw.writeBits(uint(depths[code]), uint64(bits[code]))
	bw.writeBits(uint(r.nbits), uint64(length-r.offset))
	return code
}
