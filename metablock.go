package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Meta-block assembly (Section 4.7): ties block splitting, clustering,
   context mapping and prefix-code construction together into the
   compressed representation of one meta-block's command list. */

// blockTypeCursor is a non-emitting readalike of blockEncoder's block
// bookkeeping, used while building histograms (a pass that needs to know
// which block type each position falls under, but writes no bits).
type blockTypeCursor struct {
	split    blockSplit
	blockIx  int
	blockLen uint
}

func newBlockTypeCursor(split blockSplit) *blockTypeCursor {
	c := &blockTypeCursor{split: split}
	if split.numBlocks > 0 {
		c.blockLen = uint(split.lengths[0])
	}
	return c
}

func (c *blockTypeCursor) advance() byte {
	if c.blockLen == 0 {
		c.blockIx++
		c.blockLen = uint(c.split.lengths[c.blockIx])
	}
	c.blockLen--
	return c.split.types[c.blockIx]
}

// storeMetaBlock writes one complete compressed meta-block: header, block
// splits, context maps, entropy codes and finally the command/literal/
// distance data itself, in the fixed order the format requires. It always
// writes ISLAST=0 — this encoder never marks a data-carrying meta-block as
// the stream's last; the stream driver terminates with a trailing
// zero-length meta-block instead (finishStream).
//
// literal context ids are derived from the two bytes immediately preceding
// each literal in the actual output stream (encode.cc:740-741), which for
// any position beyond the meta-block's first two bytes may fall in a prior
// meta-block or in bytes a copy command reproduced rather than inserted
// directly. rb and startPos give storeMetaBlock the same view of that
// stream the decoder has: rb already holds every byte up to and including
// this meta-block's, addressable by the absolute position pos tracks as it
// walks the command list.
func storeMetaBlock(bw *bitWriter, rb *ringBuffer, startPos uint64, literals []byte, cmds []command, ndirect, npostfix, distAlphabetSize uint32) {
	var metaBlockLength uint64
	for _, c := range cmds {
		metaBlockLength += uint64(c.insertLength) + uint64(c.copyLength)
	}
	endPos := startPos + metaBlockLength

	literalCosts := estimateLiteralCosts(literals)
	literalSplit := splitBlock(literalCosts, 128)

	// Commands and distances are not split into multiple block types by
	// this encoder; they still flow through the same context-mapped
	// machinery as literals; a single block just means a single active
	// type for the whole meta-block.
	commandSplit := blockSplit{numTypes: 1, types: []byte{0}, lengths: []uint32{uint32(len(cmds))}, numBlocks: 1}
	distanceSplit := blockSplit{numTypes: 1, types: []byte{0}, lengths: []uint32{uint32(len(cmds))}, numBlocks: 1}

	literalRaw := make([]*histogram, literalSplit.numTypes<<literalContextBits)
	for i := range literalRaw {
		literalRaw[i] = newHistogram(numLiteralSymbols)
	}
	distanceRaw := make([]*histogram, 1<<distanceContextBits)
	for i := range distanceRaw {
		distanceRaw[i] = newHistogram(int(distAlphabetSize))
	}
	commandHist := newHistogram(numCommandSymbols)

	litCursor := newBlockTypeCursor(literalSplit)
	litPos := 0
	pos := startPos
	for _, c := range cmds {
		commandHist.add(uint32(c.commandPrefix))
		for j := uint32(0); j < c.insertLength; j++ {
			lit := literals[litPos]
			litPos++
			blockType := litCursor.advance()
			prev1 := rb.byteOrZero(pos-1, pos >= 1)
			prev2 := rb.byteOrZero(pos-2, pos >= 2)
			ctx := literalContext(prev1, prev2)
			literalRaw[uint32(blockType)<<literalContextBits|ctx].add(uint32(lit))
			pos++
		}
		if pos < endPos && c.commandPrefix >= 128 {
			dctx := distanceContext(c.copyLengthCode)
			distanceRaw[dctx].add(uint32(c.distancePrefix))
		}
		pos += uint64(c.copyLength)
	}

	literalClusters, literalAssignment := clusterHistograms(literalRaw, maxHistogramsPerStream)
	distanceClusters, distanceAssignment := clusterHistograms(distanceRaw, maxHistogramsPerStream)

	storeCompressedMetaBlockHeader(bw, metaBlockLength)

	literalEnc := newBlockEncoder(numLiteralSymbols, literalSplit)
	literalEnc.code = buildAndStoreBlockSplitCode(bw, literalSplit)
	commandEnc := newBlockEncoder(numCommandSymbols, commandSplit)
	commandEnc.code = buildAndStoreBlockSplitCode(bw, commandSplit)
	distanceEnc := newBlockEncoder(uint(distAlphabetSize), distanceSplit)
	distanceEnc.code = buildAndStoreBlockSplitCode(bw, distanceSplit)

	bw.writeBits(2, uint64(npostfix))
	bw.writeBits(4, uint64(ndirect)>>npostfix)
	for i := uint(0); i < literalSplit.numTypes; i++ {
		bw.writeBits(2, literalContextModeSigned)
	}

	encodeContextMap(bw, literalAssignment, uint(len(literalClusters)))
	encodeContextMap(bw, distanceAssignment, uint(len(distanceClusters)))

	literalEnc.buildAndStoreEntropyCodes(bw, literalClusters, numLiteralSymbols)
	commandEnc.buildAndStoreEntropyCodes(bw, []*histogram{commandHist}, numCommandSymbols)
	distanceEnc.buildAndStoreEntropyCodes(bw, distanceClusters, uint(distAlphabetSize))

	litPos = 0
	pos = startPos
	for _, c := range cmds {
		commandEnc.storeSymbol(bw, uint(c.commandPrefix))
		c.writeExtra(bw)
		for j := uint32(0); j < c.insertLength; j++ {
			lit := literals[litPos]
			litPos++
			prev1 := rb.byteOrZero(pos-1, pos >= 1)
			prev2 := rb.byteOrZero(pos-2, pos >= 2)
			ctx := literalContext(prev1, prev2)
			literalEnc.storeSymbolWithContext(bw, uint(lit), uint(ctx), literalAssignment, literalContextBits)
			pos++
		}
		if pos < endPos && c.commandPrefix >= 128 {
			dctx := distanceContext(c.copyLengthCode)
			distanceEnc.storeSymbolWithContext(bw, uint(c.distancePrefix), uint(dctx), distanceAssignment, distanceContextBits)
			bw.writeBits(uint(c.distanceExtraBits), uint64(c.distanceExtraBitsValue))
		}
		pos += uint64(c.copyLength)
	}
}

// storeCompressedMetaBlockHeader writes the ISLAST=0 bit and the
// meta-block's length in the variable-nibble MLEN encoding (Section 4.1),
// followed by the ISUNCOMPRESSED=0 bit (this encoder never emits the
// uncompressed meta-block form).
func storeCompressedMetaBlockHeader(bw *bitWriter, length uint64) {
	bw.writeSingleBit(false) // ISLAST
	nbits, bits := encodeMlen(length)
	bw.writeBits(2, uint64(nbits/4)-4)
	bw.writeBits(uint(nbits), bits)
	bw.writeSingleBit(false) // ISUNCOMPRESSED
}

// finishStream terminates the stream with a zero-length last meta-block:
// ISLAST=1 followed by ISLASTEMPTY=1, then pads to a byte boundary. No
// meta-block written by storeMetaBlock is ever marked ISLAST itself.
func finishStream(bw *bitWriter) {
	bw.writeSingleBit(true)
	bw.writeSingleBit(true)
	bw.jumpToByteBoundary()
}

// encodeMlen packs length-1 into the smallest multiple-of-4 bit width the
// format allows (Section 4.1, "MLEN nibble count"), returning that width
// and the value to write in it.
func encodeMlen(length uint64) (nbits uint, bits uint64) {
	lg := uint(1)
	if length != 1 {
		lg = uint(log2FloorNonZero(uint(length-1))) + 1
	}
	nibbles := uint(4)
	if lg >= 16 {
		nibbles = (lg + 3) / 4
	}
	return nibbles * 4, length - 1
}
