package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Block splitting of literal, command and distance streams into typed runs
   (Section 4.5). */

// blockSplit records, for one of the three per-command streams, which of
// its block types is active over which run of symbols: types[i] is active
// for lengths[i] consecutive symbols, in order.
type blockSplit struct {
	numTypes  uint
	types     []byte
	lengths   []uint32
	numBlocks uint
}

// splitBlock partitions costs (one entropy-cost estimate per symbol, in
// the same units estimateLiteralCosts produces) into typed runs. This is a
// simplified stand-in for the encoder's iterative block-splitter: instead
// of repeatedly re-clustering candidate boundaries against a growing set
// of block-type histograms, it does a single greedy left-to-right sweep,
// starting a new block each time the trailing window's average cost
// drifts far enough from the block's running average to be worth the
// switch overhead. It is intentionally conservative — favoring few, long
// blocks over marginal entropy gains — since additional block types cost
// both a block-switch command and a distinct histogram in the output.
func splitBlock(costs []float32, minBlockLen int) blockSplit {
	n := len(costs)
	if n == 0 {
		return blockSplit{numTypes: 1, types: []byte{0}, lengths: []uint32{0}, numBlocks: 1}
	}

	const switchThreshold = 1.2
	var types []byte
	var lengths []uint32

	blockStart := 0
	var runSum float64
	runLen := 0
	windowSum := float32(0)
	windowLen := 0
	const windowSize = 64

	flush := func(end int) {
		types = append(types, 0) // resolved to a real type id below
		lengths = append(lengths, uint32(end-blockStart))
		blockStart = end
		runSum, runLen = 0, 0
	}

	for i, c := range costs {
		runSum += float64(c)
		runLen++
		windowSum += c
		windowLen++
		if windowLen > windowSize {
			windowSum -= costs[i-windowSize]
			windowLen--
		}
		if runLen < minBlockLen || i-blockStart+1 < minBlockLen {
			continue
		}
		avg := runSum / float64(runLen)
		winAvg := float64(windowSum) / float64(windowLen)
		if winAvg > avg*switchThreshold || winAvg*switchThreshold < avg {
			if i+1-blockStart >= minBlockLen && n-(i+1) >= minBlockLen {
				flush(i + 1)
			}
		}
	}
	flush(n)

	// Cluster the runs' average costs into at most maxHistogramsPerStream
	// distinct block types via nearest-neighbor assignment, so nearly
	// identical runs (e.g. two long stretches of similar text) share one
	// histogram instead of paying for a separate one each.
	assignBlockTypes(costs, types, lengths)

	numTypes := uint(0)
	for _, t := range types {
		if uint(t)+1 > numTypes {
			numTypes = uint(t) + 1
		}
	}
	return blockSplit{numTypes: numTypes, types: types, lengths: lengths, numBlocks: uint(len(types))}
}

// assignBlockTypes fills in types (currently all zero from splitBlock) by
// greedily merging each run into whichever existing type's mean cost it's
// closest to, opening a new type only when no existing one is within
// mergeTolerance of the run's own mean. It caps the number of distinct
// types at maxHistogramsPerStream by falling back to the closest type
// regardless of distance once that many are open.
func assignBlockTypes(costs []float32, types []byte, lengths []uint32) {
	const mergeTolerance = 0.15
	var typeMeans []float64
	pos := 0
	for i, length := range lengths {
		var sum float64
		for j := 0; j < int(length); j++ {
			sum += float64(costs[pos+j])
		}
		pos += int(length)
		mean := sum / float64(length)

		best := -1
		bestDist := 0.0
		for t, m := range typeMeans {
			d := m - mean
			if d < 0 {
				d = -d
			}
			if best == -1 || d < bestDist {
				best, bestDist = t, d
			}
		}
		if best == -1 || (bestDist > mergeTolerance*mean && len(typeMeans) < maxHistogramsPerStream) {
			typeMeans = append(typeMeans, mean)
			best = len(typeMeans) - 1
		}
		types[i] = byte(best)
	}
}

// blockTypeCodeCalculator turns a stream of block-type ids into the
// smaller "type code" alphabet the format actually transmits: 0 means "the
// type two blocks back" and 1 means "the type one block back plus one",
// with anything else (including a repeat of the previous type, which
// assignBlockTypes can produce for two adjacent runs) transmitted as
// typeID+2 (Section 4.5, "Block-type codes").
type blockTypeCodeCalculator struct {
	lastType       uint
	secondLastType uint
}

func newBlockTypeCodeCalculator() blockTypeCodeCalculator {
	return blockTypeCodeCalculator{lastType: 1, secondLastType: 0}
}

func (c *blockTypeCodeCalculator) next(t byte) uint {
	var code uint
	switch {
	case uint(t) == c.lastType+1:
		code = 1
	case uint(t) == c.secondLastType:
		code = 0
	default:
		code = uint(t) + 2
	}
	c.secondLastType = c.lastType
	c.lastType = uint(t)
	return code
}

// blockSplitCode is the pair of entropy codes (over the type-code alphabet
// and the block-length alphabet) needed to decode a stream's sequence of
// block-switch commands, plus the running state for encoding type codes.
type blockSplitCode struct {
	calc          blockTypeCodeCalculator
	typeDepths    []byte
	typeBits      []uint16
	lengthDepths  []byte
	lengthBits    []uint16
}

// storeBlockSwitch writes one block-switch command: the (possibly omitted,
// for the very first block) type code followed by the block's length.
func storeBlockSwitch(bw *bitWriter, code *blockSplitCode, blockLen uint32, blockType byte, isFirstBlock bool) {
	typeCode := code.calc.next(blockType)
	if !isFirstBlock {
		bw.writeBits(uint(code.typeDepths[typeCode]), uint64(code.typeBits[typeCode]))
	}
	encodeBlockLength(bw, code.lengthDepths, code.lengthBits, blockLen)
}

// buildAndStoreBlockSplitCode builds the two entropy codes a blockSplit
// needs and emits them, followed by the very first block-switch command
// (Section 4.5). Subsequent switches are emitted inline by blockEncoder as
// the command stream is walked.
func buildAndStoreBlockSplitCode(bw *bitWriter, bs blockSplit) *blockSplitCode {
	code := &blockSplitCode{calc: newBlockTypeCodeCalculator()}
	writeVarLenUint8(bw, uint32(bs.numTypes-1))
	if bs.numTypes <= 1 {
		return code
	}

	assert(bs.numTypes+2 <= maxBlockTypeSymbols)
	typeHisto := newHistogram(int(bs.numTypes + 2))
	lengthHisto := newHistogram(numBlockLenSymbols)
	calc := newBlockTypeCodeCalculator()
	for i, t := range bs.types {
		tc := calc.next(t)
		if i != 0 {
			typeHisto.add(uint32(tc))
		}
		lengthHisto.add(blockLengthPrefixCode(bs.lengths[i]))
	}

	typeEC := buildEntropyCode(typeHisto)
	storeHuffmanTree(bw, uint(len(typeHisto.counts)), typeEC)
	lengthEC := buildEntropyCode(lengthHisto)
	storeHuffmanTree(bw, numBlockLenSymbols, lengthEC)
	code.typeDepths, code.typeBits = typeEC.depth, typeEC.bits
	code.lengthDepths, code.lengthBits = lengthEC.depth, lengthEC.bits

	storeBlockSwitch(bw, code, bs.lengths[0], bs.types[0], true)
	return code
}

// blockEncoder drives one of the three per-command streams (literal,
// command, distance) through a fixed block split and per-block-type
// entropy codes, emitting block-switch commands at block boundaries as it
// goes (Section 4.5's BlockEncoder collaborator).
type blockEncoder struct {
	histogramLength uint
	split           blockSplit
	code            *blockSplitCode
	blockIx         int
	blockLen        uint
	entropyIx       uint
	depths          []byte
	bits            []uint16
}

// newBlockEncoder starts positioned on block 0, whose type is always 0 by
// construction (splitBlock/assignBlockTypes assigns type ids in order of
// first appearance, so the first run is always type 0); entropyIx can
// therefore start at 0 without waiting for the first advanceBlock call.
func newBlockEncoder(histogramLength uint, split blockSplit) *blockEncoder {
	be := &blockEncoder{histogramLength: histogramLength, split: split, blockIx: 0}
	if split.numBlocks > 0 {
		be.blockLen = uint(split.lengths[0])
	}
	return be
}

func (be *blockEncoder) buildAndStoreEntropyCodes(bw *bitWriter, histograms []*histogram, alphabetSize uint) {
	tableSize := uint(len(histograms)) * be.histogramLength
	be.depths = make([]byte, tableSize)
	be.bits = make([]uint16, tableSize)
	for i, h := range histograms {
		ix := uint(i) * be.histogramLength
		ec := buildEntropyCode(h)
		storeHuffmanTree(bw, alphabetSize, ec)
		copy(be.depths[ix:ix+be.histogramLength], ec.depth)
		copy(be.bits[ix:ix+be.histogramLength], ec.bits)
	}
}

// advanceBlock moves to the next block if the current one is exhausted,
// emitting the block-switch command; it returns the offset into depths/bits
// (block type times histogramLength) of the code the next symbol should be
// coded against.
func (be *blockEncoder) advanceBlock(bw *bitWriter) uint {
	if be.blockLen == 0 {
		be.blockIx++
		blockLen := be.split.lengths[be.blockIx]
		blockType := be.split.types[be.blockIx]
		be.blockLen = uint(blockLen)
		be.entropyIx = uint(blockType) * be.histogramLength
		storeBlockSwitch(bw, be.code, blockLen, blockType, false)
	}
	be.blockLen--
	return be.entropyIx
}

func (be *blockEncoder) storeSymbol(bw *bitWriter, symbol uint) {
	entropyIx := be.advanceBlock(bw)
	ix := entropyIx + symbol
	bw.writeBits(uint(be.depths[ix]), uint64(be.bits[ix]))
}

// storeSymbolWithContext is storeSymbol for a stream whose histogram
// selection also depends on a context id (literals and distances): the
// block-type-scaled entropy index from advanceBlock addresses into
// contextMap, which names the actual histogram to use.
func (be *blockEncoder) storeSymbolWithContext(bw *bitWriter, symbol, context uint, contextMap []uint32, contextBits uint) {
	blockEntropyIx := be.advanceBlockRaw(bw, contextBits)
	histoIx := uint(contextMap[blockEntropyIx+context])
	ix := histoIx*be.histogramLength + symbol
	bw.writeBits(uint(be.depths[ix]), uint64(be.bits[ix]))
}

// advanceBlockRaw is advanceBlock but scaled by 1<<contextBits instead of
// histogramLength, since a context-mapped stream's entropyIx addresses
// contextMap (one entry per context per block type), not the histogram
// table directly.
func (be *blockEncoder) advanceBlockRaw(bw *bitWriter, contextBits uint) uint {
	if be.blockLen == 0 {
		be.blockIx++
		blockLen := be.split.lengths[be.blockIx]
		blockType := be.split.types[be.blockIx]
		be.blockLen = uint(blockLen)
		be.entropyIx = uint(blockType) << contextBits
		storeBlockSwitch(bw, be.code, blockLen, blockType, false)
	}
	be.blockLen--
	return be.entropyIx
}
