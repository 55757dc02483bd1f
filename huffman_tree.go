package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Serialization of Huffman trees into the bit stream (Section 4.4). */

// kCodeLengthStorageOrder is the order in which code-length-of-code-lengths
// depths are transmitted, chosen so that a trailing run of zero depths
// (the common case, since most alphabets don't use every one of the 18
// code-length symbols) can be dropped from the tail of the stream.
var kCodeLengthStorageOrder = [codeLengthCodes]byte{1, 2, 3, 4, 0, 5, 17, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// kCodeLengthBitLengthSymbols/kCodeLengthBitLengthBitLengths are the fixed
// 2-4 bit code used to transmit each of the code-length alphabet's own
// depths (which never exceed 5, the depth limit storeComplexHuffmanTree
// builds that code with).
var kCodeLengthBitLengthSymbols = [6]byte{0, 7, 3, 2, 1, 15}
var kCodeLengthBitLengthBitLengths = [6]byte{2, 4, 3, 2, 2, 4}

// storeHuffmanTreeOfHuffmanTreeToBitMask writes the code-length-of-code-
// -lengths table: which of the 18 code-length symbols are used, and at
// what depth, using the fixed code above. numCodes counts how many of the
// 18 code-length symbols occur at all (0, 1, or >=2). Trailing zero depths
// are trimmed only when numCodes > 1; with a single code-length symbol all
// 18 depths are written, the lone symbol's depth being 1, and
// storeComplexHuffmanTree then writes that symbol with zero bits.
func storeHuffmanTreeOfHuffmanTreeToBitMask(bw *bitWriter, numCodes int, depth []byte) {
	codesToStore := uint(codeLengthCodes)
	skipSome := uint(0)
	if numCodes > 1 {
		for ; codesToStore > 0; codesToStore-- {
			if depth[kCodeLengthStorageOrder[codesToStore-1]] != 0 {
				break
			}
		}
	}
	if depth[kCodeLengthStorageOrder[0]] == 0 && depth[kCodeLengthStorageOrder[1]] == 0 {
		skipSome = 2
		if depth[kCodeLengthStorageOrder[2]] == 0 {
			skipSome = 3
		}
	}
	bw.writeBits(2, uint64(skipSome))
	for i := skipSome; i < codesToStore; i++ {
		l := depth[kCodeLengthStorageOrder[i]]
		bw.writeBits(uint(kCodeLengthBitLengthBitLengths[l]), uint64(kCodeLengthBitLengthSymbols[l]))
	}
}

// writeHuffmanTreeRepetitions emits value once (unless it matches
// previousValue, in which case the run already continues one the decoder
// assumes), then folds any additional repetitions into repeatPreviousCode
// (16) symbols, each covering 3-6 repeats via 2 extra bits, chained by
// decrementing between chunks the way Section 4.4's RLE scheme requires.
func writeHuffmanTreeRepetitions(previousValue, value byte, repetitions uint, tree *[]byte, extra *[]byte) {
	if previousValue != value {
		*tree = append(*tree, value)
		*extra = append(*extra, 0)
		repetitions--
	}
	if repetitions == 7 {
		*tree = append(*tree, value)
		*extra = append(*extra, 0)
		repetitions--
	}
	if repetitions < 3 {
		for i := uint(0); i < repetitions; i++ {
			*tree = append(*tree, value)
			*extra = append(*extra, 0)
		}
		return
	}
	repetitions -= 3
	start := len(*tree)
	for {
		*tree = append(*tree, repeatPreviousCodeLength)
		*extra = append(*extra, byte(repetitions&0x3))
		repetitions >>= 2
		if repetitions == 0 {
			break
		}
		repetitions--
	}
	reverseTreeRun(*tree, *extra, start)
}

// writeHuffmanTreeRepetitionsZeros is writeHuffmanTreeRepetitions'
// counterpart for runs of zero-depth (unused) symbols, using
// repeatZeroCodeLength (17) with 3 extra bits covering 3-10 repeats.
func writeHuffmanTreeRepetitionsZeros(repetitions uint, tree *[]byte, extra *[]byte) {
	if repetitions == 11 {
		*tree = append(*tree, 0)
		*extra = append(*extra, 0)
		repetitions--
	}
	if repetitions < 3 {
		for i := uint(0); i < repetitions; i++ {
			*tree = append(*tree, 0)
			*extra = append(*extra, 0)
		}
		return
	}
	repetitions -= 3
	start := len(*tree)
	for {
		*tree = append(*tree, repeatZeroCodeLength)
		*extra = append(*extra, byte(repetitions&0x7))
		repetitions >>= 3
		if repetitions == 0 {
			break
		}
		repetitions--
	}
	reverseTreeRun(*tree, *extra, start)
}

func reverseTreeRun(tree, extra []byte, start int) {
	for i, j := start, len(tree)-1; i < j; i, j = i+1, j-1 {
		tree[i], tree[j] = tree[j], tree[i]
		extra[i], extra[j] = extra[j], extra[i]
	}
}

// writeHuffmanTree turns a depth array into the RLE'd code-length symbol
// stream that gets entropy-coded in storeComplexHuffmanTree. A trailing run
// of unused (zero-depth) symbols is dropped entirely; the decoder infers
// them once it has read every other depth.
func writeHuffmanTree(depth []byte) (tree, extraBits []byte) {
	length := len(depth)
	for length > 1 && depth[length-1] == 0 {
		length--
	}
	previousValue := byte(initialRepeatedCodeLength)
	for i := 0; i < length; {
		value := depth[i]
		reps := uint(1)
		for i+int(reps) < length && depth[i+int(reps)] == value {
			reps++
		}
		i += int(reps)
		if value == 0 {
			writeHuffmanTreeRepetitionsZeros(reps, &tree, &extraBits)
		} else {
			writeHuffmanTreeRepetitions(previousValue, value, reps, &tree, &extraBits)
			previousValue = value
		}
	}
	return tree, extraBits
}

// storeSimpleHuffmanTree writes the "simple" tree format used when an
// alphabet has 1-4 symbols in use: the symbols themselves, sorted by
// depth, are transmitted directly instead of paying for a code-length
// alphabet.
func storeSimpleHuffmanTree(bw *bitWriter, depths []byte, symbols []uint, numSymbols uint, maxBits uint) {
	bw.writeBits(2, 1)
	bw.writeBits(2, uint64(numSymbols)-1)
	for i := uint(0); i < numSymbols; i++ {
		for j := i + 1; j < numSymbols; j++ {
			if depths[symbols[j]] < depths[symbols[i]] {
				symbols[i], symbols[j] = symbols[j], symbols[i]
			}
		}
	}
	switch numSymbols {
	case 2:
		bw.writeBits(maxBits, uint64(symbols[0]))
		bw.writeBits(maxBits, uint64(symbols[1]))
	case 3:
		bw.writeBits(maxBits, uint64(symbols[0]))
		bw.writeBits(maxBits, uint64(symbols[1]))
		bw.writeBits(maxBits, uint64(symbols[2]))
	default:
		bw.writeBits(maxBits, uint64(symbols[0]))
		bw.writeBits(maxBits, uint64(symbols[1]))
		bw.writeBits(maxBits, uint64(symbols[2]))
		bw.writeBits(maxBits, uint64(symbols[3]))
		tmp := uint64(0)
		if depths[symbols[0]] == 1 {
			tmp = 1
		}
		bw.writeBits(1, tmp)
	}
}

// storeComplexHuffmanTree writes the general-case tree format: the RLE'd
// depth stream from writeHuffmanTree, itself entropy-coded with a small
// auxiliary Huffman code built over the 18-symbol code-length alphabet and
// transmitted via storeHuffmanTreeOfHuffmanTreeToBitMask.
func storeComplexHuffmanTree(bw *bitWriter, depths []byte, num uint) {
	tree, extra := writeHuffmanTree(depths[:num])

	var histogram [codeLengthCodes]uint32
	for _, v := range tree {
		histogram[v]++
	}
	numCodes := 0
	var code uint
	for i, c := range histogram {
		if c != 0 {
			if numCodes == 0 {
				code = uint(i)
				numCodes = 1
			} else if numCodes == 1 {
				numCodes = 2
				break
			}
		}
	}

	clDepth := make([]byte, codeLengthCodes)
	createHuffmanTree(histogram[:], codeLengthCodes, 5, clDepth)
	clBits := make([]uint16, codeLengthCodes)
	convertBitDepthsToSymbols(clDepth, codeLengthCodes, clBits)

	storeHuffmanTreeOfHuffmanTreeToBitMask(bw, numCodes, clDepth)
	if numCodes == 1 {
		clDepth[code] = 0
	}

	for i, sym := range tree {
		bw.writeBits(uint(clDepth[sym]), uint64(clBits[sym]))
		switch sym {
		case repeatPreviousCodeLength:
			bw.writeBits(2, uint64(extra[i]))
		case repeatZeroCodeLength:
			bw.writeBits(3, uint64(extra[i]))
		}
	}
}

// storeHuffmanTree is the top-level entry point (Section 4.4): given the
// depths produced by buildEntropyCode, it picks and emits whichever of the
// three tree formats the alphabet's usage calls for.
//
//   - 1 symbol in use: an "empty" tree, just the lone symbol's index.
//   - 2-4 symbols in use: the simple format (storeSimpleHuffmanTree).
//   - otherwise: the complex, RLE'd-and-entropy-coded format.
func storeHuffmanTree(bw *bitWriter, alphabetSize uint, ec *entropyCode) {
	var symbols [4]uint
	count := uint(0)
	for i := uint(0); i < alphabetSize; i++ {
		if ec.depth[i] != 0 {
			if count < 4 {
				symbols[count] = i
			} else if count > 4 {
				break
			}
			count++
		}
	}
	maxBits := uint(0)
	for c := alphabetSize - 1; c != 0; c >>= 1 {
		maxBits++
	}

	if count <= 1 {
		bw.writeBits(4, 1)
		bw.writeBits(maxBits, uint64(symbols[0]))
		ec.depth[symbols[0]] = 0
		ec.bits[symbols[0]] = 0
		return
	}
	if count <= 4 {
		storeSimpleHuffmanTree(bw, ec.depth, symbols[:count], count, maxBits)
		return
	}
	storeComplexHuffmanTree(bw, ec.depth, alphabetSize)
}
