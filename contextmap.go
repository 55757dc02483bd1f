package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Encoding of the context map (Section 4.6): move-to-front transform, then
   zero-run-length coding, then an ordinary entropy code over the result. */

const symbolBits = 9

var contextMapSymbolMask uint32 = (1 << symbolBits) - 1

// indexOf and moveToFront implement the move-to-front list used by
// moveToFrontTransform: symbols recently seen sort to the front, so a
// context map dominated by a handful of histogram ids compresses well.
func indexOf(v []byte, value byte) uint {
	for i, b := range v {
		if b == value {
			return uint(i)
		}
	}
	return uint(len(v))
}

func moveToFront(v []byte, index uint) {
	value := v[index]
	for i := index; i != 0; i-- {
		v[i] = v[i-1]
	}
	v[0] = value
}

// moveToFrontTransform replaces each value in v with its current position
// in a move-to-front list seeded with the identity permutation, then moves
// it to the front. Repeated or clustered histogram ids collapse toward 0,
// which the following zero-run-length pass exploits.
func moveToFrontTransform(v []uint32) []uint32 {
	out := make([]uint32, len(v))
	if len(v) == 0 {
		return out
	}
	maxValue := v[0]
	for _, x := range v {
		if x > maxValue {
			maxValue = x
		}
	}
	assert(maxValue < 256)

	mtf := make([]byte, maxValue+1)
	for i := range mtf {
		mtf[i] = byte(i)
	}
	for i, x := range v {
		index := indexOf(mtf, byte(x))
		out[i] = uint32(index)
		moveToFront(mtf, index)
	}
	return out
}

// runLengthCodeZeros replaces runs of zeros in v with a single symbol
// carrying a log2-bucketed run length (in the low symbolBits bits, so it
// can share an alphabet with the non-zero, shifted-up-by-maxPrefix
// symbols) plus extra bits recovering the exact length within the bucket.
// The run-length alphabet is itself capped at maxRunLengthPrefix, chosen
// as the smallest prefix that covers the longest actual run.
func runLengthCodeZeros(v []uint32, maxRunLengthPrefix uint32) (out []uint32, usedPrefix uint32) {
	var maxReps uint32
	for i := 0; i < len(v); {
		for i < len(v) && v[i] != 0 {
			i++
		}
		reps := uint32(0)
		for i < len(v) && v[i] == 0 {
			reps++
			i++
		}
		if reps > maxReps {
			maxReps = reps
		}
	}

	maxPrefix := uint32(0)
	if maxReps > 0 {
		maxPrefix = log2FloorNonZero(uint(maxReps))
	}
	if maxPrefix > maxRunLengthPrefix {
		maxPrefix = maxRunLengthPrefix
	}
	usedPrefix = maxPrefix

	for i := 0; i < len(v); {
		if v[i] != 0 {
			out = append(out, v[i]+usedPrefix)
			i++
			continue
		}
		reps := uint32(1)
		for i+int(reps) < len(v) && v[i+int(reps)] == 0 {
			reps++
		}
		i += int(reps)
		for reps != 0 {
			if reps < 2<<maxPrefix {
				prefix := log2FloorNonZero(uint(reps))
				extra := reps - (1 << prefix)
				out = append(out, prefix+(extra<<symbolBits))
				break
			}
			extra := (uint32(1) << maxPrefix) - 1
			out = append(out, maxPrefix+(extra<<symbolBits))
			reps -= (2 << maxPrefix) - 1
		}
	}
	return out, usedPrefix
}

// encodeContextMap writes a context map (Section 4.6): its cluster count,
// then, unless there's only one cluster, the RLE'd-and-MTF'd symbol stream
// entropy coded over its own small alphabet, tagged with an
// inverse-move-to-front bit so the decoder knows to undo the transform.
func encodeContextMap(bw *bitWriter, contextMap []uint32, numClusters uint) {
	writeVarLenUint8(bw, uint32(numClusters-1))
	if numClusters == 1 {
		return
	}

	maxRunLengthPrefix := uint32(6)
	mtf := moveToFrontTransform(contextMap)
	rle, usedPrefix := runLengthCodeZeros(mtf, maxRunLengthPrefix)

	h := newHistogram(maxContextMapSymbols)
	for _, s := range rle {
		h.add(s & contextMapSymbolMask)
	}

	useRLE := usedPrefix > 0
	bw.writeSingleBit(useRLE)
	if useRLE {
		bw.writeBits(4, uint64(usedPrefix)-1)
	}

	alphabetSize := uint(numClusters) + uint(usedPrefix)
	ec := buildEntropyCode(&histogram{counts: h.counts[:alphabetSize]})
	storeHuffmanTree(bw, alphabetSize, ec)
	for _, s := range rle {
		sym := s & contextMapSymbolMask
		extra := s >> symbolBits
		bw.writeBits(uint(ec.depth[sym]), uint64(ec.bits[sym]))
		if sym > 0 && sym <= usedPrefix {
			bw.writeBits(uint(sym), uint64(extra))
		}
	}
	bw.writeBits(1, 1) // IMTF bit: this stream used move-to-front.
}

// writeVarLenUint8 writes n (0..255) as a 1-bit not-present flag, or a
// 3-bit bit-length followed by that many raw bits (Section 4.5, used for
// both block-type and cluster counts).
func writeVarLenUint8(bw *bitWriter, n uint32) {
	if n == 0 {
		bw.writeBits(1, 0)
		return
	}
	nbits := log2FloorNonZero(uint(n))
	bw.writeBits(1, 1)
	bw.writeBits(3, uint64(nbits))
	bw.writeBits(uint(nbits), uint64(n)-(uint64(1)<<nbits))
}
