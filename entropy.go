package brotli

/* Copyright 2010 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Entropy encoding (Huffman) utilities. */

import "math"

// histogram is a symbol frequency table over a fixed alphabet (Section 3,
// "EntropyCode<N>"). It backs the literal, insert-and-copy and distance
// histograms the block splitter and clusterer operate on, as well as the
// small fixed alphabets (block types, block lengths, context map symbols,
// code lengths) that get their own one-off Huffman codes.
type histogram struct {
	counts []uint32
	total  uint32
}

func newHistogram(alphabetSize int) *histogram {
	return &histogram{counts: make([]uint32, alphabetSize)}
}

func (h *histogram) add(symbol uint32) {
	h.counts[symbol]++
	h.total++
}

func (h *histogram) addCount(symbol uint32, count uint32) {
	h.counts[symbol] += count
	h.total += count
}

func (h *histogram) clear() {
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.total = 0
}

func (h *histogram) addHistogram(o *histogram) {
	for i, c := range o.counts {
		h.addCount(uint32(i), c)
	}
}

// bitCost returns this histogram's contribution to the meta-block's size in
// bits under its own optimal prefix code: the Shannon entropy of its
// symbol counts, times their total, computed with math.Log2.
func (h *histogram) bitCost() float64 {
	if h.total == 0 {
		return 0
	}
	var bits float64
	total := float64(h.total)
	for _, c := range h.counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		bits -= float64(c) * log2(p)
	}
	return bits
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// entropyCode is a canonical Huffman code over a histogram's alphabet: a
// depth (code length) and the corresponding bit pattern for every symbol
// that occurs at least once.
type entropyCode struct {
	depth []byte
	bits  []uint16
}

func newEntropyCode(alphabetSize int) *entropyCode {
	return &entropyCode{depth: make([]byte, alphabetSize), bits: make([]uint16, alphabetSize)}
}

// buildEntropyCode constructs the canonical code for h, depth-limited to
// maxHuffmanBits-1 (Section 4.4, "Huffman code depth limit").
func buildEntropyCode(h *histogram) *entropyCode {
	ec := newEntropyCode(len(h.counts))
	createHuffmanTree(h.counts, uint(len(h.counts)), maxHuffmanBits-1, ec.depth)
	convertBitDepthsToSymbols(ec.depth, uint(len(ec.depth)), ec.bits)
	return ec
}

// createHuffmanTree assigns each symbol in count a canonical code depth,
// depth-limited to treeLimit, using the classic linear-time construction
// over pre-sorted leaves: repeatedly merge the two lowest-weight available
// nodes (leaf or already-merged) into a new parent, then walk the
// resulting tree to assign depths. If the unconstrained tree would exceed
// treeLimit (only possible for very skewed, very large alphabets), the
// smallest counts are progressively coalesced and the construction is
// retried, mirroring the real encoder's depth-limiting fallback.
func createHuffmanTree(count []uint32, length uint, treeLimit int, depth []byte) {
	for i := range depth[:length] {
		depth[i] = 0
	}

	var leaves []huffmanTree
	for i := uint(0); i < length; i++ {
		if count[i] != 0 {
			var t huffmanTree
			initHuffmanTree(&t, count[i], -1, int16(i))
			leaves = append(leaves, t)
		}
	}
	if len(leaves) == 0 {
		return
	}
	if len(leaves) == 1 {
		depth[leaves[0].index_right_or_value_] = 1
		return
	}

	countLimit := uint32(1)
	for {
		tree := make([]huffmanTree, 0, 2*len(leaves))
		tree = append(tree, leaves...)
		for i := range tree {
			if tree[i].total_count_ < countLimit {
				tree[i].total_count_ = countLimit
			}
		}
		sortHuffmanTreeItems(tree, uint(len(tree)), func(a, b huffmanTree) bool { return a.total_count_ < b.total_count_ })

		// Two-queue merge (Van Leeuwen): queue 1 is the sorted leaves,
		// queue 2 is freshly merged internal nodes appended to tree as
		// they're created. Because merge weights are non-decreasing,
		// always taking the smaller of the two queues' fronts produces a
		// valid Huffman tree in a single linear pass.
		n := len(tree)
		i1, i2 := 0, n
		pick := func() int {
			if i1 < n && (i2 >= len(tree) || tree[i1].total_count_ <= tree[i2].total_count_) {
				idx := i1
				i1++
				return idx
			}
			idx := i2
			i2++
			return idx
		}
		for m := 0; m < n-1; m++ {
			left := pick()
			right := pick()
			var t huffmanTree
			initHuffmanTree(&t, tree[left].total_count_+tree[right].total_count_, int16(left), int16(right))
			tree = append(tree, t)
		}

		root := len(tree) - 1
		if setDepth(root, tree, depth, treeLimit) {
			return
		}
		countLimit *= 2
	}
}
