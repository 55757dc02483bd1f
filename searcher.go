package brotli

// This file is based on code from github.com/golang/snappy, by way of the
// greedy single-pass matcher used for brotli quality levels 0-1 in the
// teacher implementation (m1.go / matchfinder.go).
//
//Copyright (c) 2011 The Snappy-Go Authors. All rights reserved.
//
//Redistribution and use in source and binary forms, with or without
//modification, are permitted provided that the following conditions are
//met:
//
//   * Redistributions of source code must retain the above copyright
//notice, this list of conditions and the following disclaimer.
//   * Redistributions in binary form must reproduce the above
//copyright notice, this list of conditions and the following disclaimer
//in the documentation and/or other materials provided with the
//distribution.
//   * Neither the name of Google Inc. nor the names of its
//contributors may be used to endorse or promote products derived from
//this software without specific prior written permission.
//
//THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
//"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
//LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
//A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
//OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
//SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
//LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
//DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
//THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
//(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
//OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

import (
	"math"
	"math/bits"
)

const searchMinMatch = 4

// findBackwardReferences is the encoder's CreateBackwardReferences
// collaborator (Section 3, System Overview #4). It scans rb[startPos,
// startPos+length) for repeated substrings against everything still
// addressable in the ring buffer (bounded by maxBackDist, the caller's
// window-size-derived limit) and returns the equivalent command list,
// terminated by a final command with copyDistance 0 covering any trailing
// literal-only run.
func findBackwardReferences(h Hasher, rb *ringBuffer, startPos, length, maxBackDist uint64) []command {
	if length == 0 {
		return []command{{}}
	}
	end := startPos + length
	histFrom := uint64(0)
	if startPos > maxBackDist {
		histFrom = startPos - maxBackDist
	}
	window := rb.slice(histFrom, end)
	historyLen := int(startPos - histFrom)

	h.Init()
	sLimit := len(window) - 8
	for i := 0; i < historyLen && i <= sLimit; i++ {
		h.Store(window, i)
	}

	var cmds []command
	nextEmit := historyLen
	var candidates []int

	i := historyLen
	for sLimit >= 0 && i <= sLimit {
		candidates = h.Candidates(candidates[:0], window, i)
		bestLen := 0
		bestCand := -1
		for _, c := range candidates {
			if c >= i || uint64(i-c) > maxBackDist {
				continue
			}
			ml := matchLength(window, c, i)
			if ml > bestLen {
				bestLen = ml
				bestCand = c
			}
		}
		h.Store(window, i)
		if bestLen < searchMinMatch {
			i++
			continue
		}

		base := i
		for base > nextEmit && bestCand > 0 && window[bestCand-1] == window[base-1] {
			base--
			bestCand--
			bestLen++
		}

		cmds = append(cmds, command{
			insertLength: uint32(base - nextEmit),
			copyLength:   uint32(bestLen),
			copyDistance: uint32(base - bestCand),
		})

		matchEnd := i + bestLen
		for j := i + 1; j < matchEnd && j <= sLimit; j++ {
			h.Store(window, j)
		}
		i = matchEnd
		nextEmit = i
	}

	if nextEmit < len(window) {
		cmds = append(cmds, command{insertLength: uint32(len(window) - nextEmit)})
	} else {
		cmds = append(cmds, command{})
	}
	return cmds
}

// matchLength returns how many leading bytes of window[j:] and window[i:]
// agree, without reading past len(window).
func matchLength(window []byte, i, j int) int {
	n := len(window)
	start := j
	for j+8 <= n {
		x := load64(window, i)
		y := load64(window, j)
		if x != y {
			return j - start + bits.TrailingZeros64(x^y)>>3
		}
		i += 8
		j += 8
	}
	for j < n && window[i] == window[j] {
		i++
		j++
	}
	return j - start
}

func load64(b []byte, i int) uint64 {
	_ = b[i+7]
	return uint64(b[i]) | uint64(b[i+1])<<8 | uint64(b[i+2])<<16 | uint64(b[i+3])<<24 |
		uint64(b[i+4])<<32 | uint64(b[i+5])<<40 | uint64(b[i+6])<<48 | uint64(b[i+7])<<56
}

// estimateLiteralCosts is the encoder's literal-cost-estimator collaborator.
// It produces a rough per-position bit-cost curve from a static order-0
// model of the window, which the block splitter uses to decide where
// literal-type boundaries are worth their overhead.
func estimateLiteralCosts(window []byte) []float32 {
	var histogram [256]int
	for _, b := range window {
		histogram[b]++
	}
	total := len(window)
	var bitCost [256]float32
	for b, count := range histogram {
		if count == 0 {
			bitCost[b] = 8
			continue
		}
		p := float64(count) / float64(total)
		bitCost[b] = float32(-math.Log2(p))
	}
	costs := make([]float32, len(window))
	for i, b := range window {
		costs[i] = bitCost[b]
	}
	return costs
}
