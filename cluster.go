package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Histogram clustering (Section 2, System Overview #6): merges the
   per-block-type histograms the block splitter produced down to a smaller
   set of shared histograms, so that block types with near-identical
   symbol distributions pay for one Huffman tree instead of several. */

import "math"

// clusterHistograms greedily assigns each input histogram to an existing
// cluster if merging into it costs little more, in entropy bits, than
// coding it separately would save; otherwise it starts a new cluster. This
// is a simplified stand-in for the encoder's full pairwise-merge-then-
// reassign clustering pass: a single left-to-right greedy sweep instead of
// iterating to a fixed point, since a meta-block's block-type count is
// already small (bounded by maxHistogramsPerStream) by the time it
// reaches this stage.
//
// It returns the deduplicated cluster histograms and, for each input
// histogram, the index into that slice it was assigned to.
func clusterHistograms(histograms []*histogram, maxClusters int) (clusters []*histogram, assignment []uint32) {
	assignment = make([]uint32, len(histograms))
	for i, h := range histograms {
		if h.total == 0 {
			// An empty histogram (a block type that turned out to
			// contribute no symbols to this particular stream) still
			// needs a cluster assignment; fold it into cluster 0 rather
			// than growing the cluster count for nothing.
			if len(clusters) == 0 {
				clusters = append(clusters, newHistogram(len(h.counts)))
			}
			assignment[i] = 0
			continue
		}

		best := -1
		bestCost := math.MaxFloat64
		ownCost := h.bitCost()
		merged := newHistogram(len(h.counts))
		for c, cluster := range clusters {
			merged.clear()
			merged.addHistogram(cluster)
			merged.addHistogram(h)
			cost := merged.bitCost() - cluster.bitCost() - ownCost
			if cost < bestCost {
				best, bestCost = c, cost
			}
		}

		// Merging is worth it if it costs less extra than paying for a
		// brand new Huffman tree over this alphabet would (roughly 6 bits
		// for every symbol of the alphabet); once the
		// cluster budget is exhausted, merging into the closest cluster
		// is mandatory regardless of cost.
		newClusterBudget := len(clusters) < maxClusters
		treeOverhead := float64(len(h.counts)) * 6
		if best == -1 || (newClusterBudget && bestCost > treeOverhead) {
			clusters = append(clusters, newHistogram(len(h.counts)))
			best = len(clusters) - 1
		}
		clusters[best].addHistogram(h)
		assignment[i] = uint32(best)
	}
	return clusters, assignment
}
