package brotli

// command is one insert-and-copy instruction in a meta-block's command
// stream (Section 3, Data Model). insertLength literal bytes are copied
// verbatim from the input, then copyLength bytes are copied from
// copyDistance bytes back in the output (copyLength 0 and copyDistance 0
// together mark the terminal, insert-only command in a stream).
//
// The distance* and *Prefix fields are filled in by computeDistanceShortCodes
// and computeCommandPrefixes once every command in a meta-block is known, so
// that the distance ring buffer's state at each command can be replayed.
type command struct {
	insertLength uint32
	copyLength   uint32
	copyDistance uint32

	// copyLengthCode holds the actual copy length that feeds
	// getCopyLengthCode/writeExtra's extra-bits computation (a wider type
	// than copyLength would suggest is needed: real copy lengths can
	// exceed 65535 for a single long match, and kCopyExtra allows up to
	// 24 extra bits, so this has to be uint32 like copyLength itself).
	copyLengthCode uint32

	distanceCode uint32

	commandPrefix uint16

	distancePrefix         uint16
	distanceExtraBits      uint32
	distanceExtraBitsValue uint32
}

// distanceRingBuffer is the 4-entry cache of recently used copy distances
// (Section 3, Data Model). It starts pre-seeded with initialDistanceRing and
// is threaded through every command in a meta-block, in order, by
// computeDistanceShortCodes.
type distanceRingBuffer struct {
	dist [4]uint32
	idx  uint32
}

func newDistanceRingBuffer() *distanceRingBuffer {
	return &distanceRingBuffer{dist: initialDistanceRing}
}

// kDistanceShortCodeIndexOffset and kDistanceShortCodeValueOffset drive the
// 16-candidate probe order used to recognize a copy distance as a small
// perturbation of one of the four cached distances (Section 4.3, "Distance
// short codes").
var kDistanceShortCodeIndexOffset = [16]uint32{3, 2, 1, 0, 3, 3, 3, 3, 3, 3, 2, 2, 2, 2, 2, 2}
var kDistanceShortCodeValueOffset = [16]int32{0, 0, 0, 0, -1, 1, -2, 2, -3, 3, -1, 1, -2, 2, -3, 3}

// computeDistanceShortCode tests cmdDist against the ring's 16 short-code
// candidates and returns the matching code in 1..16, or 0 if none match.
// Candidates 2, 3 and 6..15 are skipped when cmdDist is below 11, so a small
// distance is only rewritten to one of the more commonly used candidates.
func (r *distanceRingBuffer) computeDistanceShortCode(cmdDist uint32) uint32 {
	for k := uint32(0); k < numDistanceShortCodes; k++ {
		if cmdDist < 11 && ((k >= 2 && k < 4) || k >= 6) {
			continue
		}
		delta := kDistanceShortCodeValueOffset[k]
		cand := r.dist[(r.idx+kDistanceShortCodeIndexOffset[k])&3]
		var candDist uint32
		if delta < 0 {
			if cand < uint32(-delta) {
				continue
			}
			candDist = cand - uint32(-delta)
		} else {
			candDist = cand + uint32(delta)
		}
		if candDist == cmdDist {
			return k + 1
		}
	}
	return 0
}

// computeDistanceShortCodes fills in distanceCode for every non-terminal
// command in cmds, threading a distanceRingBuffer through them in order
// (Section 4.3). A command whose distance equals one of the ring's 16
// short-code candidates gets the matching short code (1..16); otherwise it
// gets literalDistance+16. Every command whose code is above 1 pushes its
// distance into the ring.
func computeDistanceShortCodes(cmds []command, ring *distanceRingBuffer) {
	for i := range cmds {
		c := &cmds[i]
		if c.copyDistance == 0 {
			break
		}
		assert(c.copyDistance <= maxDistance)
		code := ring.computeDistanceShortCode(c.copyDistance)
		if code == 0 {
			code = c.copyDistance + numDistanceShortCodes
		}
		c.distanceCode = code
		if code > 1 {
			ring.dist[ring.idx&3] = c.copyDistance
			ring.idx++
		}
	}
}

// computeCommandPrefixes assigns commandPrefix and the distance prefix
// fields for every command, given distanceCode has already been computed
// (Section 4.3). Insert-and-copy length codes are folded into a single
// command_prefix symbol via combineLengthCodes, which already returns a
// value below 128 exactly for a command that reuses the most recently used
// distance (and thus carries no distance symbol of its own) and 128 or
// above for every other command. storeMetaBlock writes a distance symbol
// for a command at or above 128 only while the meta-block still has bytes
// left after that command's literals, so the terminal, insert-only command
// never carries one.
//
// The terminal, insert-only command every meta-block ends with (copyLength
// 0) has no real copy or distance. Like the reference encoder's
// InitInsertCommand, it gets fixed stand-ins: copyLengthCode 4 (so
// getCopyLengthCode never underflows on a zero copy length),
// useLastDistance forced false (matching InitInsertCommand's own hardcoded
// argument, not derived from any real distance), and distanceCode fixed to
// numDistanceShortCodes, a code requiring no extra bits.
func computeCommandPrefixes(cmds []command, ndirect, npostfix uint32) {
	for i := range cmds {
		c := &cmds[i]
		var useLastDistance bool
		if c.copyLength == 0 {
			c.copyLengthCode = 4
			c.distanceCode = numDistanceShortCodes
			useLastDistance = false
		} else {
			c.copyLengthCode = c.copyLength
			useLastDistance = c.distanceCode == 1
		}
		inscode := getInsertLengthCode(uint(c.insertLength))
		copycode := getCopyLengthCode(uint(c.copyLengthCode))
		c.commandPrefix = combineLengthCodes(inscode, copycode, useLastDistance)
		prefixEncodeCopyDistance(c.distanceCode, ndirect, npostfix,
			&c.distancePrefix, &c.distanceExtraBits, &c.distanceExtraBitsValue)
	}
}

// writeExtra emits the raw insert-length and copy-length extra bits that
// follow a command's prefix symbol (Section 4.2): the two are packed into
// one writeBits call, copy-length's extra bits placed above insert-
// length's, matching how the two lengths' codes were combined into a
// single command_prefix symbol by combineLengthCodes.
func (c *command) writeExtra(bw *bitWriter) {
	inscode := getInsertLengthCode(uint(c.insertLength))
	copycode := getCopyLengthCode(uint(c.copyLengthCode))
	insNumExtra := kInsExtra[inscode]
	insExtraVal := uint64(c.insertLength) - uint64(kInsBase[inscode])
	copyExtraVal := uint64(c.copyLengthCode) - uint64(kCopyBase[copycode])
	bits := copyExtraVal<<insNumExtra | insExtraVal
	bw.writeBits(uint(insNumExtra+kCopyExtra[copycode]), bits)
}

var kInsBase = []uint32{
	0,
	1,
	2,
	3,
	4,
	5,
	6,
	8,
	10,
	14,
	18,
	26,
	34,
	50,
	66,
	98,
	130,
	194,
	322,
	578,
	1090,
	2114,
	6210,
	22594,
}

var kInsExtra = []uint32{
	0,
	0,
	0,
	0,
	0,
	0,
	1,
	1,
	2,
	2,
	3,
	3,
	4,
	4,
	5,
	5,
	6,
	7,
	8,
	9,
	10,
	12,
	14,
	24,
}

var kCopyBase = []uint32{
	2,
	3,
	4,
	5,
	6,
	7,
	8,
	9,
	10,
	12,
	14,
	18,
	22,
	30,
	38,
	54,
	70,
	102,
	134,
	198,
	326,
	582,
	1094,
	2118,
}

var kCopyExtra = []uint32{
	0,
	0,
	0,
	0,
	0,
	0,
	0,
	0,
	1,
	1,
	2,
	2,
	3,
	3,
	4,
	4,
	5,
	5,
	6,
	7,
	8,
	9,
	10,
	24,
}

func getInsertLengthCode(insertlen uint) uint16 {
	if insertlen < 6 {
		return uint16(insertlen)
	} else if insertlen < 130 {
		var nbits uint32 = log2FloorNonZero(insertlen-2) - 1
		return uint16((nbits << 1) + uint32((insertlen-2)>>nbits) + 2)
	} else if insertlen < 2114 {
		return uint16(log2FloorNonZero(insertlen-66) + 10)
	} else if insertlen < 6210 {
		return 21
	} else if insertlen < 22594 {
		return 22
	} else {
		return 23
	}
}

func getCopyLengthCode(copylen uint) uint16 {
	if copylen < 10 {
		return uint16(copylen - 2)
	} else if copylen < 134 {
		var nbits uint32 = log2FloorNonZero(copylen-6) - 1
		return uint16((nbits << 1) + uint32((copylen-6)>>nbits) + 4)
	} else if copylen < 2118 {
		return uint16(log2FloorNonZero(copylen-70) + 12)
	} else {
		return 23
	}
}

func combineLengthCodes(inscode uint16, copycode uint16, use_last_distance bool) uint16 {
	var bits64 uint16 = uint16(copycode&0x7 | (inscode&0x7)<<3)
	if use_last_distance && inscode < 8 && copycode < 16 {
		if copycode < 8 {
			return bits64
		} else {
			return bits64 | 64
		}
	} else {
		/* Specification: 5 Encoding of ... (last table) */
		/* offset = 2 * index, where index is in range [0..8] */
		var offset uint32 = 2 * ((uint32(copycode) >> 3) + 3*(uint32(inscode)>>3))

		/* All values in specification are K * 64,
		   where   K = [2, 3, 6, 4, 5, 8, 7, 9, 10],
		       i + 1 = [1, 2, 3, 4, 5, 6, 7, 8,  9],
		   K - i - 1 = [1, 1, 3, 0, 0, 2, 0, 1,  2] = D.
		   All values in D require only 2 bits to encode.
		   Magic constant is shifted 6 bits left, to avoid final multiplication. */
		offset = (offset << 5) + 0x40 + ((0x520D40 >> offset) & 0xC0)

		return uint16(offset | uint32(bits64))
	}
}
