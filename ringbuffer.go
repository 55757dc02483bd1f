package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Sliding window over the input data (Section 3, "RingBuffer"). */

// ringBuffer is a circular byte buffer of size 1<<ringBufferBits, addressed
// by an absolute position. Only the most recent 1<<ringBufferBits bytes are
// addressable; the compressor is responsible for never referencing a
// position further back than that.
type ringBuffer struct {
	data []byte
	mask uint64
	pos  uint64 // absolute position of the next byte to be written
}

func newRingBuffer(bits uint) *ringBuffer {
	size := uint64(1) << bits
	return &ringBuffer{
		data: make([]byte, size),
		mask: size - 1,
	}
}

func (rb *ringBuffer) size() uint64 { return rb.mask + 1 }

// write appends src, starting at the buffer's current position, and
// advances pos by len(src). It never writes more than size() bytes behind
// the final position, since only that much stays addressable anyway.
func (rb *ringBuffer) write(src []byte) {
	for len(src) > 0 {
		off := rb.pos & rb.mask
		n := copy(rb.data[off:], src)
		rb.pos += uint64(n)
		src = src[n:]
	}
}

// at returns the byte at absolute position pos. pos must be within
// [rb.pos-size(), rb.pos).
func (rb *ringBuffer) at(pos uint64) byte {
	return rb.data[pos&rb.mask]
}

// byteOrZero returns the byte at pos, or 0 if pos is negative-equivalent
// (i.e. pos would underflow uint64, meaning "before the start of stream").
// Used for the two bytes of literal context that precede position 0.
func (rb *ringBuffer) byteOrZero(pos uint64, valid bool) byte {
	if !valid {
		return 0
	}
	return rb.at(pos)
}

// slice returns the (start, end) range as a contiguous byte slice. If the
// range does not wrap the underlying array it is returned without copying;
// otherwise the bytes are copied into a freshly allocated slice.
func (rb *ringBuffer) slice(start, end uint64) []byte {
	if start >= end {
		return nil
	}
	length := end - start
	s := start & rb.mask
	if s+length <= rb.size() {
		return rb.data[s : s+length]
	}
	out := make([]byte, length)
	n := copy(out, rb.data[s:])
	copy(out[n:], rb.data[:length-uint64(n)])
	return out
}
