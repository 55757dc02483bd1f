package brotli

/* Copyright 2013 Google Inc. All Rights Reserved.

   Distributed under MIT license.
   See file LICENSE for detail or copy at https://opensource.org/licenses/MIT
*/

/* Stream driver (Section 4.8): owns the long-lived encoder state and turns
   a byte stream into meta-blocks. */

// Compressor holds the state that must survive across meta-blocks: the
// sliding window, the persistent distance cache, the match finder's hash
// table, and a scratch bit sink meta-blocks are assembled into before their
// completed byte prefix is drained out (Section 5, Concurrency & Resource
// Model).
type Compressor struct {
	windowBits uint
	ndirect    uint32
	npostfix   uint32

	rb   *ringBuffer
	dist *distanceRingBuffer
	hash Hasher
	bw   bitWriter

	headerWritten bool
}

// NewCompressor validates windowBits/ndirect/npostfix and, if they're
// well-formed, returns a Compressor ready for repeated WriteMetaBlock calls.
// Compress uses this constructor internally with this encoder's fixed
// parameters; it is exposed directly for the streaming form of the API
// (Section 6). The match finder is fixed to H4, a middle-ground hasher
// between the teacher's cheaper (H2, H3) and pricier (H5, H6, and their
// CompositeHasher combinations) alternatives; newCompressorWithHasher is
// the unexported seam those alternatives plug into.
func NewCompressor(windowBits uint, ndirect, npostfix uint32) (*Compressor, error) {
	return newCompressorWithHasher(windowBits, ndirect, npostfix, &H4{})
}

// newCompressorWithHasher is NewCompressor with the match finder exposed,
// rather than fixed to H4. Section 6.2 of the design notes anticipates a
// pluggable Hasher without turning it into a public compression-ratio dial
// (a Non-goal); this is that plug point, exercised directly by tests
// against H2, H3, H5, H6 and CompositeHasher.
func newCompressorWithHasher(windowBits uint, ndirect, npostfix uint32, hasher Hasher) (*Compressor, error) {
	if !validWindowBits(windowBits) {
		return nil, ErrInvalidWindowBits
	}
	if npostfix > maxNpostfix || ndirect%(uint32(1)<<npostfix) != 0 || ndirect > maxNdirect {
		return nil, ErrInvalidDistanceParams
	}
	return &Compressor{
		windowBits: windowBits,
		ndirect:    ndirect,
		npostfix:   npostfix,
		rb:         newRingBuffer(ringBufferBits),
		dist:       newDistanceRingBuffer(),
		hash:       hasher,
	}, nil
}

// WriteStreamHeader emits the window-size descriptor that begins every
// brotli stream (Section 4.8): 1 bit selecting the common 16-bit-window
// shortcut, or 1 bit plus 3 bits giving windowBits-17 otherwise. Only the
// windowBits values validWindowBits accepts reach here, so windowBits is
// always 16 or in 18..24.
func (c *Compressor) WriteStreamHeader() {
	if c.headerWritten {
		return
	}
	c.headerWritten = true
	if c.windowBits == 16 {
		c.bw.writeSingleBit(false)
		return
	}
	c.bw.writeSingleBit(true)
	c.bw.writeBits(3, uint64(c.windowBits)-17)
}

// WriteMetaBlock appends buf to the ring buffer, searches it for backward
// references, and stores the resulting meta-block, returning the bytes of
// output that are now final. Bytes straddling the current byte boundary are
// held back in the scratch bit sink until a later call completes them.
func (c *Compressor) WriteMetaBlock(buf []byte) []byte {
	if !c.headerWritten {
		c.WriteStreamHeader()
	}
	startPos := c.rb.pos
	c.rb.write(buf)

	maxBackDist := uint64(maxBackwardLimit(c.windowBits))
	cmds := findBackwardReferences(c.hash, c.rb, startPos, uint64(len(buf)), maxBackDist)
	computeDistanceShortCodes(cmds, c.dist)
	computeCommandPrefixes(cmds, c.ndirect, c.npostfix)

	literals := collectLiterals(c.rb, startPos, cmds)
	distAlphabetSize := distanceAlphabetSize(uint(c.npostfix), uint(c.ndirect), maxDistanceBits)
	storeMetaBlock(&c.bw, c.rb, startPos, literals, cmds, c.ndirect, c.npostfix, uint32(distAlphabetSize))

	n := c.bw.bytePos()
	return c.bw.takeBytes(n)
}

// collectLiterals recovers, in command order, the literal bytes each
// command's insertLength covers, reading them back out of the ring buffer
// starting at the position the meta-block began at.
func collectLiterals(rb *ringBuffer, startPos uint64, cmds []command) []byte {
	var total uint32
	for _, c := range cmds {
		total += c.insertLength
	}
	out := make([]byte, 0, total)
	pos := startPos
	for _, c := range cmds {
		for j := uint32(0); j < c.insertLength; j++ {
			out = append(out, rb.at(pos))
			pos++
		}
		pos += uint64(c.copyLength)
	}
	return out
}

// FinishStream writes the trailing zero-length last meta-block that ends
// the stream (Section 4.8) and returns every remaining buffered byte.
func (c *Compressor) FinishStream() []byte {
	if !c.headerWritten {
		c.WriteStreamHeader()
	}
	finishStream(&c.bw)
	return c.bw.takeBytes(c.bw.bytePos())
}

// emptyStreamOutput is the single byte a genuinely empty input compresses
// to: WBITS flag 0 (window_bits=16), ISLAST=1, ISLASTEMPTY=1, padded with
// zero bits to a byte boundary. Compress special-cases empty input to this
// exact byte rather than running the general path with this encoder's
// fixed windowBits=22, matching the reference encoder's own empty-input
// fast path.
var emptyStreamOutput = []byte{0x06}

// Compress drives the whole encoder over input in one call: stream header,
// one WriteMetaBlock per metaBlockBits-sized chunk, then FinishStream
// (Section 6).
func Compress(input []byte) []byte {
	if len(input) == 0 {
		return append([]byte(nil), emptyStreamOutput...)
	}

	c, err := NewCompressor(windowBits, fixedNumDirectDistanceCodes, fixedDistancePostfixBits)
	if err != nil {
		// windowBits/ndirect/npostfix here are this file's own fixed
		// constants; a rejection would mean they were edited into an
		// inconsistent state, which is a programmer error.
		panic(err)
	}

	const chunkSize = 1 << metaBlockBits
	var out []byte
	for len(input) > 0 {
		n := len(input)
		if n > chunkSize {
			n = chunkSize
		}
		out = append(out, c.WriteMetaBlock(input[:n])...)
		input = input[n:]
	}
	out = append(out, c.FinishStream()...)
	return out
}
