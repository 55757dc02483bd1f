// Package brotli implements the encoder half of the Brotli compressed
// data format: given arbitrary input bytes, it produces a byte stream
// a standards-conforming Brotli decoder restores byte-for-byte.
//
// Compress is the simplest entry point. Compressor exposes the
// streaming form for callers that want to feed input incrementally.
package brotli
