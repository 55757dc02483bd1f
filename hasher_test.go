package brotli

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

// TestRoundTripAlternateHashers exercises every match-finder the teacher's
// Hasher family offers, not just the H4 default NewCompressor wires up.
// Configurations mirror the ones the teacher's own NewWriter selects at
// its higher compression levels.
func TestRoundTripAlternateHashers(t *testing.T) {
	hashers := map[string]Hasher{
		"H2": &H2{},
		"H3": &H3{},
		"H5": &H5{BlockBits: 3, BucketBits: 15},
		"H6": &H6{BlockBits: 3, BucketBits: 15, HashLen: 5},
		"CompositeH4H6": &CompositeHasher{
			A: &H4{},
			B: &H6{BlockBits: 2, BucketBits: 15, HashLen: 8},
		},
	}

	rnd := rand.New(rand.NewSource(7))
	text := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 200))
	random := make([]byte, 16*1024)
	rnd.Read(random)

	for name, h := range hashers {
		h := h
		t.Run(name, func(t *testing.T) {
			for _, input := range [][]byte{text, random} {
				c, err := newCompressorWithHasher(windowBits, fixedNumDirectDistanceCodes, fixedDistancePostfixBits, h)
				if err != nil {
					t.Fatalf("newCompressorWithHasher: %v", err)
				}
				c.WriteStreamHeader()
				var out []byte
				out = append(out, c.WriteMetaBlock(input)...)
				out = append(out, c.FinishStream()...)

				got := decode(t, out)
				if !bytes.Equal(got, input) {
					t.Fatalf("round trip mismatch with hasher %s: input %d bytes, decoded %d bytes", name, len(input), len(got))
				}
			}
		})
	}
}
