package brotli

import (
	"math/rand"
	"reflect"
	"testing"
)

// inverseMoveToFrontTransform undoes moveToFrontTransform: it is the
// decoder-side operation this encoder never needs at runtime, but the MTF
// round-trip property (spec's Testable Properties, "MTF + RLE round-trip")
// requires it to exist somewhere to check against.
func inverseMoveToFrontTransform(indices []uint32, maxValue uint32) []uint32 {
	mtf := make([]byte, maxValue+1)
	for i := range mtf {
		mtf[i] = byte(i)
	}
	out := make([]uint32, len(indices))
	for i, idx := range indices {
		v := mtf[idx]
		out[i] = uint32(v)
		moveToFront(mtf, uint(idx))
	}
	return out
}

// inverseRunLengthCodeZeros undoes runLengthCodeZeros given the same
// usedPrefix the encoder chose.
func inverseRunLengthCodeZeros(rle []uint32, usedPrefix uint32) []uint32 {
	var out []uint32
	i := 0
	for i < len(rle) {
		s := rle[i]
		sym := s & contextMapSymbolMask
		extra := s >> symbolBits
		if sym <= usedPrefix {
			reps := (uint32(1) << sym) + extra
			for j := uint32(0); j < reps; j++ {
				out = append(out, 0)
			}
		} else {
			out = append(out, sym-usedPrefix)
		}
		i++
	}
	return out
}

func TestMoveToFrontRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rnd.Intn(200)
		maxValue := uint32(1 + rnd.Intn(30))
		v := make([]uint32, n)
		for i := range v {
			v[i] = uint32(rnd.Intn(int(maxValue) + 1))
		}
		transformed := moveToFrontTransform(v)
		back := inverseMoveToFrontTransform(transformed, maxValue)
		if !reflect.DeepEqual(back, v) {
			t.Fatalf("trial %d: MTF round trip mismatch: got %v, want %v", trial, back, v)
		}
	}
}

func TestRunLengthCodeZerosRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rnd.Intn(300)
		v := make([]uint32, n)
		for i := range v {
			if rnd.Intn(3) == 0 {
				v[i] = uint32(1 + rnd.Intn(10))
			}
		}
		rle, usedPrefix := runLengthCodeZeros(v, 6)
		back := inverseRunLengthCodeZeros(rle, usedPrefix)
		if !reflect.DeepEqual(back, v) {
			t.Fatalf("trial %d: RLE round trip mismatch: got %v, want %v", trial, back, v)
		}
	}
}
