package brotli

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	refbrotli "github.com/andybalholm/brotli"
)

// decode runs the real, standards-conforming Brotli decoder against b,
// serving as this encoder's round-trip oracle (Section 3.3).
func decode(t *testing.T, b []byte) []byte {
	t.Helper()
	r := refbrotli.NewReader(bytes.NewReader(b))
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reference decoder failed: %v (input %d bytes, output so far %d bytes)", err, len(b), len(out))
	}
	return out
}

func roundTrip(t *testing.T, input []byte) {
	t.Helper()
	compressed := Compress(input)
	got := decode(t, compressed)
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch: input %d bytes, decoded %d bytes", len(input), len(got))
	}
}

func TestRoundTripEmpty(t *testing.T) {
	out := Compress(nil)
	if !bytes.Equal(out, []byte{0x06}) {
		t.Fatalf("empty input: got %x, want 06", out)
	}
	got := decode(t, out)
	if len(got) != 0 {
		t.Fatalf("empty input decoded to %d bytes", len(got))
	}
}

func TestRoundTripSingleByte(t *testing.T) {
	out := Compress([]byte("A"))
	if len(out) > 6 {
		t.Fatalf("single byte compressed to %d bytes, want <= 6", len(out))
	}
	got := decode(t, out)
	if string(got) != "A" {
		t.Fatalf("got %q, want %q", got, "A")
	}
}

func TestRoundTripZeros(t *testing.T) {
	input := make([]byte, 64*1024)
	out := Compress(input)
	if len(out) > 64 {
		t.Fatalf("64 KiB of zeros compressed to %d bytes, want <= 64", len(out))
	}
	roundTrip(t, input)
}

func TestRoundTripRepeatedPattern(t *testing.T) {
	input := []byte(strings.Repeat("abc", 200*1024/3))
	out := Compress(input)
	if len(out) >= 1000 {
		t.Fatalf("repeated pattern compressed to %d bytes, want < 1000", len(out))
	}
	roundTrip(t, input)
}

func TestRoundTripRandomMultiMetaBlock(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	input := make([]byte, 4<<20)
	rnd.Read(input)
	out := Compress(input)
	if len(out) < len(input) {
		t.Fatalf("random input compressed to %d bytes, expected >= input size %d", len(out), len(input))
	}
	roundTrip(t, input)
}

func TestRoundTripLiteralContextVariety(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	input := make([]byte, 8192)
	for i := range input {
		switch i % 4 {
		case 0:
			input[i] = 0
		case 1:
			input[i] = byte(rnd.Intn(8))
		case 2:
			input[i] = byte(200 + rnd.Intn(56))
		case 3:
			input[i] = byte(rnd.Intn(256))
		}
	}
	roundTrip(t, input)
}

func TestDeterminism(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog, again and again and again")
	a := Compress(input)
	b := Compress(input)
	if !bytes.Equal(a, b) {
		t.Fatalf("Compress is not deterministic across calls")
	}
}

func TestRoundTripText(t *testing.T) {
	input := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 500))
	roundTrip(t, input)
}
