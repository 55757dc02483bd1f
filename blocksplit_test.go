package brotli

import "testing"

// TestSplitBlockCoverage checks the Block-split coverage property: the sum
// of a BlockSplit's run lengths equals the length of the stream it splits.
func TestSplitBlockCoverage(t *testing.T) {
	costs := make([]float32, 5000)
	for i := range costs {
		// A synthetic cost curve with a sharp jump partway through, giving
		// the splitter a real reason to open more than one block type.
		if i < 2000 {
			costs[i] = 1
		} else {
			costs[i] = 7
		}
	}
	split := splitBlock(costs, 128)

	var total uint32
	for _, l := range split.lengths {
		total += l
	}
	if total != uint32(len(costs)) {
		t.Fatalf("block split covers %d symbols, want %d", total, len(costs))
	}
	if uint(len(split.types)) != split.numBlocks || uint(len(split.lengths)) != split.numBlocks {
		t.Fatalf("numBlocks %d inconsistent with types/lengths slice lengths %d/%d", split.numBlocks, len(split.types), len(split.lengths))
	}
	if split.types[0] != 0 {
		t.Fatalf("first run must always be type 0, got %d", split.types[0])
	}
}

func TestSplitBlockEmpty(t *testing.T) {
	split := splitBlock(nil, 128)
	if split.numBlocks != 1 || split.lengths[0] != 0 {
		t.Fatalf("empty cost curve should yield one zero-length block, got %+v", split)
	}
}

// TestBlockTypeCodeCalculatorRoundTrip exercises the short-code assignment
// used by the block-split serializer against its own decode rule (Section
// 4.5's ComputeBlockTypeShortCodes), confirming the encoder and a decoder
// applying the stated rule agree on every type in a short sequence.
func TestBlockTypeCodeCalculatorRoundTrip(t *testing.T) {
	calc := newBlockTypeCodeCalculator()
	var codes []uint

	// A sequence without adjacent repeats.
	seq := []byte{0, 1, 2, 0, 1}
	for _, ty := range seq {
		codes = append(codes, calc.next(ty))
	}

	// Decode using the same ring-buffer rule the block-split serializer's
	// consumer (spec.md's ComputeBlockTypeShortCodes) describes.
	var lastType, secondLastType uint = 1, 0
	for i, code := range codes {
		var got byte
		switch code {
		case 1:
			got = byte(lastType + 1)
		case 0:
			got = byte(secondLastType)
		default:
			got = byte(code - 2)
		}
		if got != seq[i] {
			t.Fatalf("position %d: decoded type %d, want %d", i, got, seq[i])
		}
		secondLastType = lastType
		lastType = uint(got)
	}
}
