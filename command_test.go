package brotli

import "testing"

// TestDistanceShortCodeReuse checks distance-code assignment across a short
// command list: a distance below 11 that only a skipped candidate would
// match, the "most recent distance" shortcut (distanceCode 1) that
// computeCommandPrefixes later tries to fold into commandPrefix without an
// explicit distance symbol, and a novel distance.
func TestDistanceShortCodeReuse(t *testing.T) {
	ring := newDistanceRingBuffer()
	cmds := []command{
		{insertLength: 3, copyLength: 5, copyDistance: 4},  // equals ring[0], but that candidate is skipped below 11 -> 4+16, pushed into the ring
		{insertLength: 1, copyLength: 4, copyDistance: 4},  // repeats the most recent distance
		{insertLength: 2, copyLength: 6, copyDistance: 999}, // novel distance
		{}, // terminal command
	}
	computeDistanceShortCodes(cmds, ring)

	if cmds[0].distanceCode == 0 {
		t.Fatalf("first command: expected a resolved distance code, got 0")
	}
	if cmds[1].distanceCode != 1 {
		t.Fatalf("second command (repeats most recent distance): got distanceCode %d, want 1", cmds[1].distanceCode)
	}
	if cmds[2].distanceCode != cmds[2].copyDistance+numDistanceShortCodes {
		t.Fatalf("third command (novel distance): got distanceCode %d, want %d", cmds[2].distanceCode, cmds[2].copyDistance+numDistanceShortCodes)
	}
	if cmds[3].distanceCode != 0 {
		t.Fatalf("terminal command must not be touched, got distanceCode %d", cmds[3].distanceCode)
	}
}

// TestCommandPrefixInsertOnly checks the terminal, insert-only command's
// fixed stand-ins (InitInsertCommand): copyLengthCode 4, distanceCode fixed
// to the short code numDistanceShortCodes, and a commandPrefix that stays
// in range regardless of which branch combineLengthCodes takes for the
// given insert length.
func TestCommandPrefixInsertOnly(t *testing.T) {
	cmds := []command{{insertLength: 10}}
	computeCommandPrefixes(cmds, fixedNumDirectDistanceCodes, fixedDistancePostfixBits)
	if cmds[0].copyLengthCode != 4 {
		t.Fatalf("insert-only command: got copyLengthCode %d, want 4", cmds[0].copyLengthCode)
	}
	if cmds[0].distanceCode != numDistanceShortCodes {
		t.Fatalf("insert-only command: got distanceCode %d, want %d", cmds[0].distanceCode, numDistanceShortCodes)
	}
	if cmds[0].commandPrefix >= numCommandSymbols {
		t.Fatalf("insert-only command: commandPrefix %d out of the %d-symbol command alphabet", cmds[0].commandPrefix, numCommandSymbols)
	}
	// insertLength 10 codes to inscode 8, which fails combineLengthCodes's
	// inscode<8 reuse condition even though useLastDistance is forced
	// false here anyway; either way the prefix lands in the explicit-
	// distance half of the command alphabet.
	if cmds[0].commandPrefix < 128 {
		t.Fatalf("insert-only command with insertLength 10: commandPrefix %d should be >= 128", cmds[0].commandPrefix)
	}
}

// TestCommandPrefixShortInsertOnlyStillExplicit checks that even a very
// short insert-only command does not reuse the last distance:
// computeCommandPrefixes hardcodes useLastDistance false for copyLength==0,
// matching InitInsertCommand, regardless of how small inscode is.
func TestCommandPrefixShortInsertOnlyStillExplicit(t *testing.T) {
	cmds := []command{{insertLength: 1}}
	computeCommandPrefixes(cmds, fixedNumDirectDistanceCodes, fixedDistancePostfixBits)
	if cmds[0].commandPrefix < 128 {
		t.Fatalf("short insert-only command: commandPrefix %d should still be >= 128 (useLastDistance forced false)", cmds[0].commandPrefix)
	}
}

// TestCommandPrefixNovelDistanceCopyEmitsDistance checks that a copy command
// whose distance is not the most recent one (distanceCode != 1) gets a
// commandPrefix in the explicit-distance half (>= 128).
func TestCommandPrefixNovelDistanceCopyEmitsDistance(t *testing.T) {
	ring := newDistanceRingBuffer()
	cmds := []command{
		{insertLength: 0, copyLength: 20, copyDistance: 500},
		{},
	}
	computeDistanceShortCodes(cmds, ring)
	computeCommandPrefixes(cmds, fixedNumDirectDistanceCodes, fixedDistancePostfixBits)
	if cmds[0].commandPrefix < 128 {
		t.Fatalf("copy command: commandPrefix %d should be >= 128 (distance symbol present)", cmds[0].commandPrefix)
	}
}
