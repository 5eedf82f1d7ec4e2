package detect

import (
	"testing"

	"nickandperla.net/bbdetect/bf"
)

func TestFSCDFiresOnRepeatedSnapshot(t *testing.T) {
	fscd := NewFSCD(0)

	ev := bf.Event{Kind: bf.LoopEntered, LoopID: 1}
	snap := NewSnapshot([]uint8{1}, 0)

	if fscd.Observe(ev, snap) {
		t.Fatalf("Observe fired on first sighting of a snapshot")
	}
	if !fscd.Observe(ev, snap) {
		t.Fatalf("Observe did not fire on a repeated snapshot at the same loop id")
	}
}

func TestFSCDIgnoresDifferentLoopIDs(t *testing.T) {
	fscd := NewFSCD(0)
	snap := NewSnapshot([]uint8{1}, 0)

	fscd.Observe(bf.Event{Kind: bf.LoopEntered, LoopID: 1}, snap)
	if fscd.Observe(bf.Event{Kind: bf.LoopEntered, LoopID: 2}, snap) {
		t.Fatalf("Observe fired across different loop ids")
	}
}

func TestFSCDIgnoresNonBracketEvents(t *testing.T) {
	fscd := NewFSCD(0)
	snap := NewSnapshot([]uint8{1}, 0)

	fscd.Observe(bf.Event{Kind: bf.NoEvent, LoopID: 1}, snap)
	if fscd.Observe(bf.Event{Kind: bf.NoEvent, LoopID: 1}, snap) {
		t.Fatalf("Observe fired on NoEvent, which carries no loop checkpoint")
	}
}

func TestFSCDHistoryCapNeverFalsePositivesOnceFull(t *testing.T) {
	fscd := NewFSCD(1)

	ev := bf.Event{Kind: bf.LoopBackEdge, LoopID: 1}
	first := NewSnapshot([]uint8{1}, 0)
	second := NewSnapshot([]uint8{2}, 0)
	third := NewSnapshot([]uint8{3}, 0)

	fscd.Observe(ev, first)
	if fscd.Observe(ev, second) {
		t.Fatalf("Observe fired on a genuinely new snapshot once history was capped")
	}
	if fscd.Observe(ev, third) {
		t.Fatalf("Observe fired on another genuinely new snapshot")
	}
}
