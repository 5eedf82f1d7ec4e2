package detect

import "nickandperla.net/bbdetect/bf"

// FSCD is the Full-State Cycle Detector. For each loop id it remembers
// every Memory Snapshot seen at that loop's entries and back-edges; a
// repeated snapshot proves the program is deterministically re-executing
// the same state inside the same loop, and therefore never halts.
//
// History is per loop id and is never cleared on LoopBroken: unlike LSD's
// subhistory, FSCD's contract (same snapshot at the same program point
// implies a deterministic repeat) holds across an intervening break — a
// later reentry with a snapshot matching one from before the break is
// still proof of an infinite loop. This is spec.md §9's Open Question,
// resolved literally as written there.
type FSCD struct {
	history map[int]map[string]struct{}
	// cap bounds the number of distinct snapshots retained per loop id.
	// Zero means unbounded. Once a loop id's history reaches cap, new
	// snapshots are silently dropped (matching against the existing
	// history still happens); this can only convert an undetected
	// non-halting program into BudgetExhausted, never a false positive.
	cap uint64
}

// NewFSCD returns an FSCD with the given per-loop history cap (0 = no cap).
func NewFSCD(perLoopCap uint64) *FSCD {
	return &FSCD{
		history: make(map[int]map[string]struct{}),
		cap:     perLoopCap,
	}
}

// Observe feeds one interpreter event to the detector, returning true iff
// this event proves the program non-halting. Only LoopEntered and
// LoopBackEdge are relevant; all other events are no-ops.
func (f *FSCD) Observe(ev bf.Event, snap MemorySnapshot) bool {
	switch ev.Kind {
	case bf.LoopEntered, bf.LoopBackEdge:
	default:
		return false
	}

	set, ok := f.history[ev.LoopID]
	if !ok {
		set = make(map[string]struct{})
		f.history[ev.LoopID] = set
	}

	key := snap.Key()
	if _, seen := set[key]; seen {
		return true
	}

	if f.cap == 0 || uint64(len(set)) < f.cap {
		set[key] = struct{}{}
	}
	return false
}
