package detect

import "nickandperla.net/bbdetect/bf"

// LSD is the Loop Span Detector. Where FSCD requires an exact repeated
// full-memory state, LSD recognizes a narrower but still sound pattern:
// the same loop body producing the same local shape — same touched-region
// values, same net pointer displacement, same boundary extension — on two
// different executions. Because the body is deterministic, an identical
// shape at the same loop id means the next execution will produce the
// identical shape again, forever.
//
// Active recorders are kept per loop id as a stack so that self-reentrant
// or mutually nested loop activations are each tracked independently.
// Subhistory is cleared on LoopBroken: once a loop body exits normally
// instead of looping back, its prior span history no longer predicts
// anything about a future reentry, since the surrounding program state
// that led to producing those particular spans may have moved on. FSCD
// does not share this rule; see fscd.go.
type LSD struct {
	active     map[int][]*SpanRecorder
	subhistory map[int][]LoopSpan
	cap        uint64
}

// NewLSD returns an LSD with the given per-loop subhistory cap (0 = no
// cap).
func NewLSD(perLoopCap uint64) *LSD {
	return &LSD{
		active:     make(map[int][]*SpanRecorder),
		subhistory: make(map[int][]LoopSpan),
		cap:        perLoopCap,
	}
}

// Track updates every currently active recorder, across every loop id,
// with the memory pointer value observed after the instruction that was
// just executed. Must be called once per Step, regardless of the event
// that step raised, so that every cell touched anywhere in a loop body is
// reflected in its eventual span.
func (l *LSD) Track(mp int) {
	for _, stack := range l.active {
		for _, rec := range stack {
			rec.track(mp)
		}
	}
}

// Observe feeds one interpreter event to the detector, returning true iff
// this event proves the program non-halting. entryTape is a frozen
// snapshot of the tape at the moment of the event (LoopEntered and
// LoopBackEdge both start a fresh recorder whose entry state is the
// current tape and memory pointer).
func (l *LSD) Observe(ev bf.Event, entryTape []uint8, mp int) bool {
	switch ev.Kind {
	case bf.LoopEntered:
		l.push(ev.LoopID, entryTape, mp)
		return false

	case bf.LoopBackEdge:
		rec := l.pop(ev.LoopID)
		if rec == nil {
			l.push(ev.LoopID, entryTape, mp)
			return false
		}

		span := rec.finalize(mp)
		hit := l.matches(ev.LoopID, span)
		l.remember(ev.LoopID, span)
		l.push(ev.LoopID, entryTape, mp)
		return hit

	case bf.LoopBroken:
		l.pop(ev.LoopID)
		delete(l.subhistory, ev.LoopID)
		return false

	default:
		return false
	}
}

func (l *LSD) push(loopID int, entryTape []uint8, mp int) {
	l.active[loopID] = append(l.active[loopID], newSpanRecorder(entryTape, mp))
}

func (l *LSD) pop(loopID int) *SpanRecorder {
	stack := l.active[loopID]
	if len(stack) == 0 {
		return nil
	}
	top := stack[len(stack)-1]
	l.active[loopID] = stack[:len(stack)-1]
	return top
}

func (l *LSD) matches(loopID int, span LoopSpan) bool {
	for _, prior := range l.subhistory[loopID] {
		if prior.Equal(span) {
			return true
		}
	}
	return false
}

func (l *LSD) remember(loopID int, span LoopSpan) {
	if l.cap != 0 && uint64(len(l.subhistory[loopID])) >= l.cap {
		return
	}
	l.subhistory[loopID] = append(l.subhistory[loopID], span)
}
