package detect

import (
	"bytes"
	"strconv"
	"strings"
)

// ExtensionSide names which side of a loop's touched region its extension
// values were captured from, per the body's net displacement.
type ExtensionSide int

const (
	None ExtensionSide = iota
	Right
	Left
)

func (s ExtensionSide) String() string {
	switch s {
	case Right:
		return "Right"
	case Left:
		return "Left"
	default:
		return "None"
	}
}

// LoopSpan describes one execution of one loop body: the cells it touched
// (valued at body entry), how far the memory pointer moved, and the
// entry-time values of the cells its future depends on beyond the touched
// region. Two spans with identical fields are considered equal regardless
// of the absolute tape offset at which they occurred — this local-shape
// comparison is what lets `+[>+]` be recognized as non-halting even though
// every iteration touches a different pair of absolute cells.
type LoopSpan struct {
	Touched       []uint8
	Displacement  int
	ExtensionSide ExtensionSide
	Extension     []uint8
}

// Equal reports whether two spans describe the same shape: same
// displacement, same extension side, same touched-region values, and same
// extension values. Extension slices are already canonicalized at
// construction time (the Right-side non-zero prefix has its implicit
// infinite zero tail trimmed away), so plain slice equality is correct
// here; equalZeroPadded is used anyway to state the intent from spec.md
// explicitly rather than relying on that invariant silently.
func (s LoopSpan) Equal(o LoopSpan) bool {
	if s.Displacement != o.Displacement || s.ExtensionSide != o.ExtensionSide {
		return false
	}
	if !bytes.Equal(s.Touched, o.Touched) {
		return false
	}
	if s.ExtensionSide == Right {
		return equalZeroPadded(s.Extension, o.Extension)
	}
	return bytes.Equal(s.Extension, o.Extension)
}

// Key returns a canonical string encoding of the span, suitable as a map
// key for subhistory membership tests.
func (s LoopSpan) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Displacement))
	b.WriteByte(':')
	b.WriteString(s.ExtensionSide.String())
	b.WriteByte('|')
	for _, c := range s.Touched {
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	b.WriteByte('|')
	for _, c := range s.Extension {
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

// SpanRecorder is the active structure maintained while one loop body
// executes. It freezes a tape snapshot at entry and tracks the min/max
// absolute memory-pointer values observed during the body, which together
// with the entry and exit pointers determine the finalized LoopSpan.
type SpanRecorder struct {
	entryTape    []uint8
	entryPointer int
	min, max     int
}

// newSpanRecorder starts recording a loop body entered with the tape in
// the state entryTape (a frozen copy) and the memory pointer at
// entryPointer.
func newSpanRecorder(entryTape []uint8, entryPointer int) *SpanRecorder {
	return &SpanRecorder{
		entryTape:    entryTape,
		entryPointer: entryPointer,
		min:          entryPointer,
		max:          entryPointer,
	}
}

// track updates the recorder's observed pointer range. Called after every
// instruction the body executes, not just bracket events, so any cell
// touched anywhere in the body is captured.
func (r *SpanRecorder) track(mp int) {
	if mp < r.min {
		r.min = mp
	}
	if mp > r.max {
		r.max = mp
	}
}

// finalize produces the LoopSpan for this body execution, given the
// memory pointer at the back-edge that ends it.
func (r *SpanRecorder) finalize(exitMP int) LoopSpan {
	displacement := exitMP - r.entryPointer
	touched := sliceInclusive(r.entryTape, r.min, r.max)

	var side ExtensionSide
	var extension []uint8
	switch {
	case displacement > 0:
		side = Right
		extension = rightExtension(r.entryTape, r.max+1)
	case displacement < 0:
		side = Left
		extension = sliceInclusive(r.entryTape, 0, r.min-1)
	default:
		side = None
	}

	return LoopSpan{
		Touched:       touched,
		Displacement:  displacement,
		ExtensionSide: side,
		Extension:     extension,
	}
}

// sliceInclusive returns tape[lo..hi] inclusive, reading zero for any
// index past tape's allocated length. Returns an empty slice if hi < lo.
func sliceInclusive(tape []uint8, lo, hi int) []uint8 {
	if hi < lo {
		return []uint8{}
	}
	out := make([]uint8, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if i >= 0 && i < len(tape) {
			out[i-lo] = tape[i]
		}
	}
	return out
}

// rightExtension returns the longest non-zero-terminated prefix of
// tape[from:], i.e. the Right extension with its implicit infinite zero
// tail trimmed away.
func rightExtension(tape []uint8, from int) []uint8 {
	if from >= len(tape) {
		return []uint8{}
	}
	s := tape[from:]
	last := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != 0 {
			last = i
			break
		}
	}
	if last == -1 {
		return []uint8{}
	}
	out := make([]uint8, last+1)
	copy(out, s[:last+1])
	return out
}
