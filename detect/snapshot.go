// Package detect implements the two non-termination detectors that run
// alongside bf.Interpreter: the Full-State Cycle Detector (FSCD) and the
// Loop Span Detector (LSD). Both are sound — a positive verdict is always
// correct — and neither mutates interpreter state.
package detect

import (
	"strconv"
	"strings"
)

// MemorySnapshot is a pair (tape prefix, memory pointer) compared under
// infinite-zero-extension semantics: two snapshots are equal iff, treating
// both tapes as zero-padded to infinity, the full tapes and pointers match.
// Equality is insensitive to the physical allocated length of either tape.
type MemorySnapshot struct {
	Prefix []uint8
	MP     int
}

// NewSnapshot builds the canonical Memory Snapshot for a tape of the given
// allocated cells and memory pointer: the prefix runs through the last
// non-zero cell or through mp, whichever is longer, so that a touched-but
// still-zero region up to the pointer is preserved in the canonical form.
func NewSnapshot(cells []uint8, mp int) MemorySnapshot {
	lastNonZero := -1
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] != 0 {
			lastNonZero = i
			break
		}
	}
	length := lastNonZero + 1
	if mp+1 > length {
		length = mp + 1
	}

	prefix := make([]uint8, length)
	copy(prefix, cells)
	return MemorySnapshot{Prefix: prefix, MP: mp}
}

// Equal reports whether two snapshots represent the same infinite
// zero-padded tape and the same memory pointer.
func (s MemorySnapshot) Equal(o MemorySnapshot) bool {
	if s.MP != o.MP {
		return false
	}
	return equalZeroPadded(s.Prefix, o.Prefix)
}

// Key returns a canonical string encoding suitable for use as a map key
// when testing set membership. Key encodes Prefix as stored, so equal
// snapshots produce equal keys when both were built by NewSnapshot, whose
// prefix is canonical.
func (s MemorySnapshot) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.MP))
	b.WriteByte(':')
	for _, c := range s.Prefix {
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

const hexDigits = "0123456789abcdef"

// equalZeroPadded compares two byte slices as if each were extended with
// an infinite run of trailing zeros.
func equalZeroPadded(a, b []uint8) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv uint8
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return false
		}
	}
	return true
}
