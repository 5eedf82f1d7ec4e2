package detect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshotEqualIgnoresAllocatedLength(t *testing.T) {
	a := NewSnapshot([]uint8{1, 0, 0}, 0)
	b := NewSnapshot([]uint8{1}, 0)

	if !a.Equal(b) {
		t.Errorf("Equal(%v, %v) = false, want true (trailing zeros are insignificant)", a, b)
	}
	if a.Key() != b.Key() {
		t.Errorf("Key() differs for equal snapshots: %q vs %q", a.Key(), b.Key())
	}
}

func TestSnapshotEqualRequiresSamePointer(t *testing.T) {
	a := NewSnapshot([]uint8{1}, 0)
	b := NewSnapshot([]uint8{1}, 1)

	if a.Equal(b) {
		t.Errorf("Equal(%v, %v) = true, want false (pointers differ)", a, b)
	}
}

func TestNewSnapshotCanonicalForm(t *testing.T) {
	cases := []struct {
		name  string
		cells []uint8
		mp    int
		want  MemorySnapshot
	}{
		{
			name:  "pointer extends past last non-zero cell",
			cells: []uint8{1, 0, 0},
			mp:    2,
			want:  MemorySnapshot{Prefix: []uint8{1, 0, 0}, MP: 2},
		},
		{
			name:  "trailing zeros beyond pointer are trimmed",
			cells: []uint8{1, 0, 0},
			mp:    0,
			want:  MemorySnapshot{Prefix: []uint8{1}, MP: 0},
		},
		{
			name:  "all-zero tape still covers the pointer",
			cells: []uint8{0, 0},
			mp:    0,
			want:  MemorySnapshot{Prefix: []uint8{0}, MP: 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NewSnapshot(c.cells, c.mp)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("NewSnapshot(%v, %d) mismatch (-want +got):\n%s", c.cells, c.mp, diff)
			}
		})
	}
}

func TestSnapshotDiffersOnValue(t *testing.T) {
	a := NewSnapshot([]uint8{1}, 0)
	b := NewSnapshot([]uint8{2}, 0)
	if a.Equal(b) {
		t.Errorf("Equal(%v, %v) = true, want false", a, b)
	}
}
