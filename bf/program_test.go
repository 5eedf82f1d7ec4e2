package bf

import (
	"errors"
	"testing"
)

func TestParseStripsNonSignificantBytes(t *testing.T) {
	prog, err := Parse([]byte("+ + hello\n[->+<]"))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	if got, want := prog.String(), "++[->+<]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseMatchesBrackets(t *testing.T) {
	prog, err := Parse([]byte("+[->+<]-"))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	start := 1
	end := 6
	if prog.Instrs[start] != StartLoop || prog.Instrs[end] != EndLoop {
		t.Fatalf("expected brackets at %d and %d, got %v and %v", start, end, prog.Instrs[start], prog.Instrs[end])
	}
	if prog.Match[start] != end {
		t.Errorf("Match[%d] = %d, want %d", start, prog.Match[start], end)
	}
	if prog.Match[end] != start {
		t.Errorf("Match[%d] = %d, want %d", end, prog.Match[end], start)
	}
	for i, ins := range prog.Instrs {
		if ins != StartLoop && ins != EndLoop && prog.Match[i] != -1 {
			t.Errorf("Match[%d] = %d for non-bracket instruction %v, want -1", i, prog.Match[i], ins)
		}
	}
}

func TestParseNestedBrackets(t *testing.T) {
	prog, err := Parse([]byte("[[]]"))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	want := map[int]int{0: 3, 1: 2, 2: 1, 3: 0}
	for i, w := range want {
		if prog.Match[i] != w {
			t.Errorf("Match[%d] = %d, want %d", i, prog.Match[i], w)
		}
	}
}

func TestParseUnmatchedOpen(t *testing.T) {
	_, err := Parse([]byte("[["))
	if !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("Parse([[) error = %v, want wrapping ErrUnbalancedBrackets", err)
	}
}

func TestParseUnmatchedClose(t *testing.T) {
	_, err := Parse([]byte("]"))
	if !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("Parse(]) error = %v, want wrapping ErrUnbalancedBrackets", err)
	}
}

func TestParseUnbalancedNested(t *testing.T) {
	_, err := Parse([]byte("[[]"))
	if !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("Parse([[]) error = %v, want wrapping ErrUnbalancedBrackets", err)
	}
}

func TestProgramLen(t *testing.T) {
	prog, err := Parse([]byte("+++."))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if got, want := prog.Len(), 3; got != want {
		t.Errorf("Len() = %d, want %d (the '.' is not significant)", got, want)
	}
}
