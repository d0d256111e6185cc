package ref

import (
	"errors"
	"strings"
	"testing"
)

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 1},
		{"B", 2},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"BA", 53},
		{"ZZ", 702},
		{"AAA", 703},
		{"a", 1}, // lowercase accepted
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := ColumnToIndex(tt.letters)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnRoundTrip(t *testing.T) {
	for n := 1; n <= 1000; n++ {
		letters := IndexToColumn(n)
		got, err := ColumnToIndex(letters)
		if err != nil {
			t.Fatalf("ColumnToIndex(%q): %v", letters, err)
		}
		if got != n {
			t.Fatalf("round trip failed for %d: got %q -> %d", n, letters, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a1", "A1"},
		{"$A$1", "A1"},
		{"$ab12", "AB12"},
		{" B2 ", "B2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	for _, in := range []string{"", "A", "12", "1A", "A1B", "A-1", "TOTAL"} {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			var merr *MalformedReferenceError
			if !errors.As(err, &merr) {
				t.Fatalf("expected MalformedReferenceError, got %v", err)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	col, row, err := Split("$BC$42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != 55 || row != 42 {
		t.Errorf("got (%d, %d), want (55, 42)", col, row)
	}
}

func TestExpandRangeRowMajor(t *testing.T) {
	refs, err := ExpandRange("A1", "C3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "A1,B1,C1,A2,B2,C2,A3,B3,C3"
	if got := strings.Join(refs, ","); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExpandRangeCornerOrderIndependent(t *testing.T) {
	corners := [][2]string{
		{"A1", "C3"},
		{"C3", "A1"},
		{"A3", "C1"},
		{"C1", "A3"},
	}
	want, _ := ExpandRange("A1", "C3")
	for _, c := range corners {
		got, err := ExpandRange(c[0], c[1])
		if err != nil {
			t.Fatalf("ExpandRange(%s, %s): %v", c[0], c[1], err)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("ExpandRange(%s, %s) = %v, want %v", c[0], c[1], got, want)
		}
	}
}

func TestExpandRangeSingleCell(t *testing.T) {
	refs, err := ExpandRange("d4", "$D$4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 1 || refs[0] != "D4" {
		t.Errorf("got %v, want [D4]", refs)
	}
}

func TestIsCellRef(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A1", true},
		{"$A$1", true},
		{"AB12", true},
		{"ABC123", true},
		{"abcd1", false}, // four letters is a name
		{"A", false},
		{"1A", false},
		{"TOTAL", false},
		{"A1B", false},
		{"_x1", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsCellRef(tt.in); got != tt.want {
				t.Errorf("IsCellRef(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
