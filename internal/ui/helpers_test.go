package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer string entirely", 10, "a longe..."},
		{"Fahrräder überall", 10, "Fahrräd..."},
		{"abc", 2, "ab"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.limit, got, tt.want)
		}
	}
}

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		index, length, size int
		wantStart, wantEnd  int
	}{
		{0, 25, 10, 0, 10},
		{9, 25, 10, 0, 10},
		{10, 25, 10, 10, 20},
		{24, 25, 10, 20, 25},
		{0, 3, 10, 0, 3},
		{0, 0, 10, 0, 0},
		{5, 25, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := windowBounds(tt.index, tt.length, tt.size)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("windowBounds(%d, %d, %d) = %d, %d; want %d, %d",
				tt.index, tt.length, tt.size, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}
