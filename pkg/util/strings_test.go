package util

import (
	"reflect"
	"testing"
)

func TestSplitCommaSeparated(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"Ethernet1/1", 1},
		{"Ethernet1/1,Ethernet1/2", 2},
		{"Ethernet1/1, Ethernet1/2, Ethernet1/3", 3},
		{"Ethernet1/1,,", 1},
	}

	for _, tt := range tests {
		got := SplitCommaSeparated(tt.input)
		if len(got) != tt.want {
			t.Errorf("SplitCommaSeparated(%q) = %v (len %d), want len %d", tt.input, got, len(got), tt.want)
		}
	}
}

func TestIndentLines(t *testing.T) {
	got := IndentLines([]string{"mtu 9216", "no shutdown"}, "  ")
	want := []string{"  mtu 9216", "  no shutdown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IndentLines() = %q, want %q", got, want)
	}
	if got := IndentLines(nil, "  "); len(got) != 0 {
		t.Errorf("IndentLines(nil) = %q, want empty", got)
	}
}
