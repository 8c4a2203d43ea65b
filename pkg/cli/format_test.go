package cli

import (
	"strings"
	"testing"
)

func TestDotPad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "normal case",
			input:    "leaf-1.yml",
			width:    30,
			expected: "leaf-1.yml " + strings.Repeat(".", 19),
		},
		{
			name:     "name equals width minus one",
			input:    "abcde",
			width:    6,
			expected: "abcde",
		},
		{
			name:     "name longer than width",
			input:    "very-long-name",
			width:    5,
			expected: "very-long-name",
		},
		{
			name:     "empty string",
			input:    "",
			width:    10,
			expected: " " + strings.Repeat(".", 9),
		},
		{
			name:     "zero width",
			input:    "x",
			width:    0,
			expected: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DotPad(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("DotPad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestDotPad_ResultLength(t *testing.T) {
	result := DotPad("test", 20)
	if len(result) != 20 {
		t.Errorf("DotPad(%q, 20) len = %d, want 20", "test", len(result))
	}
}

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := colorEnabled
	SetColor(enabled)
	t.Cleanup(func() { SetColor(prev) })
}

func TestColorFunctions(t *testing.T) {
	withColor(t, true)

	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Green", Green, "\033[32m"},
		{"Yellow", Yellow, "\033[33m"},
		{"Red", Red, "\033[31m"},
		{"Cyan", Cyan, "\033[36m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("hello")
			if got != tt.prefix+"hello\033[0m" {
				t.Errorf("%s(\"hello\") = %q", tt.name, got)
			}
		})
	}
}

func TestColorDisabled(t *testing.T) {
	withColor(t, false)

	for _, fn := range []func(string) string{Green, Yellow, Red, Cyan, Bold, Dim} {
		if got := fn("plain"); got != "plain" {
			t.Errorf("color disabled: got %q, want %q", got, "plain")
		}
	}
	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-x\n+y"
	if got := ColorDiff(diff); got != diff {
		t.Errorf("ColorDiff with color disabled changed the text: %q", got)
	}
}

func TestColorDiff(t *testing.T) {
	withColor(t, true)

	diff := "--- running.cfg\n+++ generated.cfg\n@@ -1,2 +1,2 @@\n hostname leaf-1\n-vlan 1,10\n+vlan 1,10,20"
	lines := strings.Split(ColorDiff(diff), "\n")

	want := []string{
		Bold("--- running.cfg"),
		Bold("+++ generated.cfg"),
		Cyan("@@ -1,2 +1,2 @@"),
		" hostname leaf-1",
		Red("-vlan 1,10"),
		Green("+vlan 1,10,20"),
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
