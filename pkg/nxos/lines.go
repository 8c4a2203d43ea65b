package nxos

import "strings"

// splitLines splits configuration text into lines. A trailing newline does
// not produce an empty last line, and carriage returns are stripped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return strings.Split(text, "\n")
}

// isIndented reports whether line continues the preceding section
func isIndented(line string) bool {
	return strings.HasPrefix(line, " ")
}
