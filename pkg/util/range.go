package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExpandVLANRange expands VLAN range notation keeping the left-to-right
// order of its tokens. Ranges expand in place; nothing is sorted or removed.
// Empty tokens and IDs outside 1-4094 are rejected.
//
//	"5-8,10,3" -> [5, 6, 7, 8, 10, 3]
func ExpandVLANRange(spec string) ([]int, error) {
	var result []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, NewParseError(spec, part, "empty range token")
		}
		values, err := expandToken(spec, part)
		if err != nil {
			return nil, err
		}
		result = append(result, values...)
	}
	return result, nil
}

// expandToken expands a single "n" or "first-last" token.
func expandToken(spec, part string) ([]int, error) {
	if !strings.Contains(part, "-") {
		val, err := strconv.Atoi(part)
		if err != nil {
			return nil, NewParseError(spec, part, "invalid value")
		}
		if err := ValidateVLANID(val); err != nil {
			return nil, NewParseError(spec, part, err.Error())
		}
		return []int{val}, nil
	}

	rangeParts := strings.SplitN(part, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
	if err != nil {
		return nil, NewParseError(spec, part, "invalid start value")
	}
	end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
	if err != nil {
		return nil, NewParseError(spec, part, "invalid end value")
	}
	if start > end {
		return nil, NewParseError(spec, part, fmt.Sprintf("start value %d greater than end value %d", start, end))
	}
	for _, bound := range []int{start, end} {
		if err := ValidateVLANID(bound); err != nil {
			return nil, NewParseError(spec, part, err.Error())
		}
	}

	values := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		values = append(values, i)
	}
	return values, nil
}

// CompactRange compacts a list of integers into range notation
// [1, 2, 3, 5, 7, 8, 9] -> "1-3,5,7-9"
func CompactRange(values []int) string {
	if len(values) == 0 {
		return ""
	}

	// Sort and deduplicate
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	sorted = dedupInts(sorted)

	var parts []string
	start := sorted[0]
	end := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == end+1 {
			end = sorted[i]
		} else {
			parts = append(parts, formatRange(start, end))
			start = sorted[i]
			end = sorted[i]
		}
	}
	parts = append(parts, formatRange(start, end))

	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	result := []int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			result = append(result, sorted[i])
		}
	}
	return result
}

// JoinInts joins integers with sep, keeping their order.
func JoinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
