package nxos

import (
	"strconv"
	"strings"

	"github.com/newtron-network/nxcfg/pkg/util"
)

// vlanPrefix starts both the VLAN summary line and VLAN stanza headers
const vlanPrefix = "vlan "

// DefaultVLAN is always carried in the generated summary line
const DefaultVLAN = "1"

// ParseVLANSummary returns the VLAN IDs listed on the summary line of an
// existing configuration. Only the first line starting with "vlan " is
// consulted. IDs come back in token order, ranges expanded in place; the
// list is neither sorted nor deduplicated. A configuration without a
// summary line yields an empty list.
func ParseVLANSummary(config string) ([]string, error) {
	for _, line := range splitLines(config) {
		if !strings.HasPrefix(line, vlanPrefix) {
			continue
		}
		ids, err := ExpandVLANList(strings.TrimPrefix(line, vlanPrefix))
		if err != nil {
			return nil, err
		}
		util.WithOperation("parse-vlans").Debugf("summary line %q: %d vlans", line, len(ids))
		return ids, nil
	}
	return []string{}, nil
}

// ExpandVLANList expands a compact VLAN list ("5-8,10,15-17") into ID
// strings in token order.
func ExpandVLANList(list string) ([]string, error) {
	ints, err := util.ExpandVLANRange(list)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(ints))
	for i, id := range ints {
		ids[i] = strconv.Itoa(id)
	}
	return ids, nil
}

// VLANNames returns the names set in the VLAN stanzas of an existing
// configuration, keyed by VLAN ID. The summary line is skipped, as are
// stanzas without a name command or with a non-integer ID.
func VLANNames(config string) map[int]string {
	names := make(map[int]string)
	current, inStanza, seenSummary := 0, false, false
	for _, line := range splitLines(config) {
		if !isIndented(line) {
			inStanza = false
			if !strings.HasPrefix(line, vlanPrefix) {
				continue
			}
			if !seenSummary {
				seenSummary = true
				continue
			}
			id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, vlanPrefix)))
			if err != nil {
				continue
			}
			current, inStanza = id, true
			continue
		}
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "name "); ok && inStanza {
			names[current] = name
		}
	}
	return names
}
