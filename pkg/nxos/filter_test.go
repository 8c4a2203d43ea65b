package nxos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

func TestFilter_EmptyManifests(t *testing.T) {
	got, _, err := Filter(readTestdata(t, "running.cfg"), nil, nil)
	require.NoError(t, err)

	want := []string{
		"system default switchport",
		"",
		"vrf context management",
		"",
		"no system default switchport shutdown",
	}
	assert.Equal(t, want, got)
}

func TestFilter_ManagedInterfaceKept(t *testing.T) {
	got, report, err := Filter(readTestdata(t, "running.cfg"), ifaces(t, "Ethernet1/1: {managed: true}"), nil)
	require.NoError(t, err)

	want := []string{
		"system default switchport",
		"",
		"vrf context management",
		"",
		"interface Ethernet1/1",
		"  description Test interface",
		"  switchport mode trunk",
		"  switchport access vlan 1",
		"  switchport trunk allowed vlan 10,105",
		"  speed 40000",
		"  no negotiate auto",
		"",
		"no system default switchport shutdown",
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []ObjectRef{{ObjectInterface, "Ethernet1/1"}}, report.Preserved)
	assert.Contains(t, report.Removed, ObjectRef{ObjectInterface, "Ethernet1/2"})
}

func TestFilter_ManagedVLANKept(t *testing.T) {
	got, _, err := Filter(readTestdata(t, "running.cfg"), nil, vlans(t, "10: {managed: true}"))
	require.NoError(t, err)

	want := []string{
		"system default switchport",
		"",
		"vlan 10",
		"  name CSAIL-MAIN",
		"vrf context management",
		"",
		"no system default switchport shutdown",
	}
	assert.Equal(t, want, got)
}

func TestFilter_UnmanagedListedVLANRemoved(t *testing.T) {
	got, report, err := Filter(readTestdata(t, "running.cfg"), nil, vlans(t, "10: {name: CSAIL-MAIN}\n105: {managed: true}"))
	require.NoError(t, err)

	assert.NotContains(t, got, "vlan 10")
	assert.NotContains(t, got, "  name CSAIL-MAIN")
	assert.Contains(t, got, "vlan 105")
	assert.Contains(t, got, "  name MOC-BU-PUBLIC")
	assert.Equal(t, []ObjectRef{{ObjectVLAN, "105"}}, report.Preserved)
}

func TestFilter_Leaf(t *testing.T) {
	m := loadTestManifest(t, "leaf.yml")
	got, report, err := Filter(readTestdata(t, "leaf.cfg"), m.Interfaces, m.VLANs)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"version 10.3(2) Bios:version 05.47",
		"hostname leaf-1",
		"",
		"feature lacp",
		"feature vpc",
		"",
		"vlan 20",
		"  name STORAGE",
		"vrf context management",
		"  ip route 0.0.0.0/0 10.80.0.1",
		"",
		"interface breakout module 1 port 49 map 100g-4x",
		"",
		"interface Ethernet1/40",
		"  description do not touch",
		"  switchport access vlan 22",
		"",
		"interface mgmt0",
		"  vrf member management",
		"  ip address 10.80.3.1/20",
		"icam monitor scale",
		"",
		"line console",
		"line vty",
		"boot nxos bootflash:/nxos64-cs.10.3.2.F.bin",
		"no system default switchport shutdown",
	}, got)

	assert.Equal(t, map[string]int{
		RuleComment:         2,
		RuleVLANSummary:     1,
		RuleVLANStanza:      4,
		RuleBreakoutOwned:   1,
		RuleInterfaceHeader: 5,
		RuleSectionBody:     15,
		RuleBlankInDelete:   6,
	}, report.Dropped)
	assert.Equal(t, 34, report.DroppedTotal())
	assert.Equal(t, 60, report.LinesIn)
	assert.Equal(t, 26, report.LinesOut)

	assert.Equal(t, []ObjectRef{
		{ObjectVLAN, "20"},
		{ObjectInterface, "Ethernet1/40"},
	}, report.Preserved)
	assert.Equal(t, []ObjectRef{
		{ObjectVLAN, "10"},
		{ObjectVLAN, "21"},
		{ObjectVLAN, "22"},
		{ObjectVLAN, "105"},
		{ObjectBreakout, "Ethernet1/34"},
		{ObjectInterface, "port-channel1"},
		{ObjectInterface, "Ethernet1/1"},
		{ObjectInterface, "Ethernet1/2"},
		{ObjectInterface, "Ethernet1/3"},
		{ObjectInterface, "Vlan105"},
	}, report.Removed)
	assert.Equal(t, []ObjectRef{
		{ObjectInterface, "breakout module 1 port 49 map 100g-4x"},
		{ObjectInterface, "mgmt0"},
	}, report.Foreign)
}

func TestFilter_BreakoutOwnedRegardlessOfManaged(t *testing.T) {
	config := "interface breakout module 1 port 34 map 10g-4x\ninterface breakout module 1 port 35 map 10g-4x\nhostname x"
	got, _, err := Filter(config, ifaces(t, "Ethernet1/34: {managed: true}"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"interface breakout module 1 port 35 map 10g-4x", "hostname x"}, got)
}

func TestFilter_ExactNameMatch(t *testing.T) {
	// A managed sub-port does not protect its parent port, and vice versa
	config := "interface Ethernet1/34/1\n  mtu 9216\ninterface Ethernet1/34\n  shutdown\n"
	got, _, err := Filter(config, ifaces(t, "Ethernet1/34/1: {managed: true}"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"interface Ethernet1/34/1", "  mtu 9216"}, got)
}

func TestFilter_CommentsInsideKeptSection(t *testing.T) {
	config := "interface mgmt0\n! inline note\n  vrf member management\n"
	got, report, err := Filter(config, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"interface mgmt0", "  vrf member management"}, got)
	assert.Equal(t, 1, report.Dropped[RuleComment])
}

func TestFilter_CommentDoesNotEndDeletedSection(t *testing.T) {
	config := "interface Ethernet1/9\n  shutdown\n!\n  mtu 1500\nhostname x\n"
	got, _, err := Filter(config, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hostname x"}, got)
}

func TestFilter_BadVLANStanza(t *testing.T) {
	config := "vlan 1,10\nvlan 10\n  name ten\nvlan configuration 10\n"
	_, _, err := Filter(config, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrParse))

	var pe *util.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "vlan configuration 10", pe.Input)
	assert.Contains(t, err.Error(), "line 4")
}

func TestFilter_NeverReorders(t *testing.T) {
	config := readTestdata(t, "leaf.cfg")
	m := loadTestManifest(t, "leaf.yml")
	got, _, err := Filter(config, m.Interfaces, m.VLANs)
	require.NoError(t, err)

	// Output must be a subsequence of the input
	in := splitLines(config)
	i := 0
	for _, line := range got {
		for i < len(in) && in[i] != line {
			i++
		}
		require.Less(t, i, len(in), "line %q out of order", line)
		i++
	}
}

// Each rule is exercised on its own against a prepared scanner.
func TestFilterRules(t *testing.T) {
	newScan := func(state FilterState) *filterScan {
		return &filterScan{
			ifaces: ifaces(t, "Ethernet1/1: {managed: true}\nEthernet1/2: {}\nEthernet1/34: {fanout: {type: quad, speed: 25G}}"),
			vlans:  vlans(t, "10: {managed: true}\n20: {name: twenty}"),
			state:  state,
			report: &FilterReport{Dropped: map[string]int{}},
		}
	}

	tests := []struct {
		name        string
		rule        func(*filterScan, string) (verdict, error)
		state       FilterState
		seenSummary bool
		line        string
		want        verdict
		wantState   FilterState
	}{
		{"comment dropped in keep", ruleComment, StateKeep, false, "!Command", verdictDrop, StateKeep},
		{"comment dropped in delete", ruleComment, StateDeleteSection, false, "!", verdictDrop, StateDeleteSection},
		{"non-comment passes", ruleComment, StateKeep, false, "hostname", verdictNext, StateKeep},

		{"blank in delete", ruleBlankInDelete, StateDeleteSection, false, "", verdictDrop, StateDeleteSection},
		{"blank in keep", ruleBlankInDelete, StateKeep, false, "", verdictNext, StateKeep},

		{"unindented resets", ruleSectionStart, StateDeleteSection, false, "hostname", verdictNext, StateKeep},
		{"indented keeps state", ruleSectionStart, StateDeleteSection, false, "  mtu 1500", verdictNext, StateDeleteSection},

		{"breakout owned", ruleBreakoutOwned, StateKeep, false, "interface breakout module 1 port 34 map 10g-4x", verdictDrop, StateKeep},
		{"breakout not owned", ruleBreakoutOwned, StateKeep, false, "interface breakout module 1 port 35 map 10g-4x", verdictNext, StateKeep},

		{"foreign interface", ruleInterfaceHeader, StateKeep, false, "interface mgmt0", verdictEmit, StateKeep},
		{"managed interface", ruleInterfaceHeader, StateKeep, false, "interface Ethernet1/1", verdictEmit, StateKeep},
		{"unmanaged interface", ruleInterfaceHeader, StateKeep, false, "interface Ethernet1/2", verdictDrop, StateDeleteSection},
		{"unknown interface", ruleInterfaceHeader, StateKeep, false, "interface port-channel9", verdictDrop, StateDeleteSection},
		{"not an interface", ruleInterfaceHeader, StateKeep, false, "hostname", verdictNext, StateKeep},

		{"first vlan line", ruleVLANSummary, StateKeep, false, "vlan 1,10", verdictDrop, StateKeep},
		{"later vlan line", ruleVLANSummary, StateKeep, true, "vlan 10", verdictNext, StateKeep},

		{"managed vlan", ruleVLANStanza, StateKeep, true, "vlan 10", verdictEmit, StateKeep},
		{"listed vlan", ruleVLANStanza, StateKeep, true, "vlan 20", verdictDrop, StateDeleteSection},
		{"unlisted vlan", ruleVLANStanza, StateKeep, true, "vlan 30", verdictDrop, StateDeleteSection},

		{"body in keep", ruleSectionBody, StateKeep, false, "  mtu 1500", verdictEmit, StateKeep},
		{"body in delete", ruleSectionBody, StateDeleteSection, false, "  mtu 1500", verdictDrop, StateDeleteSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScan(tt.state)
			s.seenSummary = tt.seenSummary
			got, err := tt.rule(s, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, s.state)
		})
	}
}

func TestFilterState_String(t *testing.T) {
	assert.Equal(t, "keep", StateKeep.String())
	assert.Equal(t, "delete", StateDeleteSection.String())
}

func TestFilter_NilManifestsMatchEmpty(t *testing.T) {
	config := readTestdata(t, "leaf.cfg")
	a, _, err := Filter(config, nil, nil)
	require.NoError(t, err)
	b, _, err := Filter(config, manifest.NewInterfaceManifest(), manifest.NewVLANManifest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
