// Package manifest defines the declarative switch manifest (interfaces and
// VLANs) and loads it from YAML host variables, keeping document order.
package manifest

import (
	"github.com/samber/lo"

	"github.com/newtron-network/nxcfg/pkg/util"
)

// Port modes accepted by the "portmode" field
const (
	PortModeAccess = "access"
	PortModeTrunk  = "trunk"
	PortModeHybrid = "hybrid"
)

// LACP rates accepted by the "lacp-rate" field
const (
	LACPRateFast   = "fast"
	LACPRateNormal = "normal"
)

// Fanout types accepted by "fanout.type"
const (
	FanoutSingle = "single"
	FanoutDual   = "dual"
	FanoutQuad   = "quad"
)

// Manifest is the desired state of one switch.
type Manifest struct {
	// Device is a label for logs and audit records; the loader sets it
	// from the file name when the document does not name one.
	Device     string
	Interfaces *InterfaceManifest
	VLANs      *VLANManifest
}

// New returns an empty manifest
func New(device string) *Manifest {
	return &Manifest{
		Device:     device,
		Interfaces: NewInterfaceManifest(),
		VLANs:      NewVLANManifest(),
	}
}

// InterfaceEntry is the desired configuration of one interface.
// Pointer fields distinguish "absent" from the zero value; only present
// fields produce commands.
type InterfaceEntry struct {
	Name string `yaml:"-"`

	Description *string `yaml:"description"`
	Enabled     *bool   `yaml:"enabled"`
	MTU         *int    `yaml:"mtu"`
	Autoneg     *bool   `yaml:"autoneg"`
	Speed       *string `yaml:"speed"`
	FEC         *bool   `yaml:"fec"`

	// L3
	IP4 *string `yaml:"ip4"`
	IP6 *string `yaml:"ip6"`

	STP *STPSettings `yaml:"stp"`

	// L2
	PortMode *string   `yaml:"portmode"`
	Tagged   *VLANList `yaml:"tagged"`
	Untagged *int      `yaml:"untagged"`

	// Aggregation
	LAGMembers         MemberList `yaml:"lag-members"`
	LACPMembersActive  MemberList `yaml:"lacp-members-active"`
	LACPMembersPassive MemberList `yaml:"lacp-members-passive"`
	LACPRate           *string    `yaml:"lacp-rate"`
	MLAG               *int       `yaml:"mlag"`

	Fanout *Fanout `yaml:"fanout"`

	// Managed marks an interface whose existing configuration must be left
	// in place.
	Managed bool `yaml:"managed"`
}

// STPSettings holds spanning-tree port options
type STPSettings struct {
	EdgePort  bool `yaml:"edgeport"`
	BPDUGuard bool `yaml:"bpduguard"`
	RootGuard bool `yaml:"rootguard"`
	LoopGuard bool `yaml:"loopguard"`
}

// Fanout describes a breakout of one physical port into sub-ports
type Fanout struct {
	Type  string `yaml:"type"`  // single, dual, quad
	Speed string `yaml:"speed"` // e.g. 25G
}

// VLANEntry is the desired configuration of one VLAN.
type VLANEntry struct {
	ID      int    `yaml:"-"`
	Name    string `yaml:"name"`
	Managed bool   `yaml:"managed"`

	// Description is accepted for inventory compatibility; it produces no
	// commands.
	Description string `yaml:"description,omitempty"`
}

// IsL3 reports whether the entry carries an IPv4 or IPv6 address
func (e *InterfaceEntry) IsL3() bool {
	return e.IP4 != nil || e.IP6 != nil
}

// HasMembers reports whether any member list is present
func (e *InterfaceEntry) HasMembers() bool {
	return len(e.AllMembers()) > 0
}

// AllMembers returns lag-members, then lacp-members-active, then
// lacp-members-passive, in list order.
func (e *InterfaceEntry) AllMembers() []string {
	return lo.Flatten([][]string{e.LAGMembers, e.LACPMembersActive, e.LACPMembersPassive})
}

// InterfaceManifest is an insertion-ordered set of interface entries keyed
// by exact interface name.
type InterfaceManifest struct {
	util.OrderedMap[string, *InterfaceEntry]
}

// NewInterfaceManifest returns an empty interface manifest
func NewInterfaceManifest() *InterfaceManifest {
	return &InterfaceManifest{}
}

// Add appends (or replaces) an entry, setting its Name
func (m *InterfaceManifest) Add(name string, e *InterfaceEntry) {
	if e == nil {
		e = &InterfaceEntry{}
	}
	e.Name = name
	m.Set(name, e)
}

// Lookup returns the entry for name; a nil manifest has no entries
func (m *InterfaceManifest) Lookup(name string) (*InterfaceEntry, bool) {
	if m == nil {
		return nil, false
	}
	return m.Get(name)
}

// Entries returns the entries in manifest order
func (m *InterfaceManifest) Entries() []*InterfaceEntry {
	if m == nil {
		return nil
	}
	out := make([]*InterfaceEntry, 0, m.Len())
	m.Range(func(_ string, e *InterfaceEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// VLANManifest is an insertion-ordered set of VLAN entries keyed by ID.
type VLANManifest struct {
	util.OrderedMap[int, *VLANEntry]
}

// NewVLANManifest returns an empty VLAN manifest
func NewVLANManifest() *VLANManifest {
	return &VLANManifest{}
}

// Add appends (or replaces) an entry, setting its ID
func (m *VLANManifest) Add(id int, e *VLANEntry) {
	if e == nil {
		e = &VLANEntry{}
	}
	e.ID = id
	m.Set(id, e)
}

// Lookup returns the entry for id; a nil manifest has no entries
func (m *VLANManifest) Lookup(id int) (*VLANEntry, bool) {
	if m == nil {
		return nil, false
	}
	return m.Get(id)
}

// Entries returns the entries in manifest order
func (m *VLANManifest) Entries() []*VLANEntry {
	if m == nil {
		return nil
	}
	out := make([]*VLANEntry, 0, m.Len())
	m.Range(func(_ int, e *VLANEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}
