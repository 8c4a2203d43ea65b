package manifest

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/newtron-network/nxcfg/pkg/util"
)

var (
	validPortModes  = []string{PortModeAccess, PortModeTrunk, PortModeHybrid}
	validLACPRates  = []string{LACPRateFast, LACPRateNormal}
	validFanoutType = []string{FanoutSingle, FanoutDual, FanoutQuad}
)

// ValidateOptions controls manifest validation
type ValidateOptions struct {
	// Lenient accepts unrecognized portmode, lacp-rate and fanout type
	// values, which a lenient reconciliation skips with a warning.
	Lenient bool
}

// Validate checks the manifest for values the generator would reject or
// that the switch would refuse. All problems are reported together.
func (m *Manifest) Validate() error {
	return m.ValidateWith(ValidateOptions{})
}

// ValidateWith is Validate with options
func (m *Manifest) ValidateWith(opts ValidateOptions) error {
	v := &util.ValidationBuilder{}

	for _, e := range m.VLANs.Entries() {
		validateVLAN(v, e)
	}
	for _, e := range m.Interfaces.Entries() {
		validateInterface(v, e, opts)
	}
	validateMembership(v, m.Interfaces)

	return v.Build()
}

func validateVLAN(v *util.ValidationBuilder, e *VLANEntry) {
	obj := fmt.Sprintf("vlan %d", e.ID)
	v.AddErr(obj, util.ValidateVLANID(e.ID))
	if !e.Managed {
		v.Add(strings.TrimSpace(e.Name) != "", obj+": name is required unless managed")
	}
}

func validateInterface(v *util.ValidationBuilder, e *InterfaceEntry, opts ValidateOptions) {
	obj := "interface " + e.Name

	v.Add(!strings.ContainsAny(e.Name, "\n\r"), obj+": name must be a single line")

	if e.MTU != nil {
		v.AddErr(obj, util.ValidateMTU(*e.MTU))
	}
	if e.IP4 != nil {
		_, err := util.ParseIPv4Prefix(*e.IP4)
		v.AddErr(obj+": ip4", err)
	}
	if e.IP6 != nil {
		_, err := util.ParseIPv6Prefix(*e.IP6)
		v.AddErr(obj+": ip6", err)
	}
	if e.PortMode != nil && !opts.Lenient && !lo.Contains(validPortModes, *e.PortMode) {
		v.AddErrorf("%s: portmode %q must be one of %s", obj, *e.PortMode, strings.Join(validPortModes, ", "))
	}
	if e.LACPRate != nil && !opts.Lenient && !lo.Contains(validLACPRates, *e.LACPRate) {
		v.AddErrorf("%s: lacp-rate %q must be one of %s", obj, *e.LACPRate, strings.Join(validLACPRates, ", "))
	}
	if e.Tagged != nil {
		for _, id := range *e.Tagged {
			v.AddErr(obj+": tagged", util.ValidateVLANID(id))
		}
	}
	if e.Untagged != nil {
		v.AddErr(obj+": untagged", util.ValidateVLANID(*e.Untagged))
		mode := ""
		if e.PortMode != nil {
			mode = *e.PortMode
		}
		// A trunk port carries no untagged VLAN; the value is ignored.
		v.Add(lo.Contains(validPortModes, mode),
			obj+": untagged requires portmode access, trunk or hybrid")
	}
	if e.Fanout != nil {
		known := lo.Contains(validFanoutType, e.Fanout.Type)
		switch {
		case !known && !opts.Lenient:
			v.AddErrorf("%s: fanout type %q must be one of %s", obj, e.Fanout.Type, strings.Join(validFanoutType, ", "))
			v.Add(e.Fanout.Speed != "", obj+": fanout speed is required")
		case known:
			v.Add(e.Fanout.Speed != "", obj+": fanout speed is required")
		}
	}
	if e.MLAG != nil {
		v.Add(*e.MLAG >= 0, obj+": mlag group must not be negative")
	}
	for _, member := range e.AllMembers() {
		v.Add(member != "", obj+": empty member interface name")
		v.Add(member != e.Name, obj+": interface cannot be a member of itself")
	}
}

// validateMembership rejects a member interface claimed more than once,
// within one aggregate or across aggregates.
func validateMembership(v *util.ValidationBuilder, ifaces *InterfaceManifest) {
	var all []string
	for _, e := range ifaces.Entries() {
		all = append(all, e.AllMembers()...)
	}
	for _, dup := range lo.FindDuplicates(all) {
		v.AddErrorf("interface %s is listed as an aggregate member more than once", dup)
	}
}
