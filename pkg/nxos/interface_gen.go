package nxos

import (
	"fmt"
	"strconv"

	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

// breakoutModes maps fanout types to the NX-OS breakout map suffix
var breakoutModes = map[string]string{
	manifest.FanoutSingle: "1x",
	manifest.FanoutDual:   "2x",
	manifest.FanoutQuad:   "4x",
}

// channelModes maps each member list to its channel-group mode
var channelModes = []struct {
	field string
	mode  string
	list  func(e *manifest.InterfaceEntry) []string
}{
	{"lag-members", "on", func(e *manifest.InterfaceEntry) []string { return e.LAGMembers }},
	{"lacp-members-active", "active", func(e *manifest.InterfaceEntry) []string { return e.LACPMembersActive }},
	{"lacp-members-passive", "passive", func(e *manifest.InterfaceEntry) []string { return e.LACPMembersPassive }},
}

// GenerateInterfaceConfig renders interface blocks for the manifest and
// serializes them.
func GenerateInterfaceConfig(ifaces *manifest.InterfaceManifest, opts Options) ([]string, error) {
	blocks, err := GenerateInterfaceBlocks(ifaces, opts)
	if err != nil {
		return nil, err
	}
	return blocks.Lines(), nil
}

// GenerateInterfaceBlocks translates every interface entry, in manifest
// order, into blocks. Member blocks referenced by an aggregate are created
// on first reference and shared by later references.
func GenerateInterfaceBlocks(ifaces *manifest.InterfaceManifest, opts Options) (*BlockSet, error) {
	g := &interfaceGen{blocks: NewBlockSet(), opts: opts}
	for _, e := range ifaces.Entries() {
		if err := g.generate(e); err != nil {
			return nil, err
		}
	}
	return g.blocks, nil
}

type interfaceGen struct {
	blocks *BlockSet
	opts   Options
}

// skip handles an unusable field value: an error in strict mode, a logged
// warning and no command in lenient mode.
func (g *interfaceGen) skip(err error) error {
	if !g.opts.Lenient {
		return err
	}
	util.WithDevice(g.opts.Device).Warnf("%v; command skipped", err)
	return nil
}

func (g *interfaceGen) generate(e *manifest.InterfaceEntry) error {
	obj := "interface " + e.Name

	if e.Fanout != nil {
		return g.breakout(e, obj)
	}

	header := InterfaceHeader(e.Name)
	g.blocks.Ensure(header)

	// Aggregate settings are copied onto member blocks
	var members []string
	if ClassifyInterface(e.Name) == KindPortChannel {
		for _, m := range e.AllMembers() {
			members = append(members, InterfaceHeader(m))
		}
	}
	own := func(line string) {
		g.blocks.Append(header, line)
	}
	shared := func(line string) {
		own(line)
		for _, m := range members {
			g.blocks.Append(m, line)
		}
	}

	if e.Description != nil {
		own("description " + *e.Description)
	}
	if e.Enabled != nil {
		own(pick(*e.Enabled, "no shutdown", "shutdown"))
	}
	if e.MTU != nil {
		shared("mtu " + strconv.Itoa(*e.MTU))
	}
	if e.Autoneg != nil {
		own(pick(*e.Autoneg, "speed auto", "no negotiate auto"))
	}
	if e.Speed != nil {
		own("speed " + *e.Speed)
	}
	if e.FEC != nil {
		own(pick(*e.FEC, "fec auto", "fec off"))
	}

	l3 := e.IsL3()
	if l3 && ClassifyInterface(e.Name) != KindVLAN {
		own("no switchport")
	}
	if e.IP4 != nil {
		own("ip address " + *e.IP4)
	}
	if e.IP6 != nil {
		own("ipv6 address " + *e.IP6)
	}

	if stp := e.STP; stp != nil {
		if stp.EdgePort {
			own("spanning-tree port type edge" + pick(stp.BPDUGuard, " bpduguard", ""))
		}
		if stp.RootGuard && !l3 {
			own("spanning-tree guard root")
		}
		if stp.LoopGuard {
			own(pick(l3, "spanning-tree loopguard", "spanning-tree guard loop"))
		}
	}

	if e.PortMode != nil {
		switch *e.PortMode {
		case manifest.PortModeAccess:
			shared("switchport mode access")
		case manifest.PortModeTrunk, manifest.PortModeHybrid:
			shared("switchport mode trunk")
		default:
			err := util.NewUnrecognizedValueError(obj, "portmode", *e.PortMode,
				manifest.PortModeAccess, manifest.PortModeTrunk, manifest.PortModeHybrid)
			if err := g.skip(err); err != nil {
				return err
			}
		}
	}

	if e.Tagged != nil {
		shared("switchport trunk allowed vlan " + util.JoinInts(*e.Tagged, ","))
	}

	if e.Untagged != nil {
		if e.PortMode == nil {
			return util.NewMissingFieldError(obj, "portmode", "untagged requires portmode access or hybrid")
		}
		id := strconv.Itoa(*e.Untagged)
		switch *e.PortMode {
		case manifest.PortModeHybrid:
			shared("switchport trunk native vlan " + id)
		case manifest.PortModeAccess:
			shared("switchport access vlan " + id)
		case manifest.PortModeTrunk:
			util.WithDevice(g.opts.Device).Debugf("%s: untagged %s ignored on a trunk port", obj, id)
		default:
			return util.NewMissingFieldError(obj, "portmode",
				fmt.Sprintf("untagged requires a recognized portmode, not %q", *e.PortMode))
		}
	}

	channel := ChannelNumber(e.Name)
	for _, cm := range channelModes {
		for _, m := range cm.list(e) {
			g.blocks.Append(InterfaceHeader(m), "channel-group "+channel+" mode "+cm.mode)
		}
	}

	if e.LACPRate != nil {
		switch *e.LACPRate {
		case manifest.LACPRateFast, manifest.LACPRateNormal:
			for _, m := range e.AllMembers() {
				g.blocks.Append(InterfaceHeader(m), "lacp rate "+*e.LACPRate)
			}
		default:
			err := util.NewUnrecognizedValueError(obj, "lacp-rate", *e.LACPRate,
				manifest.LACPRateFast, manifest.LACPRateNormal)
			if err := g.skip(err); err != nil {
				return err
			}
		}
	}

	if e.MLAG != nil && *e.MLAG != 0 {
		own("vpc " + strconv.Itoa(*e.MLAG))
	}

	return nil
}

// breakout emits the body-less breakout header for a fanout entry. No
// other field of the entry is translated.
func (g *interfaceGen) breakout(e *manifest.InterfaceEntry, obj string) error {
	mode, ok := breakoutModes[e.Fanout.Type]
	if !ok {
		return g.skip(util.NewUnrecognizedValueError(obj, "fanout.type", e.Fanout.Type,
			manifest.FanoutSingle, manifest.FanoutDual, manifest.FanoutQuad))
	}
	if e.Fanout.Speed == "" {
		return util.NewMissingFieldError(obj, "fanout.speed", "")
	}
	g.blocks.Ensure(fmt.Sprintf("interface breakout module 1 port %s map %s-%s", FanoutPort(e.Name), e.Fanout.Speed, mode))
	return nil
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
