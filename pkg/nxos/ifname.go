package nxos

import (
	"regexp"
	"strings"
)

// InterfaceKind classifies an interface name by its prefix
type InterfaceKind int

const (
	// KindOther is any interface the reconciler does not own (mgmt0,
	// loopbacks, tunnels). Its sections always pass through.
	KindOther InterfaceKind = iota
	KindEthernet
	KindPortChannel
	KindVLAN
)

// Recognized interface name prefixes
const (
	PrefixEthernet    = "Ethernet"
	PrefixPortChannel = "port-channel"
	PrefixVLAN        = "Vlan"
)

func (k InterfaceKind) String() string {
	switch k {
	case KindEthernet:
		return "ethernet"
	case KindPortChannel:
		return "port-channel"
	case KindVLAN:
		return "vlan-interface"
	default:
		return "other"
	}
}

// ClassifyInterface returns the kind of an interface name
func ClassifyInterface(name string) InterfaceKind {
	switch {
	case strings.HasPrefix(name, PrefixEthernet):
		return KindEthernet
	case strings.HasPrefix(name, PrefixPortChannel):
		return KindPortChannel
	case strings.HasPrefix(name, PrefixVLAN):
		return KindVLAN
	default:
		return KindOther
	}
}

// lastToken returns the last space-separated token of name
// ("Ethernet 1/1" -> "1/1", "Ethernet1/1" -> "Ethernet1/1").
func lastToken(name string) string {
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ChannelNumber returns the channel-group number used for members of the
// aggregate name: the suffix of a port-channel, otherwise the last
// space-separated token of the name.
func ChannelNumber(name string) string {
	if ClassifyInterface(name) == KindPortChannel {
		return strings.TrimPrefix(name, PrefixPortChannel)
	}
	return lastToken(name)
}

// FanoutPort returns the physical port number of name for a breakout
// header: the text after the last "/" of the last space-separated token.
func FanoutPort(name string) string {
	tok := lastToken(name)
	if i := strings.LastIndex(tok, "/"); i >= 0 {
		return tok[i+1:]
	}
	return tok
}

var breakoutPortRe = regexp.MustCompile(`port (\d+)`)

// BreakoutOwner returns the physical interface that owns an existing
// "interface breakout ... port <N> ..." header, e.g. Ethernet1/34.
func BreakoutOwner(header string) (string, bool) {
	m := breakoutPortRe.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}
	return PrefixEthernet + "1/" + m[1], true
}

// InterfaceHeader returns the section header for an interface name
func InterfaceHeader(name string) string {
	return "interface " + name
}
