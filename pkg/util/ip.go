package util

import (
	"fmt"

	"inet.af/netaddr"
)

// ParseIPv4Prefix parses an address with CIDR mask ("10.1.1.1/24") and
// requires it to be IPv4. The host bits are kept.
func ParseIPv4Prefix(cidr string) (netaddr.IPPrefix, error) {
	prefix, err := netaddr.ParseIPPrefix(cidr)
	if err != nil {
		return netaddr.IPPrefix{}, fmt.Errorf("invalid CIDR notation: %s", cidr)
	}
	if !prefix.IP().Is4() {
		return netaddr.IPPrefix{}, fmt.Errorf("not an IPv4 prefix: %s", cidr)
	}
	return prefix, nil
}

// ParseIPv6Prefix parses an address with CIDR mask ("2001:db8::1/64") and
// requires it to be IPv6.
func ParseIPv6Prefix(cidr string) (netaddr.IPPrefix, error) {
	prefix, err := netaddr.ParseIPPrefix(cidr)
	if err != nil {
		return netaddr.IPPrefix{}, fmt.Errorf("invalid CIDR notation: %s", cidr)
	}
	if !prefix.IP().Is6() || prefix.IP().Is4in6() {
		return netaddr.IPPrefix{}, fmt.Errorf("not an IPv6 prefix: %s", cidr)
	}
	return prefix, nil
}

// ValidateMTU checks if MTU is within valid range
func ValidateMTU(mtu int) error {
	if mtu < 68 || mtu > 9216 {
		return fmt.Errorf("MTU must be between 68 and 9216, got %d", mtu)
	}
	return nil
}

// ValidateVLANID checks if a VLAN ID is usable (1-4094)
func ValidateVLANID(id int) error {
	if id < 1 || id > 4094 {
		return fmt.Errorf("VLAN ID must be between 1 and 4094, got %d", id)
	}
	return nil
}
