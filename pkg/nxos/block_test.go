package nxos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockSet_Order(t *testing.T) {
	b := NewBlockSet()
	b.Ensure("interface port-channel1")
	b.Append("interface Ethernet1/1", "mtu 9216")
	b.Append("interface port-channel1", "mtu 9216")
	b.Append("interface Ethernet1/1", "channel-group 1 mode on")
	b.Ensure("interface Ethernet1/1")

	assert.Equal(t, []string{"interface port-channel1", "interface Ethernet1/1"}, b.Headers())
	assert.Equal(t, []string{"mtu 9216", "channel-group 1 mode on"}, b.Body("interface Ethernet1/1"))
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.Has("interface port-channel1"))
	assert.False(t, b.Has("interface Ethernet1/2"))
}

func TestBlockSet_Lines(t *testing.T) {
	b := NewBlockSet()
	b.Ensure("interface breakout module 1 port 1 map 25G-4x")
	b.Append("interface Ethernet1/1", "no shutdown", "mtu 9216")

	want := []string{
		"",
		"interface breakout module 1 port 1 map 25G-4x",
		"",
		"interface Ethernet1/1",
		"  no shutdown",
		"  mtu 9216",
	}
	assert.Equal(t, want, b.Lines())
}

func TestBlockSet_BodyIsCopy(t *testing.T) {
	b := NewBlockSet()
	b.Append("vlan 10", "name ten")
	body := b.Body("vlan 10")
	body[0] = "changed"
	assert.Equal(t, []string{"name ten"}, b.Body("vlan 10"))
}

func TestBlockSet_Empty(t *testing.T) {
	assert.Empty(t, NewBlockSet().Lines())
}
