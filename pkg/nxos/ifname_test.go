package nxos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInterface(t *testing.T) {
	tests := []struct {
		name string
		want InterfaceKind
	}{
		{"Ethernet1/1", KindEthernet},
		{"Ethernet 1/1", KindEthernet},
		{"Ethernet1/34/2", KindEthernet},
		{"port-channel10", KindPortChannel},
		{"Vlan105", KindVLAN},
		{"mgmt0", KindOther},
		{"loopback0", KindOther},
		{"breakout module 1 port 49 map 100g-4x", KindOther},
		{"ethernet1/1", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyInterface(tt.name))
		})
	}
}

func TestChannelNumber(t *testing.T) {
	assert.Equal(t, "1", ChannelNumber("port-channel1"))
	assert.Equal(t, "120", ChannelNumber("port-channel120"))
	assert.Equal(t, "1/5", ChannelNumber("Ethernet 1/5"))
	assert.Equal(t, "Ethernet1/5", ChannelNumber("Ethernet1/5"))
}

func TestFanoutPort(t *testing.T) {
	assert.Equal(t, "1", FanoutPort("Ethernet 1/1"))
	assert.Equal(t, "34", FanoutPort("Ethernet1/34"))
	assert.Equal(t, "7", FanoutPort("7"))
}

func TestBreakoutOwner(t *testing.T) {
	owner, ok := BreakoutOwner("interface breakout module 1 port 34 map 10g-4x")
	assert.True(t, ok)
	assert.Equal(t, "Ethernet1/34", owner)

	_, ok = BreakoutOwner("interface breakout module 1")
	assert.False(t, ok)
}

func TestInterfaceKindString(t *testing.T) {
	assert.Equal(t, "port-channel", KindPortChannel.String())
	assert.Equal(t, "other", KindOther.String())
}
