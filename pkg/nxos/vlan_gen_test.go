package nxos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/nxcfg/pkg/util"
)

func TestGenerateVLANConfig(t *testing.T) {
	got, err := GenerateVLANConfig(vlans(t, "10: {name: example-vlan, description: Example vlan}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "vlan 10", "  name example-vlan"}, got)
}

func TestGenerateVLANConfig_OrderAndManaged(t *testing.T) {
	got, err := GenerateVLANConfig(vlans(t, "105: {name: public}\n20: {managed: true}\n10: {name: main}"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"", "vlan 105", "  name public",
		"", "vlan 10", "  name main",
	}, got)
}

func TestGenerateVLANConfig_MissingName(t *testing.T) {
	_, err := GenerateVLANConfig(vlans(t, "10: {name: ok}\n20: {}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMissingField))

	var mf *util.MissingFieldError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, "vlan 20", mf.Object)
	assert.Equal(t, "name", mf.Field)
}

func TestGenerateVLANConfig_Empty(t *testing.T) {
	got, err := GenerateVLANConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
