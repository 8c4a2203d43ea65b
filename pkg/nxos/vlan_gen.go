package nxos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

// VLANHeader returns the stanza header for a VLAN ID
func VLANHeader(id int) string {
	return vlanPrefix + strconv.Itoa(id)
}

// GenerateVLANConfig emits a stanza for every non-managed VLAN, in manifest
// order: a blank separator, "vlan <id>" and "  name <name>".
func GenerateVLANConfig(vlans *manifest.VLANManifest) ([]string, error) {
	var out []string
	for _, e := range vlans.Entries() {
		if e.Managed {
			continue
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, util.NewMissingFieldError(fmt.Sprintf("vlan %d", e.ID), "name", "required unless managed")
		}
		out = append(out, "", VLANHeader(e.ID), bodyIndent+"name "+e.Name)
	}
	return out, nil
}
