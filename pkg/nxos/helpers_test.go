package nxos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/newtron-network/nxcfg/pkg/manifest"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func loadTestManifest(t *testing.T, name string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	return m
}

// parseManifest builds a manifest from an inline YAML document
func parseManifest(t *testing.T, doc string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(doc))
	require.NoError(t, err)
	return m
}

func ifaces(t *testing.T, doc string) *manifest.InterfaceManifest {
	t.Helper()
	return parseManifest(t, "interfaces:\n"+indent(doc)).Interfaces
}

func vlans(t *testing.T, doc string) *manifest.VLANManifest {
	t.Helper()
	return parseManifest(t, "vlans:\n"+indent(doc)).VLANs
}

func indent(doc string) string {
	lines := strings.Split(strings.Trim(doc, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
