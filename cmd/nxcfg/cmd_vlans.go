package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/cli"
	"github.com/newtron-network/nxcfg/pkg/nxos"
	"github.com/newtron-network/nxcfg/pkg/util"
)

var (
	vlansConfig string
	vlansJSON   bool
)

var vlansCmd = &cobra.Command{
	Use:   "vlans",
	Short: "Show the VLAN summary of a configuration",
	Long: `Parse the VLAN summary line of an existing configuration and list its VLANs
with the names set in their stanzas.

Examples:
  nxcfg vlans -c leaf-1.cfg
  nxcfg vlans -c leaf-1.cfg --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(vlansConfig)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		ids, err := nxos.ParseVLANSummary(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", vlansConfig, err)
		}
		names := nxos.VLANNames(string(data))

		if vlansJSON {
			type vlanRow struct {
				ID   string `json:"id"`
				Name string `json:"name,omitempty"`
			}
			rows := make([]vlanRow, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, vlanRow{ID: id, Name: nameOf(names, id)})
			}
			return json.NewEncoder(os.Stdout).Encode(rows)
		}

		if len(ids) == 0 {
			fmt.Println("No VLAN summary line found")
			return nil
		}

		t := cli.NewTable("VLAN", "NAME")
		for _, id := range ids {
			t.Row(id, nameOf(names, id))
		}
		t.Flush()

		fmt.Printf("\n%d VLANs: %s\n", len(ids), compactVLANs(ids))
		return nil
	},
}

func nameOf(names map[int]string, id string) string {
	n, err := strconv.Atoi(id)
	if err != nil {
		return ""
	}
	return names[n]
}

// compactVLANs renders IDs as a sorted range list ("1,10,20-22")
func compactVLANs(ids []string) string {
	ints := make([]int, 0, len(ids))
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil {
			ints = append(ints, n)
		}
	}
	return util.CompactRange(ints)
}

func joinVLANs(ids []string) string {
	return strings.Join(ids, ",")
}

func init() {
	vlansCmd.Flags().StringVarP(&vlansConfig, "config", "c", "", "Configuration file")
	vlansCmd.MarkFlagRequired("config")
	vlansCmd.Flags().BoolVar(&vlansJSON, "json", false, "JSON output")
}
