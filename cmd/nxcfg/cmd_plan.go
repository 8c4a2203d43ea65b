package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/audit"
	"github.com/newtron-network/nxcfg/pkg/cli"
	"github.com/newtron-network/nxcfg/pkg/nxos"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List objects the reconciliation regenerates, preserves and removes",
	Long: `Reconcile and list every configuration object it touches:

  regenerate - stanza generated from the manifest
  preserve   - managed stanza kept verbatim
  remove     - stanza deleted and not regenerated

Examples:
  nxcfg plan -c leaf-1.cfg -m host_vars/leaf-1.yml
  nxcfg plan -c leaf-1.cfg -d leaf-1 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := startRun(audit.EventTypePlan)
		if err != nil {
			return err
		}
		return run.finish(run.plan())
	},
}

type planRow struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Action string `json:"action"`
}

func (r *reconcileRun) plan() error {
	if err := r.reconcile(); err != nil {
		return err
	}

	entries := r.result.Plan()
	if planJSON {
		rows := make([]planRow, 0, len(entries))
		for _, p := range entries {
			rows = append(rows, planRow{Kind: p.Object.Kind, Name: p.Object.Name, Action: string(p.Action)})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing to reconcile")
		return nil
	}

	t := cli.NewTable("KIND", "NAME", "ACTION")
	for _, p := range entries {
		t.Row(p.Object.Kind, p.Object.Name, actionLabel(p.Action))
	}
	t.Flush()

	fmt.Printf("\nVLAN summary: vlan %s\n", joinVLANs(r.result.VLANs))
	return nil
}

func actionLabel(a nxos.Action) string {
	switch a {
	case nxos.ActionRegenerate:
		return green(string(a))
	case nxos.ActionPreserve:
		return yellow(string(a))
	case nxos.ActionRemove:
		return red(string(a))
	}
	return string(a)
}

func init() {
	addInputFlags(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "JSON output")
}
