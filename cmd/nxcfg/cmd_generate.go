package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/audit"
	"github.com/newtron-network/nxcfg/pkg/util"
)

var outputPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the configuration to push",
	Long: `Reconcile a manifest against an existing configuration and print the result.

The output is the existing configuration with every manifest-owned section
removed, followed by the VLAN summary line, the VLAN stanzas and the
interface stanzas generated from the manifest.

Output goes to -o, else <output_dir>/<device>.cfg when output_dir is set,
else stdout.

Examples:
  nxcfg generate -c leaf-1.cfg -m host_vars/leaf-1.yml
  nxcfg generate -c leaf-1.cfg -d leaf-1 -o out/leaf-1.cfg
  nxcfg generate -c leaf-1.cfg -d leaf-1 --lenient`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := startRun(audit.EventTypeGenerate)
		if err != nil {
			return err
		}
		return run.finish(run.generate())
	},
}

func (r *reconcileRun) generate() error {
	if err := r.reconcile(); err != nil {
		return err
	}

	out := outputPath
	if out == "" && userSettings.OutputDir != "" {
		out = filepath.Join(userSettings.OutputDir, r.device+".cfg")
	}
	if out == "" {
		fmt.Println(r.result.Config)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(r.result.Config+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	r.event.OutputPath = out

	util.WithDevice(r.device).Infof("wrote %s", out)
	fmt.Fprintf(os.Stderr, "%s %s: %d VLAN and %d interface stanzas regenerated, %d lines removed\n",
		green("Wrote"), out, r.result.VLANBlocks, r.result.InterfaceBlocks, r.result.Filter.DroppedTotal())
	return nil
}

func init() {
	addInputFlags(generateCmd)
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to a file")
}
