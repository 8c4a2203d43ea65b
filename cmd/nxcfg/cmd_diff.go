package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/audit"
	"github.com/newtron-network/nxcfg/pkg/cli"
)

var diffContext int

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how the generated configuration differs from the existing one",
	Long: `Reconcile and print a unified diff of the existing configuration against
the generated one.

Exit status is 0 when the configurations are identical and 1 when they
differ or an error occurs.

Examples:
  nxcfg diff -c leaf-1.cfg -m host_vars/leaf-1.yml
  nxcfg diff -c leaf-1.cfg -d leaf-1 -U 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := startRun(audit.EventTypeDiff)
		if err != nil {
			return err
		}
		return run.finish(run.diff())
	},
}

func (r *reconcileRun) diff() error {
	if err := r.reconcile(); err != nil {
		return err
	}

	text, err := unifiedDiff(r.existing, r.result.Config+"\n", configPath, diffContext)
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}
	r.event.WithChanged(text != "")

	if text == "" {
		fmt.Println(green("No changes"))
		return nil
	}
	fmt.Print(cli.ColorDiff(text))
	return errConfigsDiffer
}

// unifiedDiff renders existing against generated; empty when identical
func unifiedDiff(existing, generated, name string, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(generated),
		FromFile: name,
		ToFile:   "generated",
		Context:  context,
	})
}

func init() {
	addInputFlags(diffCmd)
	diffCmd.Flags().IntVarP(&diffContext, "unified", "U", 3, "Lines of context")
}
