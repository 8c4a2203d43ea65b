package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/cli"
	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest...]",
	Short: "Validate switch manifests",
	Long: `Load and validate one or more switch manifests.

Checks VLAN IDs, MTU, address prefixes, enumerated values and aggregate
membership. All problems of a manifest are reported together.

Examples:
  nxcfg validate host_vars/leaf-1.yml host_vars/leaf-2.yml
  nxcfg validate -m host_vars/leaf-1.yml
  nxcfg validate -d leaf-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			path, err := resolveManifest(manifestPath, deviceName, userSettings.GetManifestDir())
			if err != nil {
				return err
			}
			paths = []string{path}
		}

		failed := 0
		for _, path := range paths {
			fmt.Print(cli.DotPad(path, 40) + " ")
			if err := validateManifest(path, lenientMode || userSettings.Lenient); err != nil {
				failed++
				fmt.Println(red("FAILED"))
				printValidationErrors(err)
				continue
			}
			fmt.Println(green("OK"))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d manifests failed validation", failed, len(paths))
		}
		return nil
	},
}

func validateManifest(path string, lenient bool) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	return m.ValidateWith(manifest.ValidateOptions{Lenient: lenient})
}

func printValidationErrors(err error) {
	var verr *util.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Errors {
			fmt.Printf("  - %s\n", msg)
		}
		return
	}
	fmt.Printf("  - %v\n", err)
}

func init() {
	validateCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Switch manifest (host variables YAML)")
	validateCmd.Flags().BoolVar(&lenientMode, "lenient", false, "Accept unrecognized values that generate --lenient skips")
}
