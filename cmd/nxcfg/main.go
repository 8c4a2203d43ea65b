// nxcfg - NX-OS Switch Configuration Reconciler
//
// Reads an existing NX-OS running configuration and a switch manifest
// (Ansible host variables with interfaces: and vlans: mappings) and produces
// the configuration to push: every section the manifest owns is removed from
// the existing text and regenerated in canonical form.
//
// Input selection:
//
//	-c, --config    Existing running configuration
//	-m, --manifest  Switch manifest (or -d <device> to use <manifest_dir>/<device>.yml)
//	-d, --device    Device label for logs, audit and metrics
//
// Examples:
//
//	nxcfg generate -c leaf-1.cfg -m host_vars/leaf-1.yml     # Print result
//	nxcfg generate -c leaf-1.cfg -d leaf-1 -o out/leaf-1.cfg # Write result
//	nxcfg diff -c leaf-1.cfg -d leaf-1                       # Show what would change
//	nxcfg plan -c leaf-1.cfg -d leaf-1                       # Objects regenerated/preserved/removed
//	nxcfg vlans -c leaf-1.cfg                                # VLAN summary of a config
//	nxcfg validate host_vars/*.yml                           # Check manifests
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/audit"
	"github.com/newtron-network/nxcfg/pkg/cli"
	"github.com/newtron-network/nxcfg/pkg/settings"
	"github.com/newtron-network/nxcfg/pkg/util"
	"github.com/newtron-network/nxcfg/pkg/version"
)

var (
	// Global context flags
	deviceName string // -d, --device

	// Global option flags
	verbose bool
	jsonLog bool
	logFile string

	// Global state
	userSettings = &settings.Settings{}
)

// errConfigsDiffer makes diff exit non-zero without printing an error
var errConfigsDiffer = errors.New("configurations differ")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errConfigsDiffer) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "nxcfg",
	Short:             "NX-OS Switch Configuration Reconciler",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `nxcfg reconciles a switch manifest against an existing NX-OS configuration.

Sections the manifest owns are removed from the existing configuration and
regenerated; managed objects and everything else pass through unchanged.

  nxcfg generate -c <running.cfg> -m <host.yml> [-o <out.cfg>]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for certain commands
		if isSettingsOrHelp(cmd) {
			return nil
		}

		// Load user settings
		s, err := settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
		} else {
			userSettings = s
		}

		// Set log level: quiet by default, verbose on -v
		switch {
		case verbose:
			util.SetLogLevel("debug")
		case userSettings.LogLevel != "":
			if err := util.SetLogLevel(userSettings.GetLogLevel()); err != nil {
				return fmt.Errorf("log_level setting: %w", err)
			}
		default:
			util.SetLogLevel("warn")
		}
		if jsonLog {
			util.SetJSONFormat()
		}

		if logFile == "" {
			logFile = userSettings.LogFile
		}
		if logFile != "" {
			if err := util.SetLogFile(logFile, 10, 5); err != nil {
				util.Warnf("Could not open log file %s: %v", logFile, err)
			}
		}

		// Initialize audit logger
		if userSettings.AuditLog != "" {
			auditLogger, err := audit.NewFileLogger(userSettings.AuditLog, audit.RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 10,
			})
			if err != nil {
				util.Warnf("Could not initialize audit logging: %v", err)
			} else {
				audit.SetDefaultLogger(auditLogger)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name (label; selects <manifest_dir>/<device>.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to a rotated file")

	rootCmd.AddGroup(
		&cobra.Group{ID: "reconcile", Title: "Reconciliation:"},
		&cobra.Group{ID: "inspect", Title: "Inspection:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{generateCmd, diffCmd, planCmd} {
		cmd.GroupID = "reconcile"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{vlansCmd, validateCmd} {
		cmd.GroupID = "inspect"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion("nxcfg")
	},
}

func printVersion(tool string) {
	if version.Version == "dev" {
		fmt.Printf("%s dev build (use 'make build' for version info)\n", tool)
	} else {
		fmt.Printf("%s %s (%s)\n", tool, version.Version, version.GitCommit)
	}
}

func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
