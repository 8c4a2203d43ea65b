package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/cli"
	"github.com/newtron-network/nxcfg/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.nxcfg/settings.yaml.

Every setting can be overridden with an NXCFG_<KEY> environment variable,
e.g. NXCFG_AUDIT_LOG=/var/log/nxcfg/audit.log.

Settings:
  manifest_dir - Directory searched for <device>.yml when -m is not given
  output_dir   - Directory receiving <device>.cfg from generate
  audit_log    - JSON-lines audit file (empty disables auditing)
  metrics_file - Prometheus textfile written after each run
  log_file     - Rotated log file
  log_level    - Log level when -v is not given
  lenient      - Skip unrecognized values instead of failing

Examples:
  nxcfg settings show
  nxcfg settings set manifest_dir /srv/ansible/host_vars
  nxcfg settings set lenient true
  nxcfg settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.DefaultSettingsPath()
		s, err := settings.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", path)

		t := cli.NewTable("SETTING", "VALUE")
		for _, key := range settings.Keys() {
			value, _ := s.Get(key)
			if value == "" {
				value = "(not set)"
			}
			t.Row(key, value)
		}
		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, value := args[0], args[1]

		path := settings.DefaultSettingsPath()
		s, err := settings.ReadFile(path)
		if err != nil {
			s = &settings.Settings{}
		}

		if err := s.Set(setting, value); err != nil {
			return err
		}
		if err := s.SaveTo(path); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Printf("%s set to: %s\n", setting, value)
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		value, err := s.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("Settings cleared.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}
