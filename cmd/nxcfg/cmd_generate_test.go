package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runGenerate executes the root command with fresh flag state
func runGenerate(t *testing.T, args ...string) error {
	t.Helper()
	configPath, manifestPath, outputPath, lenientMode, deviceName = "", "", "", false, ""
	rootCmd.SetArgs(append([]string{"generate"}, args...))
	return rootCmd.Execute()
}

func TestGenerate_Lenient(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := filepath.Join(dir, "running.cfg")
	if err := os.WriteFile(cfg, []byte("vlan 1\ninterface Ethernet1/1\n  shutdown\n"), 0644); err != nil {
		t.Fatal(err)
	}
	man := filepath.Join(dir, "leaf-1.yml")
	if err := os.WriteFile(man, []byte("interfaces:\n  Ethernet1/1: {description: up, portmode: bogus}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "leaf-1.cfg")

	err := runGenerate(t, "-c", cfg, "-m", man, "-o", out)
	if err == nil || !strings.Contains(err.Error(), `portmode "bogus"`) {
		t.Fatalf("generate without --lenient: error = %v, want unrecognized portmode", err)
	}

	if err := runGenerate(t, "-c", cfg, "-m", man, "-o", out, "--lenient"); err != nil {
		t.Fatalf("generate --lenient error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "interface Ethernet1/1\n  description up\n") {
		t.Errorf("output missing regenerated interface:\n%s", got)
	}
	if strings.Contains(got, "switchport mode") || strings.Contains(got, "shutdown") {
		t.Errorf("output carries skipped or removed commands:\n%s", got)
	}
}
