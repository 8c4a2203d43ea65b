package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/nxcfg/pkg/audit"
	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/metrics"
	"github.com/newtron-network/nxcfg/pkg/nxos"
	"github.com/newtron-network/nxcfg/pkg/util"
)

// Input flags shared by the reconciliation commands
var (
	configPath   string // -c, --config
	manifestPath string // -m, --manifest
	lenientMode  bool
)

// addInputFlags registers -c, -m and --lenient on a reconciliation command
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Existing running configuration file")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Switch manifest (host variables YAML)")
	cmd.Flags().BoolVar(&lenientMode, "lenient", false, "Skip unrecognized values with a warning instead of failing")
	cmd.MarkFlagRequired("config")
}

// reconcileRun carries one reconciliation from input loading to audit
type reconcileRun struct {
	device   string
	manifest string
	existing string
	m        *manifest.Manifest
	result   *nxos.Result
	event    *audit.Event
	start    time.Time
}

// currentUser returns the login name recorded in audit events
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

// resolveManifest returns the manifest path from -m, or from -d and the
// manifest_dir setting.
func resolveManifest(flag, device, dir string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if device != "" {
		return filepath.Join(dir, device+".yml"), nil
	}
	return "", fmt.Errorf("manifest required: use -m <file> or -d <device>")
}

// startRun resolves inputs and opens an audit event for op
func startRun(op audit.EventType) (*reconcileRun, error) {
	path, err := resolveManifest(manifestPath, deviceName, userSettings.GetManifestDir())
	if err != nil {
		return nil, err
	}
	r := &reconcileRun{
		device:   deviceName,
		manifest: path,
		start:    time.Now(),
	}
	r.event = audit.NewEvent(currentUser(), r.device, op).
		WithPaths(configPath, path, "").
		WithLenient(r.lenient())
	return r, nil
}

func (r *reconcileRun) lenient() bool {
	return lenientMode || userSettings.Lenient
}

// reconcile loads both inputs, validates the manifest and runs the engine
func (r *reconcileRun) reconcile() error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	r.existing = string(data)

	r.m, err = manifest.Load(r.manifest)
	if err != nil {
		return err
	}
	if r.device == "" {
		r.device = r.m.Device
		r.event.Device = r.device
	}
	if err := r.m.ValidateWith(manifest.ValidateOptions{Lenient: r.lenient()}); err != nil {
		return fmt.Errorf("manifest %s: %w", r.manifest, err)
	}

	util.WithDevice(r.device).Debugf("reconciling %s against %s", configPath, r.manifest)
	r.result, err = nxos.NewReconciler(nxos.Options{
		Lenient: r.lenient(),
		Device:  r.device,
	}).Run(r.existing, r.m)
	if err != nil {
		return fmt.Errorf("reconciling %s: %w", r.device, err)
	}
	r.event.WithResult(r.result)
	return nil
}

// finish records metrics and the audit event, and returns err unchanged
func (r *reconcileRun) finish(err error) error {
	elapsed := time.Since(r.start)
	failed := err != nil && !errors.Is(err, errConfigsDiffer)

	reg := metrics.Get()
	if failed || r.result == nil {
		reg.ObserveError(elapsed)
	} else {
		reg.ObserveResult(r.result)
	}
	if userSettings.MetricsFile != "" {
		if werr := reg.WriteTextfile(userSettings.MetricsFile); werr != nil {
			util.Warnf("Could not write metrics file: %v", werr)
		}
	}

	if failed {
		r.event.WithError(err)
	} else {
		r.event.WithSuccess()
	}
	r.event.WithDuration(elapsed)
	if lerr := audit.Log(r.event); lerr != nil {
		util.Warnf("Could not write audit event: %v", lerr)
	}
	return err
}
