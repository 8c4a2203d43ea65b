// Package nxos reconciles a switch manifest against an existing NX-OS
// running configuration. The existing text is filtered of every section the
// manifest owns, then canonical VLAN and interface blocks are appended.
//
// Everything in this package is a pure transform over in-memory values and
// is safe to call concurrently.
package nxos

import (
	"fmt"
	"strings"
	"time"

	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

// Options controls a reconciliation
type Options struct {
	// Lenient skips commands for unrecognized enum values (portmode,
	// lacp-rate, fanout type) with a warning instead of failing.
	Lenient bool
	// Device labels log entries
	Device string
}

// Result is the outcome of one reconciliation
type Result struct {
	// Config is the complete configuration text to push
	Config string
	// ExistingVLANs is the VLAN summary parsed from the existing config
	ExistingVLANs []string
	// VLANs is the generated VLAN summary list
	VLANs []string
	// Filter describes what was removed from the existing config
	Filter *FilterReport
	// Generated lists generated stanzas in output order
	Generated []ObjectRef
	// VLANBlocks and InterfaceBlocks count generated stanzas
	VLANBlocks      int
	InterfaceBlocks int
	Duration        time.Duration
}

// Reconciler runs reconciliations with fixed options
type Reconciler struct {
	opts Options
}

// NewReconciler creates a reconciler
func NewReconciler(opts Options) *Reconciler {
	return &Reconciler{opts: opts}
}

// Reconcile returns the configuration to push for an existing configuration
// and the interface and VLAN manifests. It fails on the first malformed
// input; there is no partial result.
func Reconcile(existing string, ifaces *manifest.InterfaceManifest, vlans *manifest.VLANManifest) (string, error) {
	res, err := NewReconciler(Options{}).Run(existing, &manifest.Manifest{Interfaces: ifaces, VLANs: vlans})
	if err != nil {
		return "", err
	}
	return res.Config, nil
}

// Run reconciles existing against m
func (r *Reconciler) Run(existing string, m *manifest.Manifest) (*Result, error) {
	start := time.Now()
	ifaces, vlans := manifest.NewInterfaceManifest(), manifest.NewVLANManifest()
	if m != nil && m.Interfaces != nil {
		ifaces = m.Interfaces
	}
	if m != nil && m.VLANs != nil {
		vlans = m.VLANs
	}
	log := util.WithDevice(r.opts.Device)

	parsed, err := ParseVLANSummary(existing)
	if err != nil {
		return nil, fmt.Errorf("reading VLAN summary: %w", err)
	}
	summary := BuildVLANSummary(parsed, vlans)

	lines, report, err := Filter(existing, ifaces, vlans)
	if err != nil {
		return nil, fmt.Errorf("filtering existing config: %w", err)
	}

	vlanLines, err := GenerateVLANConfig(vlans)
	if err != nil {
		return nil, err
	}
	blocks, err := GenerateInterfaceBlocks(ifaces, r.opts)
	if err != nil {
		return nil, err
	}

	lines = append(lines, "", vlanPrefix+strings.Join(summary, ","))
	lines = append(lines, vlanLines...)
	lines = append(lines, blocks.Lines()...)

	res := &Result{
		Config:          strings.Join(lines, "\n"),
		ExistingVLANs:   parsed,
		VLANs:           summary,
		Filter:          report,
		InterfaceBlocks: blocks.Len(),
	}
	for _, e := range vlans.Entries() {
		if !e.Managed {
			res.Generated = append(res.Generated, ObjectRef{ObjectVLAN, fmt.Sprint(e.ID)})
			res.VLANBlocks++
		}
	}
	for _, header := range blocks.Headers() {
		res.Generated = append(res.Generated, headerObject(header))
	}
	res.Duration = time.Since(start)

	log.Debugf("reconciled: %d vlan stanzas, %d interface blocks, %d lines dropped",
		res.VLANBlocks, res.InterfaceBlocks, report.DroppedTotal())
	return res, nil
}

// BuildVLANSummary returns the VLAN IDs for the generated summary line: the
// default VLAN, then each manifest VLAN in order. A managed VLAN is carried
// only if existing lists it. No ID appears twice.
func BuildVLANSummary(existing []string, vlans *manifest.VLANManifest) []string {
	present := make(map[string]bool, len(existing))
	for _, id := range existing {
		present[id] = true
	}

	summary := []string{DefaultVLAN}
	seen := map[string]bool{DefaultVLAN: true}
	for _, e := range vlans.Entries() {
		id := fmt.Sprint(e.ID)
		if e.Managed && !present[id] {
			continue
		}
		if !seen[id] {
			seen[id] = true
			summary = append(summary, id)
		}
	}
	return summary
}

// headerObject names the object a generated block header configures
func headerObject(header string) ObjectRef {
	if strings.HasPrefix(header, breakoutPrefix) {
		if owner, ok := BreakoutOwner(header); ok {
			return ObjectRef{ObjectBreakout, owner}
		}
	}
	return ObjectRef{ObjectInterface, strings.TrimPrefix(header, interfacePrefix)}
}
