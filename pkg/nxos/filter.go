package nxos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newtron-network/nxcfg/pkg/manifest"
	"github.com/newtron-network/nxcfg/pkg/util"
)

// FilterState is the classification of the section being scanned
type FilterState int

const (
	// StateKeep emits the lines of the current section
	StateKeep FilterState = iota
	// StateDeleteSection drops the lines of the current section
	StateDeleteSection
)

func (s FilterState) String() string {
	if s == StateDeleteSection {
		return "delete"
	}
	return "keep"
}

// Object kinds recorded in a FilterReport
const (
	ObjectInterface = "interface"
	ObjectVLAN      = "vlan"
	ObjectBreakout  = "breakout"
)

// ObjectRef names one configuration object (an interface, a VLAN stanza or
// a breakout header).
type ObjectRef struct {
	Kind string
	Name string
}

func (o ObjectRef) String() string {
	return o.Kind + " " + o.Name
}

// FilterReport describes what a filter pass did to the existing config.
type FilterReport struct {
	// Dropped counts dropped lines by the rule that dropped them
	Dropped map[string]int
	// Preserved lists managed sections kept verbatim
	Preserved []ObjectRef
	// Removed lists sections (and breakout headers) deleted
	Removed []ObjectRef
	// Foreign lists interface sections passed through untouched
	Foreign []ObjectRef
	// LinesIn and LinesOut count input and emitted lines
	LinesIn  int
	LinesOut int
}

// DroppedTotal returns the number of dropped lines
func (r *FilterReport) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// verdict is a rule's decision for one line
type verdict int

const (
	// verdictNext leaves the line to the following rules
	verdictNext verdict = iota
	verdictEmit
	verdictDrop
)

// Rule names, in evaluation order
const (
	RuleComment         = "comment"
	RuleBlankInDelete   = "blank-in-delete"
	RuleSectionStart    = "section-start"
	RuleBreakoutOwned   = "breakout-owned"
	RuleInterfaceHeader = "interface-header"
	RuleVLANSummary     = "vlan-summary"
	RuleVLANStanza      = "vlan-stanza"
	RuleSectionBody     = "section-body"
)

type filterRule struct {
	name  string
	apply func(s *filterScan, line string) (verdict, error)
}

// filterRules is evaluated top to bottom for every line; the first rule
// returning emit or drop decides the line.
var filterRules = []filterRule{
	{RuleComment, ruleComment},
	{RuleBlankInDelete, ruleBlankInDelete},
	{RuleSectionStart, ruleSectionStart},
	{RuleBreakoutOwned, ruleBreakoutOwned},
	{RuleInterfaceHeader, ruleInterfaceHeader},
	{RuleVLANSummary, ruleVLANSummary},
	{RuleVLANStanza, ruleVLANStanza},
	{RuleSectionBody, ruleSectionBody},
}

// filterScan is the scanner state for one pass
type filterScan struct {
	ifaces      *manifest.InterfaceManifest
	vlans       *manifest.VLANManifest
	state       FilterState
	seenSummary bool
	report      *FilterReport
}

const (
	interfacePrefix = "interface "
	breakoutPrefix  = "interface breakout "
)

func ruleComment(_ *filterScan, line string) (verdict, error) {
	if strings.HasPrefix(line, "!") {
		return verdictDrop, nil
	}
	return verdictNext, nil
}

func ruleBlankInDelete(s *filterScan, line string) (verdict, error) {
	if line == "" && s.state == StateDeleteSection {
		return verdictDrop, nil
	}
	return verdictNext, nil
}

// ruleSectionStart never decides a line; it resets the state at the start
// of every section so the header can be classified afresh.
func ruleSectionStart(s *filterScan, line string) (verdict, error) {
	if !isIndented(line) {
		s.state = StateKeep
	}
	return verdictNext, nil
}

// ruleBreakoutOwned drops a breakout header whose physical port is named in
// the interface manifest, managed or not. Other breakout headers fall
// through to the interface header rule and pass as foreign.
func ruleBreakoutOwned(s *filterScan, line string) (verdict, error) {
	if !strings.HasPrefix(line, breakoutPrefix) {
		return verdictNext, nil
	}
	owner, ok := BreakoutOwner(line)
	if !ok || !s.ifaces.Has(owner) {
		return verdictNext, nil
	}
	s.report.Removed = append(s.report.Removed, ObjectRef{ObjectBreakout, owner})
	return verdictDrop, nil
}

func ruleInterfaceHeader(s *filterScan, line string) (verdict, error) {
	if !strings.HasPrefix(line, interfacePrefix) {
		return verdictNext, nil
	}
	name := strings.TrimPrefix(line, interfacePrefix)
	ref := ObjectRef{ObjectInterface, name}

	if ClassifyInterface(name) == KindOther {
		s.state = StateKeep
		s.report.Foreign = append(s.report.Foreign, ref)
		return verdictEmit, nil
	}

	if e, ok := s.ifaces.Lookup(name); ok && e.Managed {
		s.state = StateKeep
		s.report.Preserved = append(s.report.Preserved, ref)
		return verdictEmit, nil
	}

	s.state = StateDeleteSection
	s.report.Removed = append(s.report.Removed, ref)
	return verdictDrop, nil
}

func ruleVLANSummary(s *filterScan, line string) (verdict, error) {
	if !strings.HasPrefix(line, vlanPrefix) || s.seenSummary {
		return verdictNext, nil
	}
	s.seenSummary = true
	return verdictDrop, nil
}

func ruleVLANStanza(s *filterScan, line string) (verdict, error) {
	if !strings.HasPrefix(line, vlanPrefix) {
		return verdictNext, nil
	}
	raw := strings.TrimSpace(strings.TrimPrefix(line, vlanPrefix))
	id, err := strconv.Atoi(raw)
	if err != nil {
		return verdictNext, util.NewParseError(line, raw, "VLAN stanza ID is not an integer")
	}
	ref := ObjectRef{ObjectVLAN, strconv.Itoa(id)}

	if e, ok := s.vlans.Lookup(id); ok && e.Managed {
		s.state = StateKeep
		s.report.Preserved = append(s.report.Preserved, ref)
		return verdictEmit, nil
	}

	s.state = StateDeleteSection
	s.report.Removed = append(s.report.Removed, ref)
	return verdictDrop, nil
}

func ruleSectionBody(s *filterScan, _ string) (verdict, error) {
	if s.state == StateDeleteSection {
		return verdictDrop, nil
	}
	return verdictEmit, nil
}

// Filter removes from an existing configuration every section the
// manifests will regenerate, keeping managed and unrelated sections. Lines
// are only removed, never reordered. Comments and the VLAN summary line
// are always removed.
//
// Interface sections are matched by exact name. Breakout headers are
// matched through their physical port: "port 34" belongs to Ethernet1/34.
func Filter(config string, ifaces *manifest.InterfaceManifest, vlans *manifest.VLANManifest) ([]string, *FilterReport, error) {
	s := &filterScan{
		ifaces: ifaces,
		vlans:  vlans,
		report: &FilterReport{Dropped: make(map[string]int)},
	}
	if s.ifaces == nil {
		s.ifaces = manifest.NewInterfaceManifest()
	}
	if s.vlans == nil {
		s.vlans = manifest.NewVLANManifest()
	}

	log := util.WithOperation("filter")
	lines := splitLines(config)
	out := make([]string, 0, len(lines))

	for n, line := range lines {
		v, rule, err := s.classify(line)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		switch v {
		case verdictEmit:
			out = append(out, line)
		case verdictDrop:
			s.report.Dropped[rule]++
			if !isIndented(line) && line != "" {
				log.Debugf("drop %q (%s, state %s)", line, rule, s.state)
			}
		}
	}

	s.report.LinesIn = len(lines)
	s.report.LinesOut = len(out)
	log.Debugf("kept %d of %d lines: %d sections removed, %d preserved",
		len(out), len(lines), len(s.report.Removed), len(s.report.Preserved))
	return out, s.report, nil
}

// classify runs the rule table over one line
func (s *filterScan) classify(line string) (verdict, string, error) {
	for _, r := range filterRules {
		v, err := r.apply(s, line)
		if err != nil {
			return verdictNext, r.name, err
		}
		if v != verdictNext {
			return v, r.name, nil
		}
	}
	// ruleSectionBody always decides
	return verdictEmit, RuleSectionBody, nil
}
