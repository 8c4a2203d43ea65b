// Package audit records one event per reconciliation run.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/newtron-network/nxcfg/pkg/nxos"
)

// Event represents one auditable reconciliation
type Event struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	User         string        `json:"user"`
	Device       string        `json:"device"`
	Operation    string        `json:"operation"`
	ManifestPath string        `json:"manifest_path,omitempty"`
	ConfigPath   string        `json:"config_path,omitempty"`
	OutputPath   string        `json:"output_path,omitempty"`
	Regenerated  []string      `json:"regenerated,omitempty"`
	Preserved    []string      `json:"preserved,omitempty"`
	Removed      []string      `json:"removed,omitempty"`
	LinesDropped int           `json:"lines_dropped"`
	Changed      bool          `json:"changed"` // diff found differences
	Lenient      bool          `json:"lenient"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// EventType names the CLI operation that produced an event
type EventType string

const (
	EventTypeGenerate EventType = "generate"
	EventTypeDiff     EventType = "diff"
	EventTypePlan     EventType = "plan"
)

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Operation   string
	Object      string // matches regenerated, preserved or removed entries
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device string, op EventType) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: string(op),
	}
}

// WithPaths records the files the run read and wrote
func (e *Event) WithPaths(config, manifest, output string) *Event {
	e.ConfigPath = config
	e.ManifestPath = manifest
	e.OutputPath = output
	return e
}

// WithResult copies the object plan of a reconciliation
func (e *Event) WithResult(res *nxos.Result) *Event {
	if res == nil {
		return e
	}
	for _, p := range res.Plan() {
		switch p.Action {
		case nxos.ActionRegenerate:
			e.Regenerated = append(e.Regenerated, p.Object.String())
		case nxos.ActionPreserve:
			e.Preserved = append(e.Preserved, p.Object.String())
		case nxos.ActionRemove:
			e.Removed = append(e.Removed, p.Object.String())
		}
	}
	if res.Filter != nil {
		e.LinesDropped = res.Filter.DroppedTotal()
	}
	return e
}

// WithChanged records whether the generated config differs from the input
func (e *Event) WithChanged(changed bool) *Event {
	e.Changed = changed
	return e
}

// WithLenient records lenient mode
func (e *Event) WithLenient(lenient bool) *Event {
	e.Lenient = lenient
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// mentions reports whether the event lists object in any of its plans
func (e *Event) mentions(object string) bool {
	for _, list := range [][]string{e.Regenerated, e.Preserved, e.Removed} {
		for _, o := range list {
			if o == object {
				return true
			}
		}
	}
	return false
}
