package nxos

// Action is what a reconciliation does to one object
type Action string

const (
	ActionRegenerate Action = "regenerate"
	ActionPreserve   Action = "preserve"
	ActionRemove     Action = "remove"
)

// PlanEntry pairs an object with its action
type PlanEntry struct {
	Object ObjectRef
	Action Action
}

// Plan lists what the reconciliation did per object: regenerated stanzas in
// output order, then preserved sections, then sections removed without
// replacement. A managed interface is both preserved and regenerated.
func (r *Result) Plan() []PlanEntry {
	var plan []PlanEntry
	regenerated := make(map[ObjectRef]bool)
	for _, o := range r.Generated {
		regenerated[o] = true
		plan = append(plan, PlanEntry{o, ActionRegenerate})
	}
	if r.Filter == nil {
		return plan
	}
	for _, o := range r.Filter.Preserved {
		plan = append(plan, PlanEntry{o, ActionPreserve})
	}
	removed := make(map[ObjectRef]bool)
	for _, o := range r.Filter.Removed {
		if regenerated[o] || removed[o] {
			continue
		}
		removed[o] = true
		plan = append(plan, PlanEntry{o, ActionRemove})
	}
	return plan
}
