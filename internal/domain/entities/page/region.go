// Package page defines the domain entities for in-place page editing:
// editable regions, captured edit-sets, and template merging.
package page

import (
	"encoding/json"
	"fmt"
)

// Region represents one editable area of a rendered page. The ID is a flat
// namespace unique within a render; Tag is cosmetic (h1, h2, p). When Active
// is false the region renders as static content.
type Region struct {
	ID          string `json:"id"`
	DefaultText string `json:"defaultText"`
	Tag         string `json:"tag"`
	Active      bool   `json:"active"`

	// liveText holds the transient, possibly user-modified text while edit
	// mode is active. Never persisted directly; only its capture is.
	liveText string
	modified bool
}

// LiveText returns the region's current text: the live edit if one was made,
// otherwise the default.
func (r *Region) LiveText() string {
	if r.modified {
		return r.liveText
	}
	return r.DefaultText
}

// Edit is a captured {id, text} pair. The id must match exactly one region
// for a merge to take effect; unmatched ids are silently ignored.
type Edit struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// EditSet is an ordered sequence of edits. Order is irrelevant to merge
// semantics (keyed by id) but preserved for deterministic round-tripping
// through storage.
type EditSet []Edit

// Marshal serializes the edit-set as a flat JSON array, preserving order.
func (es EditSet) Marshal() ([]byte, error) {
	if es == nil {
		es = EditSet{}
	}
	data, err := json.Marshal(es)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal edit-set: %w", err)
	}
	return data, nil
}

// UnmarshalEditSet deserializes a flat JSON array back into an EditSet.
func UnmarshalEditSet(data []byte) (EditSet, error) {
	var es EditSet
	if err := json.Unmarshal(data, &es); err != nil {
		return nil, fmt.Errorf("failed to unmarshal edit-set: %w", err)
	}
	return es, nil
}

// ByID returns the edits keyed by id for merge lookups.
func (es EditSet) ByID() map[string]string {
	m := make(map[string]string, len(es))
	for _, e := range es {
		m[e.ID] = e.Text
	}
	return m
}

// ErrDuplicateRegionID is returned by Declare when two regions in the same
// render share an id. This is a caller error, not a merge-precedence choice.
var ErrDuplicateRegionID = fmt.Errorf("duplicate region id")

// Registry tracks the editable regions of one render in document order and
// exposes them uniformly for capture and re-hydration.
type Registry struct {
	regions []*Region
	byID    map[string]*Region
}

// NewRegistry creates an empty region registry for a single render pass.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*Region),
	}
}

// Declare registers an editable region. Regions render in declaration
// (document) order.
func (reg *Registry) Declare(id, defaultText, tag string, active bool) (*Region, error) {
	if id == "" {
		return nil, fmt.Errorf("region id must not be empty")
	}
	if _, exists := reg.byID[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRegionID, id)
	}

	region := &Region{
		ID:          id,
		DefaultText: defaultText,
		Tag:         tag,
		Active:      active,
	}
	reg.regions = append(reg.regions, region)
	reg.byID[id] = region
	return region, nil
}

// SetLiveText records an in-place edit on an active region. Edits on unknown
// or inactive regions are rejected.
func (reg *Registry) SetLiveText(id, text string) error {
	region, exists := reg.byID[id]
	if !exists {
		return fmt.Errorf("unknown region %q", id)
	}
	if !region.Active {
		return fmt.Errorf("region %q is not active", id)
	}
	region.liveText = text
	region.modified = true
	return nil
}

// Regions returns all declared regions in document order.
func (reg *Registry) Regions() []*Region {
	return reg.regions
}

// Capture walks the active regions in document order and produces one Edit
// per region carrying its live text at the instant of capture. Capture is a
// pure read and is total: unmodified regions yield an Edit with their
// current (default) text.
func (reg *Registry) Capture() EditSet {
	var es EditSet
	for _, region := range reg.regions {
		if !region.Active {
			continue
		}
		es = append(es, Edit{ID: region.ID, Text: region.LiveText()})
	}
	return es
}
