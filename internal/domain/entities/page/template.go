package page

// TemplateRegion is one declared region of a page template: the stable id,
// its default text, and the rendering tag.
type TemplateRegion struct {
	ID          string `json:"id"`
	DefaultText string `json:"defaultText"`
	Tag         string `json:"tag"`
}

// Template is the static definition of a page's editable surface: its
// regions in document order with their default texts.
type Template struct {
	Title   string           `json:"title"`
	Regions []TemplateRegion `json:"regions"`
}

// MergedRegion is one region of the final visible content after overlaying
// an edit-set onto the template.
type MergedRegion struct {
	ID   string `json:"id"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Merge produces the final visible content for this template: for each
// region, the persisted edit's text if the edit-set contains a matching id,
// else the template default. A nil edit-set yields exactly the template
// defaults. Edits with no matching region are ignored, as are regions a
// stale edit-set knows nothing about. Deterministic for a given
// (template, edit-set) pair.
func (t *Template) Merge(edits EditSet) []MergedRegion {
	var overlay map[string]string
	if edits != nil {
		overlay = edits.ByID()
	}

	merged := make([]MergedRegion, 0, len(t.Regions))
	for _, region := range t.Regions {
		text := region.DefaultText
		if overlay != nil {
			if edited, ok := overlay[region.ID]; ok {
				text = edited
			}
		}
		merged = append(merged, MergedRegion{
			ID:   region.ID,
			Tag:  region.Tag,
			Text: text,
		})
	}
	return merged
}

// NewRegistry builds a render-time registry from the template's regions.
// When active is true the regions accept live edits until captured.
func (t *Template) NewRegistry(active bool) (*Registry, error) {
	reg := NewRegistry()
	for _, region := range t.Regions {
		if _, err := reg.Declare(region.ID, region.DefaultText, region.Tag, active); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
