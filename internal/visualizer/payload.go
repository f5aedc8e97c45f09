package visualizer

import "archviz/internal/catalog"

// RegionAttributes is the per-region appearance record sent into prompt
// construction. The catalog's "look" field is surfaced as pattern_or_look.
type RegionAttributes struct {
	Color         string `json:"color"`
	Texture       string `json:"texture"`
	Finish        string `json:"finish"`
	PatternOrLook string `json:"pattern_or_look"`
}

// RegionSpec describes the product applied to one architectural region.
type RegionSpec struct {
	ProductID   int              `json:"product_id"`
	ProductName string           `json:"product_name"`
	Region      string           `json:"region"`
	Attributes  RegionAttributes `json:"attributes"`
}

// EditPayload always names all four UI categories; a nil entry means the
// category was not selected.
type EditPayload struct {
	Roof     *RegionSpec `json:"roof"`
	Siding   *RegionSpec `json:"siding"`
	Trim     *RegionSpec `json:"trim"`
	Hardware *RegionSpec `json:"hardware"`
}

// BuildPayload converts a validated selection into the structured
// per-region edit description.
func BuildPayload(resolved map[string]catalog.ResolvedProduct) EditPayload {
	var payload EditPayload
	for ui, rp := range resolved {
		spec := &RegionSpec{
			ProductID:   rp.ID,
			ProductName: rp.Name,
			Region:      rp.Region,
			Attributes: RegionAttributes{
				Color:         rp.Attributes.Color,
				Texture:       rp.Attributes.Texture,
				Finish:        rp.Attributes.Finish,
				PatternOrLook: rp.Attributes.Look,
			},
		}
		switch ui {
		case "roof":
			payload.Roof = spec
		case "siding":
			payload.Siding = spec
		case "trim":
			payload.Trim = spec
		case "hardware":
			payload.Hardware = spec
		}
	}
	return payload
}
