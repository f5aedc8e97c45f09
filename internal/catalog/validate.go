package catalog

import (
	"fmt"
	"strings"
)

// ResolvedProduct is a validated selection entry with its full catalog data.
type ResolvedProduct struct {
	ID         int
	Name       string
	UICategory string
	Region     string
	Attributes Attributes
}

// ValidationError marks a malformed or illegal selection. It is recovered
// at the HTTP boundary as a client-facing rejection.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ValidateSelection checks a per-bucket selection (UI category -> product id)
// and resolves it to full product records. A nil error means the selection is
// valid. Rules, in order: every key must be a recognized UI category; every
// id must exist and be editable; a product cannot be submitted under a bucket
// other than its own; and at least one visual product must be chosen.
func (r *Registry) ValidateSelection(selection map[string]int) (map[string]ResolvedProduct, error) {
	for key := range selection {
		if !IsUICategory(key) {
			return nil, validationErrorf("Invalid selection key %q. Allowed: %s", key, strings.Join(UICategories, ", "))
		}
	}

	resolved := make(map[string]ResolvedProduct, len(selection))
	for _, ui := range UICategories {
		id, ok := selection[ui]
		if !ok {
			continue
		}
		rp, ok := r.resolve(id)
		if !ok {
			return nil, validationErrorf("Invalid or non-editable product id %d for category %q", id, ui)
		}
		if rp.UICategory != ui {
			return nil, validationErrorf("Product %q (id %d) does not belong to %q category", rp.Name, id, ui)
		}
		resolved[ui] = rp
	}

	hasVisual := false
	for _, ui := range VisualCategories {
		if _, ok := resolved[ui]; ok {
			hasVisual = true
			break
		}
	}
	if !hasVisual {
		return nil, &ValidationError{Reason: "Select at least one visual product (roof, siding, trim)."}
	}

	return resolved, nil
}

// resolve returns the full record for an editable product that maps to a
// known UI bucket. Region falls back to the UI category when unset.
func (r *Registry) resolve(id int) (ResolvedProduct, bool) {
	p, ok := r.products[id]
	if !ok || !p.Editable {
		return ResolvedProduct{}, false
	}
	ui, ok := UICategory(p.Category)
	if !ok {
		return ResolvedProduct{}, false
	}
	region := p.Region
	if region == "" {
		region = ui
	}
	return ResolvedProduct{
		ID:         p.ID,
		Name:       p.Name,
		UICategory: ui,
		Region:     region,
		Attributes: p.Attributes,
	}, true
}
