package catalog

import (
	"errors"
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func TestValidateSelectionResolvesVisualProducts(t *testing.T) {
	reg := mustLoad(t)

	resolved, err := reg.ValidateSelection(map[string]int{"roof": 6, "siding": 11})
	if err != nil {
		t.Fatalf("ValidateSelection: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved entries, got %d", len(resolved))
	}
	if resolved["roof"].Name != "Legacy Panel" {
		t.Fatalf("expected Legacy Panel for roof, got %q", resolved["roof"].Name)
	}
	if resolved["siding"].Name != "Board & Batten" {
		t.Fatalf("expected Board & Batten for siding, got %q", resolved["siding"].Name)
	}
	if resolved["roof"].Region != "roof" || resolved["siding"].Region != "siding" {
		t.Fatalf("unexpected regions: %+v", resolved)
	}
}

func TestValidateSelectionRejectsUnknownKey(t *testing.T) {
	reg := mustLoad(t)

	_, err := reg.ValidateSelection(map[string]int{"walls": 9})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Reason, `"walls"`) || !strings.Contains(vErr.Reason, "roof, siding, trim, hardware") {
		t.Fatalf("unexpected reason: %q", vErr.Reason)
	}
}

func TestValidateSelectionRejectsUnknownOrNonEditableID(t *testing.T) {
	reg := mustLoad(t)

	cases := []struct {
		name      string
		selection map[string]int
	}{
		{"unknown id", map[string]int{"roof": 99}},
		{"non-editable hardware", map[string]int{"roof": 8, "hardware": 13}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.ValidateSelection(tc.selection)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(vErr.Reason, "Invalid or non-editable product id") {
				t.Fatalf("unexpected reason: %q", vErr.Reason)
			}
		})
	}
}

func TestValidateSelectionRejectsCategoryMismatch(t *testing.T) {
	reg := mustLoad(t)

	// Product 9 is siding; submitting it under the roof bucket must fail.
	_, err := reg.ValidateSelection(map[string]int{"roof": 9})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Reason, "does not belong") {
		t.Fatalf("unexpected reason: %q", vErr.Reason)
	}
}

func TestValidateSelectionHardwareIDUnderTrimKey(t *testing.T) {
	reg := mustLoad(t)

	// Product 13 is hardware (non-editable), so it fails resolution before
	// the category mismatch check can even run.
	_, err := reg.ValidateSelection(map[string]int{"trim": 13})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Reason, "13") {
		t.Fatalf("unexpected reason: %q", vErr.Reason)
	}
}

func TestValidateSelectionRequiresVisualProduct(t *testing.T) {
	reg := mustLoad(t)

	cases := []struct {
		name      string
		selection map[string]int
	}{
		{"empty selection", map[string]int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.ValidateSelection(tc.selection)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Reason != "Select at least one visual product (roof, siding, trim)." {
				t.Fatalf("unexpected reason: %q", vErr.Reason)
			}
		})
	}
}

func TestNonEditableProductsNeverResolve(t *testing.T) {
	reg := mustLoad(t)

	for id := 1; id <= reg.Len(); id++ {
		p, ok := reg.Product(id)
		if !ok {
			t.Fatalf("product %d not found", id)
		}
		if p.Editable {
			continue
		}
		if _, ok := reg.resolve(id); ok {
			t.Fatalf("non-editable product %d resolved", id)
		}
	}
}
