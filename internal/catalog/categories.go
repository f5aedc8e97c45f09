package catalog

// UICategories is the canonical order of client-facing buckets. Iteration
// over a selection always follows this order.
var UICategories = []string{"roof", "siding", "trim", "hardware"}

// VisualCategories are the buckets that participate in photo edits.
var VisualCategories = []string{"roof", "siding", "trim"}

var categoryUIMap = map[string]string{
	"roofing":   "roof",
	"siding":    "siding",
	"trim":      "trim",
	"roof_trim": "trim",
	"hardware":  "hardware",
}

// UICategory maps a product's internal category to its UI bucket.
// Unknown categories report ok=false and are excluded from listings.
func UICategory(category string) (string, bool) {
	ui, ok := categoryUIMap[category]
	return ui, ok
}

// IsUICategory reports whether key is one of the four recognized buckets.
func IsUICategory(key string) bool {
	for _, ui := range UICategories {
		if key == ui {
			return true
		}
	}
	return false
}
