package catalog

import "log/slog"

// NameSelection is the client-side shape of one picked product.
type NameSelection struct {
	ProductName string `json:"product_name"`
}

// nameToID maps client-facing product names to catalog ids. Names are not
// unique across categories; collisions live in nameExceptions instead.
var nameToID = map[string]int{
	"Ridge Cap":     1,
	"Rake & Corner": 2,
	"J Channel":     3,
	"Corner Trim":   4,

	"Leakguard Panel": 5,
	"Legacy Panel":    6,
	"Classic Panel":   7,
	"Standing Seam":   8,

	"Traditional Panel":                 9,
	"Board & Batten":                    11,
	"Concealed Fastener Board & Batten": 12,
}

// nameExceptions disambiguates names that exist in more than one catalog
// category, keyed by name then submitted UI category. "Classic Panel" is the
// single known collision (roofing id 7 vs siding id 10).
var nameExceptions = map[string]map[string]int{
	"Classic Panel": {
		"roof":   7,
		"siding": 10,
	},
}

// ResolveNames translates client-submitted product names into catalog ids.
// Entries with an unknown name are dropped with a warning; the remaining
// partial selection is handed to ValidateSelection, which rejects it if it
// is empty or malformed.
func ResolveNames(selections map[string]NameSelection, logger *slog.Logger) map[string]int {
	if logger == nil {
		logger = slog.Default()
	}

	ids := make(map[string]int, len(selections))
	for category, item := range selections {
		name := item.ProductName
		if name == "" {
			continue
		}

		id, ok := nameToID[name]
		if byCategory, exceptional := nameExceptions[name]; exceptional {
			if exceptionID, found := byCategory[category]; found {
				id, ok = exceptionID, true
			}
		}
		if !ok {
			logger.Warn("unmapped product name", "name", name, "category", category)
			continue
		}

		ids[category] = id
	}

	return ids
}
