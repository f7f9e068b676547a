package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxEditDistance bounds how far a fuzzy match may drift from the master
// data. Short names tolerate two edits; longer names a quarter of their
// length.
func maxEditDistance(target string) int {
	if d := len(target) / 4; d > 2 {
		return d
	}
	return 2
}

// normalize lowercases and collapses whitespace for comparison.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// MatchCustomer resolves a possibly misspelled or abbreviated customer name
// against the customer master data. Matching is case-insensitive and accepts
// prefixes ("Adatum Corp"), containment and small edit distances.
func MatchCustomer(name string) (Customer, bool) {
	norm := normalize(name)
	if norm == "" {
		return Customer{}, false
	}

	// Exact and prefix matches win before any fuzzy scoring.
	for _, c := range Customers {
		cn := normalize(c.Name)
		if cn == norm || strings.HasPrefix(cn, norm) || strings.HasPrefix(norm, cn) {
			return c, true
		}
	}

	best := Customer{}
	bestDist := -1
	for _, c := range Customers {
		cn := normalize(c.Name)
		d := levenshtein.ComputeDistance(norm, cn)
		if d <= maxEditDistance(cn) && (bestDist < 0 || d < bestDist) {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

// MatchItemNumber resolves a full or partial item number ("1896" -> "1896-S")
// against the item master data.
func MatchItemNumber(number string) (Item, bool) {
	num := strings.ToUpper(strings.TrimSpace(number))
	if num == "" {
		return Item{}, false
	}

	if item, ok := ItemByNumber(num); ok {
		return item, true
	}

	// Partial numbers match when exactly one item shares the prefix.
	var found Item
	matches := 0
	for _, item := range Items {
		if strings.HasPrefix(item.Number, num) {
			found = item
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	return Item{}, false
}

// MatchItemDescription resolves a free-form item description against the item
// master data, tolerating partial names ("Athens desk" -> ATHENS-työpöytä)
// and small misspellings.
func MatchItemDescription(description string) (Item, bool) {
	norm := normalize(description)
	if norm == "" {
		return Item{}, false
	}

	for _, item := range Items {
		if normalize(item.Description) == norm {
			return item, true
		}
	}

	// The leading product name (ATHENS, PARIS, ...) is the strongest signal
	// customers actually use.
	for _, item := range Items {
		lead := itemLead(item.Description)
		if lead != "" && strings.Contains(norm, lead) {
			return item, true
		}
	}

	best := Item{}
	bestDist := -1
	for _, item := range Items {
		in := normalize(item.Description)
		d := levenshtein.ComputeDistance(norm, in)
		if d <= maxEditDistance(in) && (bestDist < 0 || d < bestDist) {
			best, bestDist = item, d
		}
	}
	return best, bestDist >= 0
}

// itemLead extracts the lowercase leading product name from a master-data
// description, e.g. "PARIS-vierastuoli, musta" -> "paris".
func itemLead(description string) string {
	lead := strings.FieldsFunc(description, func(r rune) bool {
		return r == '-' || r == ' ' || r == ','
	})
	if len(lead) == 0 {
		return ""
	}
	// Only all-caps product names are distinctive enough to match on.
	if lead[0] != strings.ToUpper(lead[0]) || len(lead[0]) < 4 {
		return ""
	}
	return strings.ToLower(lead[0])
}
