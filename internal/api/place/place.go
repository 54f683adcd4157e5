// Package place reduces composite place strings to a single primary name
// before external lookups ("Paris & London" -> "Paris").
package place

import "strings"

// separators is scanned in order; the first entry found anywhere in the
// string wins, regardless of position. The order is part of the contract:
// "Osaka -> Kyoto, Japan" splits on "&"/"->" before "," ever applies.
var separators = []string{"&", "->", ",", "+", " and ", " - "}

// ExtractPrimaryName returns the substring before the first matching
// separator, trimmed. A string with no separator is returned trimmed as is.
func ExtractPrimaryName(s string) string {
	for _, sep := range separators {
		if idx := strings.Index(s, sep); idx != -1 {
			return strings.TrimSpace(s[:idx])
		}
	}
	return strings.TrimSpace(s)
}
