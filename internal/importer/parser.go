// This package implements the bulk ISBN import pipeline: parsing pasted or
// dropped identifier lists, looking them up against a catalog provider in
// rate-limited batches, and reporting progress along the way.

package importer

import "strings"

// ParseIdentifiers splits free-form text into ISBN candidates. Tokens may be
// separated by newlines, commas, semicolons, tabs, or spaces, which covers
// hand-pasted lists as well as single-column CSV exports. Duplicate
// identifiers are dropped; the first occurrence wins.
func ParseIdentifiers(input string) []string {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case '\n', '\r', ',', ';', '\t', ' ':
			return true
		}
		return false
	})

	seen := make(map[string]bool)
	var candidates []string
	for _, tok := range tokens {
		isbn, ok := NormalizeISBN(tok)
		if !ok || seen[isbn] {
			continue
		}
		seen[isbn] = true
		candidates = append(candidates, isbn)
	}
	return candidates
}

// NormalizeISBN strips surrounding quotes and interior hyphens from a raw
// token. A candidate is valid only if exactly 10 or 13 digits remain.
func NormalizeISBN(raw string) (string, bool) {
	s := strings.Trim(strings.TrimSpace(raw), `"'`)
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 10 && len(s) != 13 {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}
