package reconcile

import "strings"

// similarityThreshold is the confidence bar for auto-applying a correction
// without human review. Matches must score strictly above it.
const similarityThreshold = 0.80

// normalizeName lowercases and trims a name for comparison. All matching in
// this package operates on normalized names; original casing is preserved on
// the registry side and restored on correction.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindClosestMatch returns the registry entry that best matches the
// candidate, scanning the registry in its given order with the cheap checks
// first:
//
//  1. exact equality
//  2. containment in either direction
//  3. edit-distance similarity strictly above 0.80
//
// The first entry a rule fires on wins. Candidate and registry entries must
// already be normalized by the caller. The second return is false when no
// rule fires.
func FindClosestMatch(candidate string, registry []string) (string, bool) {
	for _, entry := range registry {
		if entry == candidate {
			return entry, true
		}
	}

	for _, entry := range registry {
		if strings.Contains(entry, candidate) || strings.Contains(candidate, entry) {
			return entry, true
		}
	}

	for _, entry := range registry {
		if Similarity(candidate, entry) > similarityThreshold {
			return entry, true
		}
	}

	return "", false
}
