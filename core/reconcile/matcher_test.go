package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFindClosestMatch_Exact: exact equality wins before anything else and
// returns the entry unchanged.
func TestFindClosestMatch_Exact(t *testing.T) {
	registry := []string{"maria silva", "carlos lima", "ana souza"}

	match, ok := FindClosestMatch("carlos lima", registry)
	assert.True(t, ok)
	assert.Equal(t, "carlos lima", match)
}

// TestFindClosestMatch_Containment covers both directions of the substring
// rule.
func TestFindClosestMatch_Containment(t *testing.T) {
	registry := []string{"maria silva", "ana souza"}

	// candidate contained in a registry entry
	match, ok := FindClosestMatch("ana", registry)
	assert.True(t, ok)
	assert.Equal(t, "ana souza", match)

	// registry entry contained in the candidate
	match, ok = FindClosestMatch("dra maria silva", registry)
	assert.True(t, ok)
	assert.Equal(t, "maria silva", match)
}

// TestFindClosestMatch_Fuzzy: a close misspelling resolves via the
// similarity rule.
func TestFindClosestMatch_Fuzzy(t *testing.T) {
	registry := []string{"joão silva"}

	match, ok := FindClosestMatch("joao silva", registry)
	assert.True(t, ok)
	assert.Equal(t, "joão silva", match)
}

// TestFindClosestMatch_ThresholdBoundary: the 0.80 bar uses strict
// greater-than semantics. A similarity of exactly 0.80 is not a match.
func TestFindClosestMatch_ThresholdBoundary(t *testing.T) {
	// "abcde" vs "abcdx": one substitution over five runes = exactly 0.80.
	assert.InDelta(t, 0.80, Similarity("abcde", "abcdx"), 1e-9)
	_, ok := FindClosestMatch("abcde", []string{"abcdx"})
	assert.False(t, ok)

	// "abcdefghij" vs "abcdefghix": one substitution over ten runes = 0.90.
	assert.InDelta(t, 0.90, Similarity("abcdefghij", "abcdefghix"), 1e-9)
	match, ok := FindClosestMatch("abcdefghij", []string{"abcdefghix"})
	assert.True(t, ok)
	assert.Equal(t, "abcdefghix", match)
}

// TestFindClosestMatch_RegistryOrder: the registry is scanned in its given
// order and the first hit wins.
func TestFindClosestMatch_RegistryOrder(t *testing.T) {
	// Both entries contain the candidate; the first one must be returned.
	registry := []string{"ana souza", "ana souto"}

	match, ok := FindClosestMatch("ana", registry)
	assert.True(t, ok)
	assert.Equal(t, "ana souza", match)
}

// TestFindClosestMatch_NoMatch: nothing fires, no match.
func TestFindClosestMatch_NoMatch(t *testing.T) {
	registry := []string{"maria silva", "carlos lima"}

	match, ok := FindClosestMatch("xyzzy unknown", registry)
	assert.False(t, ok)
	assert.Empty(t, match)
}

// TestFindClosestMatch_EmptyRegistry never matches.
func TestFindClosestMatch_EmptyRegistry(t *testing.T) {
	_, ok := FindClosestMatch("anyone", nil)
	assert.False(t, ok)
}
