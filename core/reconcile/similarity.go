package reconcile

// editDistance calculates the Levenshtein distance between two rune slices.
// Insertion, deletion and substitution each cost 1.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	d := make([][]int, len(b)+1)
	for i := range d {
		d[i] = make([]int, len(a)+1)
	}

	for i := 0; i <= len(b); i++ {
		d[i][0] = i
	}
	for j := 0; j <= len(a); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(b); i++ {
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j-1]+cost, // substitution
				d[i][j-1]+1,      // insertion
				d[i-1][j]+1,      // deletion
			)
		}
	}

	return d[len(b)][len(a)]
}

// Similarity scores how close two strings are on a [0, 1] scale based on
// edit distance relative to the longer string. Two empty strings score 1.
// Comparison is rune-wise, so accented characters count as single edits.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-editDistance(ra, rb)) / float64(maxLen)
}
