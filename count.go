package lexico

import "iter"

// DefaultCountHint presizes the TokenCount of a typical document.
const DefaultCountHint = 16 * 1024

// Count accumulates tokens into a TokenCount in a single pass. sizeHint only
// presizes the map; it never limits how many tokens are counted.
func Count(tokens iter.Seq[string], sizeHint int) TokenCount {
	if sizeHint < 0 {
		sizeHint = 0
	}
	counts := make(TokenCount, sizeHint)
	if tokens == nil {
		return counts
	}
	for tok := range tokens {
		counts[tok]++
	}
	return counts
}
