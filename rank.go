package lexico

import (
	"cmp"
	"slices"
)

// Select derives the top-N and hapax views of counts, ignoring every token
// in stop. Top words are ordered by frequency descending then alphabetically;
// hapax words (frequency 1) alphabetically. A nil stop filters nothing and
// non-positive bounds yield empty views.
//
// The output depends only on the contents of counts, never on map iteration
// order.
func Select(counts TokenCount, stop Stopwords, topN, hapaxN int) Ranking {
	words := make([]RankedWord, 0, len(counts))
	for w, n := range counts {
		if stop != nil && stop.Contains(w) {
			continue
		}
		words = append(words, RankedWord{Word: w, Frequency: n})
	}

	var hapax []RankedWord
	for _, rw := range words {
		if rw.Frequency == 1 {
			hapax = append(hapax, rw)
		}
	}
	slices.SortFunc(hapax, func(a, b RankedWord) int {
		return cmp.Compare(a.Word, b.Word)
	})

	slices.SortFunc(words, func(a, b RankedWord) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})

	return Ranking{
		Top:   head(words, topN),
		Hapax: head(hapax, hapaxN),
	}
}

// head returns a copy of the first n elements of s.
func head(s []RankedWord, n int) []RankedWord {
	n = max(0, min(n, len(s)))
	out := make([]RankedWord, n)
	copy(out, s)
	return out
}
