package lexico

import "slices"

// Classify labels every token of counts with the categories its shape
// matches. A pronoun gets no other label; any other token may be both a verb
// and a noun. Stopwords are classified like any other token.
//
// Results are ordered by word, then pronoun, verb, noun.
func Classify(counts TokenCount, rules *RuleSet) []Classification {
	out := []Classification{}
	if rules == nil || len(counts) == 0 {
		return out
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	slices.Sort(words)

	for _, w := range words {
		freq := counts[w]
		if rules.pronoun.MatchString(w) {
			out = append(out, Classification{Word: w, Category: Pronoun, Frequency: freq})
			continue
		}
		if rules.verb.MatchString(w) {
			out = append(out, Classification{Word: w, Category: Verb, Frequency: freq})
		}
		if rules.noun.MatchString(w) {
			out = append(out, Classification{Word: w, Category: Noun, Frequency: freq})
		}
	}
	return out
}
