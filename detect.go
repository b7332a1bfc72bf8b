package lexico

import (
	"iter"
	"unicode/utf8"
)

// DefaultContextRadius is the number of runes kept on each side of a match
// start in DetectedPattern.Context.
const DefaultContextRadius = 30

// PatternDetector scans raw text for the entity patterns of a RuleSet.
type PatternDetector struct {
	radius int
	limit  int
}

type DetectorOptFunc func(*PatternDetector)

// UsingContextRadius sets the context radius in runes.
func UsingContextRadius(n int) DetectorOptFunc {
	return func(d *PatternDetector) {
		if n >= 0 {
			d.radius = n
		}
	}
}

// UsingMatchLimit caps the number of matches kept per pattern type. Zero,
// the default, keeps every match.
func UsingMatchLimit(n int) DetectorOptFunc {
	return func(d *PatternDetector) {
		if n >= 0 {
			d.limit = n
		}
	}
}

// NewPatternDetector creates a detector with DefaultContextRadius and no
// match limit unless overridden.
func NewPatternDetector(opts ...DetectorOptFunc) *PatternDetector {
	d := &PatternDetector{radius: DefaultContextRadius}
	for _, applyOpt := range opts {
		applyOpt(d)
	}
	return d
}

var defaultDetector = NewPatternDetector()

// Detect scans text with the default PatternDetector.
func Detect(text string, rules *RuleSet) []DetectedPattern {
	return defaultDetector.Detect(text, rules)
}

// Detect returns every match of every entity pattern in text, grouped by
// pattern type in PatternTypes order and in text order within a type.
// Repeated matches are all reported and the same span may be reported under
// several types.
func (d *PatternDetector) Detect(text string, rules *RuleSet) []DetectedPattern {
	out := []DetectedPattern{}
	if text == "" || rules == nil {
		return out
	}

	for _, t := range PatternTypes {
		p, ok := rules.entities[t]
		if !ok || p.re == nil {
			continue
		}
		kept := 0
		for start, end := range p.matches(text) {
			out = append(out, DetectedPattern{
				Type:    t,
				Text:    text[start:end],
				Context: contextWindow(text, start, d.radius),
				Start:   start,
				End:     end,
			})
			kept++
			if d.limit > 0 && kept == d.limit {
				break
			}
		}
	}
	return out
}

// matches yields the start and end of each non-overlapping match of p in
// text that respects its word boundaries. A match whose left edge touches a
// word is retried one rune later. A match whose right edge touches a word is
// cut back to the longest shorter match that ends on a boundary, or retried
// one rune later when there is none.
func (p entityPattern) matches(text string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for pos := 0; pos < len(text); {
			loc := p.re.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}
			start, end := pos+loc[0], pos+loc[1]
			if start != end && (p.bound&boundLeft).accepts(text, start, end) {
				if !(p.bound & boundRight).accepts(text, start, end) {
					end = p.shorten(text, start, end)
				}
				if end > start {
					if !yield(start, end) {
						return
					}
					pos = end
					continue
				}
			}
			pos = nextRune(text, start)
		}
	}
}

// shorten returns the largest end below end at which text[start:] still
// matches p whole and meets the right boundary, or start if there is none.
func (p entityPattern) shorten(text string, start, end int) int {
	for k := end; k > start; {
		_, n := utf8.DecodeLastRuneInString(text[start:k])
		k -= n
		if k > start && boundRight.accepts(text, start, k) && p.whole.MatchString(text[start:k]) {
			return k
		}
	}
	return start
}

func nextRune(text string, at int) int {
	if at >= len(text) {
		return len(text)
	}
	_, n := utf8.DecodeRuneInString(text[at:])
	return at + n
}

// contextWindow returns up to radius runes on each side of at, clipped to
// the text.
func contextWindow(text string, at, radius int) string {
	lo, hi := at, at
	for i := 0; i < radius && lo > 0; i++ {
		_, n := utf8.DecodeLastRuneInString(text[:lo])
		lo -= n
	}
	for i := 0; i < radius && hi < len(text); i++ {
		_, n := utf8.DecodeRuneInString(text[hi:])
		hi += n
	}
	return text[lo:hi]
}
