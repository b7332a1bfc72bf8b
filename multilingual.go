package lexico

import (
	"strings"

	"github.com/bbalet/stopwords"
)

// Stopwords reports whether a token is a stopword. Membership is
// case-insensitive.
type Stopwords interface {
	Contains(word string) bool
}

// StopwordSet is an explicit set of folded stopwords. The zero value and an
// empty set filter nothing.
type StopwordSet map[string]struct{}

// NewStopwordSet folds and stores words; blank entries are dropped.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		if w = Fold(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Contains implements Stopwords.
func (s StopwordSet) Contains(word string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[Fold(word)]
	return ok
}

// Len returns the number of stopwords in the set.
func (s StopwordSet) Len() int {
	return len(s)
}

// libraryStopwords checks tokens against the stopword lists bundled with
// github.com/bbalet/stopwords, which uses ISO 639-1 codes.
type libraryStopwords struct {
	code string
}

// LibraryStopwords returns the bundled stopword list of lang.
func LibraryStopwords(lang Language) Stopwords {
	return libraryStopwords{code: string(lang)}
}

// Contains implements Stopwords. The library drops stop words from the text
// it cleans, so a word is a stop word when nothing is left of it.
func (l libraryStopwords) Contains(word string) bool {
	word = Fold(word)
	if word == "" {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, l.code, false)) == ""
}

// IsSupported reports whether lang has a compiled-in rule set.
func IsSupported(lang Language) bool {
	_, ok := ParseLanguage(string(lang))
	return ok
}

// SupportedLanguages returns every language with a compiled-in rule set.
func SupportedLanguages() []Language {
	return defaultRegistry.Languages()
}
