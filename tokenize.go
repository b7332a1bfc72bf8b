package lexico

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultChunkSize is the number of bytes matched against the word pattern
// at a time.
const DefaultChunkSize = 64 * 1024

// Tokenizer extracts case-folded word tokens from raw text.
//
// Text is processed in chunks of a fixed size and the word pattern is run on
// each chunk separately. A word that straddles a chunk edge is reported as
// two tokens. Chunk edges are always placed on rune boundaries.
type Tokenizer struct {
	chunkSize int
}

type TokenizerOptFunc func(*Tokenizer)

// UsingChunkSize sets the chunk size in bytes. Values below one are ignored.
func UsingChunkSize(n int) TokenizerOptFunc {
	return func(tok *Tokenizer) {
		if n > 0 {
			tok.chunkSize = n
		}
	}
}

// NewTokenizer creates a Tokenizer using DefaultChunkSize unless overridden.
func NewTokenizer(opts ...TokenizerOptFunc) *Tokenizer {
	tok := &Tokenizer{chunkSize: DefaultChunkSize}
	for _, applyOpt := range opts {
		applyOpt(tok)
	}
	return tok
}

var defaultTokenizer = NewTokenizer()

// Tokenize extracts tokens with the default Tokenizer.
func Tokenize(text string, word *regexp.Regexp) iter.Seq[string] {
	return defaultTokenizer.Tokens(text, word)
}

// Tokens returns a lazy sequence of the lowercase tokens of text matching
// word. Nothing is matched until the sequence is ranged over, and ranging
// stops matching as soon as the consumer breaks out.
func (t *Tokenizer) Tokens(text string, word *regexp.Regexp) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" || word == nil {
			return
		}
		lower := cases.Lower(language.Und)
		for start := 0; start < len(text); {
			end := chunkEnd(text, start, t.chunkSize)
			for _, m := range word.FindAllString(text[start:end], -1) {
				m = strings.TrimSpace(m)
				if m == "" {
					continue
				}
				if !yield(lower.String(norm.NFC.String(m))) {
					return
				}
			}
			start = end
		}
	}
}

// chunkEnd returns the end of the chunk beginning at start, moved back to a
// rune boundary. A chunk always holds at least one rune.
func chunkEnd(text string, start, size int) int {
	end := start + size
	if end >= len(text) {
		return len(text)
	}
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end == start {
		_, n := utf8.DecodeRuneInString(text[start:])
		end = start + n
	}
	return end
}

// Fold applies the same normalisation and case folding the Tokenizer
// applies to tokens.
func Fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}
