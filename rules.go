package lexico

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// boundary marks which edges of an entity match must not touch a word rune.
// Go's regexp \b only understands ASCII, so word boundaries around
// accented or Cyrillic text are checked after matching.
type boundary uint8

const (
	boundLeft boundary = 1 << iota
	boundRight

	boundNone boundary = 0
	boundBoth          = boundLeft | boundRight
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// accepts reports whether text[start:end] respects the boundary.
func (b boundary) accepts(text string, start, end int) bool {
	if b&boundLeft != 0 && start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if b&boundRight != 0 && end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// entityBoundaries are shared by every language.
var entityBoundaries = map[PatternType]boundary{
	EmailPattern:      boundNone,
	URLPattern:        boundNone,
	PhonePattern:      boundNone,
	DatePattern:       boundBoth,
	MoneyPattern:      boundBoth,
	HashtagPattern:    boundLeft,
	MentionPattern:    boundLeft,
	CodePattern:       boundBoth,
	PersonNamePattern: boundBoth,
}

type entityPattern struct {
	re    *regexp.Regexp
	whole *regexp.Regexp // re anchored at both ends
	bound boundary
}

func newEntityPattern(expr string, bound boundary) (entityPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return entityPattern{}, err
	}
	whole, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return entityPattern{}, err
	}
	return entityPattern{re: re, whole: whole, bound: bound}, nil
}

// A RuleSet bundles the word, category and entity patterns of one language.
// RuleSets are never mutated after construction and are safe to share
// between goroutines.
type RuleSet struct {
	language Language
	word     *regexp.Regexp
	pronoun  *regexp.Regexp
	verb     *regexp.Regexp
	noun     *regexp.Regexp
	entities map[PatternType]entityPattern
}

// Language returns the language the rules were written for.
func (rs *RuleSet) Language() Language { return rs.language }

// WordPattern returns the token pattern.
func (rs *RuleSet) WordPattern() *regexp.Regexp { return rs.word }

// CategoryPattern returns the whole-token pattern of a grammatical category.
func (rs *RuleSet) CategoryPattern(cat Category) *regexp.Regexp {
	switch cat {
	case Pronoun:
		return rs.pronoun
	case Verb:
		return rs.verb
	case Noun:
		return rs.noun
	}
	return nil
}

// EntityPattern returns the pattern used to detect entities of type t.
func (rs *RuleSet) EntityPattern(t PatternType) *regexp.Regexp {
	return rs.entities[t].re
}

// Override keys accepted by WithOverrides besides the pattern types.
const (
	WordKey    = "word"
	PronounKey = "pronoun"
	VerbKey    = "verb"
	NounKey    = "noun"
)

// WithOverrides returns a copy of rs in which every valid entry of patterns
// replaces the matching compiled-in pattern. Keys are the category keys
// (word, pronoun, verb, noun) and the pattern type names. Category patterns
// are matched against whole tokens, so they are anchored and made
// case-insensitive. Unknown keys and patterns that fail to compile are
// skipped and reported in the returned error; the copy is always usable.
func (rs *RuleSet) WithOverrides(patterns map[string]string) (*RuleSet, error) {
	out := *rs
	out.entities = make(map[PatternType]entityPattern, len(rs.entities))
	for t, p := range rs.entities {
		out.entities[t] = p
	}

	var errs []error
	for key, expr := range patterns {
		key = strings.ToLower(strings.TrimSpace(key))
		if strings.TrimSpace(expr) == "" {
			continue
		}
		var err error
		switch key {
		case WordKey:
			err = compileInto(&out.word, expr)
		case PronounKey:
			err = compileInto(&out.pronoun, anchored(expr))
		case VerbKey:
			err = compileInto(&out.verb, anchored(expr))
		case NounKey:
			err = compileInto(&out.noun, anchored(expr))
		default:
			t := PatternType(key)
			current, ok := out.entities[t]
			if !ok {
				errs = append(errs, fmt.Errorf("%s: unknown pattern key %q", rs.language, key))
				continue
			}
			var updated entityPattern
			if updated, err = newEntityPattern(expr, current.bound); err == nil {
				out.entities[t] = updated
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: pattern %q: %w", rs.language, key, err))
		}
	}
	return &out, errors.Join(errs...)
}

// compileInto replaces *dst only when expr compiles.
func compileInto(dst **regexp.Regexp, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	*dst = re
	return nil
}

func anchored(expr string) string {
	return `(?i)^(?:` + expr + `)$`
}

// ruleSource holds the uncompiled patterns of one language.
type ruleSource struct {
	word     string
	pronoun  string
	verb     string
	noun     string
	entities map[PatternType]string
}

func (src ruleSource) compile(lang Language) *RuleSet {
	rs := &RuleSet{
		language: lang,
		word:     regexp.MustCompile(src.word),
		pronoun:  regexp.MustCompile(anchored(src.pronoun)),
		verb:     regexp.MustCompile(anchored(src.verb)),
		noun:     regexp.MustCompile(anchored(src.noun)),
		entities: make(map[PatternType]entityPattern, len(PatternTypes)),
	}
	for _, t := range PatternTypes {
		p, err := newEntityPattern(src.entities[t], entityBoundaries[t])
		if err != nil {
			panic(fmt.Sprintf("%s: pattern %q: %v", lang, t, err))
		}
		rs.entities[t] = p
	}
	return rs
}

// Patterns common to every language.
const (
	emailExpr   = `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}`
	urlExpr     = `https?://\S+`
	phoneExpr   = `\+?\d[\d\s-]{7,}\d`
	hashtagExpr = `#[\p{L}\p{N}_]+`
	mentionExpr = `@[\p{L}\p{N}_]+`
	amountExpr  = `\s?\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?`
)

var spanishRules = ruleSource{
	word:    `[\p{L}\p{M}]{2,}`,
	pronoun: `yo|tú|vos|usted|él|ella|nosotros|nosotras|vosotros|ustedes|ellos|ellas|mí|conmigo|ti|contigo|sí|consigo`,
	verb:    `[\p{L}\p{M}]+(?:ar|er|ir|ando|iendo|ado|ido)`,
	noun:    `[\p{L}\p{M}]+(?:ción|sión|dad|tud|aje|ura|ista|ismo|ez|eza|or|ora|o|a|e|s)`,
	entities: map[PatternType]string{
		EmailPattern:      emailExpr,
		URLPattern:        urlExpr,
		PhonePattern:      phoneExpr,
		DatePattern:       `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{2}[/-]\d{2}`,
		MoneyPattern:      `(?:Q|L|C|USD|\$)` + amountExpr,
		HashtagPattern:    hashtagExpr,
		MentionPattern:    mentionExpr,
		CodePattern:       `[A-Z]{2,4}-\d{3,6}`,
		PersonNamePattern: `(?:(?:Sr\.|Sra\.|Srta\.|Dr\.|Dra\.|Ing\.|Lic\.)\s+)?[A-ZÁÉÍÓÚÜÑ][a-záéíóúüñ]+(?:\s+[A-ZÁÉÍÓÚÜÑ][a-záéíóúüñ]+){0,2}`,
	},
}

var englishRules = ruleSource{
	word:    `[\p{L}\p{M}]{2,}`,
	pronoun: `i|you|he|she|it|we|they|me|him|her|us|them|mine|yours|his|hers|ours|theirs`,
	verb:    `\p{L}+(?:ing|ed|s)`,
	noun:    `\p{L}+(?:tion|ness|ment|ity|ship|er|or|ist|ism|ance|ence|al|ure|age|ry|dom|hood|ty|ling)`,
	entities: map[PatternType]string{
		EmailPattern:      emailExpr,
		URLPattern:        urlExpr,
		PhonePattern:      phoneExpr,
		DatePattern:       `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{2}[/-]\d{2}`,
		MoneyPattern:      `(?:USD|\$|£|€)` + amountExpr,
		HashtagPattern:    hashtagExpr,
		MentionPattern:    mentionExpr,
		CodePattern:       `[A-Z]{2,4}-\d{3,6}`,
		PersonNamePattern: `(?:(?:Mr\.|Mrs\.|Ms\.|Dr\.|Prof\.)\s+)?[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}`,
	},
}

var russianRules = ruleSource{
	word:    `[А-Яа-яЁё]{2,}`,
	pronoun: `я|ты|он|она|оно|мы|вы|они|меня|тебя|его|её|нас|вас|их|мне|тебе|ему|ей|нам|вам|им`,
	verb:    `[А-Яа-яЁё]+(?:ть|л|ла|ло|ли|ешь|ем|ете|ют|у)`,
	noun:    `[А-Яа-яЁё]+(?:ие|ия|ость|тель|ник|ка|ть|ца|ок|ец|ёнок|ушка|ение)`,
	entities: map[PatternType]string{
		EmailPattern:      emailExpr,
		URLPattern:        urlExpr,
		PhonePattern:      phoneExpr,
		DatePattern:       `\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}[./-]\d{2}[./-]\d{2}`,
		MoneyPattern:      `(?:₽|руб\.?)` + amountExpr,
		HashtagPattern:    hashtagExpr,
		MentionPattern:    mentionExpr,
		CodePattern:       `[A-ZА-Я]{2,4}-\d{3,6}`,
		PersonNamePattern: `[А-ЯЁ][а-яё]+(?:\s+[А-ЯЁ][а-яё]+){0,2}`,
	},
}
