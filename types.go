package lexico

import (
	"cmp"
	"slices"
)

// Language represents a supported rule-set language.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
	Russian Language = "ru"
)

// DefaultLanguage is used whenever a language code is empty or unknown.
const DefaultLanguage = Spanish

// Category represents a heuristic grammatical category.
type Category string

const (
	Pronoun Category = "pronoun"
	Verb    Category = "verb"
	Noun    Category = "noun"
)

// PatternType represents the kind of structured entity a DetectedPattern holds.
type PatternType string

const (
	EmailPattern      PatternType = "email"       // user@example.com
	URLPattern        PatternType = "url"         // http(s) links
	PhonePattern      PatternType = "phone"       // +502 5555-1234
	DatePattern       PatternType = "date"        // 12/05/2024, 2024-05-12
	MoneyPattern      PatternType = "money"       // $1,200.50, Q 300
	HashtagPattern    PatternType = "hashtag"     // #promo
	MentionPattern    PatternType = "mention"     // @user2024
	CodePattern       PatternType = "code"        // ABC-12345
	PersonNamePattern PatternType = "person_name" // Dr. Juan Pérez
)

// PatternTypes lists every entity pattern in detection order.
var PatternTypes = []PatternType{
	EmailPattern,
	URLPattern,
	PhonePattern,
	DatePattern,
	MoneyPattern,
	HashtagPattern,
	MentionPattern,
	CodePattern,
	PersonNamePattern,
}

// TokenCount maps a case-folded token to its number of occurrences.
type TokenCount map[string]int

// Total returns the sum of all occurrences.
func (tc TokenCount) Total() int {
	total := 0
	for _, n := range tc {
		total += n
	}
	return total
}

// Unique returns the number of distinct tokens.
func (tc TokenCount) Unique() int {
	return len(tc)
}

// A RankedWord is a token together with its frequency.
type RankedWord struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// Ranking holds the stopword-filtered views of a TokenCount.
type Ranking struct {
	Top   []RankedWord
	Hapax []RankedWord
}

// A Classification labels a token with one heuristic category.
type Classification struct {
	Word      string   `json:"word"`
	Category  Category `json:"category"`
	Frequency int      `json:"frequency"`
}

// A DetectedPattern is a structured entity found in the raw text.
type DetectedPattern struct {
	Type    PatternType `json:"type"`
	Text    string      `json:"text"`    // The matched substring.
	Context string      `json:"context"` // Text surrounding the match start.
	Start   int         `json:"start"`   // Byte offset of the match in the original text.
	End     int         `json:"end"`     // Byte offset one past the match.
}

// AnalysisResult is the outcome of analysing one document. It is built fresh
// for every call and owned by the caller afterwards.
type AnalysisResult struct {
	Language        Language          `json:"language"`
	TotalWords      int               `json:"total_words"`
	UniqueWords     int               `json:"unique_words"`
	TopFrequent     []RankedWord      `json:"top_frequent"`
	Hapax           []RankedWord      `json:"hapax"`
	Classifications []Classification  `json:"classifications"`
	Patterns        []DetectedPattern `json:"patterns"`
}

// ByCategory returns the classifications of one category, most frequent
// first and alphabetical among equals.
func (r *AnalysisResult) ByCategory(cat Category) []Classification {
	out := []Classification{}
	for _, c := range r.Classifications {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Classification) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}

// PatternsOf returns every detected pattern of the given type in text order.
func (r *AnalysisResult) PatternsOf(t PatternType) []DetectedPattern {
	out := []DetectedPattern{}
	for _, p := range r.Patterns {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// DistinctPatterns returns the distinct matched texts of one pattern type in
// order of first appearance, capped at limit (limit <= 0 means no cap).
func (r *AnalysisResult) DistinctPatterns(t PatternType, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range r.Patterns {
		if p.Type != t {
			continue
		}
		if _, dup := seen[p.Text]; dup {
			continue
		}
		seen[p.Text] = struct{}{}
		out = append(out, p.Text)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
