// Package report shapes analysis results for clients: a JSON summary and a
// paginated plain-text report.
package report

import "github.com/tsawler/lexico"

// WordFrequency is a word with its number of occurrences.
type WordFrequency struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// Summary is the compact view of one analysis.
type Summary struct {
	DocumentID    string          `json:"document_id,omitempty"`
	Language      lexico.Language `json:"language"`
	TotalWords    int             `json:"total_words"`
	UniqueWords   int             `json:"unique_words"`
	TopFrequent   []WordFrequency `json:"top_frequent"`
	LeastFrequent []WordFrequency `json:"least_frequent"`
	Pronouns      []WordFrequency `json:"pronouns"`
	Verbs         []WordFrequency `json:"verbs"`
	Nouns         []WordFrequency `json:"nouns"`
}

// NewSummary builds the summary of res.
func NewSummary(documentID string, res *lexico.AnalysisResult) Summary {
	return Summary{
		DocumentID:    documentID,
		Language:      res.Language,
		TotalWords:    res.TotalWords,
		UniqueWords:   res.UniqueWords,
		TopFrequent:   ranked(res.TopFrequent),
		LeastFrequent: ranked(res.Hapax),
		Pronouns:      classified(res.ByCategory(lexico.Pronoun)),
		Verbs:         classified(res.ByCategory(lexico.Verb)),
		Nouns:         classified(res.ByCategory(lexico.Noun)),
	}
}

func ranked(in []lexico.RankedWord) []WordFrequency {
	out := make([]WordFrequency, len(in))
	for i, rw := range in {
		out[i] = WordFrequency{Word: rw.Word, Frequency: rw.Frequency}
	}
	return out
}

func classified(in []lexico.Classification) []WordFrequency {
	out := make([]WordFrequency, len(in))
	for i, c := range in {
		out[i] = WordFrequency{Word: c.Word, Frequency: c.Frequency}
	}
	return out
}
