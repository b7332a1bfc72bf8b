package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/lexico"
)

func TestNewSummary(t *testing.T) {
	res := lexico.AnalyzeText("Ella canta y ella baila con Juan", "es")
	s := NewSummary("doc-1", res)

	assert.Equal(t, "doc-1", s.DocumentID)
	assert.Equal(t, lexico.Spanish, s.Language)
	assert.Equal(t, res.TotalWords, s.TotalWords)
	assert.Equal(t, WordFrequency{Word: "ella", Frequency: 2}, s.Pronouns[0])
	assert.Len(t, s.LeastFrequent, len(res.Hapax))
	assert.NotNil(t, s.Verbs)
	assert.NotNil(t, s.Nouns)
}

func TestWriteText(t *testing.T) {
	text := "Juan corre y Juan salta. Escriba a juan@mail.com o visite https://example.com #promo"
	var counts lexico.TokenCount
	res := lexico.AnalyzeText(text, "es", lexico.WithCounts(&counts))
	stats := lexico.ComputeStats(text, counts)

	var buf bytes.Buffer
	err := WriteText(&buf, Document{ID: "42"}, res, stats, Options{
		PageLen:     40,
		GeneratedAt: time.Date(2024, 5, 12, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	out := buf.String()

	for _, want := range []string{
		"Document 42",
		"Generated: 2024-05-12 10:30",
		"Language: es",
		"General metrics",
		"Top 30 words (without stopwords)",
		"Personal pronouns",
		"Patterns: Emails",
		"juan@mail.com",
		"https://example.com",
		"#promo",
		"Patterns: Phone numbers",
		"(none)",
	} {
		assert.Contains(t, out, want)
	}

	pages := strings.Count(out, "page ")
	require.Greater(t, pages, 1)
	assert.Contains(t, out, "page 1/")
	for _, p := range strings.Split(out, "page ") {
		assert.LessOrEqual(t, strings.Count(p, "\n"), 40+1)
	}
}

func TestWriteTextLongSectionsAreCapped(t *testing.T) {
	var words []string
	for i := 0; i < 100; i++ {
		words = append(words, "#tag"+strings.Repeat("x", i%7)+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	text := strings.Join(words, " ")
	res := lexico.AnalyzeText(text, "en")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{Title: "tags"}, res, lexico.ComputeStats(text, nil), Options{}))

	section := buf.String()[strings.Index(buf.String(), "Patterns: Hashtags"):]
	section = section[:strings.Index(section, "Patterns: Mentions")]
	assert.Contains(t, section, "\n50 ")
	assert.NotContains(t, section, "\n51 ")
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name   string
		blocks [][]string
		size   int
		want   [][]string
	}{
		{"fits", [][]string{{"a"}, {"b"}}, 4, [][]string{{"a", "b"}}},
		{"moves block", [][]string{{"a", "b"}, {"c", "d", "e"}}, 4, [][]string{{"a", "b"}, {"c", "d", "e"}}},
		{"splits long block", [][]string{{"1", "2", "3", "4", "5", "6"}}, 4, [][]string{{"1", "2", "3", "4"}, {"5", "6"}}},
		{"empty", nil, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := paginate(tt.blocks, tt.size)
			var got [][]string
			for i, p := range pages {
				assert.Equal(t, i+1, p.number)
				assert.Equal(t, len(pages), p.total)
				got = append(got, p.lines)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
