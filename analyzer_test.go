package lexico

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestAnalyzeSpanishScenario(t *testing.T) {
	text := "Juan corre y Juan salta. juan@mail.com"
	res := AnalyzeText(text, "es")

	if res.Language != Spanish {
		t.Errorf("Language = %q, want %q", res.Language, Spanish)
	}
	// "y" is shorter than the two-letter word minimum; mail and com come from
	// the address.
	if res.TotalWords != 7 {
		t.Errorf("TotalWords = %d, want 7", res.TotalWords)
	}
	if res.UniqueWords != 5 {
		t.Errorf("UniqueWords = %d, want 5", res.UniqueWords)
	}
	if len(res.TopFrequent) == 0 || res.TopFrequent[0] != (RankedWord{Word: "juan", Frequency: 3}) {
		t.Errorf("TopFrequent[0] = %v, want juan/3", res.TopFrequent)
	}

	emails := res.PatternsOf(EmailPattern)
	if len(emails) != 1 || emails[0].Text != "juan@mail.com" {
		t.Fatalf("email patterns = %v, want one juan@mail.com", emails)
	}
	if got := res.PatternsOf(MentionPattern); len(got) != 0 {
		t.Errorf("mention inside an address was reported: %v", got)
	}
	if got := res.DistinctPatterns(PersonNamePattern, 0); !reflect.DeepEqual(got, []string{"Juan"}) {
		t.Errorf("distinct person names = %v, want [Juan]", got)
	}
	if got := res.PatternsOf(PersonNamePattern); len(got) != 2 {
		t.Errorf("person name matches = %d, want 2", len(got))
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	res := AnalyzeText("", "en")

	if res.TotalWords != 0 || res.UniqueWords != 0 {
		t.Errorf("counts = %d/%d, want 0/0", res.TotalWords, res.UniqueWords)
	}
	if res.TopFrequent == nil || len(res.TopFrequent) != 0 {
		t.Errorf("TopFrequent = %#v, want empty non-nil", res.TopFrequent)
	}
	if res.Hapax == nil || len(res.Hapax) != 0 {
		t.Errorf("Hapax = %#v, want empty non-nil", res.Hapax)
	}
	if res.Classifications == nil || len(res.Classifications) != 0 {
		t.Errorf("Classifications = %#v, want empty non-nil", res.Classifications)
	}
	if res.Patterns == nil || len(res.Patterns) != 0 {
		t.Errorf("Patterns = %#v, want empty non-nil", res.Patterns)
	}
}

func TestAnalyzeHashtagAndMention(t *testing.T) {
	res := AnalyzeText("#promo @user2024", "es")

	tags := res.PatternsOf(HashtagPattern)
	if len(tags) != 1 || tags[0].Text != "#promo" {
		t.Errorf("hashtags = %v, want [#promo]", tags)
	}
	mentions := res.PatternsOf(MentionPattern)
	if len(mentions) != 1 || mentions[0].Text != "@user2024" {
		t.Errorf("mentions = %v, want [@user2024]", mentions)
	}
}

func TestAnalyzeProperties(t *testing.T) {
	texts := []string{
		"The teacher was walking home. The teacher runs. Call +1 555 123 4567 or mail me@x.org",
		"Él y ella cantaban canciones. La canción del año cuesta $1,200.50 el 12/05/2024.",
		"Мы читали книгу. Мы любим книги! Код АБ-1234, дата 01.02.2024.",
		"",
		"a b c",
	}
	stop := NewStopwordSet("the", "la", "el", "мы")

	for _, text := range texts {
		for _, lang := range SupportedLanguages() {
			res, err := Analyze(context.Background(), text, Resolve(string(lang)), WithStopwords(stop), WithTopN(5), WithHapaxN(5))
			if err != nil {
				t.Fatalf("Analyze(%q, %s): %v", text, lang, err)
			}

			counts := Count(Tokenize(text, Resolve(string(lang)).WordPattern()), 0)
			if res.TotalWords != counts.Total() || res.UniqueWords != counts.Unique() {
				t.Errorf("%s %q: counts %d/%d, want %d/%d", lang, text,
					res.TotalWords, res.UniqueWords, counts.Total(), counts.Unique())
			}

			for _, rw := range append(append([]RankedWord{}, res.TopFrequent...), res.Hapax...) {
				if stop.Contains(rw.Word) {
					t.Errorf("%s %q: stopword %q ranked", lang, text, rw.Word)
				}
				if counts[rw.Word] != rw.Frequency {
					t.Errorf("%s %q: %q frequency %d, counted %d", lang, text, rw.Word, rw.Frequency, counts[rw.Word])
				}
			}
			for _, rw := range res.Hapax {
				if rw.Frequency != 1 {
					t.Errorf("%s %q: hapax %q has frequency %d", lang, text, rw.Word, rw.Frequency)
				}
			}

			categories := map[string]map[Category]bool{}
			for _, c := range res.Classifications {
				if categories[c.Word] == nil {
					categories[c.Word] = map[Category]bool{}
				}
				categories[c.Word][c.Category] = true
			}
			for w, cats := range categories {
				if cats[Pronoun] && len(cats) > 1 {
					t.Errorf("%s %q: pronoun %q also labelled %v", lang, text, w, cats)
				}
			}

			for _, p := range res.Patterns {
				if text[p.Start:p.End] != p.Text {
					t.Errorf("%s %q: pattern %v does not match its offsets", lang, text, p)
				}
			}
		}
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	text := "uno dos tres dos tres tres cuatro cinco seis siete ocho nueve diez"
	first := AnalyzeText(text, "es", WithTopN(4), WithHapaxN(4))
	for i := 0; i < 20; i++ {
		again := AnalyzeText(text, "es", WithTopN(4), WithHapaxN(4))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%v\n%v", i, first, again)
		}
	}
}

func TestAnalyzeSingleWordDocument(t *testing.T) {
	res := AnalyzeText("hola", "es")
	want := []RankedWord{{Word: "hola", Frequency: 1}}
	if !reflect.DeepEqual(res.TopFrequent, want) || !reflect.DeepEqual(res.Hapax, want) {
		t.Errorf("top %v hapax %v, want both %v", res.TopFrequent, res.Hapax, want)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Analyze(ctx, "texto de prueba", Resolve("es"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Errorf("res = %v, want nil", res)
	}
}

func TestAnalyzeProgress(t *testing.T) {
	var got []float64
	AnalyzeText("uno dos", "es", WithProgressCallback(func(p float64) {
		got = append(got, p)
	}))
	want := []float64{0.25, 0.5, 0.75, 1.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("progress = %v, want %v", got, want)
	}
}

func TestAnalyzeWithCounts(t *testing.T) {
	var counts TokenCount
	res := AnalyzeText("la casa y la mesa", "es", WithCounts(&counts))

	want := TokenCount{"la": 2, "casa": 1, "mesa": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
	if counts.Total() != res.TotalWords {
		t.Errorf("counts total %d != TotalWords %d", counts.Total(), res.TotalWords)
	}
}

func TestAggregateNilInputs(t *testing.T) {
	res := Aggregate(nil, Ranking{}, nil, nil)
	if res.TotalWords != 0 || res.UniqueWords != 0 {
		t.Errorf("counts = %d/%d, want 0/0", res.TotalWords, res.UniqueWords)
	}
	if res.TopFrequent == nil || res.Hapax == nil || res.Classifications == nil || res.Patterns == nil {
		t.Errorf("Aggregate left nil lists: %#v", res)
	}
}

func TestByCategoryOrdering(t *testing.T) {
	res := &AnalysisResult{Classifications: []Classification{
		{Word: "cantar", Category: Verb, Frequency: 1},
		{Word: "bailar", Category: Verb, Frequency: 3},
		{Word: "amar", Category: Verb, Frequency: 1},
		{Word: "casa", Category: Noun, Frequency: 9},
	}}
	got := res.ByCategory(Verb)
	want := []Classification{
		{Word: "bailar", Category: Verb, Frequency: 3},
		{Word: "amar", Category: Verb, Frequency: 1},
		{Word: "cantar", Category: Verb, Frequency: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByCategory(Verb) = %v, want %v", got, want)
	}
}

func TestDistinctPatternsCap(t *testing.T) {
	res := AnalysisResult{Patterns: []DetectedPattern{
		{Type: PhonePattern, Text: "5555-1234"},
		{Type: EmailPattern, Text: "a@b.co"},
		{Type: PhonePattern, Text: "5555-1234"},
		{Type: PhonePattern, Text: "4444-0000"},
		{Type: PhonePattern, Text: "3333-0000"},
	}}
	got := res.DistinctPatterns(PhonePattern, 2)
	want := []string{"5555-1234", "4444-0000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctPatterns = %v, want %v", got, want)
	}
}
