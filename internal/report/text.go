package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tsawler/lexico"
)

// Section lengths of the text report.
const (
	RankedRows     = 30
	CategoryRows   = 25
	PatternRows    = 50
	DefaultPageLen = 60
)

var patternTitles = map[lexico.PatternType]string{
	lexico.EmailPattern:      "Emails",
	lexico.URLPattern:        "URLs",
	lexico.PhonePattern:      "Phone numbers",
	lexico.DatePattern:       "Dates",
	lexico.MoneyPattern:      "Amounts",
	lexico.HashtagPattern:    "Hashtags",
	lexico.MentionPattern:    "Mentions",
	lexico.CodePattern:       "Codes",
	lexico.PersonNamePattern: "Person names",
}

// Document describes the analysed document in the report header.
type Document struct {
	ID    string
	Title string
}

// Options controls text report rendering.
type Options struct {
	PageLen     int       // Lines per page; DefaultPageLen when zero
	GeneratedAt time.Time // Shown in the header; omitted when zero
}

// WriteText renders the text report of res to w, split into pages of
// opts.PageLen lines, each ending with a "page i/n" footer. A section that
// fits on one page is never split across pages.
func WriteText(w io.Writer, doc Document, res *lexico.AnalysisResult, stats lexico.Stats, opts Options) error {
	pageLen := opts.PageLen
	if pageLen <= 0 {
		pageLen = DefaultPageLen
	}

	var blocks [][]string
	blocks = append(blocks, header(doc, res, opts.GeneratedAt))
	blocks = append(blocks, table("General metrics", []string{"Metric", "Value"}, metricRows(res, stats)))

	blocks = append(blocks, table(fmt.Sprintf("Top %d words (without stopwords)", RankedRows),
		[]string{"#", "Word", "Frequency"}, rankedRows(res.TopFrequent, RankedRows)))
	blocks = append(blocks, table(fmt.Sprintf("Words with frequency 1 (sample of %d)", RankedRows),
		[]string{"#", "Word"}, hapaxRows(res.Hapax, RankedRows)))

	for _, c := range []struct {
		cat   lexico.Category
		title string
	}{
		{lexico.Pronoun, "Personal pronouns"},
		{lexico.Verb, "Verbs (approximate)"},
		{lexico.Noun, "Nouns (approximate)"},
	} {
		blocks = append(blocks, table(c.title, []string{"Word", "Frequency"}, categoryRows(res.ByCategory(c.cat), CategoryRows)))
	}

	for _, t := range lexico.PatternTypes {
		var rows [][]string
		for i, text := range res.DistinctPatterns(t, PatternRows) {
			rows = append(rows, []string{strconv.Itoa(i + 1), text})
		}
		blocks = append(blocks, table("Patterns: "+patternTitles[t], []string{"#", "Match"}, rows))
	}

	blocks = append(blocks, []string{"Note: classification is a heuristic based on per-language regular expressions."})

	for _, page := range paginate(blocks, pageLen-2) {
		if _, err := io.WriteString(w, strings.Join(page.lines, "\n")+"\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n%*s\n", 72, fmt.Sprintf("page %d/%d", page.number, page.total)); err != nil {
			return err
		}
	}
	return nil
}

func header(doc Document, res *lexico.AnalysisResult, at time.Time) []string {
	title := doc.Title
	if title == "" {
		title = "Document " + doc.ID
	}
	lines := []string{
		"Lexical analysis report",
		title,
		strings.Repeat("=", max(len(title), 23)),
		"Language: " + string(res.Language),
	}
	if !at.IsZero() {
		lines = append(lines, "Generated: "+at.Format("2006-01-02 15:04"))
	}
	return lines
}

func metricRows(res *lexico.AnalysisResult, st lexico.Stats) [][]string {
	return [][]string{
		{"Total words", strconv.Itoa(res.TotalWords)},
		{"Unique words", strconv.Itoa(res.UniqueWords)},
		{"Sentences", strconv.Itoa(st.Sentences)},
		{"Type/token ratio", strconv.FormatFloat(st.TypeTokenRatio, 'f', 3, 64)},
		{"Hapax ratio", strconv.FormatFloat(st.HapaxRatio, 'f', 3, 64)},
		{"Mean frequency", strconv.FormatFloat(st.MeanFrequency, 'f', 2, 64)},
		{"Frequency std. dev.", strconv.FormatFloat(st.StdDevFrequency, 'f', 2, 64)},
		{"Max frequency", strconv.Itoa(st.MaxFrequency)},
		{"Entropy (bits)", strconv.FormatFloat(st.Entropy, 'f', 3, 64)},
	}
}

func rankedRows(words []lexico.RankedWord, limit int) [][]string {
	var rows [][]string
	for i, rw := range words[:min(limit, len(words))] {
		rows = append(rows, []string{strconv.Itoa(i + 1), rw.Word, strconv.Itoa(rw.Frequency)})
	}
	return rows
}

func hapaxRows(words []lexico.RankedWord, limit int) [][]string {
	var rows [][]string
	for i, rw := range words[:min(limit, len(words))] {
		rows = append(rows, []string{strconv.Itoa(i + 1), rw.Word})
	}
	return rows
}

func categoryRows(cs []lexico.Classification, limit int) [][]string {
	var rows [][]string
	for _, c := range cs[:min(limit, len(cs))] {
		rows = append(rows, []string{c.Word, strconv.Itoa(c.Frequency)})
	}
	return rows
}

// table renders a titled, column-aligned table. Empty tables show "(none)".
func table(title string, columns []string, rows [][]string) []string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	lines := []string{"", title, strings.Repeat("-", len(title))}
	if len(rows) == 0 {
		return append(lines, "(none)")
	}
	return append(lines, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")...)
}

type page struct {
	lines         []string
	number, total int
}

// paginate packs blocks into pages of at most size lines. Only blocks
// longer than a page are split.
func paginate(blocks [][]string, size int) []page {
	size = max(size, 1)
	var pages []page
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			pages = append(pages, page{lines: cur})
			cur = nil
		}
	}

	for _, b := range blocks {
		if len(cur)+len(b) > size && len(b) <= size {
			flush()
		}
		for len(b) > 0 {
			room := size - len(cur)
			if room == 0 {
				flush()
				continue
			}
			n := min(room, len(b))
			cur = append(cur, b[:n]...)
			b = b[n:]
		}
	}
	flush()

	for i := range pages {
		pages[i].number = i + 1
		pages[i].total = len(pages)
	}
	return pages
}
