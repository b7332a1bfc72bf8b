package lexico

import "context"

// An AnalyzeOpt represents a setting that changes the analysis process.
//
// For example, it might shorten the ranking views:
//
//	res := lexico.AnalyzeText("...", "es", lexico.WithTopN(20), lexico.WithHapaxN(20))
type AnalyzeOpt func(opts *AnalyzeOpts)

// AnalyzeOpts controls the analysis process:
type AnalyzeOpts struct {
	Stopwords        Stopwords              // Tokens excluded from the ranking views
	TopN             int                    // Length of TopFrequent
	HapaxN           int                    // Length of Hapax
	CountHint        int                    // Presize hint for the TokenCount
	Tokenizer        *Tokenizer             // Tokenizer to use
	Detector         *PatternDetector       // Pattern detector to use
	ProgressCallback func(progress float64) // Called after each stage
	Counts           *TokenCount            // Receives the token counts when set
}

// DefaultTopN and DefaultHapaxN bound the ranking views unless overridden.
const (
	DefaultTopN   = 50
	DefaultHapaxN = 50
)

func defaultOpts() AnalyzeOpts {
	return AnalyzeOpts{
		TopN:      DefaultTopN,
		HapaxN:    DefaultHapaxN,
		CountHint: DefaultCountHint,
		Tokenizer: defaultTokenizer,
		Detector:  defaultDetector,
	}
}

// WithStopwords excludes stop from the ranking views.
func WithStopwords(stop Stopwords) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Stopwords = stop
	}
}

// WithTopN sets the number of most frequent words reported.
func WithTopN(n int) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.TopN = n
	}
}

// WithHapaxN sets the number of hapax words reported.
func WithHapaxN(n int) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.HapaxN = n
	}
}

// WithCountHint presizes the token map, useful for large documents.
func WithCountHint(n int) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.CountHint = n
	}
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(tok *Tokenizer) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		if tok != nil {
			opts.Tokenizer = tok
		}
	}
}

// UsingDetector specifies the PatternDetector to use.
func UsingDetector(d *PatternDetector) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		if d != nil {
			opts.Detector = d
		}
	}
}

// WithCounts makes Analyze store the full TokenCount in *dst, for callers
// that derive more from it than the result carries.
func WithCounts(dst *TokenCount) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Counts = dst
	}
}

// WithProgressCallback sets a progress reporting callback.
func WithProgressCallback(callback func(float64)) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.ProgressCallback = callback
	}
}

// Analyze runs the whole pipeline over text with rules: tokenize and count,
// rank, classify, detect patterns. ctx is checked between stages only; the
// sole error Analyze returns is ctx.Err(). Empty text yields a zero result.
func Analyze(ctx context.Context, text string, rules *RuleSet, opts ...AnalyzeOpt) (*AnalysisResult, error) {
	base := defaultOpts()
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if rules == nil {
		rules = Resolve("")
	}

	reportProgress := func(p float64) {
		if base.ProgressCallback != nil {
			base.ProgressCallback(p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := Count(base.Tokenizer.Tokens(text, rules.word), base.CountHint)
	if base.Counts != nil {
		*base.Counts = counts
	}
	reportProgress(0.25)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ranking := Select(counts, base.Stopwords, base.TopN, base.HapaxN)
	reportProgress(0.5)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	classifications := Classify(counts, rules)
	reportProgress(0.75)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	patterns := base.Detector.Detect(text, rules)
	reportProgress(1.0)

	res := Aggregate(counts, ranking, classifications, patterns)
	res.Language = rules.language
	return res, nil
}

// AnalyzeText resolves code against the default registry and analyses text
// to completion.
func AnalyzeText(text, code string, opts ...AnalyzeOpt) *AnalysisResult {
	res, _ := Analyze(context.Background(), text, Resolve(code), opts...)
	return res
}

// Aggregate assembles the outputs of the pipeline stages into an
// AnalysisResult. Nil inputs produce empty, non-nil lists.
func Aggregate(counts TokenCount, ranking Ranking, classifications []Classification, patterns []DetectedPattern) *AnalysisResult {
	return &AnalysisResult{
		TotalWords:      counts.Total(),
		UniqueWords:     counts.Unique(),
		TopFrequent:     orEmpty(ranking.Top),
		Hapax:           orEmpty(ranking.Hapax),
		Classifications: orEmpty(classifications),
		Patterns:        orEmpty(patterns),
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
