// Package service runs lexical analyses over stored and ad-hoc documents.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/lexico"
	"github.com/tsawler/lexico/internal/config"
	"github.com/tsawler/lexico/internal/metrics"
	"github.com/tsawler/lexico/internal/store"
)

var (
	// ErrEmptyDocument is returned for documents without any text.
	ErrEmptyDocument = errors.New("document has no text")
	// ErrDocumentTooLarge is returned for texts above the configured size.
	ErrDocumentTooLarge = errors.New("document too large")
)

// Service glues the analysis engine to storage.
type Service struct {
	store     *store.Store
	registry  *lexico.Registry
	stopwords map[lexico.Language]lexico.Stopwords
	detector  *lexico.PatternDetector
	analysis  config.Analysis
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// New creates a Service. Invalid pattern overrides in cfg are logged and the
// built-in patterns are kept for them.
func New(st *store.Store, cfg *config.Config, m *metrics.Collector, logger *zap.Logger) *Service {
	registry, err := lexico.DefaultRegistry().WithOverrides(cfg.PatternOverrides())
	if err != nil {
		logger.Warn("Ignoring invalid pattern overrides", zap.Error(err))
	}

	stop := make(map[lexico.Language]lexico.Stopwords)
	for _, lang := range registry.Languages() {
		if words := cfg.Stopwords(lang); len(words) > 0 {
			stop[lang] = lexico.NewStopwordSet(words...)
			logger.Debug("Using configured stopwords",
				zap.String("language", string(lang)),
				zap.Int("count", len(words)),
			)
			continue
		}
		stop[lang] = lexico.LibraryStopwords(lang)
	}

	return &Service{
		store:     st,
		registry:  registry,
		stopwords: stop,
		detector:  lexico.NewPatternDetector(lexico.UsingMatchLimit(cfg.Analysis.MatchLimit)),
		analysis:  cfg.Analysis,
		metrics:   m,
		logger:    logger,
	}
}

// Languages returns the languages analyses can run in.
func (s *Service) Languages() []lexico.Language {
	return s.registry.Languages()
}

// CreateDocument validates and stores a new document. An unsupported
// language code is stored as the default language.
func (s *Service) CreateDocument(ctx context.Context, title, language, text string) (*store.Document, error) {
	if strings.TrimSpace(text) == "" {
		s.reject("empty")
		return nil, ErrEmptyDocument
	}
	if err := s.checkSize(text); err != nil {
		return nil, err
	}

	doc := &store.Document{
		Title:    strings.TrimSpace(title),
		Language: s.registry.Resolve(language).Language(),
		Text:     text,
	}
	if err := s.store.PutDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	s.metrics.DocumentsCreated.Inc()
	s.logger.Info("Document created",
		zap.String("documentID", doc.ID),
		zap.String("language", string(doc.Language)),
		zap.Int("bytes", doc.Size),
	)
	return doc, nil
}

// Document returns a stored document.
func (s *Service) Document(ctx context.Context, id string) (*store.Document, error) {
	return s.store.Document(id)
}

// Documents lists the stored documents without their text.
func (s *Service) Documents(ctx context.Context) ([]store.Document, error) {
	return s.store.Documents()
}

// Analysis returns a persisted analysis.
func (s *Service) Analysis(ctx context.Context, id string) (*store.Analysis, error) {
	return s.store.Analysis(id)
}

// AnalysisIDs lists the analyses persisted for a document.
func (s *Service) AnalysisIDs(ctx context.Context, documentID string) ([]string, error) {
	if _, err := s.store.Document(documentID); err != nil {
		return nil, err
	}
	return s.store.AnalysisIDs(documentID)
}

// AnalyzeText analyses text without storing anything. Empty text yields an
// empty result.
func (s *Service) AnalyzeText(ctx context.Context, text, language string) (*lexico.AnalysisResult, lexico.Stats, error) {
	if err := s.checkSize(text); err != nil {
		return nil, lexico.Stats{}, err
	}
	res, stats, _, err := s.run(ctx, text, language, "adhoc", s.analysis.TopN, s.analysis.HapaxN)
	return res, stats, err
}

// AnalyzeDocument analyses a stored document and persists the result. A
// non-empty language overrides the document's own.
func (s *Service) AnalyzeDocument(ctx context.Context, documentID, language string) (*store.Analysis, error) {
	doc, err := s.store.Document(documentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, ErrEmptyDocument
	}
	if language == "" {
		language = string(doc.Language)
	}

	res, stats, elapsed, err := s.run(ctx, doc.Text, language, "document", s.analysis.TopN, s.analysis.HapaxN)
	if err != nil {
		return nil, err
	}

	a := &store.Analysis{
		DocumentID: doc.ID,
		Duration:   elapsed,
		Result:     res,
		Stats:      stats,
	}
	if err := s.store.PutAnalysis(a); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	s.logger.Info("Analysis completed",
		zap.String("documentID", doc.ID),
		zap.String("analysisID", a.ID),
		zap.String("language", string(res.Language)),
		zap.Int("totalWords", res.TotalWords),
		zap.Int("uniqueWords", res.UniqueWords),
		zap.Duration("duration", elapsed),
	)
	return a, nil
}

// AnalyzeBatch analyses several stored documents in parallel, bounded by the
// configured number of workers. Results are in the order of ids; the first
// failure cancels the remaining work.
func (s *Service) AnalyzeBatch(ctx context.Context, ids []string, language string) ([]*store.Analysis, error) {
	out := make([]*store.Analysis, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.analysis.BatchWorkers))

	for i, id := range ids {
		g.Go(func() error {
			a, err := s.AnalyzeDocument(ctx, id, language)
			if err != nil {
				return fmt.Errorf("document %s: %w", id, err)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary analyses a stored document on the fly with custom view lengths,
// without persisting anything.
func (s *Service) Summary(ctx context.Context, documentID, language string, top, low int) (*lexico.AnalysisResult, error) {
	doc, err := s.store.Document(documentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, ErrEmptyDocument
	}
	if language == "" {
		language = string(doc.Language)
	}
	res, _, _, err := s.run(ctx, doc.Text, language, "summary", top, low)
	return res, err
}

func (s *Service) run(ctx context.Context, text, language, source string, top, low int) (*lexico.AnalysisResult, lexico.Stats, time.Duration, error) {
	rules := s.registry.Resolve(language)
	start := time.Now()

	var counts lexico.TokenCount
	res, err := lexico.Analyze(ctx, text, rules,
		lexico.WithStopwords(s.stopwords[rules.Language()]),
		lexico.WithTopN(top),
		lexico.WithHapaxN(low),
		lexico.WithCountHint(countHint(len(text))),
		lexico.UsingDetector(s.detector),
		lexico.WithCounts(&counts),
	)
	if err != nil {
		return nil, lexico.Stats{}, 0, err
	}
	stats := lexico.ComputeStats(text, counts)
	elapsed := time.Since(start)

	patterns := make(map[string]int)
	for _, p := range res.Patterns {
		patterns[string(p.Type)]++
	}
	s.metrics.ObserveAnalysis(string(res.Language), source, elapsed, res.TotalWords, patterns)
	return res, stats, elapsed, nil
}

func (s *Service) checkSize(text string) error {
	if limit := s.analysis.MaxDocumentBytes; limit > 0 && len(text) > limit {
		s.reject("too_large")
		return fmt.Errorf("%w: %d bytes, limit %d", ErrDocumentTooLarge, len(text), limit)
	}
	return nil
}

func (s *Service) reject(reason string) {
	s.metrics.Rejected.WithLabelValues(reason).Inc()
}

// countHint guesses the vocabulary size of a text from its length.
func countHint(n int) int {
	return min(lexico.DefaultCountHint, max(64, n/16))
}
