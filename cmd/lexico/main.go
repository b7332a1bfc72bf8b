// Command lexico analyses a text file, or standard input, and prints the
// result as a paginated text report or as JSON.
//
//	lexico [-lang es] [-format text|json] [-top 50] [-hapax 50] [-config lexico.yaml] [file]
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/lexico"
	"github.com/tsawler/lexico/internal/config"
	"github.com/tsawler/lexico/internal/logger"
	"github.com/tsawler/lexico/internal/report"
)

type options struct {
	lang          string
	format        string
	top, hapax    int
	pageLen       int
	matchLimit    int
	stopwordsFile string
	configPath    string
}

func main() {
	var opts options
	flag.StringVar(&opts.lang, "lang", string(lexico.DefaultLanguage), "language code (es, en, ru)")
	flag.StringVar(&opts.format, "format", "text", "output format: text or json")
	flag.IntVar(&opts.top, "top", -1, "number of most frequent words (default from config)")
	flag.IntVar(&opts.hapax, "hapax", -1, "number of hapax words (default from config)")
	flag.IntVar(&opts.pageLen, "page-len", report.DefaultPageLen, "lines per report page")
	flag.IntVar(&opts.matchLimit, "match-limit", -1, "maximum matches kept per pattern type (default from config)")
	flag.StringVar(&opts.stopwordsFile, "stopwords", "", "file with one stopword per line")
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration with stopwords and pattern overrides")
	flag.Parse()

	log, err := logger.New("development", "warn")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(opts, flag.Arg(0), os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "lexico: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, path string, out io.Writer, log *zap.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.top < 0 {
		opts.top = cfg.Analysis.TopN
	}
	if opts.hapax < 0 {
		opts.hapax = cfg.Analysis.HapaxN
	}
	if opts.matchLimit < 0 {
		opts.matchLimit = cfg.Analysis.MatchLimit
	}

	text, name, err := readInput(path)
	if err != nil {
		return err
	}
	if size := len(text); size > cfg.Analysis.MaxDocumentBytes {
		return fmt.Errorf("%s is %d bytes, limit is %d", name, size, cfg.Analysis.MaxDocumentBytes)
	}

	registry, err := lexico.DefaultRegistry().WithOverrides(cfg.PatternOverrides())
	if err != nil {
		log.Warn("Ignoring invalid pattern overrides", zap.Error(err))
	}
	rules := registry.Resolve(opts.lang)

	stop, err := stopwordsFor(rules.Language(), opts.stopwordsFile, cfg)
	if err != nil {
		return err
	}

	var counts lexico.TokenCount
	res, err := lexico.Analyze(context.Background(), text, rules,
		lexico.WithStopwords(stop),
		lexico.WithTopN(opts.top),
		lexico.WithHapaxN(opts.hapax),
		lexico.UsingDetector(lexico.NewPatternDetector(lexico.UsingMatchLimit(opts.matchLimit))),
		lexico.WithCounts(&counts),
	)
	if err != nil {
		return err
	}
	stats := lexico.ComputeStats(text, counts)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Result *lexico.AnalysisResult `json:"result"`
			Stats  lexico.Stats           `json:"stats"`
		}{res, stats})
	case "text":
		return report.WriteText(out, report.Document{ID: name, Title: name}, res, stats, report.Options{
			PageLen:     opts.pageLen,
			GeneratedAt: time.Now(),
		})
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func readInput(path string) (text, name string, err error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), "stdin", err
	}
	data, err := os.ReadFile(path)
	return string(data), filepath.Base(path), err
}

// stopwordsFor prefers the stopwords file, then the configured list, then
// the bundled list of lang.
func stopwordsFor(lang lexico.Language, path string, cfg *config.Config) (lexico.Stopwords, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var words []string
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if w := strings.TrimSpace(sc.Text()); w != "" && !strings.HasPrefix(w, "#") {
				words = append(words, w)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return lexico.NewStopwordSet(words...), nil
	}
	if words := cfg.Stopwords(lang); len(words) > 0 {
		return lexico.NewStopwordSet(words...), nil
	}
	return lexico.LibraryStopwords(lang), nil
}
