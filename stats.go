package lexico

import (
	"math"
	"slices"
	"strings"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Stats summarises the vocabulary of a document for reports.
type Stats struct {
	Sentences       int     `json:"sentences"`
	TypeTokenRatio  float64 `json:"type_token_ratio"` // Unique / total words.
	HapaxRatio      float64 `json:"hapax_ratio"`      // Share of unique words seen once.
	MeanFrequency   float64 `json:"mean_frequency"`   // Mean occurrences per unique word.
	StdDevFrequency float64 `json:"stddev_frequency"` // Sample standard deviation of the above.
	MaxFrequency    int     `json:"max_frequency"`
	Entropy         float64 `json:"entropy_bits"` // Shannon entropy of the word distribution.
}

var (
	segmenterOnce sync.Once
	segmenterMu   sync.Mutex
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterErr  error
)

// countSentences segments text with the Punkt tokenizer. Its English
// training also handles the punctuation of Spanish and Russian prose
// reasonably; it is only used for report statistics.
func countSentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	segmenterOnce.Do(func() {
		segmenter, segmenterErr = english.NewSentenceTokenizer(nil)
	})
	if segmenterErr != nil {
		return 0
	}

	segmenterMu.Lock()
	defer segmenterMu.Unlock()
	n := 0
	for _, s := range segmenter.Tokenize(text) {
		if strings.TrimSpace(s.Text) != "" {
			n++
		}
	}
	return n
}

// ComputeStats derives vocabulary statistics from text and its counts.
func ComputeStats(text string, counts TokenCount) Stats {
	st := Stats{Sentences: countSentences(text)}
	total, unique := counts.Total(), counts.Unique()
	if unique == 0 {
		return st
	}

	words := make([]string, 0, unique)
	for w := range counts {
		words = append(words, w)
	}
	slices.Sort(words)

	freqs := make([]float64, unique)
	probs := make([]float64, unique)
	hapax := 0
	for i, w := range words {
		n := counts[w]
		freqs[i] = float64(n)
		probs[i] = float64(n) / float64(total)
		if n == 1 {
			hapax++
		}
		st.MaxFrequency = max(st.MaxFrequency, n)
	}

	st.TypeTokenRatio = float64(unique) / float64(total)
	st.HapaxRatio = float64(hapax) / float64(unique)
	if unique > 1 {
		st.MeanFrequency, st.StdDevFrequency = stat.MeanStdDev(freqs, nil)
	} else {
		st.MeanFrequency = freqs[0]
	}
	st.Entropy = stat.Entropy(probs) / math.Ln2
	return st
}
