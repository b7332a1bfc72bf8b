package lexico

import (
	"errors"
	"slices"
	"strings"
)

// A Registry resolves language codes to RuleSets. It is built once and only
// read afterwards.
type Registry struct {
	sets     map[Language]*RuleSet
	fallback Language
}

// NewRegistry compiles the built-in rule sets of every supported language.
func NewRegistry() *Registry {
	return &Registry{
		sets: map[Language]*RuleSet{
			Spanish: spanishRules.compile(Spanish),
			English: englishRules.compile(English),
			Russian: russianRules.compile(Russian),
		},
		fallback: DefaultLanguage,
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry of compiled-in rules.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// ParseLanguage normalises a language code and reports whether it is supported.
func ParseLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	_, ok := defaultRegistry.sets[lang]
	return lang, ok
}

// Resolve returns the RuleSet for code. Empty or unknown codes resolve to the
// default language; Resolve never fails.
func (r *Registry) Resolve(code string) *RuleSet {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if rs, ok := r.sets[lang]; ok {
		return rs
	}
	return r.sets[r.fallback]
}

// Languages returns the supported languages in alphabetical order.
func (r *Registry) Languages() []Language {
	langs := make([]Language, 0, len(r.sets))
	for lang := range r.sets {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// WithOverrides returns a new Registry whose rule sets have the given
// per-language pattern overrides applied. Overrides for unsupported languages
// and invalid patterns are reported in the error and otherwise ignored.
func (r *Registry) WithOverrides(overrides map[Language]map[string]string) (*Registry, error) {
	out := &Registry{
		sets:     make(map[Language]*RuleSet, len(r.sets)),
		fallback: r.fallback,
	}
	for lang, rs := range r.sets {
		out.sets[lang] = rs
	}

	var errs []error
	for lang, patterns := range overrides {
		rs, ok := out.sets[lang]
		if !ok {
			errs = append(errs, errors.New("unsupported language "+string(lang)))
			continue
		}
		updated, err := rs.WithOverrides(patterns)
		if err != nil {
			errs = append(errs, err)
		}
		out.sets[lang] = updated
	}
	return out, errors.Join(errs...)
}

// Resolve resolves code against the default registry.
func Resolve(code string) *RuleSet {
	return defaultRegistry.Resolve(code)
}
