package lexico

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code string
		want Language
	}{
		{"", Spanish},
		{"es", Spanish},
		{"EN ", English},
		{"ru", Russian},
		{"fr", Spanish},
		{"español", Spanish},
	}
	for _, tt := range tests {
		if got := Resolve(tt.code).Language(); got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, ok := ParseLanguage(" En"); !ok || lang != English {
		t.Errorf("ParseLanguage(\" En\") = %s, %v", lang, ok)
	}
	if _, ok := ParseLanguage("de"); ok {
		t.Error("ParseLanguage(\"de\") reported support")
	}
}

func TestRuleSetPatterns(t *testing.T) {
	for _, lang := range SupportedLanguages() {
		rs := Resolve(string(lang))
		if rs.WordPattern() == nil {
			t.Errorf("%s: no word pattern", lang)
		}
		for _, cat := range []Category{Pronoun, Verb, Noun} {
			if rs.CategoryPattern(cat) == nil {
				t.Errorf("%s: no %s pattern", lang, cat)
			}
		}
		for _, pt := range PatternTypes {
			if rs.EntityPattern(pt) == nil {
				t.Errorf("%s: no %s pattern", lang, pt)
			}
		}
	}
	if Resolve("es").CategoryPattern("adverb") != nil {
		t.Error("unknown category has a pattern")
	}
}

func TestRuleSetWithOverrides(t *testing.T) {
	orig := Resolve("en")
	rs, err := orig.WithOverrides(map[string]string{
		"Pronoun": "foo|bar",
		"verb":    "(",
		"color":   "red",
		"code":    `X-\d+`,
		"noun":    "  ",
	})
	if err == nil {
		t.Fatal("expected an error for the invalid and unknown keys")
	}
	if msg := err.Error(); !strings.Contains(msg, `"verb"`) || !strings.Contains(msg, `"color"`) {
		t.Errorf("error %q does not name both bad keys", msg)
	}

	if !rs.CategoryPattern(Pronoun).MatchString("FOO") {
		t.Error("override pronoun pattern not applied")
	}
	if rs.CategoryPattern(Pronoun).MatchString("foobar") {
		t.Error("override pronoun pattern not anchored")
	}
	if !rs.CategoryPattern(Verb).MatchString("walking") {
		t.Error("invalid verb override replaced the built-in pattern")
	}
	if !rs.CategoryPattern(Noun).MatchString("nation") {
		t.Error("blank noun override replaced the built-in pattern")
	}
	if got := rs.EntityPattern(CodePattern).FindString("ref X-42"); got != "X-42" {
		t.Errorf("code override found %q", got)
	}

	if orig.CategoryPattern(Pronoun).MatchString("foo") {
		t.Error("WithOverrides modified the original rule set")
	}
	if orig.EntityPattern(CodePattern).MatchString("X-42") {
		t.Error("WithOverrides modified the original entity patterns")
	}
}

func TestRegistryWithOverrides(t *testing.T) {
	base := NewRegistry()
	reg, err := base.WithOverrides(map[Language]map[string]string{
		Russian: {"pronoun": "оно"},
		"fr":    {"pronoun": "je"},
	})
	if err == nil || !strings.Contains(err.Error(), "fr") {
		t.Errorf("err = %v, want unsupported language fr", err)
	}
	if !reg.Resolve("ru").CategoryPattern(Pronoun).MatchString("оно") {
		t.Error("russian override not applied")
	}
	if reg.Resolve("ru").CategoryPattern(Pronoun).MatchString("я") {
		t.Error("russian override did not replace the pattern")
	}
	if !base.Resolve("ru").CategoryPattern(Pronoun).MatchString("я") {
		t.Error("base registry modified")
	}
	if reg.Resolve("es") != base.Resolve("es") {
		t.Error("untouched rule sets should be shared")
	}
}
