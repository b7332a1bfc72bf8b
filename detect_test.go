package lexico

import (
	"reflect"
	"testing"
)

func patternTexts(ps []DetectedPattern, t PatternType) []string {
	var out []string
	for _, p := range ps {
		if p.Type == t {
			out = append(out, p.Text)
		}
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		lang  Language
		text  string
		ptype PatternType
		want  []string
	}{
		{"email", Spanish, "Escriba a ana.perez@correo.com.gt hoy", EmailPattern, []string{"ana.perez@correo.com.gt"}},
		{"url", English, "See https://example.com/a?b=1 now", URLPattern, []string{"https://example.com/a?b=1"}},
		{"phone", Spanish, "Llame al +502 5555-1234.", PhonePattern, []string{"+502 5555-1234"}},
		{"dates", Spanish, "Del 12/05/2024 al 2024-06-01.", DatePattern, []string{"12/05/2024", "2024-06-01"}},
		{"russian date", Russian, "Срок 01.02.2024 истёк", DatePattern, []string{"01.02.2024"}},
		{"dollars", English, "It costs $1,234.56 today", MoneyPattern, []string{"$1,234.56"}},
		{"quetzales", Spanish, "Total Q 300.00 pagado", MoneyPattern, []string{"Q 300.00"}},
		{"rubles", Russian, "Цена ₽1.500 сегодня", MoneyPattern, []string{"₽1.500"}},
		{"hashtags", Spanish, "#promo y #año2024 pero no C#", HashtagPattern, []string{"#promo", "#año2024"}},
		{"mentions skip addresses", English, "ping @dev_team or dev@team.io", MentionPattern, []string{"@dev_team"}},
		{"codes need boundaries", English, "Ref ABC-12345 and XABCDE-999", CodePattern, []string{"ABC-12345"}},
		{"english names", English, "Dr. Smith met Anna Lee.", PersonNamePattern, []string{"Dr. Smith", "Anna Lee"}},
		{"spanish names", Spanish, "ayer la Sra. María José habló con Ñeco.", PersonNamePattern, []string{"Sra. María José", "Ñeco"}},
		{"names need boundaries", English, "McDonald and José", PersonNamePattern, nil},
		{"names after a rejected match", English, "Ask the iPhone Steve Jobs team.", PersonNamePattern, []string{"Ask", "Steve Jobs"}},
		{"names cut back to a boundary", English, "Meet John SmithX today", PersonNamePattern, []string{"Meet John"}},
		{"mention after an address", English, "mail dev@team.io or @ops", MentionPattern, []string{"@ops"}},
		{"russian names", Russian, "Иван Петров пришёл", PersonNamePattern, []string{"Иван Петров"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patternTexts(Detect(tt.text, Resolve(string(tt.lang))), tt.ptype)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect(%q) %s = %q, want %q", tt.text, tt.ptype, got, tt.want)
			}
		})
	}
}

func TestDetectKeepsDuplicates(t *testing.T) {
	text := "Tel 5555-12345 o 5555-12345"
	got := patternTexts(Detect(text, Resolve("es")), PhonePattern)
	if len(got) != 2 {
		t.Fatalf("phones = %q, want two", got)
	}

	ps := Detect(text, Resolve("es"))
	for _, p := range ps {
		if text[p.Start:p.End] != p.Text {
			t.Errorf("%v: offsets do not match text", p)
		}
	}
}

func TestDetectShortenedOffsets(t *testing.T) {
	text := "Meet John SmithX today"
	for _, p := range Detect(text, Resolve("en")) {
		if p.Type != PersonNamePattern {
			continue
		}
		if p.Start != 0 || p.End != 9 || text[p.Start:p.End] != p.Text {
			t.Errorf("name %q at %d..%d, want \"Meet John\" at 0..9", p.Text, p.Start, p.End)
		}
	}
}

func TestRuleSetOverrideKeepsBoundaries(t *testing.T) {
	rs, err := Resolve("en").WithOverrides(map[string]string{"code": `[A-Z]{2}\d{2}`})
	if err != nil {
		t.Fatal(err)
	}
	got := patternTexts(Detect("XAB12 AB34 AB567", rs), CodePattern)
	if !reflect.DeepEqual(got, []string{"AB34"}) {
		t.Errorf("codes = %q, want [AB34]", got)
	}
}

func TestDetectOrder(t *testing.T) {
	ps := Detect("@b #a x@y.io", Resolve("en"))
	var types []PatternType
	for _, p := range ps {
		types = append(types, p.Type)
	}
	want := []PatternType{EmailPattern, HashtagPattern, MentionPattern}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("types = %v, want %v", types, want)
	}
}

func TestDetectMatchLimit(t *testing.T) {
	d := NewPatternDetector(UsingMatchLimit(2))
	got := patternTexts(d.Detect("#a #b #c #d", Resolve("es")), HashtagPattern)
	if !reflect.DeepEqual(got, []string{"#a", "#b"}) {
		t.Errorf("limited hashtags = %q", got)
	}
}

func TestContextWindow(t *testing.T) {
	tests := []struct {
		text   string
		at     int
		radius int
		want   string
	}{
		{"abcdefghij", 5, 3, "cdefgh"},
		{"abcdefghij", 1, 3, "abcd"},
		{"abcdefghij", 9, 3, "ghij"},
		{"ñañañaña", 3, 2, "ñaña"},
		{"abc", 0, 0, ""},
	}
	for _, tt := range tests {
		if got := contextWindow(tt.text, tt.at, tt.radius); got != tt.want {
			t.Errorf("contextWindow(%q, %d, %d) = %q, want %q", tt.text, tt.at, tt.radius, got, tt.want)
		}
	}
}

func TestDetectContext(t *testing.T) {
	text := "Contacto: juan@mail.com gracias"
	ps := NewPatternDetector(UsingContextRadius(5)).Detect(text, Resolve("es"))
	emails := []DetectedPattern{}
	for _, p := range ps {
		if p.Type == EmailPattern {
			emails = append(emails, p)
		}
	}
	if len(emails) != 1 {
		t.Fatalf("emails = %v", emails)
	}
	if emails[0].Context != "cto: juan@" {
		t.Errorf("context = %q, want %q", emails[0].Context, "cto: juan@")
	}
	if emails[0].Start != 10 || emails[0].End != 23 {
		t.Errorf("offsets = %d..%d, want 10..23", emails[0].Start, emails[0].End)
	}
}
