package username

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Transliteration replaces one character with its ASCII spelling.
type Transliteration struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// Mapping is the configuration of a Generator.
type Mapping struct {
	// Transliterations are applied character by character before any other rule.
	Transliterations []Transliteration `mapstructure:"transliterations"`

	// FoldDiacritics strips combining marks left after the transliteration table (é -> e).
	FoldDiacritics bool `mapstructure:"fold_diacritics"`

	// Collisions lists dotted usernames that are already taken.
	Collisions []string `mapstructure:"collisions"`

	// Alternatives maps a colliding dotted username to the manually chosen replacement.
	Alternatives map[string]string `mapstructure:"alternatives"`
}

// DefaultMapping returns the German transliteration table with diacritic folding enabled
// and no collisions.
func DefaultMapping() Mapping {
	return Mapping{
		Transliterations: []Transliteration{
			{From: "ä", To: "ae"},
			{From: "ö", To: "oe"},
			{From: "ü", To: "ue"},
			{From: "Ä", To: "Ae"},
			{From: "Ö", To: "Oe"},
			{From: "Ü", To: "Ue"},
			{From: "ß", To: "ss"},
			{From: "ẞ", To: "SS"},
		},
		FoldDiacritics: true,
	}
}

// LoadMapping reads a mapping file on top of DefaultMapping. Entries of the file override
// default transliterations with the same source character. An empty path returns the
// defaults.
func LoadMapping(path string) (Mapping, error) {
	m := DefaultMapping()
	if path == "" {
		return m, nil
	}

	// Collision entries contain dots, so keys are split on "::" instead.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	v.SetDefault("fold_diacritics", m.FoldDiacritics)
	if err := v.ReadInConfig(); err != nil {
		return Mapping{}, fmt.Errorf("failed to read username mapping %s: %w", path, err)
	}

	var file Mapping
	if err := v.Unmarshal(&file); err != nil {
		return Mapping{}, fmt.Errorf("failed to decode username mapping %s: %w", path, err)
	}

	m.Transliterations = mergeTransliterations(m.Transliterations, file.Transliterations)
	m.FoldDiacritics = file.FoldDiacritics
	m.Collisions = file.Collisions
	m.Alternatives = file.Alternatives

	if err := m.Validate(); err != nil {
		return Mapping{}, fmt.Errorf("invalid username mapping %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every transliteration source is a single character.
func (m Mapping) Validate() error {
	for _, t := range m.Transliterations {
		if len([]rune(t.From)) != 1 {
			return fmt.Errorf("transliteration source %q must be a single character", t.From)
		}
	}
	for name, alt := range m.Alternatives {
		if strings.TrimSpace(alt) == "" {
			return fmt.Errorf("alternative for %q is empty", name)
		}
	}
	return nil
}

func mergeTransliterations(base, overrides []Transliteration) []Transliteration {
	merged := make([]Transliteration, 0, len(base)+len(overrides))
	replaced := make(map[string]string, len(overrides))
	for _, t := range overrides {
		replaced[t.From] = t.To
	}
	for _, t := range base {
		if to, ok := replaced[t.From]; ok {
			t.To = to
			delete(replaced, t.From)
		}
		merged = append(merged, t)
	}
	for _, t := range overrides {
		if _, ok := replaced[t.From]; ok {
			merged = append(merged, t)
			delete(replaced, t.From)
		}
	}
	return merged
}
