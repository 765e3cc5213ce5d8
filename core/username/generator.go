package username

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Style selects the username format.
type Style string

const (
	// StyleDotted produces "given.family" and honors the collision table.
	StyleDotted Style = "dotted"
	// StyleShort produces the first four characters of given and family name.
	StyleShort Style = "short"
)

// shortPartLength is the number of characters taken from each name in StyleShort.
const shortPartLength = 4

// ParseStyle accepts the style names and their German aliases.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dotted", "vorname.nachname":
		return StyleDotted, nil
	case "short", "kurzform":
		return StyleShort, nil
	default:
		return "", fmt.Errorf("unknown username style %q", s)
	}
}

// Generator derives usernames from a fixed Mapping.
type Generator struct {
	replacer     *strings.Replacer
	fold         bool
	collisions   map[string]struct{}
	alternatives map[string]string
}

// NewGenerator builds a generator. Collision and alternative keys are compared in lowercase.
func NewGenerator(m Mapping) *Generator {
	pairs := make([]string, 0, len(m.Transliterations)*2)
	for _, t := range m.Transliterations {
		pairs = append(pairs, t.From, t.To)
	}

	g := &Generator{
		replacer:     strings.NewReplacer(pairs...),
		fold:         m.FoldDiacritics,
		collisions:   make(map[string]struct{}, len(m.Collisions)),
		alternatives: make(map[string]string, len(m.Alternatives)),
	}
	for _, c := range m.Collisions {
		g.collisions[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	for name, alt := range m.Alternatives {
		g.alternatives[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(alt)
	}
	return g
}

// Username derives the login for a name pair in the given style.
func (g *Generator) Username(given, family string, style Style) string {
	token := firstToken(g.Transliterate(given))
	last := stripSeparators(g.Transliterate(family))

	switch style {
	case StyleShort:
		return strings.ToLower(truncate(token, shortPartLength) + truncate(last, shortPartLength))
	default:
		name := strings.ToLower(token + "." + last)
		if _, taken := g.collisions[name]; taken {
			if alt, ok := g.alternatives[name]; ok {
				name = strings.ToLower(alt)
			}
		}
		return name
	}
}

// Short is Username with StyleShort.
func (g *Generator) Short(given, family string) string {
	return g.Username(given, family, StyleShort)
}

// Transliterate applies the character table and, if enabled, strips remaining diacritics.
func (g *Generator) Transliterate(s string) string {
	s = g.replacer.Replace(s)
	if !g.fold {
		return s
	}
	// Transformers carry state, so each call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
