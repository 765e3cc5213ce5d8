package username_test

import (
	"testing"

	"elternaccounts/core/username"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Username(t *testing.T) {
	gen := username.NewGenerator(username.DefaultMapping())

	tests := []struct {
		name   string
		given  string
		family string
		style  username.Style
		want   string
	}{
		{"DottedSimple", "Anna", "Muster", username.StyleDotted, "anna.muster"},
		{"DottedHyphenatedGiven", "Jean-Luc", "Müller-Weiss", username.StyleDotted, "jean-luc.muellerweiss"},
		{"DottedFirstGivenToken", "Anna Lena", "von der Heide", username.StyleDotted, "anna.vonderheide"},
		{"DottedUmlautAndEszett", "Jörg", "Groß", username.StyleDotted, "joerg.gross"},
		{"DottedCapitalUmlaut", "Özlem", "Ünal", username.StyleDotted, "oezlem.uenal"},
		{"DottedFoldsDiacritics", "Zoë", "Lefèvre", username.StyleDotted, "zoe.lefevre"},
		{"ShortHyphenated", "Jean-Luc", "Müller-Weiss", username.StyleShort, "jeanmuel"},
		{"ShortShortNames", "Eva", "Li", username.StyleShort, "evali"},
		{"ShortUmlaut", "Jörg", "Groß", username.StyleShort, "joergros"},
		{"ShortFamilySpaces", "Max", "de la Cruz", username.StyleShort, "maxdela"},
		{"EmptyGiven", "", "Muster", username.StyleShort, "must"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gen.Username(tt.given, tt.family, tt.style))
		})
	}
}

func TestGenerator_Collisions(t *testing.T) {
	m := username.DefaultMapping()
	m.Collisions = []string{"Anna.Schmidt", "max.mustermann"}
	m.Alternatives = map[string]string{"anna.schmidt": "anna.schmidt2"}
	gen := username.NewGenerator(m)

	t.Run("DottedUsesAlternative", func(t *testing.T) {
		assert.Equal(t, "anna.schmidt2", gen.Username("Anna", "Schmidt", username.StyleDotted))
	})

	t.Run("CollisionWithoutAlternativeKeepsName", func(t *testing.T) {
		assert.Equal(t, "max.mustermann", gen.Username("Max", "Mustermann", username.StyleDotted))
	})

	t.Run("ShortIgnoresCollisions", func(t *testing.T) {
		assert.Equal(t, "annaschm", gen.Short("Anna", "Schmidt"))
	})

	t.Run("AlternativeWithoutCollisionIgnored", func(t *testing.T) {
		m := username.DefaultMapping()
		m.Alternatives = map[string]string{"anna.schmidt": "anna.schmidt2"}
		assert.Equal(t, "anna.schmidt", username.NewGenerator(m).Username("Anna", "Schmidt", username.StyleDotted))
	})
}

func TestGenerator_Deterministic(t *testing.T) {
	gen := username.NewGenerator(username.DefaultMapping())
	other := username.NewGenerator(username.DefaultMapping())

	for _, style := range []username.Style{username.StyleDotted, username.StyleShort} {
		first := gen.Username("Jean-Luc", "Müller-Weiss", style)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, gen.Username("Jean-Luc", "Müller-Weiss", style))
			assert.Equal(t, first, other.Username("Jean-Luc", "Müller-Weiss", style))
		}
	}
}

func TestGenerator_Transliterate(t *testing.T) {
	t.Run("WithFolding", func(t *testing.T) {
		gen := username.NewGenerator(username.DefaultMapping())
		assert.Equal(t, "Mueller Cedric", gen.Transliterate("Müller Cédric"))
	})

	t.Run("WithoutFolding", func(t *testing.T) {
		m := username.DefaultMapping()
		m.FoldDiacritics = false
		gen := username.NewGenerator(m)
		assert.Equal(t, "Mueller Cédric", gen.Transliterate("Müller Cédric"))
	})
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    username.Style
		wantErr bool
	}{
		{"dotted", username.StyleDotted, false},
		{"vorname.nachname", username.StyleDotted, false},
		{" Short ", username.StyleShort, false},
		{"kurzform", username.StyleShort, false},
		{"initials", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := username.ParseStyle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
