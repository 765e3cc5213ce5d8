package username_test

import (
	"os"
	"path/filepath"
	"testing"

	"elternaccounts/core/username"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMapping(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMapping(t *testing.T) {
	t.Run("EmptyPathReturnsDefaults", func(t *testing.T) {
		m, err := username.LoadMapping("")
		require.NoError(t, err)
		assert.Equal(t, username.DefaultMapping(), m)
	})

	t.Run("YamlFile", func(t *testing.T) {
		path := writeMapping(t, "usernames.yaml", `
transliterations:
  - from: "ü"
    to: "u"
  - from: "Ø"
    to: "Oe"
collisions:
  - anna.schmidt
alternatives:
  anna.schmidt: anna.schmidt2
`)
		m, err := username.LoadMapping(path)
		require.NoError(t, err)

		assert.True(t, m.FoldDiacritics)
		assert.Equal(t, []string{"anna.schmidt"}, m.Collisions)
		assert.Equal(t, "anna.schmidt2", m.Alternatives["anna.schmidt"])
		assert.Len(t, m.Transliterations, len(username.DefaultMapping().Transliterations)+1)

		gen := username.NewGenerator(m)
		assert.Equal(t, "jurgen.oestby", gen.Username("Jürgen", "Østby", username.StyleDotted))
		assert.Equal(t, "anna.schmidt2", gen.Username("Anna", "Schmidt", username.StyleDotted))
	})

	t.Run("JsonFileDisablesFolding", func(t *testing.T) {
		path := writeMapping(t, "usernames.json", `{"fold_diacritics": false}`)
		m, err := username.LoadMapping(path)
		require.NoError(t, err)
		assert.False(t, m.FoldDiacritics)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := username.LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("MultiCharacterSource", func(t *testing.T) {
		path := writeMapping(t, "bad.yaml", `
transliterations:
  - from: "ae"
    to: "a"
`)
		_, err := username.LoadMapping(path)
		assert.ErrorContains(t, err, "single character")
	})

	t.Run("EmptyAlternative", func(t *testing.T) {
		path := writeMapping(t, "bad.yaml", `
alternatives:
  anna.schmidt: ""
`)
		_, err := username.LoadMapping(path)
		assert.ErrorContains(t, err, "is empty")
	})
}
