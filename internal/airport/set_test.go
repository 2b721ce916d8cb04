package airport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_CaseInsensitiveLookup(t *testing.T) {
	s := NewSet("US", "IN")

	assert.True(t, s.Contains("US"))
	assert.True(t, s.Contains("us"))
	assert.True(t, s.Contains(" uS "))
	assert.False(t, s.Contains("XX"))
	assert.False(t, s.Contains(""))
}

func TestLoadCSV(t *testing.T) {
	t.Run("loads configured column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "countries.csv")
		data := "United States,US\nIndia,IN\nGermany,de\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		s, err := LoadCSV(path, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.True(t, s.Contains("us"))
		assert.True(t, s.Contains("DE"))
		assert.False(t, s.Contains("United States"))
	})

	t.Run("missing file yields empty set and error", func(t *testing.T) {
		s, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), 1)
		assert.Error(t, err)
		require.NotNil(t, s)
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Contains("US"))
	})

	t.Run("short rows are skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "countries.csv")
		data := "solo\nIndia,IN\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		s, err := LoadCSV(path, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
		assert.True(t, s.Contains("IN"))
	})

	t.Run("nil set rejects everything", func(t *testing.T) {
		var s *Set
		assert.False(t, s.Contains("US"))
		assert.Equal(t, 0, s.Len())
	})
}
