package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("nil slice passes through", func(t *testing.T) {
		assert.Nil(t, DedupeAndTrim(nil))
	})

	t.Run("removes duplicates preserving first occurrence order", func(t *testing.T) {
		got := DedupeAndTrim([]string{"fake_name", "bad_date", "fake_name"})
		assert.Equal(t, []string{"fake_name", "bad_date"}, got)
	})

	t.Run("trims whitespace and drops blanks", func(t *testing.T) {
		got := DedupeAndTrim([]string{"  fake_name ", "", "   ", "fake_name"})
		assert.Equal(t, []string{"fake_name"}, got)
	})
}
