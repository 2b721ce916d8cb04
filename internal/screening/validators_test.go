package screening

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed analysis clock so age computations are deterministic.
var testNow = time.Date(2025, 7, 30, 5, 28, 36, 0, time.UTC)

func TestNameInvalid(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		invalid bool
	}{
		{"ordinary international name", "Anamika Sharma", false},
		{"hyphenated name", "Jean-Luc Picard", false},
		{"apostrophe", "Miles O'Brien", false},
		{"abbreviated name", "J. Smith", false},
		{"blank", "   ", true},
		{"empty", "", true},
		{"single character", "A", true},
		{"digits", "J0hn Smith", true},
		{"symbols", "John@Smith", true},
		{"run of four identical characters", "Joooohn", true},
		{"run of three is allowed by the gate", "Jooohn", false},
		{"placeholder test user", "Test User", true},
		{"placeholder john doe", "john doe", true},
		{"placeholder admin mixed case", "AdMiN", true},
		{"placeholder with padding", "  TEST USER  ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.invalid, nameInvalid(tc.input))
		})
	}
}

func TestNameHeuristics(t *testing.T) {
	t.Run("special symbol count excludes letters space hyphen apostrophe", func(t *testing.T) {
		assert.Equal(t, 0, nameSpecialSymbolCount("Jean-Luc O'Brien"))
		// The period is gate-legal but still counts as a special symbol.
		assert.Equal(t, 1, nameSpecialSymbolCount("J. Smith"))
		assert.Equal(t, 2, nameSpecialSymbolCount("J0hn@Smith"))
		assert.False(t, nameHasSpecialSymbols("Anamika Sharma"))
		assert.True(t, nameHasSpecialSymbols("J. Smith"))
	})

	t.Run("internal capital", func(t *testing.T) {
		assert.True(t, nameHasInternalCapital("Anamika Sharma"))
		assert.True(t, nameHasInternalCapital("McDonald"))
		assert.False(t, nameHasInternalCapital("Anamika"))
		assert.False(t, nameHasInternalCapital(""))
	})

	t.Run("repeated runs", func(t *testing.T) {
		assert.True(t, hasRepeatedRun("Jooohn", 3))
		assert.False(t, hasRepeatedRun("Joohn", 3))
		assert.True(t, hasRepeatedRun("xxxx", 4))
		assert.False(t, hasRepeatedRun("", 3))
	})

	t.Run("repeated words", func(t *testing.T) {
		assert.True(t, nameHasRepeatedWords("John John"))
		assert.True(t, nameHasRepeatedWords("Anna Maria Anna"))
		assert.False(t, nameHasRepeatedWords("Anamika Sharma"))
		assert.False(t, nameHasRepeatedWords("Anamika"))
	})
}

func TestDateValidation(t *testing.T) {
	t.Run("special symbols", func(t *testing.T) {
		assert.True(t, dateHasSpecialSymbols("1985/01/01"))
		assert.True(t, dateHasSpecialSymbols("1985-01-01x"))
		assert.False(t, dateHasSpecialSymbols("1985-01-01"))
		assert.False(t, dateHasSpecialSymbols(""))
	})

	t.Run("strict shape", func(t *testing.T) {
		_, ok := parseBirthDate("1985-01-01")
		assert.True(t, ok)
		_, ok = parseBirthDate("1985-1-2")
		assert.False(t, ok)
		_, ok = parseBirthDate("1985-13-01")
		assert.False(t, ok)
		_, ok = parseBirthDate("not-a-date")
		assert.False(t, ok)
		_, ok = parseBirthDate("")
		assert.False(t, ok)
	})

	t.Run("age in whole years", func(t *testing.T) {
		assert.Equal(t, 40, computeAge("1985-01-01", testNow))
		// Birthday later this year: not yet 40.
		assert.Equal(t, 39, computeAge("1985-08-01", testNow))
		assert.Equal(t, 0, computeAge("2025-01-01", testNow))
	})

	t.Run("sentinel age for unparsable and future dates", func(t *testing.T) {
		assert.Equal(t, ageUnknown, computeAge("garbage", testNow))
		assert.Equal(t, ageUnknown, computeAge("2099-01-01", testNow))
	})

	t.Run("gate", func(t *testing.T) {
		assert.False(t, dateInvalid("1985-01-01", testNow))
		assert.True(t, dateInvalid("2099-01-01", testNow))
		assert.True(t, dateInvalid("garbage", testNow))
	})
}

func TestSeatValidation(t *testing.T) {
	cases := []struct {
		seat    string
		invalid bool
	}{
		{"12A", false},
		{"1A", false},
		{" 12A ", false},
		{"", true},
		{"1234", true},  // too long
		{"12", true},    // purely numeric
		{"AB", true},    // purely alphabetic
		{"1-A", true},   // special symbol
		{"12AB", true},  // too long even when mixed
		{"A1", false},   // letter-first is fine
	}
	for _, tc := range cases {
		t.Run(tc.seat, func(t *testing.T) {
			assert.Equal(t, tc.invalid, seatInvalid(tc.seat))
		})
	}

	t.Run("alphanumeric feature", func(t *testing.T) {
		assert.True(t, seatIsAlphanumeric("12A"))
		assert.False(t, seatIsAlphanumeric("12"))
		assert.False(t, seatIsAlphanumeric("AB"))
	})
}

func TestCabinValidation(t *testing.T) {
	t.Run("membership is case-insensitive", func(t *testing.T) {
		assert.False(t, cabinInvalid("E"))
		assert.False(t, cabinInvalid("f"))
		assert.False(t, cabinInvalid("economy"))
		assert.False(t, cabinInvalid(" BUSINESS "))
		assert.False(t, cabinInvalid("First"))
	})

	t.Run("rejects digits, unknown letters and blanks", func(t *testing.T) {
		assert.True(t, cabinInvalid("3"))
		assert.True(t, cabinInvalid("Z"))
		assert.True(t, cabinInvalid(""))
		assert.True(t, cabinInvalid("PREMIUM"))
	})

	t.Run("single letter feature", func(t *testing.T) {
		assert.True(t, cabinIsSingleLetter("E"))
		assert.False(t, cabinIsSingleLetter("ECONOMY"))
		assert.False(t, cabinIsSingleLetter("3"))
		assert.False(t, cabinIsSingleLetter(""))
	})
}
