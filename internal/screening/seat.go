package screening

import (
	"strings"
	"unicode"
)

// allowedCabinClasses is the membership set for the cabin field: single cabin
// letters plus named classes, matched case-insensitively after trimming.
// Static configuration data, not a runtime-mutable registry.
var allowedCabinClasses = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "D": {}, "E": {}, "F": {},
	"ECONOMY":  {},
	"BUSINESS": {},
	"FIRST":    {},
}

// seatInvalid is the pass/fail gate for the seat token: at most 3 characters,
// letters and digits only, and must mix both (a bare row number or a bare
// letter is not a seat).
func seatInvalid(seat string) bool {
	seat = strings.TrimSpace(seat)
	runes := []rune(seat)
	if len(runes) == 0 || len(runes) > 3 {
		return true
	}
	hasLetter, hasDigit := false, false
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return true
		}
	}
	return !hasLetter || !hasDigit
}

// seatIsAlphanumeric reports whether the token contains at least one letter
// and one digit. Feature-vector signal.
func seatIsAlphanumeric(seat string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range seat {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// cabinIsSingleLetter reports the canonical one-letter cabin shape.
// Feature-vector signal; named classes like ECONOMY are still valid cabins.
func cabinIsSingleLetter(cabin string) bool {
	runes := []rune(cabin)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}

// cabinInvalid is the membership gate for the cabin field. It subsumes the
// shape checks: a digit-led or otherwise malformed token is never a member.
func cabinInvalid(cabin string) bool {
	upper := strings.ToUpper(strings.TrimSpace(cabin))
	if upper == "" {
		return true
	}
	_, ok := allowedCabinClasses[upper]
	return !ok
}
