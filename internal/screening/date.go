package screening

import (
	"regexp"
	"time"
)

// birthDateLayout is the only accepted calendar date format. The shape is
// checked separately because time.Parse is lenient about zero-padding.
const birthDateLayout = "2006-01-02"

var birthDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ageUnknown is the sentinel age for unparsable and future birth dates.
// Feature extraction must never abort over one malformed record.
const ageUnknown = -1

// dateHasSpecialSymbols reports any character other than digits and hyphens.
// Surfaced as its own defect ahead of generic parse failure.
func dateHasSpecialSymbols(date string) bool {
	for _, r := range date {
		if (r < '0' || r > '9') && r != '-' {
			return true
		}
	}
	return false
}

// parseBirthDate parses a strict YYYY-MM-DD date.
func parseBirthDate(date string) (time.Time, bool) {
	if !birthDateShape.MatchString(date) {
		return time.Time{}, false
	}
	t, err := time.Parse(birthDateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// computeAge returns whole years between the birth date and now, or ageUnknown
// when the date is unparsable or in the future.
func computeAge(date string, now time.Time) int {
	birth, ok := parseBirthDate(date)
	if !ok || birth.After(now) {
		return ageUnknown
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// dateInvalid is the pass/fail gate for the date field: unparsable or a date
// strictly after now.
func dateInvalid(date string, now time.Time) bool {
	birth, ok := parseBirthDate(date)
	return !ok || birth.After(now)
}
