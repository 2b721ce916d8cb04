package screening

import (
	"time"

	"skyscreen/internal/airport"
)

// FeatureCount is the fixed dimensionality of the feature vector. Positional
// meaning is part of the contract with any scoring model; never reorder.
const FeatureCount = 13

// Feature vector positions.
const (
	FeatNameLength = iota
	FeatNameSpecialSymbolCount
	FeatNameInternalCapital
	FeatNameRepeatedLetters
	FeatNameRepeatedWords
	FeatAge
	FeatAgeTooYoung
	FeatAgeTooOld
	FeatDateInvalid
	FeatSeatLength
	FeatSeatAlphanumeric
	FeatCabinSingleLetter
	FeatAirportCodeValid
)

// FeatureVector is the fixed-order numeric representation of a record,
// consumable by any reconstruction-error or scoring model.
type FeatureVector [FeatureCount]float64

// BuildFeatures deterministically maps a record to its feature vector.
// Malformed fields degrade to sentinels (age -1, zero flags) instead of
// failing, so feature extraction never aborts a batch over one bad record.
func BuildFeatures(rec Record, airports *airport.Set, now time.Time) FeatureVector {
	age := computeAge(rec.BirthDate, now)

	var v FeatureVector
	v[FeatNameLength] = float64(len([]rune(rec.Name)))
	v[FeatNameSpecialSymbolCount] = float64(nameSpecialSymbolCount(rec.Name))
	v[FeatNameInternalCapital] = boolFeature(nameHasInternalCapital(rec.Name))
	v[FeatNameRepeatedLetters] = boolFeature(hasRepeatedRun(rec.Name, 3))
	v[FeatNameRepeatedWords] = boolFeature(nameHasRepeatedWords(rec.Name))
	v[FeatAge] = float64(age)
	// Extreme-age flags are deliberately wider than the rule gate bounds:
	// age <= 1 covers the unknown-age sentinel as well.
	v[FeatAgeTooYoung] = boolFeature(age <= 1)
	v[FeatAgeTooOld] = boolFeature(age > 110)
	v[FeatDateInvalid] = boolFeature(dateInvalid(rec.BirthDate, now))
	v[FeatSeatLength] = float64(len([]rune(rec.SeatNumber)))
	v[FeatSeatAlphanumeric] = boolFeature(seatIsAlphanumeric(rec.SeatNumber))
	v[FeatCabinSingleLetter] = boolFeature(cabinIsSingleLetter(rec.CabinClass))
	v[FeatAirportCodeValid] = boolFeature(airports.Contains(rec.AirportCode))
	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
