package screening

import (
	"time"

	"skyscreen/internal/airport"
)

// Plausible passenger age bounds for the rule gate.
const (
	minPassengerAge = 12
	maxPassengerAge = 100
)

// fieldChecks holds every validator and heuristic outcome for one record.
// Computed once, then consumed by both the gate and the defect selection.
type fieldChecks struct {
	dateSymbols    bool
	dateUnparsable bool
	futureDate     bool
	age            int
	ageTooOld      bool
	ageTooYoung    bool

	nameGate            bool
	nameRepeatedWords   bool
	nameSpecialSymbols  bool
	nameInternalCapital bool
	nameRepeatedLetters bool

	seatBad    bool
	cabinBad   bool
	airportBad bool
}

func runFieldChecks(rec Record, airports *airport.Set, now time.Time) fieldChecks {
	c := fieldChecks{
		dateSymbols: dateHasSpecialSymbols(rec.BirthDate),
		age:         computeAge(rec.BirthDate, now),

		nameGate:            nameInvalid(rec.Name),
		nameRepeatedWords:   nameHasRepeatedWords(rec.Name),
		nameSpecialSymbols:  nameHasSpecialSymbols(rec.Name),
		nameInternalCapital: nameHasInternalCapital(rec.Name),
		nameRepeatedLetters: hasRepeatedRun(rec.Name, 3),

		seatBad:    seatInvalid(rec.SeatNumber),
		cabinBad:   cabinInvalid(rec.CabinClass),
		airportBad: !airports.Contains(rec.AirportCode),
	}

	birth, parsed := parseBirthDate(rec.BirthDate)
	c.dateUnparsable = !parsed
	c.futureDate = parsed && birth.After(now)
	c.ageTooOld = c.age > maxPassengerAge
	c.ageTooYoung = c.age >= 0 && c.age < minPassengerAge
	return c
}

// EvaluateRules runs every field validator over the record and reduces them to
// a single rule verdict. The anomaly flag is the OR of all validator failures;
// the surfaced defect follows a strict precedence because multiple defects
// commonly co-occur and callers need one actionable label.
func EvaluateRules(rec Record, airports *airport.Set, now time.Time) RuleVerdict {
	c := runFieldChecks(rec, airports, now)

	anomaly := c.nameGate ||
		c.dateSymbols || c.dateUnparsable || c.futureDate ||
		c.ageTooOld || c.ageTooYoung ||
		c.seatBad || c.cabinBad || c.airportBad

	verdict := RuleVerdict{
		IsAnomaly: anomaly,
		Defect:    DefectNone,
		Age:       c.age,
	}
	if anomaly {
		verdict.Defect = selectDefect(c)
	}
	return verdict
}

// selectDefect picks the single surfaced defect. The order is a design choice
// and behaviorally significant; keep it exactly as listed. Note the name
// heuristics (repeated words, special symbols, internal capital, repeated
// letters) never gate an anomaly on their own, but once some validator has
// gated one they may outrank later defects for labeling.
func selectDefect(c fieldChecks) Defect {
	switch {
	case c.dateSymbols:
		return DefectDateSpecialSymbols
	case c.dateUnparsable:
		return DefectDateUnparsable
	case c.futureDate:
		return DefectFutureDate
	case c.ageTooOld:
		return DefectAgeTooOld
	case c.ageTooYoung:
		return DefectAgeTooYoung
	case c.nameGate:
		return DefectNameInvalid
	case c.nameRepeatedWords:
		return DefectNameRepeatedWords
	case c.nameSpecialSymbols:
		return DefectNameSpecialSymbols
	case c.nameInternalCapital:
		return DefectNameInternalCapital
	case c.nameRepeatedLetters:
		return DefectNameRepeatedLetters
	case c.seatBad:
		return DefectSeatInvalid
	case c.cabinBad:
		return DefectCabinInvalid
	case c.airportBad:
		return DefectAirportCodeInvalid
	}
	return DefectNone
}
