package screening

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	pstrings "skyscreen/pkg/platform/strings"
)

// anomalyConfidenceThreshold is the minimum external confidence for a
// positive AI verdict to flip an otherwise clean record.
const anomalyConfidenceThreshold = 0.5

// Combine merges the deterministic and probabilistic verdicts into the final
// decision record.
//
// Precedence: a rule-confirmed anomaly is decisive and cannot be overridden by
// the external verdict; the external verdict can only add a positive finding
// when the rules see nothing. The combiner never panics outward: any internal
// fault is caught and surfaced as a decision with Error set and a directive to
// fall back to rule-only handling.
func Combine(rec Record, rule RuleVerdict, ext ExternalVerdict, airportValid bool, now time.Time) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = Decision{
				ID:              uuid.NewString(),
				AnalyzedAt:      now,
				Name:            rec.Name,
				BirthDate:       rec.BirthDate,
				AirportCode:     rec.AirportCode,
				SeatNumber:      rec.SeatNumber,
				CabinClass:      rec.CabinClass,
				Age:             rule.Age,
				RuleAnomaly:     rule.IsAnomaly,
				OverallAnomaly:  rule.IsAnomaly,
				AnomalyType:     string(rule.Defect),
				AIConcerns:      []string{},
				Recommendation:  RecommendationFallback,
				Error:           fmt.Sprintf("analysis failed: %v", r),
				FallbackToRules: true,
			}
		}
	}()

	overall := rule.IsAnomaly ||
		(ext.IsAnomaly && ext.Confidence > anomalyConfidenceThreshold)

	anomalyType := string(DefectNone)
	switch {
	case rule.Defect != DefectNone:
		anomalyType = string(rule.Defect)
	case ext.IsAnomaly:
		anomalyType = AnomalyTypeAI
	}

	concerns := pstrings.DedupeAndTrim(ext.Concerns)
	if concerns == nil {
		concerns = []string{}
	}

	return Decision{
		ID:         uuid.NewString(),
		AnalyzedAt: now,

		Name:        rec.Name,
		BirthDate:   rec.BirthDate,
		AirportCode: rec.AirportCode,
		SeatNumber:  rec.SeatNumber,
		CabinClass:  rec.CabinClass,
		Age:         rule.Age,

		RuleAnomaly:      rule.IsAnomaly,
		ExternalAnomaly:  ext.IsAnomaly,
		OverallAnomaly:   overall,
		AnomalyType:      anomalyType,
		AirportCodeValid: airportValid,

		Confidence:     ext.Confidence,
		AIReasoning:    ext.Reasoning,
		AIConcerns:     concerns,
		Recommendation: ext.Recommendation,

		Degraded: ext.Degraded,
	}
}

// UnavailableVerdict is the neutral external verdict used when the analyzer is
// unreachable or reports not-ready. Rule-only judgment applies.
func UnavailableVerdict() ExternalVerdict {
	return ExternalVerdict{
		IsAnomaly:      false,
		Confidence:     0,
		Reasoning:      "Ollama service not available",
		Concerns:       []string{},
		Recommendation: RecommendationFallback,
		Degraded:       true,
	}
}

// FailedVerdict is the neutral external verdict used when the analyze call
// itself failed (timeout, transport error, unusable payload).
func FailedVerdict(err error) ExternalVerdict {
	return ExternalVerdict{
		IsAnomaly:      false,
		Confidence:     0,
		Reasoning:      fmt.Sprintf("analysis failed: %v", err),
		Concerns:       []string{},
		Recommendation: RecommendationFallback,
		Degraded:       true,
	}
}
