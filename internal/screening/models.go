// Package screening implements the hybrid anomaly decision engine for
// travel-booking records: deterministic field validators, a feature-vector
// builder, a rule verdict aggregator, and a combiner that reconciles the rule
// verdict with the probabilistic verdict of an external AI analyzer.
package screening

import "time"

// Record is one passenger/booking entry under analysis. Values are plain
// strings as received; absence (empty string) is a validity defect, not a
// separate state. Records are treated as immutable once handed to Analyze.
type Record struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birthDate"`
	AirportCode string `json:"iataCode"`
	SeatNumber  string `json:"seatNumber"`
	CabinClass  string `json:"cabinClass"`
}

// Defect names exactly one reason a field or record fails rule-based
// validation. At most one Defect is surfaced per record, chosen by the fixed
// precedence in selectDefect.
type Defect string

const (
	DefectNone                Defect = "none"
	DefectDateSpecialSymbols  Defect = "date_special_symbols"
	DefectDateUnparsable      Defect = "date_unparsable"
	DefectFutureDate          Defect = "future_date"
	DefectAgeTooOld           Defect = "age_too_old"
	DefectAgeTooYoung         Defect = "age_too_young"
	DefectNameInvalid         Defect = "name_invalid"
	DefectNameRepeatedWords   Defect = "name_repeated_words"
	DefectNameSpecialSymbols  Defect = "name_special_symbols"
	DefectNameInternalCapital Defect = "name_internal_capital"
	DefectNameRepeatedLetters Defect = "name_repeated_letters"
	DefectSeatInvalid         Defect = "seat_invalid"
	DefectCabinInvalid        Defect = "cabin_invalid"
	DefectAirportCodeInvalid  Defect = "airport_code_invalid"
)

// AnomalyTypeAI labels decisions where rules saw nothing but the external
// analyzer flagged the record.
const AnomalyTypeAI = "ai_detected_anomaly"

// RuleVerdict is the deterministic analysis result. Built fresh per analysis
// call and never mutated afterwards.
type RuleVerdict struct {
	IsAnomaly bool   `json:"ruleBasedAnomaly"`
	Defect    Defect `json:"defect"`
	Age       int    `json:"age"`
}

// Recommendation is the action tag attached to a decision.
type Recommendation string

const (
	RecommendationAllow       Recommendation = "ALLOW"
	RecommendationInvestigate Recommendation = "INVESTIGATE"
	RecommendationFallback    Recommendation = "FALLBACK_TO_RULES"
)

// ExternalVerdict is the probabilistic analysis result supplied by the
// external analyzer, shape-validated with safe defaults for missing keys.
// Degraded is set when the verdict was synthesized locally because the
// analyzer was unavailable or erroring.
type ExternalVerdict struct {
	IsAnomaly      bool           `json:"ollamaAnomaly"`
	Confidence     float64        `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	Concerns       []string       `json:"concerns"`
	Recommendation Recommendation `json:"recommendation"`
	Degraded       bool           `json:"-"`
}

// Decision is the final caller-facing analysis result for one Record. It is
// self-contained: it echoes the record, both verdicts, and the combined
// outcome, so batch results need no ordering guarantees beyond slice position.
type Decision struct {
	ID         string    `json:"id"`
	AnalyzedAt time.Time `json:"analyzedAt"`

	Name        string `json:"name"`
	BirthDate   string `json:"birthDate"`
	AirportCode string `json:"iataCode"`
	SeatNumber  string `json:"seatNumber"`
	CabinClass  string `json:"cabinClass"`
	Age         int    `json:"age"`

	RuleAnomaly      bool   `json:"ruleBasedAnomaly"`
	ExternalAnomaly  bool   `json:"ollamaAnomaly"`
	OverallAnomaly   bool   `json:"overallAnomaly"`
	AnomalyType      string `json:"anomalyType"`
	AirportCodeValid bool   `json:"iataValid"`

	Confidence     float64        `json:"confidence"`
	AIReasoning    string         `json:"aiReasoning"`
	AIConcerns     []string       `json:"aiConcerns"`
	Recommendation Recommendation `json:"recommendation"`

	Degraded        bool   `json:"degraded,omitempty"`
	Error           string `json:"error,omitempty"`
	FallbackToRules bool   `json:"fallbackToRules,omitempty"`
}
