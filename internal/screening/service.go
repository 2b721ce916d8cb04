package screening

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"skyscreen/internal/airport"
	"skyscreen/internal/screening/metrics"
	"skyscreen/pkg/requestcontext"
)

var tracer = otel.Tracer("skyscreen/internal/screening")

// Analyzer is the external verdict source. Implementations may block for a
// long time (a slow generative model); both operations are expected to honor
// context deadlines. Analyze returning an error means the degraded path
// applies — the service never propagates analyzer failures to callers.
type Analyzer interface {
	Available(ctx context.Context) bool
	Analyze(ctx context.Context, rec Record, rule RuleVerdict) (ExternalVerdict, error)
}

// Service runs the full decision path for booking records: rule evaluation,
// external analysis with degradation, and verdict combination. Analyses are
// independent and stateless apart from the read-only airport set, so a single
// Service is safe for concurrent use.
type Service struct {
	analyzer Analyzer
	airports *airport.Set
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService constructs a screening service. analyzer may be nil (rule-only
// operation); logger and metrics may be nil.
func NewService(analyzer Analyzer, airports *airport.Set, logger *slog.Logger, m *metrics.Metrics) *Service {
	if airports == nil {
		airports = airport.NewSet()
	}
	return &Service{
		analyzer: analyzer,
		airports: airports,
		logger:   logger,
		metrics:  m,
	}
}

// Airports exposes the injected reference set (read-only).
func (s *Service) Airports() *airport.Set { return s.airports }

// AnalyzerAvailable probes the external analyzer.
func (s *Service) AnalyzerAvailable(ctx context.Context) bool {
	if s.analyzer == nil {
		return false
	}
	start := time.Now()
	available := s.analyzer.Available(ctx)
	s.metrics.ObserveAnalyzer("probe", time.Since(start))
	return available
}

// Analyze produces the final decision for one record. It always returns a
// complete decision: analyzer unavailability, timeouts, and malformed
// responses degrade to rule-only judgment, explicitly labeled.
func (s *Service) Analyze(ctx context.Context, rec Record) Decision {
	ctx, span := tracer.Start(ctx, "screening.analyze")
	defer span.End()

	start := time.Now()
	now := requestcontext.Now(ctx)

	rule := EvaluateRules(rec, s.airports, now)
	ext := s.externalVerdict(ctx, rec, rule)
	decision := Combine(rec, rule, ext, s.airports.Contains(rec.AirportCode), now)

	span.SetAttributes(
		attribute.Bool("screening.overall_anomaly", decision.OverallAnomaly),
		attribute.String("screening.anomaly_type", decision.AnomalyType),
		attribute.Bool("screening.degraded", decision.Degraded),
	)

	s.metrics.ObserveAnalyze(time.Since(start))
	s.metrics.IncrementDecision(verdictLabel(decision.OverallAnomaly), decision.AnomalyType)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "record analyzed",
			"request_id", requestcontext.RequestID(ctx),
			"decision_id", decision.ID,
			"overall_anomaly", decision.OverallAnomaly,
			"anomaly_type", decision.AnomalyType,
			"recommendation", decision.Recommendation,
			"degraded", decision.Degraded,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return decision
}

// AnalyzeBatch analyzes a finite sequence of records with bounded parallelism
// and returns one decision per record, position-aligned with the input. There
// is no cross-record ordering guarantee beyond slice position; each decision
// is self-contained.
func (s *Service) AnalyzeBatch(ctx context.Context, records []Record, parallelism int) []Decision {
	if parallelism < 1 {
		parallelism = 1
	}

	decisions := make([]Decision, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, rec := range records {
		g.Go(func() error {
			decisions[i] = s.Analyze(ctx, rec)
			return nil
		})
	}
	// Workers never return errors; every record yields a decision.
	_ = g.Wait()
	return decisions
}

// externalVerdict obtains the probabilistic verdict, degrading to a neutral
// verdict on unavailability or failure. No retry here: callers needing retries
// re-invoke at a higher layer.
func (s *Service) externalVerdict(ctx context.Context, rec Record, rule RuleVerdict) ExternalVerdict {
	if s.analyzer == nil || !s.AnalyzerAvailable(ctx) {
		s.metrics.IncrementDegraded("unavailable")
		return UnavailableVerdict()
	}

	start := time.Now()
	ext, err := s.analyzer.Analyze(ctx, rec, rule)
	s.metrics.ObserveAnalyzer("analyze", time.Since(start))

	if err != nil {
		s.metrics.IncrementDegraded("analyze_failed")
		if s.logger != nil {
			s.logger.WarnContext(ctx, "external analysis failed, falling back to rules",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return FailedVerdict(err)
	}
	return ext
}

func verdictLabel(anomaly bool) string {
	if anomaly {
		return "anomaly"
	}
	return "clean"
}
