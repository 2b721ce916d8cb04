package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skyscreen/internal/screening"
	dErrors "skyscreen/pkg/domainerrors"
	"skyscreen/pkg/platform/httputil"
	"skyscreen/pkg/requestcontext"
)

// maxBatchRecords bounds one batch request; larger ingests go through the CLI.
const maxBatchRecords = 1000

// Service defines the screening operations the transport layer needs.
type Service interface {
	Analyze(ctx context.Context, rec screening.Record) screening.Decision
	AnalyzeBatch(ctx context.Context, records []screening.Record, parallelism int) []screening.Decision
	AnalyzerAvailable(ctx context.Context) bool
}

// AnalyzerInfo describes the external analyzer for status reporting.
type AnalyzerInfo struct {
	Endpoint string
	Model    string
}

// Handler wires screening endpoints to the screening service.
type Handler struct {
	service     Service
	info        AnalyzerInfo
	parallelism int
	logger      *slog.Logger
}

// New constructs a screening handler with its dependencies. logger may be nil.
func New(service Service, info AnalyzerInfo, parallelism int, logger *slog.Logger) *Handler {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service:     service,
		info:        info,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Register mounts screening endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/detect", h.HandleDetect)
	r.Post("/api/detect/batch", h.HandleDetectBatch)
	r.Get("/api/ollama/status", h.HandleStatus)
	r.Get("/api/ollama/health", h.HandleHealth)
}

// HandleDetect handles POST /api/detect: one record in, one decision out.
func (h *Handler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var rec screening.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid record payload"))
		return
	}

	decision := h.service.Analyze(ctx, rec)

	h.logger.InfoContext(ctx, "detect handled",
		"request_id", requestcontext.RequestID(ctx),
		"decision_id", decision.ID,
		"overall_anomaly", decision.OverallAnomaly,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, decision)
}

// HandleDetectBatch handles POST /api/detect/batch: a JSON array of records
// in, one decision per record out, position-aligned. A batch is never
// partially applied: every record yields a decision (possibly degraded).
func (h *Handler) HandleDetectBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var records []screening.Record
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid records payload"))
		return
	}
	if len(records) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "empty batch"))
		return
	}
	if len(records) > maxBatchRecords {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "batch exceeds limit"))
		return
	}

	decisions := h.service.AnalyzeBatch(ctx, records, h.parallelism)

	h.logger.InfoContext(ctx, "batch detect handled",
		"request_id", requestcontext.RequestID(ctx),
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, decisions)
}

// HandleStatus handles GET /api/ollama/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, statusResponse{
		Available: h.service.AnalyzerAvailable(r.Context()),
		Endpoint:  h.info.Endpoint,
		Model:     h.info.Model,
		Timestamp: requestcontext.Now(r.Context()).UTC().Format(time.RFC3339),
	})
}

// HandleHealth handles GET /api/ollama/health with operator hints when the
// analyzer is down.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	available := h.service.AnalyzerAvailable(r.Context())
	resp := healthResponse{
		OllamaRunning: available,
		ExpectedModel: h.info.Model,
	}
	if !available {
		resp.Suggestions = []string{
			"1. Start Ollama: ollama serve",
			"2. Check if " + h.info.Model + " is installed: ollama list",
			"3. Pull model if needed: ollama pull " + h.info.Model,
			"4. Verify " + h.info.Endpoint + " is accessible",
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type statusResponse struct {
	Available bool   `json:"available"`
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	OllamaRunning bool     `json:"ollamaRunning"`
	ExpectedModel string   `json:"expectedModel"`
	Suggestions   []string `json:"suggestions,omitempty"`
}
