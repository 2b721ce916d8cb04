package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"skyscreen/internal/screening"
)

// fakeService scripts the screening service behind the handler.
type fakeService struct {
	available bool
	decision  screening.Decision

	gotRecord  screening.Record
	gotRecords []screening.Record
}

func (f *fakeService) Analyze(_ context.Context, rec screening.Record) screening.Decision {
	f.gotRecord = rec
	return f.decision
}

func (f *fakeService) AnalyzeBatch(_ context.Context, records []screening.Record, _ int) []screening.Decision {
	f.gotRecords = records
	decisions := make([]screening.Decision, len(records))
	for i := range decisions {
		decisions[i] = f.decision
	}
	return decisions
}

func (f *fakeService) AnalyzerAvailable(context.Context) bool { return f.available }

type HandlerSuite struct {
	suite.Suite

	service *fakeService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &fakeService{
		available: true,
		decision: screening.Decision{
			ID:             "d-1",
			OverallAnomaly: false,
			AnomalyType:    "none",
			Recommendation: screening.RecommendationAllow,
		},
	}
	h := New(s.service, AnalyzerInfo{
		Endpoint: "http://localhost:11434",
		Model:    "gemma3:4b",
	}, 4, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// =====================================================================
// POST /api/detect
// =====================================================================

func (s *HandlerSuite) TestDetect_OK() {
	body := `{
		"name": "Anamika Sharma",
		"birthDate": "1985-01-01",
		"iataCode": "US",
		"seatNumber": "12A",
		"cabinClass": "E"
	}`
	rec := s.do(http.MethodPost, "/api/detect", strings.NewReader(body))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var decision screening.Decision
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decision))
	s.Equal("d-1", decision.ID)

	s.Equal("Anamika Sharma", s.service.gotRecord.Name)
	s.Equal("US", s.service.gotRecord.AirportCode)
}

func (s *HandlerSuite) TestDetect_NilLogger() {
	h := New(s.service, AnalyzerInfo{}, 0, nil)
	router := chi.NewRouter()
	h.Register(router)

	req := httptest.NewRequest(http.MethodPost, "/api/detect",
		strings.NewReader(`{"name": "Anamika Sharma"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestDetect_MalformedBody() {
	rec := s.do(http.MethodPost, "/api/detect", strings.NewReader("{not json"))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "invalid record payload")
}

// =====================================================================
// POST /api/detect/batch
// =====================================================================

func (s *HandlerSuite) TestDetectBatch_OK() {
	body := `[
		{"name": "Anamika Sharma", "birthDate": "1985-01-01", "iataCode": "US", "seatNumber": "12A", "cabinClass": "E"},
		{"name": "Test User", "birthDate": "1990-05-05", "iataCode": "IN", "seatNumber": "1B", "cabinClass": "F"}
	]`
	rec := s.do(http.MethodPost, "/api/detect/batch", strings.NewReader(body))

	s.Equal(http.StatusOK, rec.Code)

	var decisions []screening.Decision
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decisions))
	s.Len(decisions, 2)
	s.Len(s.service.gotRecords, 2)
	s.Equal("Test User", s.service.gotRecords[1].Name)
}

func (s *HandlerSuite) TestDetectBatch_Rejections() {
	s.Run("malformed body", func() {
		rec := s.do(http.MethodPost, "/api/detect/batch", strings.NewReader(`{"name": "x"}`))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("empty batch", func() {
		rec := s.do(http.MethodPost, "/api/detect/batch", strings.NewReader(`[]`))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "empty batch")
	})

	s.Run("oversized batch", func() {
		var payload bytes.Buffer
		payload.WriteByte('[')
		for i := 0; i < maxBatchRecords+1; i++ {
			if i > 0 {
				payload.WriteByte(',')
			}
			payload.WriteString(`{"name":"A B","birthDate":"1985-01-01","iataCode":"US","seatNumber":"1A","cabinClass":"E"}`)
		}
		payload.WriteByte(']')

		rec := s.do(http.MethodPost, "/api/detect/batch", &payload)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "batch exceeds limit")
	})
}

// =====================================================================
// GET /api/ollama/status and /api/ollama/health
// =====================================================================

func (s *HandlerSuite) TestStatus() {
	rec := s.do(http.MethodGet, "/api/ollama/status", nil)

	s.Equal(http.StatusOK, rec.Code)

	var status statusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &status))
	s.True(status.Available)
	s.Equal("http://localhost:11434", status.Endpoint)
	s.Equal("gemma3:4b", status.Model)
	s.NotEmpty(status.Timestamp)
}

func (s *HandlerSuite) TestHealth() {
	s.Run("analyzer up", func() {
		rec := s.do(http.MethodGet, "/api/ollama/health", nil)
		s.Equal(http.StatusOK, rec.Code)

		var health healthResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
		s.True(health.OllamaRunning)
		s.Empty(health.Suggestions)
	})

	s.Run("analyzer down includes operator hints", func() {
		s.service.available = false
		rec := s.do(http.MethodGet, "/api/ollama/health", nil)
		s.Equal(http.StatusOK, rec.Code)

		var health healthResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
		s.False(health.OllamaRunning)
		s.Len(health.Suggestions, 4)
		s.Contains(health.Suggestions[2], "ollama pull gemma3:4b")
	})
}
