// Package ollama implements the external verdict source against a local
// Ollama instance. The call pattern is probe-then-analyze with divergent
// timeouts: the availability probe is short, the full analysis long because
// the collaborator is a slow generative model.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"skyscreen/internal/screening"
	"skyscreen/pkg/platform/circuit"
	"skyscreen/pkg/platform/sentinel"
)

// Config holds analyzer connection settings.
type Config struct {
	BaseURL        string
	Model          string
	ProbeTimeout   time.Duration
	AnalyzeTimeout time.Duration
}

const (
	defaultBaseURL        = "http://localhost:11434"
	defaultModel          = "gemma3:4b"
	defaultProbeTimeout   = 10 * time.Second
	defaultAnalyzeTimeout = 120 * time.Second
)

// Client calls the Ollama HTTP API and degrades predictably. A circuit breaker
// guards the long analyze call: after consecutive failures the breaker opens
// and analyze calls short-circuit instead of burning the full timeout; probe
// successes close it again.
type Client struct {
	baseURL string
	model   string

	probeTimeout   time.Duration
	analyzeTimeout time.Duration

	httpClient *http.Client
	breaker    *circuit.Breaker
	logger     *slog.Logger
}

// New constructs a client; zero-value config fields take defaults.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = defaultAnalyzeTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		model:          cfg.Model,
		probeTimeout:   cfg.ProbeTimeout,
		analyzeTimeout: cfg.AnalyzeTimeout,
		httpClient:     &http.Client{},
		breaker:        circuit.New("ollama", circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(1)),
		logger:         logger,
	}
}

// BaseURL returns the configured endpoint, for status reporting.
func (c *Client) BaseURL() string { return c.baseURL }

// Model returns the configured model name, for status reporting.
func (c *Client) Model() string { return c.model }

// Available probes GET /api/tags and requires the configured model in the tag
// list. Probe outcomes feed the circuit breaker so a recovered service closes
// the circuit without operator action.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()
		return false
	}

	hasModel := strings.Contains(string(body), c.model)
	if !hasModel {
		// Server is up but cannot serve us; not a transport failure.
		return false
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed && c.logger != nil {
		c.logger.InfoContext(ctx, "ollama circuit closed", "endpoint", c.baseURL)
	}
	return true
}

// generateRequest is the Ollama /api/generate payload. Low temperature for
// consistent verdicts, bounded prediction length for latency.
type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// verdictPayload mirrors the verdict JSON contract. Pointer fields distinguish
// absent keys, which take safe defaults instead of failing the call.
type verdictPayload struct {
	OllamaAnomaly  *bool    `json:"ollamaAnomaly"`
	Confidence     *float64 `json:"confidence"`
	Reasoning      *string  `json:"reasoning"`
	Concerns       []string `json:"concerns"`
	Recommendation *string  `json:"recommendation"`
}

// Analyze sends the record plus the rule verdict to the model and parses the
// generated verdict. Errors are returned only for transport-level trouble
// (including an open circuit); an unusable generated text is recovered locally
// by synthesizing a verdict that mirrors the rule outcome.
func (c *Client) Analyze(ctx context.Context, rec screening.Record, rule screening.RuleVerdict) (screening.ExternalVerdict, error) {
	if c.breaker.IsOpen() {
		return screening.ExternalVerdict{}, fmt.Errorf("ollama analyze: %w", sentinel.ErrCircuitOpen)
	}

	ctx, cancel := context.WithTimeout(ctx, c.analyzeTimeout)
	defer cancel()

	prompt, err := c.buildPrompt(rec, rule)
	if err != nil {
		return screening.ExternalVerdict{}, fmt.Errorf("build prompt: %w", err)
	}

	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: map[string]any{
			"temperature": 0.1,
			"top_p":       0.8,
			"num_predict": 200,
		},
	})
	if err != nil {
		return screening.ExternalVerdict{}, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return screening.ExternalVerdict{}, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(ctx)
		return screening.ExternalVerdict{}, fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure(ctx)
		return screening.ExternalVerdict{}, fmt.Errorf("ollama generate: unexpected status %d", resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.recordFailure(ctx)
		return screening.ExternalVerdict{}, fmt.Errorf("decode generate response: %w: %v", sentinel.ErrMalformed, err)
	}

	c.breaker.RecordSuccess()

	var payload verdictPayload
	if err := json.Unmarshal([]byte(envelope.Response), &payload); err != nil {
		// The model ignored the JSON instruction. Recover locally rather than
		// dropping the record: mirror the rule verdict with fixed confidence.
		return synthesizeVerdict(envelope.Response, rule), nil
	}
	return payload.toVerdict(), nil
}

func (c *Client) recordFailure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened && c.logger != nil {
		c.logger.WarnContext(ctx, "ollama circuit opened", "endpoint", c.baseURL)
	}
}

func (p verdictPayload) toVerdict() screening.ExternalVerdict {
	v := screening.ExternalVerdict{
		IsAnomaly:      false,
		Confidence:     0,
		Reasoning:      "No reasoning provided",
		Concerns:       []string{},
		Recommendation: screening.RecommendationAllow,
	}
	if p.OllamaAnomaly != nil {
		v.IsAnomaly = *p.OllamaAnomaly
	}
	if p.Confidence != nil {
		v.Confidence = clamp01(*p.Confidence)
	}
	if p.Reasoning != nil {
		v.Reasoning = *p.Reasoning
	}
	if p.Concerns != nil {
		v.Concerns = p.Concerns
	}
	if p.Recommendation != nil {
		switch screening.Recommendation(strings.ToUpper(strings.TrimSpace(*p.Recommendation))) {
		case screening.RecommendationInvestigate:
			v.Recommendation = screening.RecommendationInvestigate
		case screening.RecommendationFallback:
			v.Recommendation = screening.RecommendationFallback
		default:
			v.Recommendation = screening.RecommendationAllow
		}
	}
	return v
}

// synthesizeVerdict builds the malformed-text fallback: anomaly mirrors the
// rule verdict, with higher confidence when rules already flagged the record.
func synthesizeVerdict(generated string, rule screening.RuleVerdict) screening.ExternalVerdict {
	v := screening.ExternalVerdict{
		IsAnomaly:      rule.IsAnomaly,
		Confidence:     0.6,
		Reasoning:      "AI analysis: " + truncate(generated, 200),
		Concerns:       []string{"pattern_analysis_completed"},
		Recommendation: screening.RecommendationAllow,
		Degraded:       true,
	}
	if rule.IsAnomaly {
		v.Confidence = 0.8
		v.Concerns = []string{"rule_violations_detected"}
		v.Recommendation = screening.RecommendationInvestigate
	}
	return v
}

func (c *Client) buildPrompt(rec screening.Record, rule screening.RuleVerdict) (string, error) {
	passengerJSON, err := json.Marshal(struct {
		screening.Record
		CalculatedAge int `json:"calculatedAge"`
	}{Record: rec, CalculatedAge: rule.Age})
	if err != nil {
		return "", err
	}
	ruleJSON, err := json.Marshal(map[string]any{"ruleBasedResults": rule})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert airline security analyst. Analyze this passenger data for anomalies.

Passenger Data: %s
Rule-based Analysis: %s

IMPORTANT: Consider cultural diversity - names like Anamika, Kumar, Zhang, Mohammed, etc. are legitimate names from different cultures.

Focus on:
- Obviously fake names (Test User, John Doe, Admin, etc.)
- Invalid date formats or impossible dates
- Invalid country codes or geographic inconsistencies
- Suspicious booking patterns or data combinations
- Technical data corruption or formatting issues

DO NOT flag legitimate names from different cultures as suspicious.

You MUST respond with ONLY valid JSON in this exact format (no additional text):
{
  "ollamaAnomaly": false,
  "confidence": 0.0,
  "reasoning": "Normal passenger data with legitimate international name",
  "concerns": [],
  "recommendation": "ALLOW"
}
`, passengerJSON, ruleJSON), nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// truncate cuts s to at most n runes. Byte slicing would split a multi-byte
// rune and leave invalid UTF-8 in the synthesized reasoning.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
