package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"integrityapi/internal/config"
	"integrityapi/internal/model"
)

// ExternalAPIScorer estimates AI-generation likelihood by calling an
// external detection API. The HTTP client is initialized once on first use
// and shared for the life of the process; there is no teardown.
type ExternalAPIScorer struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	prefixLimit int

	clientOnce sync.Once
	client     *http.Client
}

// NewExternalAPIScorer builds a scorer against the configured detector API.
func NewExternalAPIScorer(cfg config.DetectorConfig, scoring config.ScoringConfig) *ExternalAPIScorer {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ExternalAPIScorer{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		timeout:     timeout,
		prefixLimit: scoring.PrefixLimit,
	}
}

func (s *ExternalAPIScorer) Kind() Kind { return KindAI }

func (s *ExternalAPIScorer) httpClient() *http.Client {
	s.clientOnce.Do(func() {
		s.client = &http.Client{
			Timeout:   s.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	})
	return s.client
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

func (s *ExternalAPIScorer) Score(ctx context.Context, text string) (model.ScoreResult, error) {
	body, err := json.Marshal(detectRequest{Text: truncate(text, s.prefixLimit)})
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("%w: marshal request: %v", ErrScoring, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/detect", bytes.NewReader(body))
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("%w: create request: %v", ErrScoring, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("%w: send request: %v", ErrScoring, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return model.ScoreResult{}, fmt.Errorf("%w: detector status %d: %s", ErrScoring, resp.StatusCode, respBody)
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.ScoreResult{}, fmt.Errorf("%w: decode response: %v", ErrScoring, err)
	}
	if out.Score < 0 || out.Score > 100 {
		return model.ScoreResult{}, fmt.Errorf("%w: score %v out of range", ErrScoring, out.Score)
	}

	label := model.Label(out.Label)
	if label != model.LabelHigh && label != model.LabelLow {
		if out.Score >= 50 {
			label = model.LabelHigh
		} else {
			label = model.LabelLow
		}
	}
	return model.ScoreResult{Score: out.Score, Label: label}, nil
}
