package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/evidence"
	"go.uber.org/zap"
)

// Client queries the Tavily search API for clinical context. It implements
// evidence.Searcher.
type Client struct {
	cfg  config.EvidenceConfig
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg config.EvidenceConfig, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

type searchRequest struct {
	APIKey            string   `json:"api_key"`
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
	MaxResults        int      `json:"max_results"`
	IncludeDomains    []string `json:"include_domains"`
}

type searchResponse struct {
	Answer  string            `json:"answer"`
	Results []evidence.Result `json:"results"`
}

// Search runs one evidence query. The outbound query carries a fixed
// clinical-intent suffix and is scoped to the configured domain allow-list to
// bias retrieval toward clinical sources. Results are passed through in
// upstream order; no re-ranking, deduplication, or filtering happens here.
func (c *Client) Search(ctx context.Context, query string) (*evidence.Context, error) {
	if c.cfg.APIKey == "" {
		return nil, evidence.ErrNotConfigured
	}

	body, err := json.Marshal(searchRequest{
		APIKey:            c.cfg.APIKey,
		Query:             fmt.Sprintf("latest clinical guidelines for %s, differential diagnosis, treatment options", query),
		SearchDepth:       c.cfg.SearchDepth,
		IncludeAnswer:     true,
		IncludeRawContent: false,
		MaxResults:        c.cfg.MaxResults,
		IncludeDomains:    c.cfg.IncludeDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling evidence service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("evidence service returned non-2xx", zap.Int("status", resp.StatusCode))
		return nil, &evidence.StatusError{StatusCode: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	if len(sr.Results) == 0 {
		return nil, evidence.ErrInsufficientEvidence
	}

	return &evidence.Context{Answer: sr.Answer, Results: sr.Results}, nil
}
