// Package httpscorer scores content by calling a remote inference service over HTTP.
package httpscorer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

const maxResponseBytes = 1 << 20

type scoreRequest struct {
	ContentType string   `json:"content_type"`
	Text        string   `json:"text,omitempty"`
	ImageBase64 string   `json:"image_base64,omitempty"`
	MediaType   string   `json:"media_type,omitempty"`
	Filename    string   `json:"filename,omitempty"`
	Categories  []string `json:"categories"`
}

type scoreResponse struct {
	Scores map[string]float64 `json:"scores"`
}

// Client is a moderation.Scorer backed by a remote inference endpoint.
// Outbound calls are throttled by a token bucket and retried on connection
// errors and 5xx responses.
type Client struct {
	endpoint   string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	categories map[moderation.ContentKind][]string
	log        logger.Interface
}

// NewClient creates an HTTP scorer. categories lists, per content kind, the
// categories the backend is asked to score.
func NewClient(cfg sharedConfig.HTTPScorerConfig, categories map[moderation.ContentKind][]string, log logger.Interface) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("http scorer endpoint is required")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledLogger{log})
	httpClient := retryClient.StandardClient()
	httpClient.Timeout = cfg.Timeout

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		http:       httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		categories: categories,
		log:        log,
	}, nil
}

func (c *Client) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scorer throttle: %w", err)
	}

	body, err := json.Marshal(c.buildRequest(content))
	if err != nil {
		return nil, fmt.Errorf("failed to encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warnw("scoring backend returned error status",
			"status", resp.StatusCode,
			"body", string(snippet),
		)
		return nil, fmt.Errorf("%w: backend status %d", moderation.ErrScorerUnavailable, resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}
	return moderation.Scores(out.Scores), nil
}

func (c *Client) buildRequest(content moderation.Content) scoreRequest {
	req := scoreRequest{
		ContentType: content.Kind.String(),
		Categories:  c.categories[content.Kind],
	}
	if req.Categories == nil {
		req.Categories = []string{}
	}
	switch content.Kind {
	case moderation.ContentKindImage:
		req.ImageBase64 = base64.StdEncoding.EncodeToString(content.Data)
		req.MediaType = content.MediaType
		req.Filename = content.Filename
	default:
		req.Text = content.Text
	}
	return req
}
