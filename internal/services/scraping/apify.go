package scraping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultApifyBaseURL is the base URL for the Apify API.
	DefaultApifyBaseURL = "https://api.apify.com/v2"

	// DefaultApifyTimeout covers a synchronous actor run. Scraping
	// actors routinely take minutes, so this is deliberately long.
	DefaultApifyTimeout = 5 * time.Minute
)

// Actor IDs on the Apify platform. Slashes in the public actor names
// are encoded as tildes in API paths.
const (
	actorInstagram      = "apify~instagram-scraper"
	actorTikTokHashtag  = "clockworks~tiktok-hashtag-scraper"
	actorTikTokProfile  = "clockworks~tiktok-scraper"
	actorYouTubeSearch  = "streamers~youtube-scraper"
	actorYouTubeChannel = "streamers~youtube-channel-scraper"
)

// ApifyClient runs Apify actors synchronously and returns their
// dataset items.
type ApifyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ApifyOption configures the ApifyClient.
type ApifyOption func(*ApifyClient)

// WithApifyBaseURL sets a custom base URL.
func WithApifyBaseURL(baseURL string) ApifyOption {
	return func(c *ApifyClient) {
		c.baseURL = baseURL
	}
}

// WithApifyHTTPClient sets a custom HTTP client.
func WithApifyHTTPClient(httpClient *http.Client) ApifyOption {
	return func(c *ApifyClient) {
		c.httpClient = httpClient
	}
}

// WithApifyLogger sets a logger.
func WithApifyLogger(logger arbor.ILogger) ApifyOption {
	return func(c *ApifyClient) {
		c.logger = logger
	}
}

// WithApifyRateLimit sets the minimum interval between actor runs.
func WithApifyRateLimit(interval time.Duration) ApifyOption {
	return func(c *ApifyClient) {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// NewApifyClient creates a new Apify API client.
func NewApifyClient(token string, opts ...ApifyOption) *ApifyClient {
	c := &ApifyClient{
		baseURL: DefaultApifyBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultApifyTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ApifyError represents an error from the Apify API.
type ApifyError struct {
	StatusCode int
	Message    string
	ActorID    string
}

func (e *ApifyError) Error() string {
	return fmt.Sprintf("apify API error: %s (status %d, actor: %s)", e.Message, e.StatusCode, e.ActorID)
}

// RunActor starts an actor run synchronously and returns the dataset
// items it produced. Blocks until the run finishes or ctx expires.
func (c *ApifyClient) RunActor(ctx context.Context, actorID string, input map[string]interface{}) ([]map[string]interface{}, error) {
	if c.token == "" {
		return nil, fmt.Errorf("apify token not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	params := url.Values{}
	params.Set("token", c.token)
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?%s", c.baseURL, actorID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("actor_id", actorID).
			Msg("Starting Apify actor run")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actor run failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// run-sync endpoints return 201 on success
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &ApifyError{
			StatusCode: resp.StatusCode,
			Message:    truncateBody(respBody),
			ActorID:    actorID,
		}
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(respBody, &items); err != nil {
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("actor_id", actorID).
			Int("items", len(items)).
			Str("duration", time.Since(start).Round(time.Millisecond).String()).
			Msg("Apify actor run completed")
	}

	return items, nil
}

func truncateBody(body []byte) string {
	const max = 300
	s := string(body)
	if len(s) > max {
		return s[:max]
	}
	return s
}
