package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"chogscraper/pkg/config"
	"chogscraper/pkg/errors"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/ratelimit"
)

// Client is an HTTP implementation of Service against a JSON search endpoint
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// NewClient creates a search client from the search section of the configuration
func NewClient(cfg *config.SearchConfig, userAgent string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		baseURL: cfg.Endpoint,
		limiter: ratelimit.NewPerMinute(cfg.RequestsPerMinute),
		logger:  log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetLimiter replaces the request pacer
func (c *Client) SetLimiter(limiter ratelimit.Limiter) {
	c.limiter = limiter
}

// Search follows next_cursor until the service reports no further page
func (c *Client) Search(ctx context.Context, query string) iter.Seq2[Post, error] {
	return func(yield func(Post, error) bool) {
		cursor := ""
		page := 0
		for {
			page++
			resp, err := c.fetchPage(ctx, query, cursor)
			if err != nil {
				yield(Post{}, err)
				return
			}

			c.logger.DebugWithFields("search page received", map[string]interface{}{
				"page":        page,
				"posts":       len(resp.Posts),
				"next_cursor": resp.NextCursor,
			})

			for _, p := range resp.Posts {
				if !yield(p, nil) {
					return
				}
			}

			if resp.NextCursor == "" || resp.NextCursor == cursor {
				return
			}
			cursor = resp.NextCursor
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, query, cursor string) (*searchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var response searchResponse
	if err := c.GetJSON(ctx, GetSearchURL(c.baseURL, query, cursor), &response); err != nil {
		return nil, fmt.Errorf("search %q failed: %w", query, err)
	}
	return &response, nil
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.NewNetworkError(err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !errors.IsSuccessStatus(resp.StatusCode) {
		c.logger.ErrorWithFields("unexpected search status", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    url,
		})
		return errors.NewStatusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errors.NewParsingError(resp.StatusCode, err)
	}

	return nil
}
