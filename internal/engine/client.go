package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb"
)

// analysisPath is the backend's single analysis endpoint.
const analysisPath = "/perform_analysis"

// Client handles communication with the analysis backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new analysis backend client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger for the client.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// Analyze posts the AOI polygon to the backend and returns the analysis
// result. Failures are reported as *BackendError carrying the backend's
// error message when one was present in the response body.
func (c *Client) Analyze(ctx context.Context, aoi orb.Polygon) (*Result, error) {
	endpoint, err := c.analysisURL()
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis URL: %w", err)
	}

	body, err := json.Marshal(analysisRequest{AOICoordinates: aoi})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	c.logger.DebugContext(ctx, "executing analysis request",
		slog.String("url", endpoint),
		slog.Int("ring_points", ringPoints(aoi)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "solar-siting-ui/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "analysis request failed",
			slog.String("error", err.Error()),
			slog.String("url", endpoint),
		)
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "analysis backend returned non-200 status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(raw)),
		)

		// The backend reports failures as {"error": "..."}; fall back
		// to a generic message when the body is not parseable.
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != "" {
			return nil, &BackendError{StatusCode: resp.StatusCode, Message: eb.Error}
		}
		return nil, &BackendError{StatusCode: resp.StatusCode}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode analysis response",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	// A 2xx response can still carry an application-level failure.
	if result.Status != StatusSuccess {
		c.logger.ErrorContext(ctx, "analysis reported failure",
			slog.String("status", result.Status),
			slog.String("error", result.Error),
		)
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: result.Error}
	}

	c.logger.DebugContext(ctx, "analysis completed",
		slog.Float64("power_generation_mwh", result.PowerGenerationMWh),
		slog.Int("chart_classes", len(result.ChartData)),
	)

	return &result, nil
}

// analysisURL constructs the full analysis endpoint URL.
func (c *Client) analysisURL() (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path = analysisPath

	return base.String(), nil
}

func ringPoints(p orb.Polygon) int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}
