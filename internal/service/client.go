// Package service talks to the remote page analysis service.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/speedx/internal/logger"
	"github.com/yildizm/speedx/internal/metrics"
)

// AnalyzePath is the endpoint, relative to the base URL, that analyzes a page
const AnalyzePath = "/api/performance/analyze"

const maxResponseBody = 1 << 20 // 1 MB

// AnalyzeRequest is the JSON body sent to the service
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// Response is a 2xx answer from the service
type Response struct {
	StatusCode int
	RequestID  string
	Success    bool
	Data       metrics.Partial
}

// envelope is the 2xx body shape: {"success": bool, "data": {...}}
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// errorBody is the non-2xx body shape: {"message": "..."}
type errorBody struct {
	Message string `json:"message"`
}

// wireMetrics mirrors metrics.Partial but accepts totalRequests as any JSON
// number so that integral floats such as 12.0 are not rejected.
type wireMetrics struct {
	AccessibilityScore *float64 `json:"accessibilityScore"`
	PerformanceScore   *float64 `json:"performanceScore"`
	BestPracticesScore *float64 `json:"bestPracticesScore"`
	SEOScore           *float64 `json:"seoScore"`
	PageLoadTime       *float64 `json:"pageLoadTime"`
	TotalRequestSize   *float64 `json:"totalRequestSize"`
	TotalRequests      *float64 `json:"totalRequests"`
}

// Client issues analysis requests
type Client struct {
	baseURL   *url.URL
	client    *http.Client
	userAgent string
	logger    *logger.Logger
	requestID func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets a client-side timeout; 0 means none
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestIDGenerator overrides the X-Request-ID generator
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// New creates a client for the service at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:   parsed,
		client:    &http.Client{},
		userAgent: "speedx",
		logger:    logger.Discard(),
		requestID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the absolute analyze URL
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(AnalyzePath).String()
}

// Analyze submits target for analysis. A 2xx answer yields a Response, even
// when the service reports success=false; every other outcome is a
// *ServiceError.
func (c *Client) Analyze(ctx context.Context, target string) (*Response, error) {
	requestID := c.requestID()

	body, err := json.Marshal(AnalyzeRequest{URL: target})
	if err != nil {
		return nil, c.withID(newServiceError(ErrTypeInternal, 0, "", err), requestID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, c.withID(newServiceError(ErrTypeInternal, 0, "", err), requestID)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.DebugWithFields("request failed", []logger.Field{
			logger.F("request_id", requestID),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		})
		return nil, c.withID(classifyTransportError(ctx, err), requestID)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, c.withID(newServiceError(ErrTypeNetwork, resp.StatusCode, "", err), requestID)
	}

	c.logger.DebugWithFields("response received", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", resp.StatusCode),
		logger.F("bytes", len(raw)),
		logger.Duration(time.Since(start)),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.withID(parseErrorResponse(resp.StatusCode, raw), requestID)
	}

	result, err := parseSuccessResponse(raw)
	if err != nil {
		return nil, c.withID(newServiceError(ErrTypeMalformedResponse, resp.StatusCode, "", err), requestID)
	}
	result.StatusCode = resp.StatusCode
	result.RequestID = requestID

	return result, nil
}

func (c *Client) withID(se *ServiceError, requestID string) *ServiceError {
	se.RequestID = requestID
	return se
}

func classifyTransportError(ctx context.Context, err error) *ServiceError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newServiceError(ErrTypeTimeout, 0, "", err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newServiceError(ErrTypeTimeout, 0, "", err)
	}
	return newServiceError(ErrTypeNetwork, 0, "", err)
}

// parseErrorResponse extracts {"message": ...} from a non-2xx body. A body
// that is empty or not JSON yields an error with no message.
func parseErrorResponse(status int, raw []byte) *ServiceError {
	var body errorBody
	if len(bytes.TrimSpace(raw)) == 0 {
		return newServiceError(ErrTypeService, status, "", nil)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return newServiceError(ErrTypeService, status, "", fmt.Errorf("undecodable error body: %w", err))
	}
	return newServiceError(ErrTypeService, status, body.Message, nil)
}

func parseSuccessResponse(raw []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &Response{Success: env.Success}
	if !env.Success {
		return result, nil
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return result, nil
	}

	partial, err := decodeMetrics(data)
	if err != nil {
		return nil, err
	}
	result.Data = partial
	return result, nil
}

func decodeMetrics(data []byte) (metrics.Partial, error) {
	var wire wireMetrics
	if err := json.Unmarshal(data, &wire); err != nil {
		return metrics.Partial{}, fmt.Errorf("invalid metrics payload: %w", err)
	}

	partial := metrics.Partial{
		AccessibilityScore: wire.AccessibilityScore,
		PerformanceScore:   wire.PerformanceScore,
		BestPracticesScore: wire.BestPracticesScore,
		SEOScore:           wire.SEOScore,
		PageLoadTime:       wire.PageLoadTime,
		TotalRequestSize:   wire.TotalRequestSize,
	}

	if wire.TotalRequests != nil {
		v := *wire.TotalRequests
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return metrics.Partial{}, fmt.Errorf("invalid metrics payload: totalRequests must be an integer, got %v", v)
		}
		n := int(v)
		partial.TotalRequests = &n
	}

	return partial, nil
}
