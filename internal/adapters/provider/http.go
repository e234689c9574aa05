// Package provider implements research providers: an HTTP client for remote
// research APIs and a fixture client reading canned responses from disk.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Retry backoff bounds for connection errors and 5xx responses.
const (
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 8 << 20

type discoverRequest struct {
	Region         string  `json:"region"`
	DwellingType   string  `json:"dwelling_type"`
	MaxMedianPrice float64 `json:"max_median_price"`
	NumEntities    int     `json:"num_entities"`
}

type discoverResponse struct {
	Candidates []domain.Candidate `json:"candidates"`
}

type researchRequest struct {
	Candidate      domain.Candidate `json:"candidate"`
	DwellingType   string           `json:"dwelling_type"`
	MaxMedianPrice float64          `json:"max_median_price"`
}

// HTTPClient implements ports.ResearchProvider over a JSON HTTP API.
type HTTPClient struct {
	name    string
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *retryablehttp.Client
}

var _ ports.ResearchProvider = (*HTTPClient)(nil)

// HTTPOption configures an HTTPClient.
type HTTPOption func(*retryablehttp.Client)

// WithRetryWait overrides the retry backoff bounds.
func WithRetryWait(minWait, maxWait time.Duration) HTTPOption {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = minWait
		c.RetryWaitMax = maxWait
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(c *retryablehttp.Client) {
		c.HTTPClient.Transport = rt
	}
}

// NewHTTPClient creates a client for cfg. Connection errors and 5xx responses
// are retried up to cfg.MaxRetries times; everything else is classified on
// the first response.
func NewHTTPClient(cfg domain.ProviderSettings, log ports.Logger, opts ...HTTPOption) *HTTPClient {
	rc := &retryablehttp.Client{
		HTTPClient:   &http.Client{Timeout: cfg.Timeout},
		RetryWaitMin: DefaultRetryWaitMin,
		RetryWaitMax: DefaultRetryWaitMax,
		RetryMax:     cfg.MaxRetries,
		CheckRetry:   checkRetry,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	if log != nil {
		rc.Logger = leveledLogger{log: log}
	}
	for _, opt := range opts {
		opt(rc)
	}

	return &HTTPClient{
		name:    cfg.Name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		client:  rc,
	}
}

// checkRetry retries connection errors and 5xx responses. Rate limits are
// account-wide, so a 429 is never retried here.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Name returns the configured provider name.
func (c *HTTPClient) Name() string {
	return c.name
}

// Discover posts the region query to {base}/discover.
func (c *HTTPClient) Discover(
	ctx context.Context,
	req domain.ResearchRequest,
	region string,
) ([]domain.Candidate, error) {
	var out discoverResponse
	err := c.post(ctx, "/discover", discoverRequest{
		Region:         region,
		DwellingType:   req.DwellingType,
		MaxMedianPrice: req.MaxMedianPrice,
		NumEntities:    req.NumEntities,
	}, &out)
	if err != nil {
		return nil, zerr.With(err, "region", region)
	}

	for i := range out.Candidates {
		if out.Candidates[i].Region == "" {
			out.Candidates[i].Region = region
		}
	}
	return out.Candidates, nil
}

// Research posts one candidate to {base}/research.
func (c *HTTPClient) Research(
	ctx context.Context,
	req domain.ResearchRequest,
	candidate domain.Candidate,
) (domain.Metrics, error) {
	var out domain.Metrics
	err := c.post(ctx, "/research", researchRequest{
		Candidate:      candidate,
		DwellingType:   req.DwellingType,
		MaxMedianPrice: req.MaxMedianPrice,
	}, &out)
	if err != nil {
		return domain.Metrics{}, zerr.With(err, "candidate", candidate.Name)
	}

	if out.Identity.Name == "" {
		out.Identity = domain.Identity{
			Name:   candidate.Name,
			State:  candidate.State,
			LGA:    candidate.LGA,
			Region: candidate.Region,
		}
	}
	out.Fallback = false
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewValidationError("request", domain.ErrProviderRequestFailed.Error()).WithCause(err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return domain.NewConfigurationError(domain.ErrProviderRequestFailed.Error()).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		// Cancellation is the caller's decision, not a provider failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return FromTransport(c.name, err, c.timeout)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return FromTransport(c.name, err, c.timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FromResponse(c.name, resp.StatusCode, resp.Header, data)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewAPIError(c.name, domain.ErrProviderDecodeFailed.Error(), resp.StatusCode).WithCause(err)
	}
	return nil
}

// leveledLogger forwards retryablehttp warnings and errors to ports.Logger.
type leveledLogger struct {
	log ports.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.log.Warn(formatKV(msg, kv)) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.log.Warn(formatKV(msg, kv)) }
func (l leveledLogger) Info(string, ...any)         {}
func (l leveledLogger) Debug(string, ...any)        {}

func formatKV(msg string, kv []any) string {
	var b bytes.Buffer
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
