// Package trainer talks to the external training service that runs
// Monte Carlo control and reports progress snapshots.
package trainer

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rlgridviz/pkg/snapshot"
)

// TrainRequest asks the service to run a batch of training episodes
type TrainRequest struct {
	Episodes  int     // number of episodes to train
	Alpha     float64 // learning rate
	EvalEvery int     // greedy evaluation interval in episodes
	EvalRuns  int     // rollouts averaged per evaluation
}

// Client defines the operations the training service exposes
type Client interface {
	State(ctx context.Context) (*snapshot.Snapshot, error)
	Train(ctx context.Context, req TrainRequest) (*snapshot.Snapshot, error)
	Reset(ctx context.Context) (*snapshot.Snapshot, error)
	SetTimeout(timeout time.Duration)
}

// HTTPClient implements Client over the service's HTTP API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewHTTPClient creates a client for the given service base URL
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		maxRetries: 5,
	}
}

// SetTimeout sets the per-request timeout
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetMaxRetries sets how many attempts a request gets before failing
func (c *HTTPClient) SetMaxRetries(n int) {
	if n > 0 {
		c.maxRetries = n
	}
}

// State fetches the current training snapshot
func (c *HTTPClient) State(ctx context.Context) (*snapshot.Snapshot, error) {
	return c.call(ctx, http.MethodGet, "/state", nil)
}

// Train runs a training batch and returns the resulting snapshot
func (c *HTTPClient) Train(ctx context.Context, req TrainRequest) (*snapshot.Snapshot, error) {
	query := url.Values{}
	if req.Episodes > 0 {
		query.Set("n", strconv.Itoa(req.Episodes))
	}
	if req.Alpha > 0 {
		query.Set("alpha", strconv.FormatFloat(req.Alpha, 'f', -1, 64))
	}
	if req.EvalEvery > 0 {
		query.Set("eval_every", strconv.Itoa(req.EvalEvery))
	}
	if req.EvalRuns > 0 {
		query.Set("n_eval", strconv.Itoa(req.EvalRuns))
	}
	return c.call(ctx, http.MethodPost, "/train", query)
}

// Reset discards all learned state and returns the fresh snapshot
func (c *HTTPClient) Reset(ctx context.Context) (*snapshot.Snapshot, error) {
	return c.call(ctx, http.MethodPost, "/reset", nil)
}

// call issues one request with exponential backoff retry and decodes
// the snapshot response
func (c *HTTPClient) call(ctx context.Context, method, path string, query url.Values) (*snapshot.Snapshot, error) {
	const baseDelay = time.Millisecond * 500
	const maxDelay = time.Second * 10

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snap, err := c.doRequest(ctx, method, endpoint)
		if err == nil {
			return snap, nil
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		delay := backoffDelay(attempt, baseDelay, maxDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%s %s failed after %d attempts: %w", method, path, c.maxRetries, lastErr)
}

func (c *HTTPClient) doRequest(ctx context.Context, method, endpoint string) (*snapshot.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	snap, err := snapshot.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// backoffDelay calculates exponential backoff with up to 25% jitter to
// avoid hammering a recovering service
func backoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	delay := time.Duration(float64(baseDelay) * math.Pow(2, float64(attempt-1)))
	if delay > maxDelay {
		delay = maxDelay
	}
	jitter := time.Duration(rand.Float64() * 0.25 * float64(delay))
	return delay + jitter
}
