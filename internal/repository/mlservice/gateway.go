package mlservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pobyzaarif/goshortcute"
	gobreaker "github.com/sony/gobreaker/v2"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
	"styleMarket/pkg/metrics"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 4 << 20
	breakerName  = "recommender"
)

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Username string
	Password string
}

// Request is one outbound call. List-valued query parameters are repeated
// once per value; a zero Timeout uses the client default.
type Request struct {
	Path    string
	Method  string
	Query   map[string]any
	Body    any
	Timeout time.Duration
}

// Client calls the external recommendation service under a time budget,
// behind a circuit breaker.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)

	metrics.RecommenderCircuitState.Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("recommender circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.RecommenderCircuitState.Set(stateValue(to))
		},
		// A caller that went away says nothing about the service's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		breaker:    breaker,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.BaseURL != ""
}

// FetchRecommendations performs req and returns the normalized entries.
// Every failure is a *GatewayError matching one of the Err* kinds.
func (c *Client) FetchRecommendations(ctx context.Context, req Request) ([]domain.RemoteRecommendation, error) {
	start := time.Now()

	recs, err := c.fetch(ctx, req)

	outcome := "ok"
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		outcome = gwErr.Reason()
	}
	metrics.RecommenderRequests.WithLabelValues(req.Path, outcome).Inc()
	if outcome != "not_configured" {
		metrics.RecommenderRequestLatency.WithLabelValues(req.Path).Observe(time.Since(start).Seconds())
	}

	return recs, err
}

func (c *Client) fetch(ctx context.Context, req Request) ([]domain.RemoteRecommendation, error) {
	if !c.Configured() {
		return nil, newError(ErrNotConfigured, req.Path, 0, nil)
	}

	target, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, newError(ErrUnreachable, req.Path, 0, err)
	}

	var payload []byte
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, newError(ErrUnreachable, req.Path, 0, fmt.Errorf("failed to marshal payload: %w", err))
		}
	}

	budget := req.Timeout
	if budget <= 0 {
		budget = c.cfg.Timeout
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, req, target, payload, budget)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, newError(ErrUnreachable, req.Path, 0, err)
		}
		return nil, err
	}

	recs, err := Normalize(body)
	if err != nil {
		return nil, newError(ErrBadResponse, req.Path, 0, nil)
	}
	return recs, nil
}

// do issues the HTTP call. The budget covers the whole exchange, body
// included; on expiry the in-flight request is cancelled.
func (c *Client) do(ctx context.Context, req Request, target string, payload []byte, budget time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, newError(ErrUnreachable, req.Path, 0, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Username != "" || c.cfg.Password != "" {
		basicAuth := goshortcute.StringtoBase64Encode(c.cfg.Username + ":" + c.cfg.Password)
		httpReq.Header.Set("Authorization", "Basic "+basicAuth)
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, req.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return nil, newError(ErrBadStatus, req.Path, res.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(ctx, req.Path, err)
	}

	return body, nil
}

func classifyTransportError(ctx context.Context, path string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(ErrTimeout, path, 0, err)
	}
	if errors.Is(err, context.Canceled) {
		// still matches context.Canceled, so the breaker ignores it
		return newError(ErrUnreachable, path, 0, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(ErrTimeout, path, 0, err)
	}

	return newError(ErrUnreachable, path, 0, err)
}

// buildURL resolves path against the base URL. Query values are passed
// through as strings; slices repeat the key once per element.
func (c *Client) buildURL(path string, query map[string]any) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid recommender base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid recommender base url %q", c.cfg.BaseURL)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid recommender path %q: %w", path, err)
	}

	target := base.ResolveReference(ref)
	values := target.Query()

	for key, value := range query {
		switch v := value.(type) {
		case nil:
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		case []int:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		case []any:
			for _, item := range v {
				if item != nil {
					values.Add(key, fmt.Sprint(item))
				}
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}

	target.RawQuery = values.Encode()
	return target.String(), nil
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
