package api

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"dota-scout/internal/constants"

	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp"
)

const (
	ProviderOpenDota  = "opendota"
	ProviderStratz    = "stratz"
	ProviderConstants = "dotaconstants"
)

// CaptureFunc receives a copy of every successfully decoded payload. It runs
// on its own goroutine, off the request path.
type CaptureFunc func(provider, path string, payload []byte)

type RateLimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	UpdatedAt time.Time `json:"updated_at"`
}

// httpClient is the piece shared by all provider clients: fasthttp transport,
// circuit breaker, rate-limit header tracking and the optional capture hook.
type httpClient struct {
	provider  string
	baseURL   string
	headers   map[string]string
	client    *fasthttp.Client
	breaker   *gobreaker.CircuitBreaker
	capture   CaptureFunc
	rateMu    sync.RWMutex
	rateLimit RateLimitInfo
}

func newHTTPClient(provider, baseURL string, headers map[string]string) *httpClient {
	return &httpClient{
		provider: provider,
		baseURL:  baseURL,
		headers:  headers,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     provider,
			Interval: constants.BreakerOpenInterval,
			Timeout:  constants.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= constants.BreakerMaxFailures
			},
		}),
	}
}

// SetCaptureHook installs the fixture side-channel. Must be called before the
// client serves requests.
func (c *httpClient) SetCaptureHook(fn CaptureFunc) {
	c.capture = fn
}

func (c *httpClient) RateLimit() RateLimitInfo {
	c.rateMu.RLock()
	defer c.rateMu.RUnlock()
	return c.rateLimit
}

func (c *httpClient) updateRateLimit(resp *fasthttp.Response) {
	limit := string(resp.Header.Peek("X-Rate-Limit-Limit-Minute"))
	remaining := string(resp.Header.Peek("X-Rate-Limit-Remaining-Minute"))
	if limit == "" && remaining == "" {
		return
	}

	c.rateMu.Lock()
	defer c.rateMu.Unlock()
	if val, err := strconv.Atoi(limit); err == nil {
		c.rateLimit.Limit = val
	}
	if val, err := strconv.Atoi(remaining); err == nil {
		c.rateLimit.Remaining = val
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func doRequest[T any](ctx context.Context, c *httpClient, path string) (*T, error) {
	body, err := c.fetchRaw(ctx, path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UpstreamError{Kind: ErrUnknown, Provider: c.provider, Path: path, Err: err}
	}

	if c.capture != nil {
		payload := make([]byte, len(body))
		copy(payload, body)
		go c.capture(c.provider, path, payload)
	}

	return &result, nil
}

type breakerResult struct {
	body []byte
	err  error
}

func (c *httpClient) fetchRaw(ctx context.Context, path string) ([]byte, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		body, err := c.do(ctx, path)
		if err != nil {
			// NotFound and RateLimited are answers, not outages; they must
			// not trip the breaker.
			if k := KindOf(err); k == ErrNotFound || k == ErrRateLimited {
				return breakerResult{err: err}, nil
			}
			return nil, err
		}
		return breakerResult{body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &UpstreamError{Kind: ErrNetwork, Provider: c.provider, Path: path, Err: err}
		}
		return nil, err
	}
	br := res.(breakerResult)
	if br.err != nil {
		return nil, br.err
	}
	return br.body, nil
}

func (c *httpClient) do(ctx context.Context, path string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		err := c.client.DoDeadline(req, resp, deadline)
		if err != nil {
			return nil, &UpstreamError{Kind: ErrNetwork, Provider: c.provider, Path: path, Err: err}
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, &UpstreamError{Kind: ErrNetwork, Provider: c.provider, Path: path, Err: err}
		}
	}

	c.updateRateLimit(resp)

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
	case status == fasthttp.StatusNotFound:
		return nil, &UpstreamError{Kind: ErrNotFound, Provider: c.provider, Path: path, StatusCode: status}
	case status == fasthttp.StatusTooManyRequests:
		return nil, &UpstreamError{Kind: ErrRateLimited, Provider: c.provider, Path: path, StatusCode: status}
	default:
		return nil, &UpstreamError{Kind: ErrUnknown, Provider: c.provider, Path: path, StatusCode: status}
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
