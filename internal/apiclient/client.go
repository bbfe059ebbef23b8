// Package apiclient is the transport boundary to the remote beer service.
//
// Every call sends JSON, treats any non-2xx status as a failure carrying the
// remote "detail" message, and resolves 204 to the zero value of the declared
// result type. Calls are attempted exactly once.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/patterns"
)

// RequestIDHeader correlates console logs with remote logs.
const RequestIDHeader = "X-Request-ID"

// DefaultBaseURL is where the remote beer service listens in development.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// Doer performs one remote call, decoding a successful body into out.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds each call; zero leaves calls unbounded.
	Timeout time.Duration
	// CircuitBreaker fails calls fast while the remote collaborator keeps failing.
	CircuitBreaker bool
}

// Client talks JSON to the remote beer service.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	breaker *patterns.CircuitBreakerWrapper
}

// New creates a Client for cfg.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetRetryCount(0), // each call completes or fails once
		timeout: cfg.Timeout,
	}
	if cfg.CircuitBreaker {
		c.breaker = patterns.NewCircuitBreaker("BeerService", "console", countsAsFailure)
	}
	return c
}

// CircuitState reports the breaker state, or "disabled".
func (c *Client) CircuitState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.GetState()
}

// Do sends one request. body, when non-nil, is sent as JSON. out, when non-nil,
// receives the decoded response; it is left untouched on 204 or an empty body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := patterns.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuid.NewString()
	start := time.Now()

	var resp *resty.Response
	call := func() error {
		req := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetHeader(RequestIDHeader, requestID)

		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return apperr.Transport(err)
			}
			req.SetBody(payload)
		}

		r, err := req.Execute(method, path)
		if err != nil {
			return apperr.Transport(err)
		}
		resp = r

		if r.StatusCode() < 200 || r.StatusCode() > 299 {
			return remoteError(r)
		}
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
		if errors.Is(err, patterns.ErrCircuitOpen) {
			err = apperr.Transport(err)
		}
	} else {
		err = call()
	}

	if err == nil {
		err = decode(resp, out)
	}

	c.record(method, path, requestID, resp, time.Since(start), err)
	return err
}

func (c *Client) record(method, path, requestID string, resp *resty.Response, elapsed time.Duration, err error) {
	resource := resourceOf(path)
	status := "none"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	metrics.RemoteRequestsTotal.WithLabelValues(method, resource, status).Inc()
	metrics.RemoteRequestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())

	entry := log.WithFields(log.Fields{
		"method":      method,
		"path":        path,
		"request_id":  requestID,
		"duration_ms": elapsed.Milliseconds(),
	})
	if resp != nil {
		entry = entry.WithField("status", resp.StatusCode())
	}
	if err != nil {
		entry.WithError(err).Warn("Remote call failed")
		return
	}
	entry.Debug("Remote call completed")
}

func remoteError(r *resty.Response) error {
	var problem struct {
		Detail string `json:"detail"`
	}
	// A body that is not a problem document still yields a status message.
	_ = json.Unmarshal(r.Body(), &problem)
	return apperr.Remote(r.StatusCode(), problem.Detail)
}

func decode(r *resty.Response, out any) error {
	if out == nil || r == nil {
		return nil
	}
	if r.StatusCode() == http.StatusNoContent || len(strings.TrimSpace(string(r.Body()))) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body(), out); err != nil {
		return apperr.Transport(err)
	}
	return nil
}

// countsAsFailure keeps remote rejections of bad input from opening the breaker.
func countsAsFailure(err error) bool {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Kind == apperr.KindTransport || e.Status >= http.StatusInternalServerError
}

// resourceOf returns the first path segment, e.g. "beer-orders" for
// "/beer-orders/4/status?x=y".
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
