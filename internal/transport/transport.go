// Package transport issues the client's HTTP requests. The base
// transport normalizes every outcome into a Response regardless of
// status code; HTTP-level failures are data, not Go errors. Retry and
// auth-gate wrappers stack on top of it through the Doer interface.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"homequest-admin/pkg/logger"
	"homequest-admin/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Request describes one REST call. Body is JSON-encoded unless
// Multipart is set, in which case the request is sent as
// multipart/form-data.
type Request struct {
	Method    string
	Path      string
	Params    url.Values
	Body      any
	Multipart *Multipart
}

// Multipart holds form fields plus one file part. The file content is
// kept as bytes so a retried request can be rebuilt from scratch.
type Multipart struct {
	Fields    map[string]string
	FileField string
	FileName  string
	FileData  []byte
}

func (m *Multipart) encode() (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %v", k, err)
		}
	}
	if m.FileField != "" {
		part, err := w.CreateFormFile(m.FileField, m.FileName)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create file part: %v", err)
		}
		if _, err := part.Write(m.FileData); err != nil {
			return "", nil, fmt.Errorf("failed to write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize multipart body: %v", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// Response is the normalized outcome of one HTTP exchange. Data is the
// raw body for every status code; callers branch on Status.
type Response struct {
	Status int
	Data   json.RawMessage
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Doer executes one request. The base transport implements it, and so
// do the retry and auth-gate wrappers.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Transport is the base HTTP executor.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.httpClient = c }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(t *Transport) { t.log = l }
}

// WithRateLimit throttles outgoing requests client-side.
func WithRateLimit(rps float64, burst int) Option {
	return func(t *Transport) { t.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// New creates a base transport for the given API base URL.
func New(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Transport {
	t := &Transport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        logger.New(os.Stdout, logger.ERROR),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do executes the request and returns a Response for any HTTP status.
// It returns a Go error only for network-level failures (including
// context cancellation), which the retry wrapper interprets.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqURL := t.baseURL + req.Path
	if len(req.Params) > 0 {
		reqURL += "?" + req.Params.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Multipart != nil:
		ct, raw, err := req.Multipart.encode()
		if err != nil {
			return nil, err
		}
		contentType = ct
		body = bytes.NewReader(raw)
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		contentType = "application/json"
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := t.tokens.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	duration := time.Since(start)
	metrics.APIRequestDuration.WithLabelValues(req.Method, req.Path).Observe(duration.Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Method, req.Path, "error").Inc()
		t.log.Errorf("transport: %s %s failed: %v", req.Method, req.Path, err)
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Method, req.Path, "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	metrics.APIRequestsTotal.WithLabelValues(req.Method, req.Path, strconv.Itoa(httpResp.StatusCode)).Inc()
	t.log.Debugf("transport: %s %s -> %d (%s)", req.Method, req.Path, httpResp.StatusCode, duration)

	return &Response{Status: httpResp.StatusCode, Data: data}, nil
}
