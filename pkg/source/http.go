package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/prospect/pkg/buildinfo"
	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/observability"
)

const (
	// maxBodySize bounds graph descriptions.
	maxBodySize = 32 << 20
	// maxErrorBodySize bounds the part of an error response kept in a FetchError.
	maxErrorBodySize = 4 << 10
)

// HTTPSource fetches graph descriptions from a server that publishes them
// under <base>/trials/<id>/prospective.dot.
//
// The source sets no timeout of its own; use the context or
// [WithHTTPClient] to bound requests.
type HTTPSource struct {
	base    *url.URL
	http    *http.Client
	headers map[string]string
}

// HTTPOption configures an [HTTPSource].
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.http = c
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPSource) {
		s.headers[key] = value
	}
}

// NewHTTPSource returns a source rooted at baseURL, which must be an http or
// https URL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid base URL")
	}

	s := &HTTPSource{
		base:    base,
		http:    &http.Client{},
		headers: map[string]string{"User-Agent": buildinfo.UserAgent()},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// URL returns the absolute fetch URL of a trial.
func (s *HTTPSource) URL(trialID string) string {
	return s.base.JoinPath("trials", trialID, FileName).String()
}

// Fetch performs a GET of the trial's graph description. A 2xx response body
// is returned as is. Any other status yields a *errors.FetchError carrying the
// status and the response body; a transport failure yields one with status 0.
func (s *HTTPSource) Fetch(ctx context.Context, trialID string) (string, error) {
	if err := errors.ValidateTrialID(trialID); err != nil {
		return "", err
	}
	target := s.URL(trialID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &errors.FetchError{URL: target, Cause: err}
	}
	req.Header.Set("Accept", "text/vnd.graphviz, text/plain;q=0.9, */*;q=0.1")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, reqPath := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, reqPath)
	start := time.Now()

	resp, err := s.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, reqPath, err)
		return "", &errors.FetchError{URL: target, Cause: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, reqPath, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", &errors.FetchError{URL: target, Status: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &errors.FetchError{URL: target, Status: resp.StatusCode, Cause: err}
	}
	return string(body), nil
}

var _ Source = (*HTTPSource)(nil)
