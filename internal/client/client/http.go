package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"reflect"
	"regexp"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/common"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// RequestOptions describes a single call. The zero value is a GET with no
// query, no extra headers and no body.
type RequestOptions struct {
	Method string
	// Query values that are nil (or nil pointers) are omitted.
	Query   map[string]any
	Headers map[string]string
	// Body is either a *Form (sent as multipart/form-data) or any value
	// that encoding/json can marshal.
	Body any
}

// HTTPClient performs one HTTP call per Request and translates the outcome
// into a *Payload or an error. It never retries and adds no timeout of its
// own; cancellation comes from the caller's context.
//
// Cookies are carried by the underlying http.Client's jar, which is how the
// backend session travels with every request.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	logger    logging.Logger
	userAgent string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the transport-level client. Its Jar, if any,
// stores the session cookies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// NewHTTPClient creates a client resolving relative paths against baseURL.
// By default it uses an in-memory cookie jar.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   baseURL,
		logger:    logging.Nop(),
		userAgent: common.UserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		c.http = &http.Client{Jar: jar}
	}
	return c
}

// BaseURL returns the configured base.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ResolveURL builds the final URL for path: absolute http(s) URLs are used
// as-is, anything else is appended to the base URL. Non-nil query values
// are set on the result, replacing same-named parameters.
func (c *HTTPClient) ResolveURL(path string, query map[string]any) (string, error) {
	raw := path
	if !absoluteURL.MatchString(path) {
		raw = c.baseURL + path
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("url %q is not absolute: base url must include scheme and host", raw)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			s, ok := queryValue(v)
			if !ok {
				continue
			}
			q.Set(k, s)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		v = rv.Elem().Interface()
	}
	return fmt.Sprint(v), true
}

// Request performs the call described by path and opts.
//
// A 2xx response yields a *Payload decoded per the declared content type
// (see ContentKind); 204 always yields an empty payload. Any other status
// yields an *APIError. Network and decode failures are returned unchanged.
func (c *HTTPClient) Request(ctx context.Context, path string, opts *RequestOptions) (*Payload, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	target, err := c.ResolveURL(path, opts.Query)
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := make(http.Header, len(opts.Headers)+2)
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	var body io.Reader
	if opts.Body != nil {
		switch b := opts.Body.(type) {
		case *Form:
			buf, ct, err := b.encode()
			if err != nil {
				return nil, err
			}
			// the boundary lives in the writer's content type
			headers.Set("Content-Type", ct)
			body = buf
		default:
			data, err := json.Marshal(b)
			if err != nil {
				return nil, fmt.Errorf("encode json body: %w", err)
			}
			if headers.Get("Content-Type") == "" {
				headers.Set("Content-Type", common.ContentTypeJSON)
			}
			body = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header = headers
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "http request failed", "method", method, "url", target, "request_id", requestID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "http request",
		"method", method, "url", target, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, target, readErrorPayload(resp.Body, contentType))
	}

	if resp.StatusCode == http.StatusNoContent {
		return &Payload{Kind: ContentEmpty, ContentType: contentType}, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	kind := kindOf(contentType)
	if kind == ContentJSON && !json.Valid(data) {
		return nil, fmt.Errorf("decode json response from %s: invalid json", target)
	}

	return &Payload{Kind: kind, ContentType: contentType, Data: data}, nil
}

// readErrorPayload parses a JSON error body. Any failure (non-JSON content
// type, read error, malformed document) results in nil.
func readErrorPayload(r io.Reader, contentType string) *APIErrorPayload {
	if !isJSONContentType(contentType) {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return parseErrorPayload(data)
}
