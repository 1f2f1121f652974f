package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that serves GET and POST responses from
// the cache. It slots under any client, including the typed GitHub client.
type Transport struct {
	Base  http.RoundTripper
	Cache *Cache
}

// NewTransport wraps base with response caching. A nil base falls back to
// http.DefaultTransport.
func NewTransport(cache *Cache, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Cache: cache}
}

// RoundTrip implements http.RoundTripper. Only 200 responses are cached;
// everything else passes through untouched.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Cache == nil || (req.Method != http.MethodGet && req.Method != http.MethodPost) {
		return t.Base.RoundTrip(req)
	}

	url := req.URL.String()

	var reqBody []byte
	if req.Body != nil {
		var err error
		reqBody, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	if data, found := t.Cache.Get(url, reqBody); found {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(bytes.NewReader(data)),
			Header:     make(http.Header),
			Request:    req,
		}
		resp.Header.Set("X-From-Cache", "true")
		return resp, nil
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}
		t.Cache.Set(url, reqBody, body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	return resp, nil
}
