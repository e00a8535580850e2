package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client is a thin HTTP client for the backend REST API. All frontend
// traffic to the backend goes through it so the base URL, JSON headers and
// error-envelope handling live in one place.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient overrides the underlying http.Client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins an endpoint (with optional query values) onto the base URL.
func (c *Client) URL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do issues a JSON request against the backend. body may be nil; extra
// headers override the defaults.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body any, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[api Do] encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint, query), reader)
	if err != nil {
		return nil, fmt.Errorf("[api Do] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.httpClient.Do(req)
}

// FetchData performs a backend call and decodes the response envelope.
// Non-OK responses are mapped to an error Result: a JSON body with the
// backend's { success:false, code, errors } shape is passed through, any
// other body becomes HTTP_<status>. Network and decode failures collapse to
// FETCH_ERROR. FetchData never returns a Go error to the caller.
func FetchData[T any](ctx context.Context, c *Client, method, endpoint string, query url.Values, body any) Result[T] {
	resp, err := c.Do(ctx, method, endpoint, query, body, nil)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("api fetch failed")
		return Err[T](CodeFetchError)
	}
	defer resp.Body.Close()

	return DecodeResponse[T](endpoint, resp)
}

// DecodeResponse turns an already-obtained backend response into a Result.
func DecodeResponse[T any](endpoint string, resp *http.Response) Result[T] {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result := Err[T](fmt.Sprintf("HTTP_%d", resp.StatusCode))
		if isJSON(resp) {
			var env envelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Code != "" {
				result.Code = env.Code
				result.Errors = env.Errors
			}
		}
		log.Error().Str("endpoint", endpoint).Int("status", resp.StatusCode).Str("code", result.Code).Msg("api error response")
		return result
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("api decode failed")
		return Err[T](CodeFetchError)
	}

	result := Result[T]{Ok: true, Code: env.Code}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result.Data); err != nil {
			log.Error().Err(err).Str("endpoint", endpoint).Msg("api data decode failed")
			return Err[T](CodeFetchError)
		}
	}
	return result
}

func isJSON(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}
