// Package client calls the advocates query endpoint over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"advocates/internal/domain"
)

// Client is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client without a request timeout; callers bound requests
// through the context they pass.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// SearchURL is the request key for one (query, page, pageSize) tuple.
func (c *Client) SearchURL(req domain.QueryRequest) string {
	v := url.Values{}
	v.Set(domain.QueryParamSearch, req.Query)
	v.Set(domain.QueryParamPage, strconv.Itoa(req.Page))
	v.Set(domain.QueryParamPageSize, strconv.Itoa(req.PageSize))
	return c.BaseURL + "/api/advocates?" + v.Encode()
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("Request failed: %d", e.StatusCode)
}

// SearchAdvocates fetches one page. Cancelling ctx aborts the request and
// yields an error wrapping context.Canceled.
func (c *Client) SearchAdvocates(ctx context.Context, req domain.QueryRequest) (domain.AdvocatePage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(req), nil)
	if err != nil {
		return domain.AdvocatePage{}, err
	}
	httpReq.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return domain.AdvocatePage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.AdvocatePage{}, StatusError{StatusCode: resp.StatusCode}
	}

	var page domain.AdvocatePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return domain.AdvocatePage{}, fmt.Errorf("decode advocates response: %w", err)
	}
	return page, nil
}
