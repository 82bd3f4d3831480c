// app/gateway/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"shareit/app/identity"
	"shareit/util/httpx"
)

// Response is the server's answer, relayed to the caller unchanged.
type Response struct {
	Status int
	Body   []byte
}

// Client forwards validated requests to the ShareIt server, carrying the
// caller identity header through.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{base: baseURL, http: httpx.Client()}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, userID int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, userID, nil)
}

func (c *Client) Post(ctx context.Context, path string, userID int64, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, userID, body)
}

func (c *Client) Patch(ctx context.Context, path string, query url.Values, userID int64, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, query, userID, body)
}

func (c *Client) Delete(ctx context.Context, path string, userID int64) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, userID, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, userID int64, body any) (*Response, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(identity.Header, strconv.FormatInt(userID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: b}, nil
}
