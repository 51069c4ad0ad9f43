// Package client forwards gateway requests to the business server.
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
	"strings"

	"github.com/ds-skoropad/java-shareit/util/httpx"
)

// HeaderUserID matches the header the server expects.
const HeaderUserID = "X-Sharer-User-Id"

// Response is the server's reply, relayed to the caller as-is.
type Response struct {
	Status int
	Body   []byte
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpx.Client(),
	}
}

// Do sends one request to the server. A userID of 0 omits the identity
// header; query and body may be nil.
func (c *Client) Do(ctx context.Context, method, path string, userID int64, query url.Values, body any) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if userID > 0 {
		req.Header.Set(HeaderUserID, strconv.FormatInt(userID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: out}, nil
}
