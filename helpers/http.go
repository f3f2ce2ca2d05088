package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"jpdiet/kokkaiharvester/config"
)

// Client wraps a resty client with the per-source decoding this project needs.
// Upstream encodings (Shift-JIS, EUC-JP, UTF-8) are configured explicitly per
// source; auto-detection is unreliable for the legacy pages involved.
type Client struct {
	rest *resty.Client
}

// NewClient creates an HTTP client with timeout and bounded retry
func NewClient(cfg config.Config) *Client {
	rest := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Client{rest: rest}
}

// GetDecoded performs a GET request and returns the body as UTF-8 text.
// encodingName names the upstream encoding ("shift_jis", "euc-jp", "utf-8");
// an empty name means the body is already UTF-8.
func (c *Client) GetDecoded(ctx context.Context, url string, encodingName string, params map[string]string) (string, error) {
	body, err := c.get(ctx, url, params)
	if err != nil {
		return "", err
	}
	return DecodeBytes(body, encodingName)
}

// GetBytes performs a GET request and returns the raw body
func (c *Client) GetBytes(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	return c.get(ctx, url, params)
}

func (c *Client) get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	req := c.rest.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s: unexpected status code %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}

// DecodeBytes converts body from the named encoding to a UTF-8 string
func DecodeBytes(body []byte, encodingName string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	if name == "" || name == "utf-8" || name == "utf8" {
		return string(body), nil
	}

	enc, _ := charset.Lookup(name)
	if enc == nil {
		return "", fmt.Errorf("unsupported encoding: %s", encodingName)
	}

	decoded, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", encodingName, err)
	}
	return string(decoded), nil
}
