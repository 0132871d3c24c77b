package client

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// Client talks to a contentkit server.
type Client struct {
	Receipts ReceiptService

	Chunks   ChunkService
	Searches SearchService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Receipts: NewReceiptService(opts...),

		Chunks:   NewChunkService(opts...),
		Searches: NewSearchService(opts...),
	}
}

type RequestConfig struct {
	URL   string
	Token string

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = strings.TrimRight(url, "/")
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) do(req *http.Request) (*http.Response, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		if msg := strings.TrimSpace(string(data)); msg != "" {
			return nil, errors.New(resp.Status + ": " + msg)
		}

		return nil, errors.New(resp.Status)
	}

	return resp, nil
}

func Ptr[T any](v T) *T {
	return &v
}
