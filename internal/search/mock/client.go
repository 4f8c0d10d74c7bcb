package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/wikiseek/internal/domain"
)

// Client is a test double for search.Client with optional canned
// response, error, and artificial delay.
type Client struct {
	Response *domain.SearchResponse
	Error    error
	Delay    time.Duration

	CallCount  int
	LastQuery  string
	AllQueries []string

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResponse(resp *domain.SearchResponse) *Client {
	c.Response = resp
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastQuery = query
	c.AllQueries = append(c.AllQueries, query)
	delay := c.Delay
	err := c.Error
	resp := c.Response
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	if resp == nil {
		return &domain.SearchResponse{}, nil
	}
	return resp, nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastQuery = ""
	c.AllQueries = nil
}
