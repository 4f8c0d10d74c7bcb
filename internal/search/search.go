package search

import (
	"context"
	"errors"

	"github.com/kitbuilder587/wikiseek/internal/domain"
)

var (
	ErrRequestFailed     = errors.New("search request failed")
	ErrBadStatus         = errors.New("unexpected status code")
	ErrMalformedResponse = errors.New("malformed search response")
)

// Client issues one remote search per call. Implementations must not
// retry: a failed call surfaces exactly one error and the caller
// decides what the user sees.
type Client interface {
	Search(ctx context.Context, query string) (*domain.SearchResponse, error)
}
