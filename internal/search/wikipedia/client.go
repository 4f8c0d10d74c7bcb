package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/wikiseek/internal/domain"
	"github.com/kitbuilder587/wikiseek/internal/search"
)

type Config struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

// Client queries the MediaWiki full-text search API with a single GET
// per Search call.
type Client struct {
	baseURL string
	limit   int
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://en.wikipedia.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Wire shape of action=query&list=search. Pointers distinguish a
// missing field from an empty one: absent searchinfo or search means
// the payload is malformed, not that nothing matched.
type apiResponse struct {
	Query *struct {
		SearchInfo *apiSearchInfo `json:"searchinfo"`
		Search     *[]apiResult   `json:"search"`
	} `json:"query"`
}

type apiSearchInfo struct {
	TotalHits  int    `json:"totalhits"`
	Suggestion string `json:"suggestion"`
}

type apiResult struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	WordCount int    `json:"wordcount"`
}

func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("origin", "*")
	params.Set("list", "search")
	params.Set("format", "json")
	params.Set("srsearch", query)
	if c.limit > 0 {
		params.Set("srlimit", fmt.Sprintf("%d", c.limit))
	}

	reqURL := c.baseURL + "/w/api.php?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", search.ErrBadStatus, resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	if apiResp.Query == nil || apiResp.Query.SearchInfo == nil || apiResp.Query.Search == nil {
		return nil, fmt.Errorf("%w: missing query fields", search.ErrMalformedResponse)
	}

	c.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("totalhits", apiResp.Query.SearchInfo.TotalHits),
		zap.Duration("elapsed", time.Since(start)),
	)

	return toSearchResponse(&apiResp), nil
}

func toSearchResponse(resp *apiResponse) *domain.SearchResponse {
	results := *resp.Query.Search
	articles := make([]domain.Article, len(results))
	for i, r := range results {
		articles[i] = domain.Article{
			Title:     r.Title,
			Snippet:   r.Snippet,
			WordCount: r.WordCount,
		}
	}

	return &domain.SearchResponse{
		TotalHits:  resp.Query.SearchInfo.TotalHits,
		Suggestion: resp.Query.SearchInfo.Suggestion,
		Articles:   articles,
	}
}
