package domain

import "strings"

const articleBaseURL = "https://en.wikipedia.org/wiki/"

// Article is one matched item returned by the search endpoint. Snippet
// may carry inline markup from the remote service and is kept verbatim;
// the presentation layer decides how to display it.
type Article struct {
	Title     string
	Snippet   string
	WordCount int
}

// URL derives the canonical article link from the title, with spaces
// turned into the path separator Wikipedia uses.
func (a Article) URL() string {
	return articleBaseURL + strings.ReplaceAll(a.Title, " ", "_")
}

// SearchResponse is the raw payload of one search call: the total hit
// count, the matched articles in the order the service returned them,
// and an optional suggested query (meaningful only when Articles is
// empty).
type SearchResponse struct {
	TotalHits  int
	Suggestion string
	Articles   []Article
}
