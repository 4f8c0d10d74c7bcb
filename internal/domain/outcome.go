package domain

// OutcomeKind tags the classification of one search response.
type OutcomeKind string

const (
	OutcomeResults    OutcomeKind = "results"
	OutcomeSuggestion OutcomeKind = "suggestion"
	OutcomeEmpty      OutcomeKind = "empty"
)

// Outcome is the classified result of one search cycle. Exactly one
// kind is set; fields carry data only for their kind:
//   - results:    Hits, Query, Articles
//   - suggestion: Suggestion
//   - empty:      Query
type Outcome struct {
	Kind       OutcomeKind
	Hits       int
	Query      string
	Articles   []Article
	Suggestion string
}

// Classify maps a well-formed search response to exactly one outcome.
// Articles win over a suggestion, a suggestion wins over empty. The
// article order is the service's ranking and is preserved as-is.
func Classify(resp *SearchResponse, query string) Outcome {
	if len(resp.Articles) > 0 {
		return Outcome{
			Kind:     OutcomeResults,
			Hits:     resp.TotalHits,
			Query:    query,
			Articles: resp.Articles,
		}
	}

	if resp.Suggestion != "" {
		return Outcome{
			Kind:       OutcomeSuggestion,
			Suggestion: resp.Suggestion,
		}
	}

	return Outcome{
		Kind:  OutcomeEmpty,
		Query: query,
	}
}
