package view

import (
	"fmt"

	"github.com/kitbuilder587/wikiseek/internal/domain"
)

// BuildResults assembles the fragment for a results outcome: summary
// line plus one article entry per hit, in the order the service ranked
// them. Snippets are passed through untouched.
func BuildResults(o domain.Outcome) Fragment {
	frag := Fragment{
		Summary: fmt.Sprintf("Showing %d of %d hits for %q", len(o.Articles), o.Hits, o.Query),
		Entries: make([]Entry, len(o.Articles)),
	}

	for i, a := range o.Articles {
		frag.Entries[i] = Entry{
			Kind:      EntryArticle,
			Title:     a.Title,
			LinkURL:   a.URL(),
			Snippet:   a.Snippet,
			WordCount: a.WordCount,
			Requery:   a.Title,
		}
	}

	return frag
}

// BuildSuggestion assembles the single-entry fragment offering the
// suggested query.
func BuildSuggestion(suggested string) Fragment {
	return Fragment{
		Entries: []Entry{{
			Kind:    EntrySuggestion,
			Title:   fmt.Sprintf("Did you mean %q?", suggested),
			Requery: suggested,
		}},
	}
}
