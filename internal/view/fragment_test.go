package view

import (
	"testing"

	"github.com/kitbuilder587/wikiseek/internal/domain"
)

func TestBuildResults(t *testing.T) {
	outcome := domain.Outcome{
		Kind:  domain.OutcomeResults,
		Hits:  500,
		Query: "cat",
		Articles: []domain.Article{
			{Title: "Cat", Snippet: "A cat is...", WordCount: 1200},
			{Title: "Domestic cat", Snippet: "kept as a pet", WordCount: 900},
		},
	}

	frag := BuildResults(outcome)

	if frag.Summary != `Showing 2 of 500 hits for "cat"` {
		t.Errorf("Summary = %q", frag.Summary)
	}
	if len(frag.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(frag.Entries))
	}

	first := frag.Entries[0]
	if first.Kind != EntryArticle {
		t.Errorf("Kind = %v, want article", first.Kind)
	}
	if first.LinkURL != "https://en.wikipedia.org/wiki/Cat" {
		t.Errorf("LinkURL = %q", first.LinkURL)
	}
	if first.Requery != "Cat" {
		t.Errorf("Requery = %q, want article title", first.Requery)
	}
	if first.WordCount != 1200 {
		t.Errorf("WordCount = %d", first.WordCount)
	}

	if frag.Entries[1].LinkURL != "https://en.wikipedia.org/wiki/Domestic_cat" {
		t.Errorf("spaced title link = %q", frag.Entries[1].LinkURL)
	}
}

func TestBuildResults_SnippetUntouched(t *testing.T) {
	snippet := `A <span class="searchmatch">cat</span> is a small animal`
	frag := BuildResults(domain.Outcome{
		Kind:     domain.OutcomeResults,
		Hits:     1,
		Query:    "cat",
		Articles: []domain.Article{{Title: "Cat", Snippet: snippet}},
	})

	if frag.Entries[0].Snippet != snippet {
		t.Errorf("Snippet = %q, want source markup preserved", frag.Entries[0].Snippet)
	}
}

func TestBuildSuggestion(t *testing.T) {
	frag := BuildSuggestion("asdf")

	if frag.Summary != "" {
		t.Errorf("Summary = %q, want empty", frag.Summary)
	}
	if len(frag.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(frag.Entries))
	}
	entry := frag.Entries[0]
	if entry.Kind != EntrySuggestion {
		t.Errorf("Kind = %v, want suggestion", entry.Kind)
	}
	if entry.Requery != "asdf" {
		t.Errorf("Requery = %q, want suggested query", entry.Requery)
	}
	if entry.Title != `Did you mean "asdf"?` {
		t.Errorf("Title = %q", entry.Title)
	}
}
