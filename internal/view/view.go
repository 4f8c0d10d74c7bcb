// Package view defines the display boundary of the search client: an
// injected handle for the concrete surface plus the off-tree fragment
// description the render controller assembles before writing.
package view

// View is the handle to one user's display surface. It is constructed
// once per session and passed to the controller, which is its only
// caller. Implementations hold no rendering policy; they just enact
// state.
type View interface {
	// SetResults replaces the whole result area with the fragment in
	// one batch write. No partially rendered intermediate state may be
	// observable.
	SetResults(frag Fragment)

	// ClearResults empties the result area. Clearing an already empty
	// area must be a no-op.
	ClearResults()

	// ShowAlert attaches a transient notice immediately above the
	// input control. RemoveAlert detaches it; removing an absent alert
	// must be a no-op.
	ShowAlert(message string)
	RemoveAlert()

	SetNewSearchVisible(visible bool)

	// Input control access. InputText returns the current raw value.
	SetInput(text string)
	InputText() string
	ClearInput()
	FocusInput()

	// IndicateBusy signals a cycle in flight. Best effort; it carries
	// no state the controller depends on.
	IndicateBusy()
}

// EntryKind distinguishes the two clickable entry shapes.
type EntryKind string

const (
	EntryArticle    EntryKind = "article"
	EntrySuggestion EntryKind = "suggestion"
)

// Entry is one rendered item. Requery is the query text its "search
// again" affordance submits when activated.
type Entry struct {
	Kind      EntryKind
	Title     string
	LinkURL   string
	Snippet   string
	WordCount int
	Requery   string
}

// Fragment describes the full content of the result area for one
// render: an optional summary line followed by entries in order.
type Fragment struct {
	Summary string
	Entries []Entry
}
