package mock

import (
	"sync"

	"github.com/kitbuilder587/wikiseek/internal/view"
)

// View is a recording fake for view.View. It tracks visible state and
// call counts so controller tests can assert on exactly what was
// written to the surface.
type View struct {
	mu sync.Mutex

	Frag       view.Fragment
	HasResults bool

	AlertText    string
	AlertVisible bool
	AlertsShown  []string

	NewSearchVisible bool
	Input            string

	SetResultsCalls   int
	ClearResultsCalls int
	RemoveAlertCalls  int
	FocusCalls        int
	BusyCalls         int
}

func New() *View {
	return &View{}
}

func (v *View) SetResults(frag view.Fragment) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Frag = frag
	v.HasResults = true
	v.SetResultsCalls++
}

func (v *View) ClearResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Frag = view.Fragment{}
	v.HasResults = false
	v.ClearResultsCalls++
}

func (v *View) ShowAlert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.AlertText = message
	v.AlertVisible = true
	v.AlertsShown = append(v.AlertsShown, message)
}

func (v *View) RemoveAlert() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.AlertText = ""
	v.AlertVisible = false
	v.RemoveAlertCalls++
}

func (v *View) SetNewSearchVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.NewSearchVisible = visible
}

func (v *View) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Input = text
}

func (v *View) InputText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Input
}

func (v *View) ClearInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Input = ""
}

func (v *View) FocusInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.FocusCalls++
}

func (v *View) IndicateBusy() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.BusyCalls++
}

// Snapshot returns the currently visible state under one lock hold.
func (v *View) Snapshot() (alert string, alertVisible, hasResults, newSearch bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.AlertText, v.AlertVisible, v.HasResults, v.NewSearchVisible
}
