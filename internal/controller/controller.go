// Package controller runs the search cycle and owns the transient view
// state: alert visibility, result area content, and the "new search"
// affordance. It is the only writer to the injected view handle.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/wikiseek/internal/domain"
	"github.com/kitbuilder587/wikiseek/internal/metrics"
	"github.com/kitbuilder587/wikiseek/internal/search"
	"github.com/kitbuilder587/wikiseek/internal/view"
)

const (
	DefaultAlertTTL = 2500 * time.Millisecond

	msgEmptyQuery   = "Please enter a search query"
	msgSearchFailed = "Something went wrong. Try another search."
)

type Config struct {
	AlertTTL time.Duration
}

// Controller drives one user's display. View state is mutex-guarded:
// cycles run on their own goroutines and the alert timer fires
// asynchronously.
type Controller struct {
	view     view.View
	client   search.Client
	logger   *zap.Logger
	metrics  *metrics.Metrics
	alertTTL time.Duration

	mu             sync.Mutex
	alertShowing   bool
	alertGen       int
	alertTimer     *time.Timer
	hasResults     bool
	newSearchShown bool
	seq            uint64
}

func New(v view.View, client search.Client, logger *zap.Logger, m *metrics.Metrics, cfg Config) *Controller {
	if cfg.AlertTTL <= 0 {
		cfg.AlertTTL = DefaultAlertTTL
	}

	return &Controller{
		view:     v,
		client:   client,
		logger:   logger,
		metrics:  m,
		alertTTL: cfg.AlertTTL,
	}
}

// Submit runs one full cycle for the raw input: validate, search,
// classify, render. Every failure path ends in an alert; nothing
// propagates to the caller.
func (c *Controller) Submit(ctx context.Context, raw string) {
	query, err := domain.ValidateQuery(raw)
	if err != nil {
		c.logger.Debug("query rejected", zap.Error(err))
		c.recordCycle("rejected")
		c.ShowAlert(msgEmptyQuery)
		return
	}

	c.view.IndicateBusy()
	if c.metrics != nil {
		c.metrics.IncCyclesInFlight()
		defer c.metrics.DecCyclesInFlight()
	}

	// Overlapping submits race at the network boundary. Each submit
	// takes a fresh sequence number and only the latest issued one is
	// allowed to render, so a slow early response never overwrites a
	// later one.
	c.mu.Lock()
	c.seq++
	id := c.seq
	c.mu.Unlock()

	start := time.Now()
	resp, err := c.client.Search(ctx, query)
	elapsed := time.Since(start)

	c.mu.Lock()
	stale := id != c.seq
	c.mu.Unlock()
	if stale {
		c.logger.Debug("discarding stale response",
			zap.String("query", query),
			zap.Uint64("seq", id),
		)
		c.recordCycle("stale")
		return
	}

	if err != nil {
		c.logger.Warn("search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		if c.metrics != nil {
			c.metrics.RecordSearchRequest("error", elapsed)
		}
		c.recordCycle("error")
		c.ShowAlert(msgSearchFailed)
		return
	}

	if c.metrics != nil {
		c.metrics.RecordSearchRequest("ok", elapsed)
	}

	outcome := domain.Classify(resp, query)
	c.recordCycle(string(outcome.Kind))
	c.renderOutcome(outcome)
}

// Requery re-runs the cycle with the query text an entry's "search
// again" affordance carries. Submitting text identical to the current
// trimmed input is a deliberate no-op: no second identical request.
func (c *Controller) Requery(ctx context.Context, text string) {
	if strings.TrimSpace(c.view.InputText()) == text {
		c.logger.Debug("requery skipped, query unchanged", zap.String("query", text))
		return
	}

	c.view.SetInput(text)
	c.Submit(ctx, text)
}

// Reset returns the display to its initial state: empty result area,
// hidden "new search" affordance, cleared and focused input. Safe to
// call when already idle; an idle view sees no visible-state writes.
func (c *Controller) Reset() {
	c.clearResults()
	c.view.ClearInput()
	c.view.FocusInput()
}

// ShowAlert displays a transient notice for the configured TTL. At
// most one alert is visible at a time; a call while one is showing is
// a no-op (first alert wins). Dismissal is generation-guarded so a
// stale timer never removes a later alert.
func (c *Controller) ShowAlert(message string) {
	c.mu.Lock()
	if c.alertShowing {
		c.mu.Unlock()
		return
	}
	c.alertShowing = true
	c.alertGen++
	gen := c.alertGen
	c.mu.Unlock()

	c.view.ShowAlert(message)
	if c.metrics != nil {
		c.metrics.RecordAlert()
	}

	timer := time.AfterFunc(c.alertTTL, func() {
		c.dismissAlert(gen)
	})

	c.mu.Lock()
	c.alertTimer = timer
	c.mu.Unlock()
}

func (c *Controller) dismissAlert(gen int) {
	c.mu.Lock()
	if !c.alertShowing || gen != c.alertGen {
		c.mu.Unlock()
		return
	}
	c.alertShowing = false
	c.alertTimer = nil
	c.mu.Unlock()

	c.view.RemoveAlert()
}

func (c *Controller) renderOutcome(o domain.Outcome) {
	switch o.Kind {
	case domain.OutcomeResults:
		c.applyFragment(view.BuildResults(o))
	case domain.OutcomeSuggestion:
		c.applyFragment(view.BuildSuggestion(o.Suggestion))
	case domain.OutcomeEmpty:
		c.clearResults()
		c.ShowAlert(fmt.Sprintf("No results for %q", o.Query))
	}
}

// applyFragment replaces the result area in one batch write and makes
// the "new search" affordance visible after the first non-empty render.
func (c *Controller) applyFragment(frag view.Fragment) {
	c.view.SetResults(frag)

	c.mu.Lock()
	c.hasResults = true
	show := !c.newSearchShown
	c.newSearchShown = true
	c.mu.Unlock()

	if show {
		c.view.SetNewSearchVisible(true)
	}
}

// clearResults empties the result area and hides the "new search"
// affordance, touching the view only when something is actually shown.
func (c *Controller) clearResults() {
	c.mu.Lock()
	hadResults := c.hasResults
	hadNewSearch := c.newSearchShown
	c.hasResults = false
	c.newSearchShown = false
	c.mu.Unlock()

	if hadResults {
		c.view.ClearResults()
	}
	if hadNewSearch {
		c.view.SetNewSearchVisible(false)
	}
}

func (c *Controller) recordCycle(outcome string) {
	if c.metrics != nil {
		c.metrics.RecordCycle(outcome)
	}
}
