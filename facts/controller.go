// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facts

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/danielhkuo/today-i-learned/category"
	"github.com/danielhkuo/today-i-learned/models"
	"github.com/danielhkuo/today-i-learned/store"
)

var (
	ErrUploadInFlight = errors.New("a fact is already being shared")
	ErrVoteInFlight   = errors.New("a vote on this fact is already being recorded")
	ErrFactNotFound   = errors.New("fact is not in the current list")
	ErrUnknownCounter = errors.New("unknown vote counter")
)

// State is a snapshot of everything a view needs to render
type State struct {
	Facts           []models.Fact
	IsLoading       bool
	CurrentCategory string
	ShowForm        bool
	Form            Form
	IsUploading     bool
	Updating        map[int64]bool
}

// Controller owns the list of facts shown to one visitor and every
// transition on it. Store calls run without the lock held; results are
// applied under the lock when they arrive.
type Controller struct {
	store store.Store
	log   *slog.Logger

	mu              sync.Mutex
	facts           []models.Fact
	isLoading       bool
	currentCategory string
	showForm        bool
	form            Form
	isUploading     bool
	updating        map[int64]bool
	alerts          []Alert
	fetchToken      uint64
}

func NewController(s store.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:           s,
		log:             logger,
		facts:           []models.Fact{},
		currentCategory: category.All,
		form:            NewForm(),
		updating:        make(map[int64]bool),
	}
}

// Load runs the initial fetch for the current category
func (c *Controller) Load(ctx context.Context) error {
	return c.fetch(ctx)
}

// Refresh re-runs the fetch for the current category
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// SetCategory switches the filter and refetches. Selecting the category
// already in effect is a no-op.
func (c *Controller) SetCategory(ctx context.Context, value string) error {
	if !category.IsFilter(value) {
		return ErrUnknownCategory
	}

	c.mu.Lock()
	if c.currentCategory == value {
		c.mu.Unlock()
		return nil
	}
	c.currentCategory = value
	c.mu.Unlock()

	return c.fetch(ctx)
}

// fetch replaces the list with the top facts of the current category.
// Only the most recently started fetch may apply its result; older
// responses are dropped without touching the list or the loading flag.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.fetchToken++
	token := c.fetchToken
	current := c.currentCategory
	c.isLoading = true
	c.mu.Unlock()

	q := store.Query{
		OrderBy:    models.Interesting,
		Descending: true,
		Limit:      models.FetchLimit,
	}
	if current != category.All {
		q.Category = current
	}

	rows, err := c.store.Select(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.fetchToken {
		c.log.Debug("discarding stale fetch", "category", current, "token", token, "latest", c.fetchToken)
		return nil
	}
	c.isLoading = false

	if err != nil {
		c.report(FetchFailed, err)
		return err
	}

	c.facts = rows
	c.log.Debug("facts loaded", "category", current, "count", len(rows))
	return nil
}

// SetShowForm opens or closes the form. Opening a closed form starts it
// from the defaults.
func (c *Controller) SetShowForm(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShowForm(show)
}

func (c *Controller) ToggleForm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShowForm(!c.showForm)
	return c.showForm
}

func (c *Controller) setShowForm(show bool) {
	if show && !c.showForm {
		c.form = NewForm()
	}
	c.showForm = show
}

// Submit validates the form and inserts it. On success the stored row is
// prepended to the list, the form is cleared and closed.
func (c *Controller) Submit(ctx context.Context, f Form) (models.Fact, error) {
	c.mu.Lock()
	if c.isUploading {
		c.mu.Unlock()
		return models.Fact{}, ErrUploadInFlight
	}
	c.form = f
	if err := f.Validate(); err != nil {
		c.mu.Unlock()
		return models.Fact{}, err
	}
	c.isUploading = true
	c.mu.Unlock()

	row, err := c.store.Insert(ctx, f.newFact())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.isUploading = false

	if err != nil {
		c.report(InsertFailed, err)
		return models.Fact{}, err
	}

	c.prepend(row)
	c.form = Form{}
	c.showForm = false
	c.log.Info("fact shared", "id", row.ID, "category", row.Category)
	return row, nil
}

// Vote increments one counter of a listed fact by writing the value the
// client saw plus one, then swaps in the row the store returns.
func (c *Controller) Vote(ctx context.Context, id int64, counter models.Counter) (models.Fact, error) {
	if counter.Field() == "" {
		return models.Fact{}, ErrUnknownCounter
	}

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return models.Fact{}, ErrFactNotFound
	}
	if c.updating[id] {
		c.mu.Unlock()
		return models.Fact{}, ErrVoteInFlight
	}
	next := counter.Of(c.facts[idx]) + 1
	c.updating[id] = true
	c.mu.Unlock()

	row, err := c.store.UpdateByID(ctx, id, store.Patch{Counter: counter, Value: next})

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.updating, id)

	if err != nil {
		c.report(UpdateFailed, err)
		return models.Fact{}, err
	}

	c.replace(id, row)
	c.log.Debug("vote recorded", "id", id, "counter", counter, "value", counter.Of(row))
	return row, nil
}

// State returns a copy safe to read without the lock
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	facts := make([]models.Fact, len(c.facts))
	copy(facts, c.facts)

	updating := make(map[int64]bool, len(c.updating))
	for id := range c.updating {
		updating[id] = true
	}

	return State{
		Facts:           facts,
		IsLoading:       c.isLoading,
		CurrentCategory: c.currentCategory,
		ShowForm:        c.showForm,
		Form:            c.form,
		IsUploading:     c.isUploading,
		Updating:        updating,
	}
}

// TakeAlerts drains the pending alerts, oldest first
func (c *Controller) TakeAlerts() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	alerts := c.alerts
	c.alerts = nil
	return alerts
}

// TakeAlert removes and returns the newest alert of kind, leaving alerts
// of other kinds queued
func (c *Controller) TakeAlert(kind AlertKind) (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.alerts) - 1; i >= 0; i-- {
		if c.alerts[i].Kind == kind {
			a := c.alerts[i]
			c.alerts = append(c.alerts[:i:i], c.alerts[i+1:]...)
			return a, true
		}
	}
	return Alert{}, false
}

func (c *Controller) report(kind AlertKind, err error) {
	c.log.Error("store request failed", "kind", kind, "error", err)
	if len(c.alerts) >= maxAlerts {
		c.alerts = c.alerts[1:]
	}
	c.alerts = append(c.alerts, Alert{Kind: kind, Message: kind.message(), Err: err})
}

func (c *Controller) indexOf(id int64) int {
	for i, f := range c.facts {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// prepend puts row at the front, dropping any copy a concurrent fetch
// already brought in
func (c *Controller) prepend(row models.Fact) {
	facts := make([]models.Fact, 0, len(c.facts)+1)
	facts = append(facts, row)
	for _, f := range c.facts {
		if f.ID != row.ID {
			facts = append(facts, f)
		}
	}
	c.facts = facts
}

// replace swaps the row in place. A row that left the list while the
// vote was in flight is not brought back.
func (c *Controller) replace(id int64, row models.Fact) {
	if idx := c.indexOf(id); idx >= 0 {
		c.facts[idx] = row
	}
}
