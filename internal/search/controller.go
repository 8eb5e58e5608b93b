// Package search turns keystrokes into a minimal, well-ordered stream of
// advocate queries and keeps the visible state tied to the latest one.
package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"advocates/internal/domain"
	"advocates/internal/domain/models"
)

// Fetcher performs one query. It must return promptly once ctx is cancelled.
type Fetcher interface {
	SearchAdvocates(ctx context.Context, req domain.QueryRequest) (domain.AdvocatePage, error)
}

// State is an immutable snapshot of the controller.
type State struct {
	// Version increases with every change; consumers drop snapshots older than the last seen.
	Version    uint64
	SearchText string
	Query      string
	Page       int
	PageSize   int
	Data       []models.Advocate
	Total      int64
	TotalPages int
	Loading    bool
	Err        string
}

func (s State) CanPrev() bool { return s.Page > 1 }

func (s State) CanNext() bool { return s.Page < s.TotalPages }

type Options struct {
	PageSize      int
	DebounceDelay time.Duration
	// OnChange receives every new snapshot, from whichever goroutine made the change.
	OnChange func(State)
}

// Controller owns the search UI state. Responses are applied only when their
// sequence number is still the latest issued, so a superseded request can
// never overwrite newer state regardless of arrival order.
type Controller struct {
	fetcher  Fetcher
	debounce *Debouncer
	onChange func(State)

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu       sync.Mutex
	state    State
	key      domain.QueryRequest
	issued   bool
	seq      uint64
	inflight context.CancelFunc
	closed   bool
}

func NewController(fetcher Fetcher, opts Options) *Controller {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultUIPageSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		fetcher:    fetcher,
		debounce:   NewDebouncer(opts.DebounceDelay),
		onChange:   opts.OnChange,
		baseCtx:    ctx,
		baseCancel: cancel,
		state: State{
			Page:       1,
			PageSize:   domain.ClampPageSize(pageSize),
			Data:       []models.Advocate{},
			TotalPages: 1,
		},
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start issues the request for the initial key.
func (c *Controller) Start() {
	c.update(func() bool { return c.refreshLocked() })
}

// SetSearchText records raw input and commits it after the debounce delay.
func (c *Controller) SetSearchText(text string) {
	c.update(func() bool {
		if c.state.SearchText == text {
			return false
		}
		c.state.SearchText = text
		return true
	})
	c.debounce.Debounce(func() {
		c.update(func() bool {
			c.state.Query = text
			c.state.Page = 1
			c.refreshLocked()
			return true
		})
	})
}

// Reset clears the search immediately, without waiting for the debounce.
func (c *Controller) Reset() {
	c.debounce.Cancel()
	c.update(func() bool {
		c.state.SearchText = ""
		c.state.Query = ""
		c.state.Page = 1
		c.refreshLocked()
		return true
	})
}

// NextPage advances while Page < TotalPages.
func (c *Controller) NextPage() {
	c.update(func() bool {
		if !c.state.CanNext() {
			return false
		}
		c.state.Page++
		return c.refreshLocked()
	})
}

// PrevPage steps back while Page > 1.
func (c *Controller) PrevPage() {
	c.update(func() bool {
		if !c.state.CanPrev() {
			return false
		}
		c.state.Page--
		return c.refreshLocked()
	})
}

// Close cancels the pending commit and the in-flight request, then waits for
// outstanding fetches to return.
func (c *Controller) Close() {
	c.debounce.Cancel()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.baseCancel()
	c.wg.Wait()
}

// update applies fn under the lock and publishes a snapshot if fn changed anything.
func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	if c.closed || !fn() {
		c.mu.Unlock()
		return
	}
	c.state.Version++
	snap := c.state
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(snap)
	}
}

// refreshLocked starts a request when the (query, page, pageSize) key changed.
func (c *Controller) refreshLocked() bool {
	key := domain.QueryRequest{Query: c.state.Query, Page: c.state.Page, PageSize: c.state.PageSize}
	if c.issued && key == c.key {
		return false
	}
	if c.inflight != nil {
		c.inflight()
	}
	c.key, c.issued = key, true
	c.seq++
	id := c.seq

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.inflight = cancel
	c.state.Loading = true
	c.state.Err = ""

	c.wg.Add(1)
	go c.fetch(ctx, cancel, id, key)
	return true
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, id uint64, key domain.QueryRequest) {
	defer c.wg.Done()
	defer cancel()

	page, err := c.fetcher.SearchAdvocates(ctx, key)
	c.update(func() bool {
		if id != c.seq {
			return false
		}
		c.inflight = nil
		c.state.Loading = false
		if errors.Is(err, context.Canceled) {
			return true
		}
		if err != nil {
			c.state.Err = errorMessage(err)
			return true
		}
		data := page.Data
		if data == nil {
			data = []models.Advocate{}
		}
		c.state.Data = data
		c.state.Total = page.Total
		c.state.TotalPages = page.TotalPages
		if c.state.TotalPages < 1 {
			c.state.TotalPages = 1
		}
		return true
	})
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
