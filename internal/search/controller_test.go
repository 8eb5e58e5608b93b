package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"advocates/internal/client"
	"advocates/internal/domain"
	"advocates/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type reply struct {
	page domain.AdvocatePage
	err  error
}

type call struct {
	ctx   context.Context
	req   domain.QueryRequest
	reply chan reply
}

// scriptedFetcher hands every request to the test and waits for its reply.
// It ignores cancellation on purpose so late responses still arrive.
type scriptedFetcher struct {
	calls chan call
}

func newScriptedFetcher() *scriptedFetcher {
	return &scriptedFetcher{calls: make(chan call, 32)}
}

func (f *scriptedFetcher) SearchAdvocates(ctx context.Context, req domain.QueryRequest) (domain.AdvocatePage, error) {
	c := call{ctx: ctx, req: req, reply: make(chan reply, 1)}
	f.calls <- c
	r := <-c.reply
	return r.page, r.err
}

func (f *scriptedFetcher) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a request")
		return call{}
	}
}

func (f *scriptedFetcher) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected request %+v", c.req)
	case <-time.After(wait):
	}
}

func pageFor(req domain.QueryRequest, total int64, names ...string) domain.AdvocatePage {
	data := make([]models.Advocate, 0, len(names))
	for i, n := range names {
		data = append(data, models.Advocate{ID: int64(i + 1), FirstName: n})
	}
	return domain.NewAdvocatePage(req, data, total)
}

func waitState(t *testing.T, c *Controller, cond func(State) bool) State {
	t.Helper()
	require.Eventually(t, func() bool { return cond(c.State()) }, 2*time.Second, 5*time.Millisecond)
	return c.State()
}

func TestDebounceIssuesOneRequestForLastText(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{DebounceDelay: 40 * time.Millisecond})
	defer c.Close()

	c.SetSearchText("a")
	c.SetSearchText("ab")
	c.SetSearchText("abc")
	time.Sleep(10 * time.Millisecond)
	c.SetSearchText("abcd")
	assert.Equal(t, "abcd", c.State().SearchText)
	assert.Equal(t, "", c.State().Query)

	got := f.next(t)
	assert.Equal(t, domain.QueryRequest{Query: "abcd", Page: 1, PageSize: 10}, got.req)
	f.none(t, 100*time.Millisecond)

	got.reply <- reply{page: pageFor(got.req, 1, "Abcd")}
	s := waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Equal(t, "abcd", s.Query)
	require.Len(t, s.Data, 1)
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{DebounceDelay: time.Millisecond})
	defer c.Close()

	c.Start()
	first := f.next(t)
	assert.Equal(t, "", first.req.Query)

	c.SetSearchText("onco")
	second := f.next(t)
	assert.Equal(t, "onco", second.req.Query)
	assert.Error(t, first.ctx.Err(), "superseded request is aborted")
	assert.NoError(t, second.ctx.Err())

	second.reply <- reply{page: pageFor(second.req, 1, "Alice")}
	s := waitState(t, c, func(s State) bool { return !s.Loading })
	require.Len(t, s.Data, 1)
	assert.Equal(t, "Alice", s.Data[0].FirstName)

	// the superseded request completes late with different data
	first.reply <- reply{page: pageFor(first.req, 2, "Alice", "Bob")}
	time.Sleep(30 * time.Millisecond)

	s = c.State()
	require.Len(t, s.Data, 1)
	assert.EqualValues(t, 1, s.Total)
	assert.Equal(t, "Alice", s.Data[0].FirstName)
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{DebounceDelay: time.Millisecond})
	defer c.Close()

	c.Start()
	first := f.next(t)
	c.SetSearchText("x")
	second := f.next(t)

	first.reply <- reply{err: client.StatusError{StatusCode: 500}}
	time.Sleep(20 * time.Millisecond)
	s := c.State()
	assert.True(t, s.Loading, "only the current request clears loading")
	assert.Empty(t, s.Err)

	second.reply <- reply{page: pageFor(second.req, 0)}
	s = waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Empty(t, s.Err)
	assert.Empty(t, s.Data)
	assert.Equal(t, 1, s.TotalPages)
}

func TestErrorsSurfaceAndCancellationIsSilent(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{DebounceDelay: time.Millisecond})
	defer c.Close()

	c.Start()
	first := f.next(t)
	first.reply <- reply{page: pageFor(first.req, 1, "Alice")}
	waitState(t, c, func(s State) bool { return !s.Loading && len(s.Data) == 1 })

	c.SetSearchText("boom")
	failed := f.next(t)
	failed.reply <- reply{err: client.StatusError{StatusCode: 502}}
	s := waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Equal(t, "Request failed: 502", s.Err)

	c.SetSearchText("quiet")
	cancelled := f.next(t)
	assert.Empty(t, c.State().Err, "a new request clears the previous error")
	cancelled.reply <- reply{err: context.Canceled}
	s = waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Empty(t, s.Err)

	c.SetSearchText("blank")
	blank := f.next(t)
	blank.reply <- reply{err: errors.New("")}
	s = waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Equal(t, "Unknown error", s.Err)
}

func TestPager(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{PageSize: 2, DebounceDelay: time.Millisecond})
	defer c.Close()

	c.PrevPage()
	c.NextPage()
	f.none(t, 20*time.Millisecond)

	c.Start()
	r := f.next(t)
	r.reply <- reply{page: pageFor(r.req, 5, "A", "B")}
	s := waitState(t, c, func(s State) bool { return !s.Loading })
	assert.Equal(t, 3, s.TotalPages)
	assert.False(t, s.CanPrev())
	assert.True(t, s.CanNext())

	c.NextPage()
	r = f.next(t)
	assert.Equal(t, 2, r.req.Page)
	r.reply <- reply{page: pageFor(r.req, 5, "C", "D")}
	waitState(t, c, func(s State) bool { return !s.Loading })

	c.NextPage()
	r = f.next(t)
	assert.Equal(t, 3, r.req.Page)
	r.reply <- reply{page: pageFor(r.req, 5, "E")}
	s = waitState(t, c, func(s State) bool { return !s.Loading })
	assert.False(t, s.CanNext())

	c.NextPage()
	f.none(t, 20*time.Millisecond)
	assert.Equal(t, 3, c.State().Page)

	c.PrevPage()
	r = f.next(t)
	assert.Equal(t, 2, r.req.Page)
	r.reply <- reply{page: pageFor(r.req, 5, "C", "D")}
	waitState(t, c, func(s State) bool { return !s.Loading })
}

func TestCommitResetsPage(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{PageSize: 1, DebounceDelay: time.Millisecond})
	defer c.Close()

	c.Start()
	r := f.next(t)
	r.reply <- reply{page: pageFor(r.req, 3, "A")}
	waitState(t, c, func(s State) bool { return !s.Loading })
	c.NextPage()
	r = f.next(t)
	r.reply <- reply{page: pageFor(r.req, 3, "B")}
	waitState(t, c, func(s State) bool { return !s.Loading && s.Page == 2 })

	c.SetSearchText("b")
	r = f.next(t)
	assert.Equal(t, domain.QueryRequest{Query: "b", Page: 1, PageSize: 1}, r.req)
	r.reply <- reply{page: pageFor(r.req, 1, "B")}
	waitState(t, c, func(s State) bool { return !s.Loading })
}

func TestResetBypassesDebounce(t *testing.T) {
	f := newScriptedFetcher()
	c := NewController(f, Options{DebounceDelay: 50 * time.Millisecond})
	defer c.Close()

	c.Start()
	r := f.next(t)
	r.reply <- reply{page: pageFor(r.req, 0)}
	waitState(t, c, func(s State) bool { return !s.Loading })

	c.SetSearchText("cardio")
	c.Reset()
	s := c.State()
	assert.Equal(t, "", s.SearchText)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
	// same key as the initial request and the pending commit was dropped
	f.none(t, 120*time.Millisecond)

	c.SetSearchText("cardio")
	r = f.next(t)
	r.reply <- reply{page: pageFor(r.req, 1, "Laura")}
	waitState(t, c, func(s State) bool { return !s.Loading && s.Query == "cardio" })

	c.Reset()
	r = f.next(t)
	assert.Equal(t, domain.QueryRequest{Query: "", Page: 1, PageSize: 10}, r.req)
	r.reply <- reply{page: pageFor(r.req, 0)}
	waitState(t, c, func(s State) bool { return !s.Loading })
}

func TestOnChangeVersionsIncrease(t *testing.T) {
	f := newScriptedFetcher()
	var (
		mu       sync.Mutex
		versions []uint64
	)
	c := NewController(f, Options{
		DebounceDelay: time.Millisecond,
		OnChange: func(s State) {
			mu.Lock()
			versions = append(versions, s.Version)
			mu.Unlock()
		},
	})
	defer c.Close()

	c.Start()
	r := f.next(t)
	r.reply <- reply{page: pageFor(r.req, 1, "A")}
	waitState(t, c, func(s State) bool { return !s.Loading })

	// callbacks run after the lock is released
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(versions) == 2
	}, time.Second, time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, versions[0], versions[1])
}

// blockingFetcher honours cancellation like a real transport.
type blockingFetcher struct {
	started atomic.Int32
}

func (b *blockingFetcher) SearchAdvocates(ctx context.Context, _ domain.QueryRequest) (domain.AdvocatePage, error) {
	b.started.Add(1)
	<-ctx.Done()
	return domain.AdvocatePage{}, ctx.Err()
}

func TestCloseAbortsInFlightAndPendingWork(t *testing.T) {
	f := &blockingFetcher{}
	c := NewController(f, Options{DebounceDelay: time.Hour})

	c.Start()
	c.SetSearchText("never committed")
	require.Eventually(t, func() bool { return f.started.Load() == 1 }, time.Second, time.Millisecond)

	c.Close()
	s := c.State()
	assert.True(t, s.Loading, "state is frozen after close")
	assert.Empty(t, s.Err)

	c.Start()
	c.NextPage()
	assert.EqualValues(t, 1, f.started.Load())
}
