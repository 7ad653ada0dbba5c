package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID   string
	Name string
}

// fakeSource produces deterministic pages and counts fetches so tests can
// assert which calls hit the "network".
type fakeSource struct {
	mu         sync.Mutex
	fetchCalls int
	pageSize   int
	total      int
	err        error

	// block, when non-nil, parks a fetch until the test releases it; the
	// fetch reports that it started on the started channel first.
	block   chan struct{}
	started chan struct{}
}

func (s *fakeSource) fetch(ctx context.Context, page, perPage int) ([]testItem, error) {
	s.mu.Lock()
	s.fetchCalls++
	block := s.block
	started := s.started
	err := s.err
	s.mu.Unlock()

	if block != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-block
	}
	if err != nil {
		return nil, err
	}

	// Per-page seed keeps repeated fetches of the same page identical.
	faker := gofakeit.New(int64(page))
	start := (page - 1) * perPage
	items := make([]testItem, 0, perPage)
	for i := start; i < start+perPage && i < s.total; i++ {
		items = append(items, testItem{ID: fmt.Sprintf("item-%d", i), Name: faker.Noun()})
	}
	return items, nil
}

func (s *fakeSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls
}

func newTestController(src *fakeSource) *ListController[testItem] {
	return newListController(listConfig[testItem]{
		fetch: src.fetch,
		create: func(ctx context.Context, item testItem) (*testItem, error) {
			if item.ID == "" {
				item.ID = "created-" + gofakeit.UUID()
			}
			return &item, nil
		},
		update: func(ctx context.Context, item testItem) (*testItem, error) {
			return &item, nil
		},
		remove: func(ctx context.Context, id string) error {
			return nil
		},
		idOf:         func(item testItem) string { return item.ID },
		pageSize:     src.pageSize,
		insertAtHead: true,
	})
}

func TestInitialize_FullPageMeansMore(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 12}
	c := newTestController(src)

	require.NoError(t, c.Initialize(context.Background()))

	state := c.State()
	assert.Equal(t, StatusReady, state.Status)
	assert.Len(t, state.Items, 5)
	assert.True(t, state.HasMore)
	assert.Equal(t, 1, src.calls())
}

func TestInitialize_ShortPageMeansDone(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 3}
	c := newTestController(src)

	require.NoError(t, c.Initialize(context.Background()))

	state := c.State()
	assert.Equal(t, StatusReady, state.Status)
	assert.Len(t, state.Items, 3)
	assert.False(t, state.HasMore)
}

func TestInitialize_FailureKeepsNothing(t *testing.T) {
	src := &fakeSource{pageSize: 5, err: errors.New("backend down")}
	c := newTestController(src)

	err := c.Initialize(context.Background())
	require.Error(t, err)

	state := c.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Empty(t, state.Items)
	assert.EqualError(t, state.Err, "backend down")
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 12}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))

	require.NoError(t, c.LoadMore(context.Background()))
	assert.Len(t, c.State().Items, 10)
	assert.True(t, c.State().HasMore)

	require.NoError(t, c.LoadMore(context.Background()))
	state := c.State()
	assert.Len(t, state.Items, 12)
	assert.False(t, state.HasMore)
	assert.Equal(t, 3, src.calls())
}

func TestLoadMore_NoopWhenExhausted(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 3}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))
	require.False(t, c.State().HasMore)

	before := src.calls()
	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, before, src.calls(), "exhausted list must not fetch")
}

func TestLoadMore_FailurePreservesList(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 12}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))
	held := c.State().Items

	src.mu.Lock()
	src.err = errors.New("flaky network")
	src.mu.Unlock()

	err := c.LoadMore(context.Background())
	require.Error(t, err)

	state := c.State()
	assert.Equal(t, StatusReady, state.Status)
	assert.Equal(t, held, state.Items)
	assert.True(t, state.HasMore)
}

func TestRefresh_MatchesIndependentFetch(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 12}
	c := newTestController(src)

	require.NoError(t, c.Initialize(context.Background()))
	require.NoError(t, c.Refresh(context.Background()))

	independent, err := src.fetch(context.Background(), 1, src.pageSize)
	require.NoError(t, err)

	state := c.State()
	assert.Equal(t, StatusReady, state.Status)
	assert.Equal(t, independent, state.Items)
	assert.True(t, state.HasMore)
}

func TestRefresh_InvalidatesInFlightLoadMore(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 12}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))

	// Park a LoadMore mid-fetch, then refresh underneath it.
	release := make(chan struct{})
	started := make(chan struct{})
	src.mu.Lock()
	src.block = release
	src.started = started
	src.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.LoadMore(context.Background())
	}()

	<-started
	src.mu.Lock()
	src.block = nil
	src.started = nil
	src.mu.Unlock()

	require.NoError(t, c.Refresh(context.Background()))
	close(release)
	<-done

	// The stale second page must not have been appended after the refresh.
	assert.Len(t, c.State().Items, 5)
}

func TestCreate_InsertsAtHead(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 5}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))
	before := len(c.State().Items)

	created, err := c.Create(context.Background(), testItem{Name: "Deadlift Day"})
	require.NoError(t, err)
	require.NotNil(t, created)

	state := c.State()
	assert.Len(t, state.Items, before+1)
	assert.Equal(t, created.ID, state.Items[0].ID)
}

func TestCreate_FailureKeepsLastGoodList(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 5}
	c := newListController(listConfig[testItem]{
		fetch: src.fetch,
		create: func(ctx context.Context, item testItem) (*testItem, error) {
			return nil, errors.New("duplicate name")
		},
		idOf:     func(item testItem) string { return item.ID },
		pageSize: src.pageSize,
	})
	require.NoError(t, c.Initialize(context.Background()))
	held := c.State().Items

	_, err := c.Create(context.Background(), testItem{Name: "Push Day"})
	require.Error(t, err)

	state := c.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, held, state.Items)
	assert.EqualError(t, state.Err, "duplicate name")
}

func TestUpdate_ReplacesMatchingItem(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 5}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))

	target := c.State().Items[2]
	target.Name = "Renamed"
	updated, err := c.Update(context.Background(), target)
	require.NoError(t, err)

	state := c.State()
	assert.Len(t, state.Items, 5)
	assert.Equal(t, "Renamed", state.Items[2].Name)
	assert.Equal(t, updated.ID, state.Items[2].ID)
}

func TestDelete_RemovesItem(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 5}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background()))

	victim := c.State().Items[1].ID
	require.NoError(t, c.Delete(context.Background(), victim))

	state := c.State()
	assert.Len(t, state.Items, 4)
	for _, item := range state.Items {
		assert.NotEqual(t, victim, item.ID)
	}
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	src := &fakeSource{pageSize: 5, total: 5}
	c := newTestController(src)

	var seen []Status
	unsub := c.Subscribe(func(state ListState[testItem]) {
		seen = append(seen, state.Status)
	})

	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, []Status{StatusLoading, StatusReady}, seen)

	unsub()
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, seen, 2, "unsubscribed callback must not fire")
}
