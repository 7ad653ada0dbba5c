// Package controller holds the reactive list controllers that bridge an
// immutable filter to a live, paginated list of entities. One generic
// implementation serves every resource type.
package controller

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/apperr"
)

// Status is the coarse state of a list controller.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ListState is the published snapshot. It is replaced wholesale on every
// transition; Items is never mutated in place after publishing. On failure
// Items still carries the last good list so the UI stays interactive.
type ListState[T any] struct {
	Status  Status
	Items   []T
	HasMore bool
	Err     error
}

// DefaultPageSize is used when a constructor is given a non-positive size.
const DefaultPageSize = 30

// listConfig binds a controller to one resource service and one filter.
type listConfig[T any] struct {
	fetch        func(ctx context.Context, page, perPage int) ([]T, error)
	create       func(ctx context.Context, entity T) (*T, error)
	update       func(ctx context.Context, entity T) (*T, error)
	remove       func(ctx context.Context, id string) error
	idOf         func(entity T) string
	pageSize     int
	insertAtHead bool // most-recent-first resources insert created entities at the head
}

// ListController mediates all reads and mutations for one paginated view.
// All methods are safe for concurrent use; a fetch generation counter makes
// sure a Refresh invalidates any LoadMore still in flight.
type ListController[T any] struct {
	cfg listConfig[T]

	mu          sync.Mutex
	state       ListState[T]
	loadingMore bool
	generation  int

	subs    map[int]func(ListState[T])
	nextSub int
}

func newListController[T any](cfg listConfig[T]) *ListController[T] {
	if cfg.pageSize <= 0 {
		cfg.pageSize = DefaultPageSize
	}
	return &ListController[T]{
		cfg:   cfg,
		state: ListState[T]{Status: StatusLoading},
		subs:  make(map[int]func(ListState[T])),
	}
}

// State returns the current snapshot.
func (c *ListController[T]) State() ListState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for state changes and returns an unsubscribe func.
// fn is called synchronously after every published transition.
func (c *ListController[T]) Subscribe(fn func(ListState[T])) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Initialize issues the first-page fetch: Loading, then Ready or Failed.
// A failure is terminal until Refresh is called; there are no retries.
func (c *ListController[T]) Initialize(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	c.publishLocked(ListState[T]{Status: StatusLoading})
	c.mu.Unlock()

	return c.fetchFirstPage(ctx)
}

// Refresh re-issues the first-page fetch and replaces the held list
// unconditionally. The previous list stays visible while loading.
func (c *ListController[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()

	return c.fetchFirstPage(ctx)
}

func (c *ListController[T]) fetchFirstPage(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	perPage := c.cfg.pageSize
	c.mu.Unlock()

	items, err := c.cfg.fetch(ctx, 1, perPage)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer Initialize/Refresh superseded this fetch.
		return nil
	}
	if err != nil {
		c.publishLocked(ListState[T]{
			Status:  StatusFailed,
			Items:   c.state.Items,
			HasMore: c.state.HasMore,
			Err:     err,
		})
		return err
	}
	c.publishLocked(ListState[T]{
		Status:  StatusReady,
		Items:   items,
		HasMore: len(items) >= perPage,
	})
	return nil
}

// LoadMore fetches the next page and appends it. It is a no-op, with no
// network call, while another LoadMore is in flight or when HasMore is
// false. A failed LoadMore leaves the list as it was.
func (c *ListController[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingMore || !c.state.HasMore || c.state.Status == StatusLoading {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	gen := c.generation
	perPage := c.cfg.pageSize
	page := len(c.state.Items)/perPage + 1
	c.mu.Unlock()

	items, err := c.cfg.fetch(ctx, page, perPage)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingMore = false
	if gen != c.generation {
		// The list was replaced underneath us; drop the stale page.
		return nil
	}
	if err != nil {
		log.Warnf("load more (page %d) failed: %v", page, err)
		return err
	}
	merged := make([]T, 0, len(c.state.Items)+len(items))
	merged = append(merged, c.state.Items...)
	merged = append(merged, items...)
	c.publishLocked(ListState[T]{
		Status:  StatusReady,
		Items:   merged,
		HasMore: len(items) >= perPage,
	})
	return nil
}

// Create persists the entity and, on success, inserts it into the held list
// at the resource's conventional position. On failure the last good list is
// preserved and the state carries the error.
func (c *ListController[T]) Create(ctx context.Context, entity T) (*T, error) {
	created, err := c.cfg.create(ctx, entity)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(err)
		return nil, err
	}
	var items []T
	if c.cfg.insertAtHead {
		items = append([]T{*created}, c.state.Items...)
	} else {
		items = append(append([]T{}, c.state.Items...), *created)
	}
	c.publishLocked(ListState[T]{
		Status:  StatusReady,
		Items:   items,
		HasMore: c.state.HasMore,
	})
	return created, nil
}

// Update persists the entity and replaces the matching list element in place.
func (c *ListController[T]) Update(ctx context.Context, entity T) (*T, error) {
	updated, err := c.cfg.update(ctx, entity)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(err)
		return nil, err
	}
	items := append([]T{}, c.state.Items...)
	id := c.cfg.idOf(*updated)
	for i := range items {
		if c.cfg.idOf(items[i]) == id {
			items[i] = *updated
			break
		}
	}
	c.publishLocked(ListState[T]{
		Status:  StatusReady,
		Items:   items,
		HasMore: c.state.HasMore,
	})
	return updated, nil
}

// Delete removes the entity remotely and drops it from the held list.
func (c *ListController[T]) Delete(ctx context.Context, id string) error {
	err := c.cfg.remove(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(err)
		return err
	}
	items := make([]T, 0, len(c.state.Items))
	for _, item := range c.state.Items {
		if c.cfg.idOf(item) != id {
			items = append(items, item)
		}
	}
	c.publishLocked(ListState[T]{
		Status:  StatusReady,
		Items:   items,
		HasMore: c.state.HasMore,
	})
	return nil
}

// failLocked publishes a Failed state that keeps the last good list. The
// error kind is not interpreted here; classification happened at the
// service boundary and the UI only needs the message.
func (c *ListController[T]) failLocked(err error) {
	if apperr.KindOf(err) == apperr.KindValidation {
		log.Debugf("mutation rejected: %v", err)
	}
	c.publishLocked(ListState[T]{
		Status:  StatusFailed,
		Items:   c.state.Items,
		HasMore: c.state.HasMore,
		Err:     err,
	})
}

// publishLocked replaces the state and notifies subscribers. Callers hold mu;
// subscriber callbacks must not call back into the controller.
func (c *ListController[T]) publishLocked(state ListState[T]) {
	c.state = state
	for _, fn := range c.subs {
		fn(state)
	}
}
