// Package cache memoizes query results under entity tags and routes
// mutation-driven invalidation back to the queries that provided them.
// Consumers hold refcounted subscriptions; a query with live
// subscribers refetches as soon as one of its tags is invalidated,
// while an unwatched query is only marked stale and refetched on the
// next subscribe.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"homequest-admin/pkg/logger"
	"homequest-admin/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// Fetcher resolves a query: it returns the raw response body plus the
// tags the result provides. It is called through the transport stack.
type Fetcher func(ctx context.Context) (json.RawMessage, []Tag, error)

// Snapshot is a point-in-time view of a cache entry. Data and Err are
// never both unset once the first fetch settles; after a failed
// refetch the previous Data is retained alongside Err so a view can
// keep rendering while showing the failure.
type Snapshot struct {
	Data     json.RawMessage
	Err      error
	Fetching bool
}

// Store is the tagged query cache. All entry state is guarded by one
// mutex; fetches run on goroutines but apply their results under it.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	grace   time.Duration
	log     *logger.Logger
}

type entry struct {
	key           string
	fetch         Fetcher
	data          json.RawMessage
	hasData       bool
	err           error
	tags          map[Tag]struct{}
	subs          map[*Subscription]struct{}
	stale         bool
	fetching      bool
	refetchQueued bool
	cancel        context.CancelFunc
	gcTimer       *time.Timer
}

// Option configures a Store.
type Option func(*Store)

// WithGrace sets how long an entry outlives its last subscriber before
// being garbage-collected.
func WithGrace(d time.Duration) Option {
	return func(s *Store) { s.grace = d }
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates an empty tagged cache.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		grace:   60 * time.Second,
		log:     logger.New(os.Stdout, logger.ERROR),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key derives the cache key for an endpoint invocation from the
// endpoint name and its serialized arguments.
func Key(endpoint string, args any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", args))
	}
	return endpoint + ":" + string(raw)
}

// Subscribe registers interest in a query. The first subscriber
// triggers the fetch; later subscribers for the same key share the
// entry and the in-flight request. The caller must Unsubscribe when
// done.
func (s *Store) Subscribe(endpoint string, args any, fetch Fetcher) *Subscription {
	key := Key(endpoint, args)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{
			key:   key,
			fetch: fetch,
			tags:  make(map[Tag]struct{}),
			subs:  make(map[*Subscription]struct{}),
		}
		s.entries[key] = e
	}
	if e.hasData && !e.stale {
		metrics.CacheHitsTotal.Inc()
	} else {
		metrics.CacheMissesTotal.Inc()
	}
	if e.gcTimer != nil {
		e.gcTimer.Stop()
		e.gcTimer = nil
	}

	sub := &Subscription{store: s, entry: e, ch: make(chan struct{}, 1)}
	e.subs[sub] = struct{}{}

	settled := e.hasData || e.err != nil
	if !e.fetching && (!settled || e.stale) {
		s.startFetchLocked(e)
	}
	return sub
}

// Mutate runs a mutation resolver and, on success, fires the
// invalidation wave for the declared tags. Mutations are never cached
// and never coalesced.
func (s *Store) Mutate(ctx context.Context, resolve func(context.Context) (json.RawMessage, error), invalidates []Tag) (json.RawMessage, error) {
	data, err := resolve(ctx)
	if err != nil {
		return nil, err
	}
	s.Invalidate(invalidates)
	return data, nil
}

// Invalidate marks every entry whose tag set intersects the given tags.
// Entries with live subscribers refetch immediately; the rest are
// marked stale and refetch on their next subscribe.
func (s *Store) Invalidate(tags []Tag) {
	if len(tags) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if !e.matchesAny(tags) {
			continue
		}
		metrics.CacheInvalidationsTotal.Inc()
		s.log.Debugf("cache: invalidated %s", e.key)
		if len(e.subs) == 0 {
			e.stale = true
			continue
		}
		if e.fetching {
			// The in-flight response may predate the mutation; run
			// one more fetch after it lands.
			e.refetchQueued = true
			continue
		}
		metrics.CacheRefetchesTotal.Inc()
		s.startFetchLocked(e)
	}
}

func (e *entry) matchesAny(tags []Tag) bool {
	for _, t := range tags {
		if _, ok := e.tags[t]; ok {
			return true
		}
	}
	return false
}

func (s *Store) startFetchLocked(e *entry) {
	ctx, cancel := context.WithCancel(context.Background())
	e.fetching = true
	e.cancel = cancel
	go s.runFetch(ctx, e)
}

type fetchOutcome struct {
	data json.RawMessage
	tags []Tag
	err  error
}

func (s *Store) runFetch(ctx context.Context, e *entry) {
	// Concurrent flights for the same key collapse into one call.
	v, _, _ := s.group.Do(e.key, func() (interface{}, error) {
		data, tags, err := e.fetch(ctx)
		return fetchOutcome{data: data, tags: tags, err: err}, nil
	})
	out := v.(fetchOutcome)

	s.mu.Lock()
	defer s.mu.Unlock()

	e.fetching = false
	e.cancel = nil

	if ctx.Err() != nil {
		if len(e.subs) == 0 {
			// Last subscriber left and aborted the request; drop the
			// outcome and let the entry age out.
			return
		}
		if out.err != nil {
			// A subscriber arrived while the aborted flight was still
			// unwinding. The cancellation error is not theirs; run a
			// fresh fetch instead of settling on it.
			s.startFetchLocked(e)
			return
		}
	}

	if out.err != nil {
		e.err = out.err
		// A failed query is left stale so the next subscriber retries
		// instead of being served the stored failure forever.
		e.stale = true
		s.log.Errorf("cache: fetch failed for %s: %v", e.key, out.err)
	} else {
		e.data = out.data
		e.hasData = true
		e.err = nil
		e.stale = false
		e.tags = make(map[Tag]struct{}, len(out.tags))
		for _, t := range out.tags {
			e.tags[t] = struct{}{}
		}
	}

	if e.refetchQueued {
		e.refetchQueued = false
		if len(e.subs) > 0 {
			metrics.CacheRefetchesTotal.Inc()
			s.startFetchLocked(e)
		} else {
			e.stale = true
		}
	}

	for sub := range e.subs {
		sub.notify()
	}
}

// Subscription is a refcounted handle on one cached query.
type Subscription struct {
	store *Store
	entry *entry
	ch    chan struct{}
	once  sync.Once
}

// Changes returns a channel that receives a signal whenever the
// entry's state changes. Signals are coalesced; after waking, read the
// current state with Snapshot or Wait.
func (sub *Subscription) Changes() <-chan struct{} {
	return sub.ch
}

func (sub *Subscription) notify() {
	select {
	case sub.ch <- struct{}{}:
	default:
	}
}

// Snapshot returns the entry's current state.
func (sub *Subscription) Snapshot() Snapshot {
	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()
	return Snapshot{Data: sub.entry.data, Err: sub.entry.err, Fetching: sub.entry.fetching}
}

// Wait blocks until the query settles, then returns its data or error.
func (sub *Subscription) Wait(ctx context.Context) (json.RawMessage, error) {
	for {
		sub.store.mu.Lock()
		e := sub.entry
		if !e.fetching {
			if e.err != nil {
				err := e.err
				sub.store.mu.Unlock()
				return nil, err
			}
			if e.hasData {
				data := e.data
				sub.store.mu.Unlock()
				return data, nil
			}
		}
		sub.store.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-sub.ch:
		}
	}
}

// Refetch forces a new fetch for the query, e.g. behind a manual
// retry button. It is a no-op while a fetch is already in flight.
func (sub *Subscription) Refetch() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sub.entry.fetching {
		s.startFetchLocked(sub.entry)
	}
}

// Unsubscribe releases the handle. When the last subscriber leaves,
// any in-flight fetch is aborted and the entry is garbage-collected
// after the grace period unless somebody subscribes again.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		s := sub.store
		s.mu.Lock()
		defer s.mu.Unlock()

		e := sub.entry
		delete(e.subs, sub)
		if len(e.subs) > 0 {
			return
		}
		if e.cancel != nil {
			e.cancel()
		}
		e.refetchQueued = false
		e.gcTimer = time.AfterFunc(s.grace, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if len(e.subs) == 0 {
				delete(s.entries, e.key)
			}
		})
	})
}

// Len reports the number of live cache entries. Used by tests and
// diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
