package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFetcher(data string, tags ...Tag) (Fetcher, *atomic.Int64) {
	var calls atomic.Int64
	return func(ctx context.Context) (json.RawMessage, []Tag, error) {
		calls.Add(1)
		return json.RawMessage(data), tags, nil
	}, &calls
}

func TestSubscribeFetchesOnce(t *testing.T) {
	s := NewStore()
	fetch, calls := fixedFetcher(`{"n":1}`, ListTag("Property"))

	sub := s.Subscribe("listProperties", nil, fetch)
	defer sub.Unsubscribe()

	data, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(data))
	assert.Equal(t, int64(1), calls.Load())

	// A second wait is served from the entry, not the network.
	_, err = sub.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestConcurrentSubscribersShareOneFetch(t *testing.T) {
	s := NewStore()

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, []Tag, error) {
		calls.Add(1)
		<-release
		return json.RawMessage(`[]`), []Tag{ListTag("Agent")}, nil
	}

	const n = 8
	subs := make([]*Subscription, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			subs[i] = s.Subscribe("listAgents", nil, fetch)
		}(i)
	}
	wg.Wait()
	close(release)

	for _, sub := range subs {
		_, err := sub.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), calls.Load(), "identical concurrent queries must share one transport call")

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

func TestInvalidateRefetchesLiveSubscriber(t *testing.T) {
	s := NewStore()
	fetch, calls := fixedFetcher(`[]`, ListTag("Property"), ItemTag("Property", "1"))

	sub := s.Subscribe("listProperties", nil, fetch)
	defer sub.Unsubscribe()
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)

	s.Invalidate([]Tag{ListTag("Property")})

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond,
		"a watched entry must refetch as soon as one of its tags is invalidated")
}

func TestInvalidateByItemTag(t *testing.T) {
	s := NewStore()
	fetch, calls := fixedFetcher(`{"id":"7"}`, ItemTag("Property", "7"))

	sub := s.Subscribe("getProperty", "7", fetch)
	defer sub.Unsubscribe()
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)

	// A foreign tag leaves the entry alone.
	s.Invalidate([]Tag{ItemTag("Property", "8")})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())

	s.Invalidate([]Tag{ItemTag("Property", "7")})
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestInvalidateWithoutSubscribersMarksStale(t *testing.T) {
	s := NewStore(WithGrace(time.Minute))
	fetch, calls := fixedFetcher(`[]`, ListTag("Property"))

	sub := s.Subscribe("listProperties", nil, fetch)
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)
	sub.Unsubscribe()

	s.Invalidate([]Tag{ListTag("Property")})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load(), "an unwatched entry must not refetch eagerly")

	sub2 := s.Subscribe("listProperties", nil, fetch)
	defer sub2.Unsubscribe()
	_, err = sub2.Wait(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond,
		"a stale entry must refetch on the next subscribe")
}

func TestMutateInvalidatesOnSuccessOnly(t *testing.T) {
	s := NewStore()
	fetch, calls := fixedFetcher(`[]`, ListTag("Property"))

	sub := s.Subscribe("listProperties", nil, fetch)
	defer sub.Unsubscribe()
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)

	_, err = s.Mutate(context.Background(), func(ctx context.Context) (json.RawMessage, error) {
		return nil, errors.New("boom")
	}, []Tag{ListTag("Property")})
	require.Error(t, err)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load(), "a failed mutation must not invalidate")

	data, err := s.Mutate(context.Background(), func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"1"}`), nil
	}, []Tag{ListTag("Property")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(data))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestFailedFetchRetriesOnNextSubscribe(t *testing.T) {
	s := NewStore(WithGrace(time.Minute))

	var calls atomic.Int64
	fetch := func(ctx context.Context) (json.RawMessage, []Tag, error) {
		if calls.Add(1) == 1 {
			return nil, nil, errors.New("backend down")
		}
		return json.RawMessage(`[]`), []Tag{ListTag("Bug")}, nil
	}

	sub := s.Subscribe("listBugs", nil, fetch)
	_, err := sub.Wait(context.Background())
	require.EqualError(t, err, "backend down")
	sub.Unsubscribe()

	sub2 := s.Subscribe("listBugs", nil, fetch)
	defer sub2.Unsubscribe()
	data, err := sub2.Wait(context.Background())
	require.NoError(t, err, "a stored failure must not be served to new subscribers")
	assert.JSONEq(t, `[]`, string(data))
}

func TestRefetchKeepsPreviousDataOnFailure(t *testing.T) {
	s := NewStore()

	var calls atomic.Int64
	fetch := func(ctx context.Context) (json.RawMessage, []Tag, error) {
		if calls.Add(1) == 1 {
			return json.RawMessage(`[1]`), []Tag{ListTag("Review")}, nil
		}
		return nil, nil, errors.New("flaky")
	}

	sub := s.Subscribe("listReviews", nil, fetch)
	defer sub.Unsubscribe()
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)

	s.Invalidate([]Tag{ListTag("Review")})
	require.Eventually(t, func() bool {
		snap := sub.Snapshot()
		return snap.Err != nil && !snap.Fetching
	}, time.Second, 5*time.Millisecond)

	snap := sub.Snapshot()
	assert.JSONEq(t, `[1]`, string(snap.Data), "stale data stays visible next to the refetch error")
}

func TestResubscribeDuringAbortedFetchGetsFreshFetch(t *testing.T) {
	s := NewStore(WithGrace(time.Minute))

	var calls atomic.Int64
	unwind := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, []Tag, error) {
		if calls.Add(1) == 1 {
			// First flight: hold the cancellation until the test has
			// attached the next subscriber, then report it.
			<-ctx.Done()
			<-unwind
			return nil, nil, ctx.Err()
		}
		return json.RawMessage(`[]`), []Tag{ListTag("Booking")}, nil
	}

	sub := s.Subscribe("listBookings", nil, fetch)
	sub.Unsubscribe() // cancels the in-flight fetch

	sub2 := s.Subscribe("listBookings", nil, fetch)
	defer sub2.Unsubscribe()
	close(unwind)

	// The new subscriber never sees the cancellation of the aborted
	// flight; a fresh fetch settles the entry without a manual Refetch.
	data, err := sub2.Wait(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
	assert.Equal(t, int64(2), calls.Load())
}

func TestEntryGarbageCollectedAfterGrace(t *testing.T) {
	s := NewStore(WithGrace(20 * time.Millisecond))
	fetch, _ := fixedFetcher(`[]`, ListTag("Visit"))

	sub := s.Subscribe("listVisits", nil, fetch)
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	sub.Unsubscribe()
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestResubscribeWithinGraceKeepsEntry(t *testing.T) {
	s := NewStore(WithGrace(200 * time.Millisecond))
	fetch, calls := fixedFetcher(`[]`, ListTag("Visit"))

	sub := s.Subscribe("listVisits", nil, fetch)
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)
	sub.Unsubscribe()

	sub2 := s.Subscribe("listVisits", nil, fetch)
	defer sub2.Unsubscribe()
	_, err = sub2.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load(), "resubscribing within the grace period hits the cache")

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, s.Len(), "a live subscriber blocks garbage collection")
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := NewStore(WithGrace(time.Minute))
	fetch, _ := fixedFetcher(`[]`, ListTag("Visit"))

	sub := s.Subscribe("listVisits", nil, fetch)
	sub2 := s.Subscribe("listVisits", nil, fetch)
	_, err := sub.Wait(context.Background())
	require.NoError(t, err)

	sub.Unsubscribe()
	sub.Unsubscribe()

	// The double unsubscribe must not have released sub2's interest.
	s.Invalidate([]Tag{ListTag("Visit")})
	_, err = sub2.Wait(context.Background())
	require.NoError(t, err)
	sub2.Unsubscribe()
}

func TestKeyDistinguishesArgs(t *testing.T) {
	assert.NotEqual(t, Key("listProperties", map[string]int{"page": 1}), Key("listProperties", map[string]int{"page": 2}))
	assert.Equal(t, Key("listProperties", nil), Key("listProperties", nil))
	assert.NotEqual(t, Key("listProperties", nil), Key("listAgents", nil))
}
