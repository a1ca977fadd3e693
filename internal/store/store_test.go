package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterState and tag actions give the engine something domain-neutral to
// chew on without pulling in the address-book package.
type counterState struct {
	Count int
	Seen  []string
}

func appendReducer(s counterState, a string) counterState {
	seen := make([]string, len(s.Seen), len(s.Seen)+1)
	copy(seen, s.Seen)
	s.Seen = append(seen, a)
	s.Count++
	return s
}

func TestDispatch_OrderPreservation(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	actions := []string{"alpha", "beta", "gamma", "delta"}
	for _, a := range actions {
		st.Dispatch(a)
	}

	require.Equal(t, actions, st.History())
	assert.Equal(t, actions, st.State().Seen)
}

func TestDispatch_ReducerFoldOrder(t *testing.T) {
	st := New[counterState, string](counterState{})

	// Each reducer tags the action so the fold order is visible in state.
	st.AddReducer(func(s counterState, a string) counterState {
		return appendReducer(s, "first:"+a)
	})
	st.AddReducer(func(s counterState, a string) counterState {
		return appendReducer(s, "second:"+a)
	})

	st.Dispatch("x")

	require.Equal(t, []string{"first:x", "second:x"}, st.State().Seen)
	// History gets one entry per dispatch, not per reducer.
	assert.Equal(t, []string{"x"}, st.History())
}

func TestDispatch_UnhandledActionIsNoOp(t *testing.T) {
	st := New[counterState, string](counterState{Count: 7})
	st.AddReducer(func(s counterState, a string) counterState {
		if a == "known" {
			s.Count++
		}
		return s
	})

	st.Dispatch("unknown")

	assert.Equal(t, 7, st.State().Count, "unhandled action must leave state unchanged")
	assert.Equal(t, []string{"unknown"}, st.History(), "no-op dispatches still append to history")
}

func TestDispatch_MiddlewareSubstitution(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)
	st.AddMiddleware(func(a string, _ *Store[counterState, string]) (string, bool) {
		if a == "trigger" {
			return "substituted", true
		}
		return "", false
	})

	st.Dispatch("trigger")

	require.Equal(t, []string{"substituted"}, st.History(),
		"history must record the substitution, never the trigger")
	assert.Equal(t, []string{"substituted"}, st.State().Seen)
}

func TestDispatch_SubstitutionVisibleToLaterMiddleware(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	var secondSaw string
	st.AddMiddleware(func(a string, _ *Store[counterState, string]) (string, bool) {
		return a + "+mw1", true
	})
	st.AddMiddleware(func(a string, _ *Store[counterState, string]) (string, bool) {
		secondSaw = a
		return a + "+mw2", true
	})

	st.Dispatch("a")

	assert.Equal(t, "a+mw1", secondSaw, "later middleware sees the substituted action")
	assert.Equal(t, []string{"a+mw1+mw2"}, st.History())
}

func TestDispatch_MiddlewareChainOrder(t *testing.T) {
	st := New[counterState, string](counterState{})

	var calls []string
	for _, name := range []string{"mw-a", "mw-b", "mw-c"} {
		st.AddMiddleware(func(a string, _ *Store[counterState, string]) (string, bool) {
			calls = append(calls, name)
			return "", false
		})
	}

	st.Dispatch("x")
	st.Dispatch("y")

	require.Equal(t, []string{"mw-a", "mw-b", "mw-c", "mw-a", "mw-b", "mw-c"}, calls)
}

func TestDispatch_SubscriberIsolation(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	var secondRan bool
	var secondSaw counterState
	st.AddSubscriber(func(counterState) {
		panic("subscriber blew up")
	})
	st.AddSubscriber(func(s counterState) {
		secondRan = true
		secondSaw = s
	})

	st.Dispatch("survive")

	require.True(t, secondRan, "a panicking subscriber must not starve later subscribers")
	assert.Equal(t, []string{"survive"}, secondSaw.Seen)
	assert.Equal(t, []string{"survive"}, st.State().Seen, "commit happens before notification")
}

func TestDispatch_SubscriberNotificationOrder(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	var order []int
	for i := range 3 {
		st.AddSubscriber(func(counterState) {
			order = append(order, i)
		})
	}

	st.Dispatch("x")

	require.Equal(t, []int{0, 1, 2}, order)
}

func TestDispatchAsync_ReturnsBeforeFireAndForgetCompletes(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	done := make(chan struct{})
	st.AddMiddleware(func(a string, s *Store[counterState, string]) (string, bool) {
		if a == "slow-trigger" {
			// Fire and forget: the slow follow-up dispatches on its own
			// schedule, after this pipeline has released the lock.
			go func() {
				time.Sleep(150 * time.Millisecond)
				s.Dispatch("follow-up")
				close(done)
			}()
		}
		return "", false
	})

	start := time.Now()
	st.Dispatch("slow-trigger")
	elapsed := time.Since(start)

	require.Less(t, elapsed, 100*time.Millisecond,
		"dispatch must return before the fire-and-forget work completes")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fire-and-forget dispatch never completed")
	}
	assert.Equal(t, []string{"slow-trigger", "follow-up"}, st.History())
}

func TestDispatchAsync_EventuallyCommits(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	st.DispatchAsync("later")

	require.Eventually(t, func() bool {
		return len(st.History()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"later"}, st.History())
}

func TestDispatch_ConcurrentCallersSerialized(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)

	const callers = 32
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := range callers {
		go func(i int) {
			defer wg.Done()
			st.Dispatch(fmt.Sprintf("action-%d", i))
		}(i)
	}
	wg.Wait()

	// Serialization is total but unspecified: every dispatch lands exactly
	// once, and state saw every action exactly once.
	require.Len(t, st.History(), callers)
	assert.Equal(t, callers, st.State().Count)
	assert.ElementsMatch(t, st.History(), st.State().Seen)
}

func TestHistory_SnapshotIsIsolated(t *testing.T) {
	st := New[counterState, string](counterState{})
	st.AddReducer(appendReducer)
	st.Dispatch("one")

	snap := st.History()
	snap[0] = "tampered"

	require.Equal(t, []string{"one"}, st.History())
}
