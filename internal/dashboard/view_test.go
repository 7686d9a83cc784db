// internal/dashboard/view_test.go
package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/statusboard/internal/poller"
	"github.com/tamzrod/statusboard/internal/status"
)

// ---- fake health client ----

type fetchFunc func(ctx context.Context, call int32) (status.Snapshot, error)

type scriptedClient struct {
	calls atomic.Int32
	fn    fetchFunc
}

func (c *scriptedClient) Fetch(ctx context.Context) (status.Snapshot, error) {
	n := c.calls.Add(1)
	return c.fn(ctx, n)
}

func always(s status.Snapshot) fetchFunc {
	return func(ctx context.Context, _ int32) (status.Snapshot, error) {
		return s, nil
	}
}

var healthy = status.Snapshot{DB: "up", Query: "up", Redis: "down", PDFQueue: 2, ThumbQueue: 1, Uptime: "10.5s"}

func newView(t *testing.T, fn fetchFunc, opts ...Option) (*View, *scriptedClient) {
	t.Helper()

	c := &scriptedClient{fn: fn}
	p, err := poller.New(poller.Config{Endpoint: "test", Interval: time.Hour}, c)
	require.NoError(t, err)

	v := New(p, opts...)
	t.Cleanup(v.Close)
	return v, c
}

// ---- tests ----

func TestView_InitialState(t *testing.T) {
	t.Parallel()

	v, c := newView(t, always(healthy))

	assert.Equal(t, status.InitialState(), v.State())
	assert.Equal(t, PollIdle, v.PollState())
	assert.False(t, v.Live())
	assert.Equal(t, DefaultInterval, v.Interval())
	assert.Zero(t, c.calls.Load())

	api, _ := v.Page().Row("API")
	assert.Equal(t, status.IconNone, api.Icon)
}

func TestMount_FetchesOnceRegardlessOfPolling(t *testing.T) {
	t.Parallel()

	v, c := newView(t, always(healthy))

	v.Mount()
	v.Mount()

	require.Eventually(t, func() bool { return v.State().Seq == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(1), c.calls.Load())
	assert.False(t, v.Live())
	assert.Equal(t, status.APIUp, v.State().API)
}

func TestFetchHealth_Success(t *testing.T) {
	t.Parallel()

	v, _ := newView(t, always(healthy))

	st, err := v.FetchHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, status.APIUp, st.API)
	assert.Equal(t, healthy, st.Health)
	assert.Equal(t, uint64(1), st.Seq)
	assert.Equal(t, st, v.State())

	page := v.Page()
	api, _ := page.Row("API")
	cache, _ := page.Row("Cache")
	jobs, _ := page.Row("Queued Jobs")
	uptime, _ := page.Row("Uptime")

	assert.Equal(t, status.IconUp, api.Icon)
	assert.Equal(t, status.IconDown, cache.Icon)
	assert.Equal(t, "3", jobs.Value)
	assert.Equal(t, "10s", uptime.Value)
}

func TestFetchHealth_FailureResetsSnapshot(t *testing.T) {
	t.Parallel()

	v, _ := newView(t, func(ctx context.Context, call int32) (status.Snapshot, error) {
		if call == 1 {
			return healthy, nil
		}
		return status.Snapshot{}, errors.New("network error")
	})

	_, err := v.FetchHealth(context.Background())
	require.NoError(t, err)

	st, err := v.FetchHealth(context.Background())
	require.NoError(t, err, "fetch failures are not surfaced as errors")

	assert.Equal(t, status.APIDown, st.API)
	assert.Equal(t, status.Snapshot{DB: "", PDFQueue: 0, Query: "", Redis: "", ThumbQueue: 0, Uptime: "0s"}, st.Health)
	assert.Equal(t, uint64(2), st.Seq)
}

func TestRefresh_IsAsync(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	v, c := newView(t, func(ctx context.Context, _ int32) (status.Snapshot, error) {
		select {
		case <-gate:
			return healthy, nil
		case <-ctx.Done():
			return status.Snapshot{}, ctx.Err()
		}
	})

	v.Refresh()
	require.Eventually(t, func() bool { return c.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(0), v.State().Seq, "state must not change before the fetch completes")

	close(gate)
	require.Eventually(t, func() bool { return v.State().Seq == 1 }, time.Second, 5*time.Millisecond)
}

func TestLastResolvedWins(t *testing.T) {
	t.Parallel()

	slow := status.Snapshot{DB: "slow", Uptime: "1s"}
	fast := status.Snapshot{DB: "fast", Uptime: "2s"}
	release := make(chan struct{})

	v, c := newView(t, func(ctx context.Context, call int32) (status.Snapshot, error) {
		if call == 1 {
			<-release
			return slow, nil
		}
		return fast, nil
	})

	v.Refresh() // call 1, blocks
	require.Eventually(t, func() bool { return c.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// call 2 completes first
	st, err := v.FetchHealth(context.Background())
	require.NoError(t, err)
	require.Equal(t, fast, st.Health)

	close(release)
	require.Eventually(t, func() bool { return v.State().Seq == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, slow, v.State().Health)
}

func TestLive_TicksThenStops(t *testing.T) {
	t.Parallel()

	v, c := newView(t, always(healthy), WithInterval(20*time.Millisecond))

	require.True(t, v.SetLive(true))
	assert.Equal(t, PollLive, v.PollState())
	assert.False(t, v.SetLive(true), "already live")

	require.Eventually(t, func() bool { return c.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	require.True(t, v.SetLive(false))
	assert.Equal(t, PollIdle, v.PollState())

	time.Sleep(30 * time.Millisecond)
	n := c.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, n, c.calls.Load(), "no scheduled fetch after toggling off")
}

func TestLive_NoFetchBeforeFirstTick(t *testing.T) {
	t.Parallel()

	v, c := newView(t, always(healthy), WithInterval(time.Hour))

	v.SetLive(true)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, c.calls.Load())
}

func TestLive_OffKeepsInFlightFetch(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})

	v, _ := newView(t, func(ctx context.Context, call int32) (status.Snapshot, error) {
		if call == 1 {
			started <- struct{}{}
			<-release
			if err := ctx.Err(); err != nil {
				return status.Snapshot{}, err
			}
			return healthy, nil
		}
		return status.Snapshot{DB: "later"}, nil
	}, WithInterval(10*time.Millisecond))

	v.SetLive(true)

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("timer fetch never started")
	}

	v.SetLive(false)
	close(release)

	// A tick may have slipped in before the toggle; the blocked fetch still lands last.
	require.Eventually(t, func() bool { return v.State().Health == healthy }, time.Second, 5*time.Millisecond)
	assert.Equal(t, status.APIUp, v.State().API)
}

func TestToggleLive(t *testing.T) {
	t.Parallel()

	v, _ := newView(t, always(healthy), WithInterval(time.Hour))

	assert.True(t, v.ToggleLive())
	assert.True(t, v.Live())
	assert.False(t, v.ToggleLive())
	assert.False(t, v.Live())
}

func TestClose_ReleasesTimer(t *testing.T) {
	t.Parallel()

	v, c := newView(t, always(healthy), WithInterval(10*time.Millisecond))

	v.SetLive(true)
	require.Eventually(t, func() bool { return c.calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	v.Close()
	n := c.calls.Load()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, n, c.calls.Load(), "no fetch after close")
	assert.False(t, v.Live())

	assert.False(t, v.SetLive(true))
	v.Refresh()
	_, err := v.FetchHealth(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, n, c.calls.Load())

	v.Close() // idempotent
}

func TestClose_DiscardsInFlight(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	v, _ := newView(t, func(ctx context.Context, _ int32) (status.Snapshot, error) {
		close(started)
		<-ctx.Done()
		return status.Snapshot{}, ctx.Err()
	})

	v.Refresh()
	<-started

	done := make(chan struct{})
	go func() {
		v.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, status.InitialState(), v.State())
}

func TestFetchHealth_ContextBoundsWaitOnly(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	v, _ := newView(t, func(ctx context.Context, _ int32) (status.Snapshot, error) {
		<-release
		return healthy, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := v.FetchHealth(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.Eventually(t, func() bool { return v.State().API == status.APIUp }, time.Second, 5*time.Millisecond)
}

func TestOnUpdate_OrderAndKinds(t *testing.T) {
	t.Parallel()

	v, _ := newView(t, func(ctx context.Context, call int32) (status.Snapshot, error) {
		if call == 2 {
			return status.Snapshot{}, errors.New("boom")
		}
		return healthy, nil
	}, WithInterval(time.Hour))

	var mu sync.Mutex
	var got []Update
	v.OnUpdate(func(u Update) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, u)
	})
	v.OnUpdate(nil)

	_, err := v.FetchHealth(context.Background())
	require.NoError(t, err)
	v.SetLive(true)
	_, err = v.FetchHealth(context.Background())
	require.NoError(t, err)
	v.SetLive(false)

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, got, 4)

	assert.Equal(t, UpdateFetch, got[0].Kind)
	assert.Equal(t, status.APIUp, got[0].State.API)
	assert.False(t, got[0].Live)

	assert.Equal(t, UpdatePoll, got[1].Kind)
	assert.True(t, got[1].Live)

	assert.Equal(t, UpdateFetch, got[2].Kind)
	assert.Equal(t, status.APIDown, got[2].State.API)
	assert.Error(t, got[2].Err)
	assert.True(t, got[2].Live)

	assert.Equal(t, UpdatePoll, got[3].Kind)
	assert.False(t, got[3].Live)
	assert.Equal(t, status.APIDown, got[3].State.API)
}
