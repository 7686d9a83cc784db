// internal/metrics/metrics_test.go
package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/status"
)

func TestObserve_Fetch(t *testing.T) {
	t.Parallel()

	m := New()

	m.Observe(dashboard.Update{
		Kind: dashboard.UpdateFetch,
		State: status.Up(status.Snapshot{
			DB: "up", Query: "degraded", Redis: "down", PDFQueue: 2, ThumbQueue: 1,
		}, time.Now()),
		Latency: 120 * time.Millisecond,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("up")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIUp))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubsystemUp.WithLabelValues("db")))
	assert.Equal(t, -1.0, testutil.ToFloat64(m.SubsystemUp.WithLabelValues("query")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SubsystemUp.WithLabelValues("cache")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueuedJobs.WithLabelValues("pdf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueuedJobs.WithLabelValues("thumb")))

	m.Observe(dashboard.Update{
		Kind:  dashboard.UpdateFetch,
		State: status.Down(time.Now()),
		Err:   errors.New("refused"),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("down")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.APIUp))
	assert.Equal(t, -1.0, testutil.ToFloat64(m.SubsystemUp.WithLabelValues("db")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.QueuedJobs.WithLabelValues("pdf")))
}

func TestObserve_PollToggle(t *testing.T) {
	t.Parallel()

	m := New()

	m.Observe(dashboard.Update{Kind: dashboard.UpdatePoll, Live: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LivePoll))
	assert.Equal(t, 0, testutil.CollectAndCount(m.FetchTotal))

	m.Observe(dashboard.Update{Kind: dashboard.UpdatePoll, Live: false})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LivePoll))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.Observe(dashboard.Update{Kind: dashboard.UpdateFetch, State: status.Down(time.Now())})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `statusboard_fetch_total{result="down"} 1`)
	assert.Contains(t, string(body), "statusboard_api_up 0")
	assert.Contains(t, string(body), "go_goroutines")
}
