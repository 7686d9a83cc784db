// internal/writer/exporter_test.go
package writer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/tamzrod/statusboard/internal/config"
	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/status"
)

type recordingWriter struct {
	mu    sync.Mutex
	seqs  []uint64
	lives []bool
	err   error
}

func (r *recordingWriter) WriteStatus(s status.State, live bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs = append(r.seqs, s.Seq)
	r.lives = append(r.lives, live)
	return r.err
}

func (r *recordingWriter) snapshot() ([]uint64, []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.seqs...), append([]bool(nil), r.lives...)
}

func TestExporter_WritesLatest(t *testing.T) {
	t.Parallel()

	rw := &recordingWriter{}
	e := NewExporter(rw, logger.NewNop(), nil)

	// queued before Run starts: only the newest survives
	for seq := uint64(1); seq <= 3; seq++ {
		st := status.Down(time.Now())
		st.Seq = seq
		e.Observe(dashboard.Update{Kind: dashboard.UpdateFetch, State: st, Live: seq == 3})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		seqs, _ := rw.snapshot()
		return len(seqs) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	seqs, lives := rw.snapshot()
	assert.Equal(t, []uint64{3}, seqs)
	assert.Equal(t, []bool{true}, lives)
}

func TestExporter_ErrorsAreSwallowed(t *testing.T) {
	t.Parallel()

	rw := &recordingWriter{err: errors.New("link down")}
	e := NewExporter(rw, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	e.Observe(dashboard.Update{Kind: dashboard.UpdatePoll, Live: true})
	require.Eventually(t, func() bool {
		seqs, _ := rw.snapshot()
		return len(seqs) == 1
	}, time.Second, 5*time.Millisecond)

	e.Observe(dashboard.Update{Kind: dashboard.UpdatePoll, Live: false})
	require.Eventually(t, func() bool {
		seqs, _ := rw.snapshot()
		return len(seqs) == 2
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, e.Close())
}

func TestBuild_Disabled(t *testing.T) {
	t.Parallel()

	_, err := Build(cfg.ModbusExportConfig{}, logger.NewNop())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	unit := 7
	plan, err := BuildPlan(cfg.ModbusExportConfig{
		Endpoint:  "10.0.0.5:502",
		UnitID:    &unit,
		BaseSlot:  4,
		TimeoutMs: 250,
		BoardName: "edge",
	})
	require.NoError(t, err)

	assert.Equal(t, Plan{
		Endpoint:  "10.0.0.5:502",
		UnitID:    7,
		BaseSlot:  4,
		BoardName: "edge",
		Timeout:   250 * time.Millisecond,
	}, plan)
}

func TestBuildPlan_UnitIDZero(t *testing.T) {
	t.Parallel()

	zero := 0
	plan, err := BuildPlan(cfg.ModbusExportConfig{Endpoint: "10.0.0.5:502", UnitID: &zero, BoardName: "edge"})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), plan.UnitID)
}

func TestBuild_DoesNotDial(t *testing.T) {
	t.Parallel()

	e, err := Build(cfg.ModbusExportConfig{Endpoint: "127.0.0.1:1", BoardName: "x"}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, e.Close())
}
