package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veldt-labs/switchboard/internal/analytics"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"go.uber.org/zap"
)

type recordingDispatches struct {
	mu   sync.Mutex
	logs []*model.DispatchLog
}

func (r *recordingDispatches) Log(ctx context.Context, log *model.DispatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *recordingDispatches) GetRecent(ctx context.Context, userID string, limit int) ([]model.DispatchLog, error) {
	return nil, nil
}

func (r *recordingDispatches) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	return nil, nil
}

func (r *recordingDispatches) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

type recordingRepo struct {
	dispatches *recordingDispatches
}

func (r *recordingRepo) Models() store.ModelRepository        { return nil }
func (r *recordingRepo) APIKeys() store.APIKeyRepository      { return nil }
func (r *recordingRepo) Users() store.UserRepository          { return nil }
func (r *recordingRepo) Dispatches() store.DispatchRepository { return r.dispatches }
func (r *recordingRepo) Close() error                         { return nil }

func (r *recordingRepo) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	return fn(r)
}

func TestStopFlushesPendingLogs(t *testing.T) {
	dispatches := &recordingDispatches{}
	ing := analytics.NewIngestor(zap.NewNop(), &recordingRepo{dispatches: dispatches})

	ing.Start(context.Background())

	for i := 0; i < 7; i++ {
		ing.Log(&model.DispatchLog{ID: "log", Operation: "chat", Outcome: "success", CreatedAt: time.Now()})
	}

	ing.Stop()

	// Stop closes the channel; the worker drains and flushes before exiting
	assert.Eventually(t, func() bool {
		return dispatches.count() == 7
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLogNeverBlocks(t *testing.T) {
	dispatches := &recordingDispatches{}
	ing := analytics.NewIngestor(zap.NewNop(), &recordingRepo{dispatches: dispatches})

	// worker not started: the buffered channel absorbs what it can and the
	// rest is dropped instead of stalling the request path
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20000; i++ {
			ing.Log(&model.DispatchLog{ID: "log"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Log blocked on a full buffer")
	}
}
