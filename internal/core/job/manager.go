// Package job provides the engine-owned background job pool. The façade
// owns its lifecycle; scheduling internals are invisible to callers.
package job

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/caldera-engine/caldera/internal/core/observability/log"
)

var ErrClosed = errors.New("job: manager is closed")

// Job is a unit of background work.
type Job func() error

// Manager runs jobs on a bounded worker pool. A failing job is logged and
// does not poison the pool.
type Manager struct {
	workers *errgroup.Group
	log     log.Log
	closed  bool
}

func NewManager(workerCount int, logger log.Log) *Manager {
	if workerCount <= 0 {
		workerCount = 4
	}
	g := &errgroup.Group{}
	g.SetLimit(workerCount)
	return &Manager{workers: g, log: logger}
}

// Submit queues a job and returns its id. Blocks when every worker is busy.
func (m *Manager) Submit(j Job) (uuid.UUID, error) {
	if m.closed {
		return uuid.Nil, ErrClosed
	}
	id := uuid.New()
	m.workers.Go(func() error {
		if err := j(); err != nil {
			m.log.Error("job failed", log.String("job_id", id.String()), log.Error(err))
		}
		return nil
	})
	return id, nil
}

// Wait blocks until every submitted job has finished.
func (m *Manager) Wait() {
	_ = m.workers.Wait()
}

// Close drains the pool and rejects further submissions.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	_ = m.workers.Wait()
}
