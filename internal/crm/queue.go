package crm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/brisa-digital/quiz-crm/internal/crmsync"
	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/resilience"
)

// syncQueue decouples external CRM pushes from local writes: the local write
// is the source of truth and enqueuing never blocks or fails it. A single
// worker drains the queue; transient push failures are retried with backoff,
// anything still failing is logged and dropped.
type syncQueue struct {
	pusher  crmsync.Pusher
	timeout time.Duration
	ch      chan model.Lead
	done    chan struct{}
}

func newSyncQueue(pusher crmsync.Pusher, depth int, timeout time.Duration) *syncQueue {
	if depth <= 0 {
		depth = 64
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	q := &syncQueue{
		pusher:  pusher,
		timeout: timeout,
		ch:      make(chan model.Lead, depth),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// enqueue hands a snapshot of the lead to the worker. When the queue is full
// the push is dropped with a warning; sync is best-effort by contract.
func (q *syncQueue) enqueue(lead *model.Lead) {
	select {
	case q.ch <- *lead:
	default:
		zap.L().Warn("crm: sync queue full, dropping push",
			zap.String("lead_id", lead.ID),
		)
	}
}

func (q *syncQueue) run() {
	defer close(q.done)
	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("crm", "push")
	for lead := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
			return q.pusher.Push(ctx, &lead)
		})
		cancel()
		if err != nil {
			zap.L().Warn("crm: external sync failed",
				zap.String("lead_id", lead.ID),
				zap.Error(err),
			)
			continue
		}
		zap.L().Debug("crm: lead synced", zap.String("lead_id", lead.ID))
	}
}

// close drains pending pushes and stops the worker.
func (q *syncQueue) close() {
	close(q.ch)
	<-q.done
}
