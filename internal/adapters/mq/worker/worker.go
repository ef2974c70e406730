// Package worker consumes identity events and prunes affected judge rows.
package worker

import (
	"context"
	"strconv"
	"sync"

	"github.com/openhack/arena/internal/adapters/mq/queue"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// Event is what workers read off the queue.
type Event = model.IdentityEvent

// Pruner removes judge authorizations for a user across all hackathons.
type Pruner interface {
	DeleteJudgesByUser(ctx context.Context, userID int64) (int64, error)
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Event
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	queue  Queue
	pruner Pruner
	count  int

	wg     sync.WaitGroup
	logger logger.Logger
}

// NewPool creates a worker pool with configuration options.
func NewPool(q Queue, pruner Pruner, opts ...Option) *Pool {
	p := &Pool{
		queue:  q,
		pruner: pruner,
		count:  4,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Named("worker")
	}
	return p
}

// Start launches the workers. They exit when ctx is cancelled or the
// queue's dequeue channel closes.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(p.count)
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(ctx, "worker-"+strconv.Itoa(i))
	}
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, name string) {
	defer p.wg.Done()
	log := p.logger.Named(name)

	events := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			p.handle(ctx, log, e)
		}
	}
}

func (p *Pool) handle(ctx context.Context, log logger.Logger, e Event) {
	switch e.Kind {
	case model.EventUserDeleted:
	case model.EventUserBanned:
		if !e.Banned {
			// An unban carries no work; the judge rows are already gone.
			return
		}
	default:
		log.Warn(ctx, "unknown identity event kind", logger.String("kind", e.Kind))
		return
	}

	n, err := p.pruner.DeleteJudgesByUser(ctx, e.UserID)
	if err != nil {
		log.Error(ctx, "failed to prune judges",
			logger.String("event_id", e.EventID),
			logger.Int64("user_id", e.UserID),
			logger.Error(err),
		)
		return
	}
	if n > 0 {
		metrics.RecordJudgePruned()
		log.Info(ctx, "pruned judge rows",
			logger.Int64("user_id", e.UserID),
			logger.Int64("rows", n),
		)
	}
}
