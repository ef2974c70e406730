package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/openhack/arena/internal/adapters/mq/queue"
	"github.com/openhack/arena/internal/adapters/mq/worker"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePruner struct {
	mu      sync.Mutex
	deleted []int64
}

func (f *fakePruner) DeleteJudgesByUser(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, userID)
	return 1, nil
}

func (f *fakePruner) snapshot() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.deleted...)
}

func TestPool(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	Convey("Given a pool of two workers over a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		pruner := &fakePruner{}
		pool := worker.NewPool(q, pruner, worker.WithWorkerCount(2))
		pool.Start(ctx)

		Convey("When user.deleted events arrive", func() {
			q.Enqueue(ctx, model.IdentityEvent{EventID: "e1", Kind: model.EventUserDeleted, UserID: 42})
			q.Enqueue(ctx, model.IdentityEvent{EventID: "e2", Kind: model.EventUserDeleted, UserID: 7})
			So(q.Close(), ShouldBeNil)
			pool.Wait()

			Convey("Then judge rows for both users were pruned", func() {
				got := pruner.snapshot()
				So(got, ShouldHaveLength, 2)
				So(got, ShouldContain, int64(42))
				So(got, ShouldContain, int64(7))
			})
		})

		Convey("When a ban event arrives with banned=false", func() {
			q.Enqueue(ctx, model.IdentityEvent{EventID: "e3", Kind: model.EventUserBanned, UserID: 9, Banned: false})
			So(q.Close(), ShouldBeNil)
			pool.Wait()

			Convey("Then nothing is pruned", func() {
				So(pruner.snapshot(), ShouldBeEmpty)
			})
		})

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then the pool winds down", func() {
				done := make(chan struct{})
				go func() {
					pool.Wait()
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("pool did not stop after cancellation")
				}
			})
		})
	})
}
