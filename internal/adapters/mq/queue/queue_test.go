package queue_test

import (
	"context"
	"testing"

	"github.com/openhack/arena/internal/adapters/mq/queue"
	"github.com/openhack/arena/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with capacity 2", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When enqueueing within capacity", func() {
			So(q.Enqueue(ctx, model.IdentityEvent{EventID: "a"}), ShouldBeTrue)
			So(q.Enqueue(ctx, model.IdentityEvent{EventID: "b"}), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			Convey("Then the queue sheds load once full", func() {
				So(q.Enqueue(ctx, model.IdentityEvent{EventID: "c"}), ShouldBeFalse)
			})

			Convey("And dequeue yields events in order", func() {
				ch := q.Dequeue(ctx)
				So((<-ch).EventID, ShouldEqual, "a")
				So((<-ch).EventID, ShouldEqual, "b")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue is refused", func() {
				So(q.Enqueue(ctx, model.IdentityEvent{EventID: "x"}), ShouldBeFalse)
			})

			Convey("And a second close reports ErrClosed", func() {
				So(q.Close(), ShouldEqual, queue.ErrClosed)
			})

			Convey("And the dequeue channel drains then closes", func() {
				_, open := <-q.Dequeue(ctx)
				So(open, ShouldBeFalse)
			})
		})
	})
}
