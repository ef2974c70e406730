package objectstore_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/openhack/arena/internal/adapters/objectstore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFSStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a filesystem store", t, func() {
		s, err := objectstore.NewFSStore(t.TempDir())
		So(err, ShouldBeNil)

		Convey("When putting a blob", func() {
			err := s.Put(ctx, "uploads/1/key_rules.txt", strings.NewReader("be nice"))
			So(err, ShouldBeNil)

			Convey("Then it can be read back", func() {
				rc, err := s.Get(ctx, "uploads/1/key_rules.txt")
				So(err, ShouldBeNil)
				defer rc.Close()
				data, err := io.ReadAll(rc)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "be nice")
			})

			Convey("And it can be deleted", func() {
				So(s.Delete(ctx, "uploads/1/key_rules.txt"), ShouldBeNil)
				_, err := s.Get(ctx, "uploads/1/key_rules.txt")
				So(errors.Is(err, objectstore.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When reading a missing key", func() {
			_, err := s.Get(ctx, "uploads/none")
			So(errors.Is(err, objectstore.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a key tries to escape the root", func() {
			err := s.Put(ctx, "../outside", strings.NewReader("nope"))
			So(errors.Is(err, objectstore.ErrInvalidKey), ShouldBeTrue)
		})
	})
}
