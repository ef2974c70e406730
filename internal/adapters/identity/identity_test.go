package identity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openhack/arena/internal/adapters/identity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given an identity service with one known user", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/users/42":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":42,"name":"Grace","banned":false}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		c := identity.NewHTTPClient(srv.URL, identity.WithHTTPClient(srv.Client()))

		Convey("Then known users resolve", func() {
			u, err := c.User(ctx, 42)
			So(err, ShouldBeNil)
			So(u.Name, ShouldEqual, "Grace")
		})

		Convey("Then unknown users surface ErrUserNotFound", func() {
			_, err := c.User(ctx, 7)
			So(errors.Is(err, identity.ErrUserNotFound), ShouldBeTrue)
		})

		Convey("Then DisplayNames skips unknown users", func() {
			names, err := c.DisplayNames(ctx, []int64{42, 7})
			So(err, ShouldBeNil)
			So(names, ShouldResemble, map[int64]string{42: "Grace"})
		})
	})

	Convey("Given an unreachable identity service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := identity.NewHTTPClient(srv.URL)

		Convey("Then calls surface ErrUnavailable", func() {
			_, err := c.User(ctx, 42)
			So(errors.Is(err, identity.ErrUnavailable), ShouldBeTrue)
		})
	})
}
