package roster_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openhack/arena/internal/adapters/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given a roster service with two teams", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/hackathons/1/teams" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":5,"name":"gophers"},{"id":6,"name":"pythons"}]`))
		}))
		defer srv.Close()

		c := roster.NewHTTPClient(srv.URL, roster.WithHTTPClient(srv.Client()))

		Convey("Then Teams lists them", func() {
			teams, err := c.Teams(ctx, 1)
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 2)
			So(teams[0].Name, ShouldEqual, "gophers")
		})

		Convey("Then TeamExists answers per team", func() {
			ok, err := c.TeamExists(ctx, 1, 5)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = c.TeamExists(ctx, 1, 99)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Then TeamNames resolves only requested ids", func() {
			names, err := c.TeamNames(ctx, 1, []int64{6})
			So(err, ShouldBeNil)
			So(names, ShouldResemble, map[int64]string{6: "pythons"})
		})
	})

	Convey("Given a roster service returning 500", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := roster.NewHTTPClient(srv.URL)

		Convey("Then calls surface ErrUnavailable", func() {
			_, err := c.Teams(ctx, 1)
			So(errors.Is(err, roster.ErrUnavailable), ShouldBeTrue)
		})
	})
}
