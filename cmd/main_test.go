package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/openhack/arena/internal/adapters/http/api"
	"github.com/openhack/arena/internal/app"
	"github.com/openhack/arena/internal/config"
	"github.com/openhack/arena/internal/domain/acl"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigurationLoading(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("ARENA_ADDR", ":9090")
		_ = os.Setenv("ARENA_WORKER_COUNT", "4")
		_ = os.Setenv("ARENA_RESCORE_POLICY", "overwrite")
		defer func() {
			_ = os.Unsetenv("ARENA_ADDR")
			_ = os.Unsetenv("ARENA_WORKER_COUNT")
			_ = os.Unsetenv("ARENA_RESCORE_POLICY")
		}()

		convey.Convey("Then configuration loads with them applied", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.RescorePolicy, convey.ShouldEqual, "overwrite")
		})
	})

	convey.Convey("Given an invalid rescore policy", t, func() {
		_ = os.Setenv("ARENA_RESCORE_POLICY", "sometimes")
		defer func() { _ = os.Unsetenv("ARENA_RESCORE_POLICY") }()

		convey.Convey("Then configuration loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestComponentWiring(t *testing.T) {
	convey.Convey("Given the application components", t, func() {
		convey.Convey("Then the service builds with custom options", func() {
			svc := app.New(nil, nil, nil, nil,
				app.WithWorkerCount(8),
				app.WithQueueSize(2000),
				app.WithDedupeSize(1000),
			)
			convey.So(svc, convey.ShouldNotBeNil)
			convey.So(svc.Stats()["started"], convey.ShouldEqual, false)
		})

		convey.Convey("And the API server registers its routes", func() {
			svc := app.New(nil, nil, nil, nil)
			auth := api.NewAuthenticator("secret", acl.DefaultTable())
			server := api.NewServer(svc, svc, auth)
			convey.So(server, convey.ShouldNotBeNil)

			mux := http.NewServeMux()
			convey.So(func() { server.Register(mux) }, convey.ShouldNotPanic)
		})
	})
}
