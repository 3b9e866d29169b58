// Package app assembles the daemon's Fx application.
package app

import (
	"context"
	"time"

	"github.com/promptkit/gitstatd/src/gitstatd/controller"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git"
	"github.com/promptkit/gitstatd/src/gitstatd/handler/dispatch"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/clock"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/core"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/liveness"
	"github.com/promptkit/gitstatd/src/gitstatd/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the gitstatd application module. The daemon Config is not
// provided here; the CLI layer supplies it.
var Module = fx.Options(
	git.Module,      // outbound: repository introspection
	dispatch.Module, // inbound: the request stream
	controller.Module,
	session.Module,
	clock.Module,
	liveness.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "gitstatd",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
)
