package controller

import (
	"github.com/promptkit/gitstatd/src/gitstatd/controller/scan"
	"github.com/promptkit/gitstatd/src/gitstatd/controller/status"
	"go.uber.org/fx"
)

// Module provides all controllers.
var Module = fx.Options(
	fx.Provide(scan.New),
	fx.Provide(status.New),
)
