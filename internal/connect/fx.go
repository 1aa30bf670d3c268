package connect

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/connect/service"
)

var Module = fx.Module("connect.service",
	fx.Provide(service.NewService),
)
