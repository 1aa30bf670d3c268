package client

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(service.NewService),
)
