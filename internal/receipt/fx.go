package receipt

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/render"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/repository"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/service"
)

var Module = fx.Module("receipt.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
