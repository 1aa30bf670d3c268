package payment

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/repository"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/service"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
