package checkout

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/service"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

var Module = fx.Module("checkout.service",
	fx.Provide(provideRouter),
	fx.Provide(service.NewService),
)

func provideRouter(profiles profiledomain.Service, client processor.Client, cfg config.Config, log *zap.Logger) *service.Router {
	return service.NewRouter(profiles, client, cfg.PlatformAccountID, log)
}
