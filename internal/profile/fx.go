package profile

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/repository"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/service"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
