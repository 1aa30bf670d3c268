package audit

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/repository"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/service"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
