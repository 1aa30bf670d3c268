package job

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/repository"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/service"
)

var Module = fx.Module("job.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
