package recurring

import (
	"context"

	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
)

var Module = fx.Module("job.recurring",
	fx.Provide(DefaultConfig),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, cfg config.Config, worker *Worker) {
	if !cfg.RecurringEnabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go worker.RunForever(context.Background())
			return nil
		},
	})
}
