package notify

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
)

var Module = fx.Module("notify",
	fx.Provide(provideNotifier),
)

func provideNotifier(cfg config.Config, log *zap.Logger) Notifier {
	if cfg.SMSWebhookURL == "" {
		return NoopNotifier{}
	}
	return NewWebhookNotifier(cfg.SMSWebhookURL, log)
}
