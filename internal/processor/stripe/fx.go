package stripe

import (
	"go.uber.org/fx"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
)

var Module = fx.Module("processor.stripe",
	fx.Provide(
		NewClient,
		func(c *Client) processor.Client { return c },
		func(c *Client) processor.EventVerifier { return c },
	),
)
