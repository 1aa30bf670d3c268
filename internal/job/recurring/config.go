package recurring

import "time"

// Config controls the recurring job scheduler loop.
type Config struct {
	Lookback     time.Duration
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Lookback:     24 * time.Hour,
		PollInterval: 1 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Lookback <= 0 {
		c.Lookback = defaults.Lookback
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	return c
}
