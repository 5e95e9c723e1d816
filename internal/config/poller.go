package config

import (
	"sync"
	"time"
)

type PollerConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

var (
	pollerConfig *PollerConfig
	pollerOnce   sync.Once
)

func LoadPollerConfig() *PollerConfig {
	pollerOnce.Do(func() {
		pollerConfig = &PollerConfig{
			Interval:    getEnvAsDuration("POLL_INTERVAL", "2s"),
			MaxAttempts: getEnvAsInt("POLL_MAX_ATTEMPTS", 30),
		}
	})
	return pollerConfig
}
