package config

import (
	"sync"
	"time"
)

type SessionConfig struct {
	CookieName    string
	LoginPath     string
	CookieTTL     time.Duration
	SweepInterval time.Duration
}

var (
	sessionConfig *SessionConfig
	sessionOnce   sync.Once
)

func LoadSessionConfig() *SessionConfig {
	sessionOnce.Do(func() {
		sessionConfig = &SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "token"),
			LoginPath:     getEnv("SESSION_LOGIN_PATH", "/login"),
			CookieTTL:     getEnvAsDuration("SESSION_COOKIE_TTL", "24h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1m"),
		}
	})
	return sessionConfig
}
