package config

import (
	"log"
	"sync"
	"time"
)

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	BaseURL  string
	TimeZone *time.Location
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := getEnv("APP_ENV", "")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		tzName := getEnv("APP_TIMEZONE", "UTC")
		tz, err := time.LoadLocation(tzName)
		if err != nil {
			log.Printf("Warning: unknown APP_TIMEZONE %q, falling back to UTC", tzName)
			tz = time.UTC
		}
		appConfig = &AppConfig{
			Name:     getEnv("APP_NAME", "CV Dashboard"),
			Env:      env,
			Port:     getEnv("APP_PORT", ":3000"),
			BaseURL:  getEnv("APP_URL", "http://localhost:3000"),
			TimeZone: tz,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
