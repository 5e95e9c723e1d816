package config

import (
	"strings"
	"sync"
	"time"
)

// BackendConfig points at the remote CV service that parses, indexes and
// searches the uploaded files.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

var (
	backendConfig *BackendConfig
	backendOnce   sync.Once
)

func LoadBackendConfig() *BackendConfig {
	backendOnce.Do(func() {
		backendConfig = &BackendConfig{
			BaseURL: strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", "30s"),
		}
	})
	return backendConfig
}
