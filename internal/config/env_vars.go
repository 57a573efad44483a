package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	folderEnvVar  = "FOLDER"
	backendURLVar = "BACKEND_URL"
	apiBaseURLVar = "API_BASE_URL"
	redisURLVar   = "REDIS_URL"
	stateKeyVar   = "STATE_KEY_HEX"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Core Engine Gateway")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// BackendConfig describes how to reach the Core Engine backend.
type BackendConfig interface {
	// GetBackendBaseURL is the server-side address used by the proxy
	// endpoint (service name inside the compose network).
	GetBackendBaseURL() string
	// GetAPIBaseURL is the public-facing base URL, versioned prefix
	// included, used by the authenticated API client.
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type Backend struct{}

var _ BackendConfig = Backend{}

func (Backend) GetBackendBaseURL() string {
	return GetEnv(backendURLVar, "http://backend:8000")
}

func (Backend) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000/api/v1")
}

func (Backend) GetRequestTimeout() time.Duration {
	return 10 * time.Second
}

// StorageConfig selects the durable store backing the session state.
type StorageConfig interface {
	// GetRedisURL, when non-empty, switches session persistence to Redis.
	GetRedisURL() string
	// GetStateKeyHex, when non-empty, enables at-rest encryption of the
	// file-backed session state (hex, 64 chars -> 32 bytes).
	GetStateKeyHex() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetRedisURL() string {
	return GetEnv(redisURLVar, "")
}

func (Storage) GetStateKeyHex() string {
	return GetEnv(stateKeyVar, "")
}

// GetEnv returns the environment variable value or a default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
