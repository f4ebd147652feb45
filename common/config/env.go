package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvLoader reads prefixed environment variables for the few settings
// that must be decided before the config file is loaded.
type EnvLoader struct {
	prefix string
}

func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

func (e *EnvLoader) GetString(key, defaultValue string) string {
	if value := os.Getenv(e.buildKey(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e *EnvLoader) GetInt(key string, defaultValue int) int {
	value := os.Getenv(e.buildKey(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// buildKey prepends the prefix: ("PLAYFIELD", "CONFIG_PATH") becomes
// PLAYFIELD_CONFIG_PATH.
func (e *EnvLoader) buildKey(key string) string {
	if e.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", e.prefix, key)
}
