// Package config provides centralized default values for Malleable
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvStringList(key string, defaultValue []string) []string {
	if valStr := os.Getenv(key); valStr != "" {
		var vals []string
		for _, part := range strings.Split(valStr, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				vals = append(vals, trimmed)
			}
		}
		if len(vals) > 0 {
			log.Printf("Config override: %s=%s", key, strings.Join(vals, ","))
			return vals
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Security
	JWTSecret      string
	EditorPassword string

	// Snapshot Store
	SnapshotStoreBackend string // "bolt" or "sqlite"
	SnapshotDBPath       string
	SnapshotBucket       string

	// Preview Sessions
	PreviewTokenTTL time.Duration
	AuthTokenTTL    time.Duration

	// Edit-set cache
	EditSetCacheTTL time.Duration

	// Logging
	LogDebugChannels []string // channel names forced to debug level
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Security
	JWTSecret = getEnvString("JWT_SECRET", "")
	EditorPassword = getEnvString("EDITOR_PASSWORD", "")

	// Snapshot Store
	SnapshotStoreBackend = getEnvString("SNAPSHOT_STORE_BACKEND", "bolt")
	SnapshotDBPath = getEnvString("SNAPSHOT_DB_PATH", "data/snapshots.db")
	SnapshotBucket = getEnvString("SNAPSHOT_BUCKET", "snapshots")

	// Preview Sessions
	PreviewTokenTTL = time.Duration(getEnvInt("PREVIEW_TOKEN_TTL_HOURS", 24)) * time.Hour
	AuthTokenTTL = time.Duration(getEnvInt("AUTH_TOKEN_TTL_HOURS", 24)) * time.Hour

	// Edit-set cache
	EditSetCacheTTL = time.Duration(getEnvInt("EDITSET_CACHE_TTL_MINUTES", 15)) * time.Minute

	// Logging
	LogDebugChannels = getEnvStringList("LOG_DEBUG_CHANNELS", nil)
}
