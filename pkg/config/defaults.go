// Package config provides centralized default values for the Dreamers app
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loading configuration overrides from .env file...")
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseFloat(valStr, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%g (default: %g)", key, val, defaultValue)
			}
			return val
		}
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

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Store Configuration
	StoreDriver string
	StorePath   string

	// Session Configuration
	JWTSecret  string
	SessionTTL time.Duration

	// Progress Configuration
	CategoryCapacity int
	MembershipWeight float64

	// Notification Configuration
	NotifyInbox   string
	EmailFrom     string
	EmailFromName string

	// Geolocation Configuration
	GeoLookupURL     string
	GeoLookupTimeout time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Store
	StoreDriver = getEnvString("STORE_DRIVER", "sqlite3")
	StorePath = getEnvString("STORE_PATH", "dreamers.db")

	// Sessions
	JWTSecret = getEnvString("JWT_SECRET", "dreamers-dev-secret")
	SessionTTL = getEnvDuration("SESSION_TTL", 168*time.Hour)

	// Progress
	CategoryCapacity = getEnvInt("CATEGORY_CAPACITY", 10)
	if CategoryCapacity < 1 {
		log.Printf("Config override: CATEGORY_CAPACITY=%d is below 1, using 1", CategoryCapacity)
		CategoryCapacity = 1
	}
	MembershipWeight = getEnvFloat("MEMBERSHIP_WEIGHT", 0.5)

	// Notifications
	NotifyInbox = getEnvString("NOTIFY_INBOX", "reports@dreamers.local")
	EmailFrom = getEnvString("EMAIL_FROM", "noreply@dreamers.local")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "Dreamers")

	// Geolocation
	GeoLookupURL = getEnvString("GEO_LOOKUP_URL", "https://ipapi.co/json/")
	GeoLookupTimeout = getEnvDuration("GEO_LOOKUP_TIMEOUT", 5*time.Second)
}
