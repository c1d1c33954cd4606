package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process-wide settings read once at startup.
type Config struct {
	Port           string
	DBDriver       string
	DBURL          string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	CORSOrigins    []string
}

var C Config

// Load reads the configuration from environment variables and stores it in C.
func Load() Config {
	ttlMinutes := 30
	if v := os.Getenv("ACCESS_TOKEN_TTL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlMinutes = n
		}
	}

	C = Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBURL:          getEnv("DB_URL", "famnotes.db"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
	}
	return C
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
