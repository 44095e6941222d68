package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver    string // postgres, mysql or sqlite
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string
	DBLogLevel  string

	Timezone string

	IdentityJWTSecret string
	CORSOrigins       string

	RedisURL        string
	CatalogCacheTTL time.Duration

	SchedulerEnabled bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "5000"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: normalizeDatabaseURL(getEnv("DATABASE_URL", "")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASS", "postgres"),
		DBName:      getEnv("DB_NAME", "incubator_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "incubator.db"),
		DBLogLevel:  strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),

		Timezone: getEnv("APP_TIMEZONE", "America/La_Paz"),

		IdentityJWTSecret: getEnv("IDENTITY_JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),

		RedisURL:        getEnv("REDIS_URL", ""),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),

		SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", true),
	}

	// Validate critical configuration
	if AppConfig.IdentityJWTSecret == "" {
		log.Println("Warning: IDENTITY_JWT_SECRET is empty. Bearer tokens will not be verified.")
	}
	if AppConfig.DatabaseURL == "" && AppConfig.DBDriver != "sqlite" && AppConfig.DBPassword == "postgres" {
		log.Println("Warning: Using default DB_PASS. Update it in your environment.")
	}
}

// AllowedOrigins returns the configured CORS origins as fiber expects them
func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return strings.Join(origins, ",")
}

// normalizeDatabaseURL rewrites the legacy postgres:// scheme some hosts still hand out
func normalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

// getEnvDuration accepts Go durations ("90s", "10m") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return time.Duration(getEnvInt(key, int(defaultValue/time.Second))) * time.Second
}
