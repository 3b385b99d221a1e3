package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Lucky draw rules and admin credential
	Draw DrawConfig

	// Booth catalog override
	BoothsFile string

	// Logging
	LogLevel string

	// External services
	Announce AnnounceConfig
	Kafka    KafkaConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	SessionTTL  time.Duration
	DrawLockTTL time.Duration
	CacheTTL    time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	JWTExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	StampRequests   int           `json:"stamp_requests"`
	AdminRequests   int           `json:"admin_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// DrawConfig holds the lucky draw rules
type DrawConfig struct {
	MinStamps          int
	DefaultWinnerCount int
	AdminPassword      string
	DefaultTeams       []string
}

// AnnounceConfig holds the winner announcement generator configuration
type AnnounceConfig struct {
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	Timeout        time.Duration
}

// KafkaConfig holds draw event publishing configuration
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	DrawEventsTopic string
}

// DefaultTeams is the team list used until an admin edits it
var DefaultTeams = []string{"CMG", "OE", "Finance", "Digital Governance", "POD", "Legal"}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "stampcard_db"),
			User:     getEnv("DB_USER", "stampcard_user"),
			Password: getEnv("DB_PASSWORD", "stampcard_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SessionTTL:  getDurationEnv("REDIS_SESSION_TTL", 24*time.Hour),
			DrawLockTTL: getDurationEnv("REDIS_DRAW_LOCK_TTL", defaultDrawLockTTL),
			CacheTTL:    getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 12*time.Hour),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			AuthRequests:    getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			StampRequests:   getIntEnv("RATE_LIMIT_STAMP_REQUESTS", 30),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 300),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 600),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Lucky draw
		Draw: DrawConfig{
			MinStamps:          getNonNegativeIntEnv("MIN_STAMPS_FOR_LUCKY_DRAW", 6),
			DefaultWinnerCount: getIntEnv("DEFAULT_WINNER_COUNT", 5),
			AdminPassword:      getEnv("ADMIN_PASSWORD", "admin"),
			DefaultTeams:       getStringSliceEnv("DEFAULT_TEAMS", DefaultTeams),
		},

		BoothsFile: getEnv("BOOTHS_FILE", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Winner announcement
		Announce: AnnounceConfig{
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiEndpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout:        getDurationEnv("ANNOUNCE_TIMEOUT", defaultAnnounceTimeout),
		},

		// Kafka
		Kafka: KafkaConfig{
			Enabled:         getBoolEnv("KAFKA_ENABLED", false),
			Brokers:         getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			DrawEventsTopic: getEnv("DRAW_EVENTS_TOPIC", "lucky-draw-events"),
		},
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port
	if cfg.Redis.DrawLockTTL <= 0 {
		cfg.Redis.DrawLockTTL = defaultDrawLockTTL
	}
	cfg.Announce.Timeout = clampAnnounceTimeout(cfg.Announce.Timeout, cfg.Redis.DrawLockTTL)

	return cfg
}

const (
	defaultDrawLockTTL     = 2 * time.Minute
	defaultAnnounceTimeout = 15 * time.Second
)

// clampAnnounceTimeout keeps the announcement call strictly inside the draw
// lock: a draw still waiting on the generator must not outlive its lock.
func clampAnnounceTimeout(timeout, lockTTL time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = defaultAnnounceTimeout
	}
	if half := lockTTL / 2; timeout >= half {
		timeout = max(half, time.Millisecond)
	}
	return timeout
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getNonNegativeIntEnv is getIntEnv that also rejects negative values
func getNonNegativeIntEnv(key string, fallback int) int {
	if v := getIntEnv(key, fallback); v >= 0 {
		return v
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
