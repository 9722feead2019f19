package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional, Postgres export sink)
	Database DatabaseConfig

	// Redis (optional, API response cache)
	Redis RedisConfig

	// External APIs
	Futebol FutebolConfig
	LLM     LLMConfig

	// Data locations
	Data DataConfig

	// Lineup defaults
	Lineup LineupConfig

	// Export
	Export ExportConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// FutebolConfig holds api-futebol configuration
type FutebolConfig struct {
	APIKey       string
	BaseURL      string
	RateLimit    int // requests per second
	CampeonatoID int
}

// LLMConfig holds the chat-completions endpoint used for strategy narratives
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// Enabled reports whether a narrative backend is configured
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// DataConfig holds filesystem locations for raw and processed data
type DataConfig struct {
	CartolaCSVDir string
	ProcessedDir  string
	ProfilesFile  string
}

// LineupConfig holds defaults used when a request omits them
type LineupConfig struct {
	Budget    float64
	Formation string
	TopN      int
}

// ExportConfig selects where processed tables are written
type ExportConfig struct {
	Sink        string // file, postgres, dynamodb, s3
	DynamoTable string
	S3Bucket    string
	S3Prefix    string
	AWSRegion   string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			TTL:      getEnvAsDuration("CACHE_TTL", "10m"),
		},

		// External APIs
		Futebol: FutebolConfig{
			APIKey:       getEnv("FUTEBOL_API_KEY", ""),
			BaseURL:      getEnv("FUTEBOL_BASE_URL", "https://api.api-futebol.com.br/v1"),
			RateLimit:    getEnvAsInt("FUTEBOL_RATE_LIMIT", 5),
			CampeonatoID: getEnvAsInt("CAMPEONATO_ID", 10),
		},

		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
		},

		Data: DataConfig{
			CartolaCSVDir: getEnv("CARTOLA_CSV_DIR", "data/raw/cartola/rodadas"),
			ProcessedDir:  getEnv("PROCESSED_DIR", "data/processed"),
			ProfilesFile:  getEnv("PROFILES_FILE", ""),
		},

		Lineup: LineupConfig{
			Budget:    getEnvAsFloat("DEFAULT_BUDGET", 150),
			Formation: getEnv("DEFAULT_FORMATION", "4-3-3"),
			TopN:      getEnvAsInt("DEFAULT_TOP_N", 5),
		},

		Export: ExportConfig{
			Sink:        getEnv("EXPORT_SINK", "file"),
			DynamoTable: getEnv("DYNAMO_TABLE", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Prefix:    getEnv("S3_PREFIX", "processed"),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Lineup.Budget <= 0 {
		return fmt.Errorf("DEFAULT_BUDGET must be positive")
	}

	switch c.Export.Sink {
	case "file":
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when EXPORT_SINK=postgres")
		}
	case "dynamodb":
		if c.Export.DynamoTable == "" {
			return fmt.Errorf("DYNAMO_TABLE is required when EXPORT_SINK=dynamodb")
		}
	case "s3":
		if c.Export.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when EXPORT_SINK=s3")
		}
	default:
		return fmt.Errorf("EXPORT_SINK must be one of: file, postgres, dynamodb, s3")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
