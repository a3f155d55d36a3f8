package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	App        AppConfig
	Settlement SettlementConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret string
}

// SettlementConfig holds the point table and settlement policy flags.
// Magnitudes live here, not in code, so the point economy can be tuned
// without a redeploy of the scoring logic.
type SettlementConfig struct {
	WinLosePoints     int64
	MVPTypePoints     int64
	MVPPositionPoints int64
	// LikeShareRatio is the fraction of an author's total that each liker
	// of the goll receives (rounded to whole points).
	LikeShareRatio decimal.Decimal
	// CutoffAtResult excludes golls created after the game result was
	// confirmed. Product has not finalized the late-entry rule, so it is
	// a flag rather than an implicit timestamp comparison.
	CutoffAtResult bool
	// IncludeHidden lets moderated-out golls participate in settlement.
	// Moderation state is read at each run, not frozen at first settlement.
	IncludeHidden bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	likeRatio, err := decimal.NewFromString(getEnv("LIKE_SHARE_RATIO", "0.1"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIKE_SHARE_RATIO: %w", err)
	}

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "playerslog"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Settlement: SettlementConfig{
			WinLosePoints:     getEnvInt64("WIN_LOSE_POINTS", 100),
			MVPTypePoints:     getEnvInt64("MVP_TYPE_POINTS", 50),
			MVPPositionPoints: getEnvInt64("MVP_POSITION_POINTS", 30),
			LikeShareRatio:    likeRatio,
			CutoffAtResult:    getEnvBool("SETTLE_CUTOFF_AT_RESULT", true),
			IncludeHidden:     getEnvBool("SETTLE_INCLUDE_HIDDEN", false),
		},
	}

	// Validate required fields
	if config.App.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if config.Settlement.LikeShareRatio.IsNegative() || config.Settlement.LikeShareRatio.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("LIKE_SHARE_RATIO must be between 0 and 1")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
