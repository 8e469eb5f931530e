package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	StorageDriver     string
	MigrationsPath    string
	LogLevel          string

	// Treasury policy
	ApprovalThreshold  int
	RejectionThreshold int
	StrictVoting       bool
	DefaultCurrency    string

	// Settlement
	SettlementMaxAttempts int
	SettlementTimeout     time.Duration

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "family-treasury")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TREASURY_APPROVAL_THRESHOLD", 2)
	v.SetDefault("TREASURY_REJECTION_THRESHOLD", 0)
	v.SetDefault("TREASURY_STRICT_VOTING", false)
	v.SetDefault("TREASURY_CURRENCY", "NGN")
	v.SetDefault("SETTLEMENT_MAX_ATTEMPTS", 3)
	v.SetDefault("SETTLEMENT_TIMEOUT", "10s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StorageDriverMemory && cfg.StorageDriver != StorageDriverPostgres {
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StorageDriverPostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.LogLevel = v.GetString("LOG_LEVEL")

	cfg.ApprovalThreshold = v.GetInt("TREASURY_APPROVAL_THRESHOLD")
	if cfg.ApprovalThreshold < 0 {
		log.Printf("Warning: Negative TREASURY_APPROVAL_THRESHOLD (%d). Defaulting to 2.\n", cfg.ApprovalThreshold)
		cfg.ApprovalThreshold = 2
	}
	cfg.RejectionThreshold = v.GetInt("TREASURY_REJECTION_THRESHOLD")
	if cfg.RejectionThreshold < 0 {
		cfg.RejectionThreshold = 0
	}
	cfg.StrictVoting = v.GetBool("TREASURY_STRICT_VOTING")
	cfg.DefaultCurrency = strings.ToUpper(v.GetString("TREASURY_CURRENCY"))

	cfg.SettlementMaxAttempts = v.GetInt("SETTLEMENT_MAX_ATTEMPTS")
	if cfg.SettlementMaxAttempts < 1 {
		cfg.SettlementMaxAttempts = 1
	}
	cfg.SettlementTimeout = durationOr(v, "SETTLEMENT_TIMEOUT", 10*time.Second)

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	return cfg
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
