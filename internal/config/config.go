package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Classifier ClassifierConfig
	Moderation ModerationConfig
	Storage    StorageConfig
	Report     ReportConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

type ClassifierConfig struct {
	Provider       string // "gemini", "openai" or "anthropic"
	GeminiKey      string
	GeminiModel    string
	OpenAIKey      string
	OpenAIModel    string
	AnthropicKey   string
	AnthropicModel string
	Timeout        time.Duration
}

type ModerationConfig struct {
	BlacklistPath        string
	BlockUncheckedImages bool
	SexualThreshold      string // minimum probability band that vetoes
	DangerousThreshold   string
}

type StorageConfig struct {
	SupabaseURL    string
	SupabaseKey    string
	EvidenceBucket string
}

type ReportConfig struct {
	NotifyURL string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeoutSec, err := getEnvInt("CLASSIFIER_TIMEOUT_SECONDS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
			AdminRole: getEnv("ADMIN_ROLE", "admin"),
		},
		Classifier: ClassifierConfig{
			Provider:       getEnv("CLASSIFIER_PROVIDER", "gemini"),
			GeminiKey:      getEnv("GOOGLE_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", ""),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("ANTHROPIC_MODEL", ""),
			Timeout:        time.Duration(timeoutSec) * time.Second,
		},
		Moderation: ModerationConfig{
			BlacklistPath:        getEnv("BLACKLIST_PATH", ""),
			BlockUncheckedImages: getEnvBool("BLOCK_UNCHECKED_IMAGES", true),
			SexualThreshold:      getEnv("SEXUAL_VETO_THRESHOLD", "HIGH"),
			DangerousThreshold:   getEnv("DANGEROUS_VETO_THRESHOLD", "HIGH"),
		},
		Storage: StorageConfig{
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			SupabaseKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
			EvidenceBucket: getEnv("EVIDENCE_BUCKET", "moderation-evidence"),
		},
		Report: ReportConfig{
			NotifyURL: getEnv("REPORT_NOTIFY_URL", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	switch c.Classifier.Provider {
	case "gemini":
		if c.Classifier.GeminiKey == "" {
			missing = append(missing, "GOOGLE_API_KEY")
		}
	case "openai":
		if c.Classifier.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "anthropic":
		if c.Classifier.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		return fmt.Errorf("unknown CLASSIFIER_PROVIDER %q", c.Classifier.Provider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
