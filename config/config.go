package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPAddr        = ":3000"
	DefaultMaxGoals        = 20
	DefaultMaxPenWinnerLen = 80
	DefaultSessionTTL      = 30 * 24 * time.Hour
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Google        GoogleConfig        `yaml:"google"`
	Prediction    PredictionConfig    `yaml:"prediction"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL selects the in-memory bus.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AdminEmails    []string `yaml:"admin_emails"`
	SecureCookies  bool     `yaml:"secure_cookies"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// GoogleConfig holds the OAuth2 client.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// PredictionConfig caps submitted prediction values.
type PredictionConfig struct {
	MaxGoals        int `yaml:"max_goals"`
	MaxPenWinnerLen int `yaml:"max_pen_winner_len"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file falls back to the environment alone.
func LoadConfig(filename string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) || filename == "":
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if c.Google.ClientID != "" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required when Google login is enabled")
	}
	if c.Prediction.MaxGoals < 0 {
		return fmt.Errorf("prediction.max_goals must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		cfg.HTTP.AdminEmails = splitList(v)
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		cfg.HTTP.SecureCookies = v == "true"
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URL"); v != "" {
		cfg.Google.RedirectURL = v
	}
	if v := os.Getenv("PREDICTION_MAX_GOALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_MAX_GOALS value: %w", err)
		}
		cfg.Prediction.MaxGoals = n
	}
	if v := os.Getenv("PREDICTION_MAX_PEN_WINNER_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_MAX_PEN_WINNER_LEN value: %w", err)
		}
		cfg.Prediction.MaxPenWinnerLen = n
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultHTTPAddr
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = DefaultSessionTTL
	}
	if cfg.Prediction.MaxGoals == 0 {
		cfg.Prediction.MaxGoals = DefaultMaxGoals
	}
	if cfg.Prediction.MaxPenWinnerLen == 0 {
		cfg.Prediction.MaxPenWinnerLen = DefaultMaxPenWinnerLen
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "production"
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsAdminEmail reports whether email is in the admin allow-list, ignoring case.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, admin := range c.HTTP.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName: "prode",
		Environment: appCfg.Observability.Environment,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}
