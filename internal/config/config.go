// Package config loads the service configuration from an optional .env file,
// an optional config.yaml and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Store     string
	HTTP      HTTP
	Log       Log
	Database  Database
	Redis     Redis
	Auth      Auth
	RateLimit RateLimit
	Alerts    Alerts
	Kafka     Kafka
	Seed      Seed

	LowStockDefaultThreshold int
}

type HTTP struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy      bool
}

func (h HTTP) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrateOnStart  bool
}

// Redis is optional. With an empty Addr the refresh-token and ban stores
// fall back to process memory.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Auth struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type RateLimit struct {
	RPS             float64
	Burst           int
	VisitorTTL      time.Duration
	CleanupInterval time.Duration
	MaxStrikes      int
	StrikeWindow    time.Duration
	BanDuration     time.Duration
}

type Alerts struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
	To           []string
	ExpoPushURL  string
}

// EmailEnabled reports whether enough SMTP settings are present to send mail.
func (a Alerts) EmailEnabled() bool {
	return a.SMTPHost != "" && a.From != "" && len(a.To) > 0
}

type Kafka struct {
	Addresses []string
	Topic     string
}

func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0 && k.Topic != ""
}

type Seed struct {
	OnStart       bool
	AdminEmail    string
	AdminPassword string
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", StorePostgres)
	v.SetDefault("http_port", 8080)
	v.SetDefault("http_read_timeout", 10*time.Second)
	v.SetDefault("http_write_timeout", 15*time.Second)
	v.SetDefault("http_shutdown_timeout", 10*time.Second)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("cors_allowed_origins", "*")

	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "JSON")
	v.SetDefault("log_add_source", false)

	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 30*time.Minute)
	v.SetDefault("migrate_on_start", true)

	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_access_ttl", 15*time.Minute)
	v.SetDefault("jwt_refresh_ttl", 7*24*time.Hour)

	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("rate_limit_visitor_ttl", 3*time.Minute)
	v.SetDefault("rate_limit_cleanup_interval", time.Minute)
	v.SetDefault("ban_max_strikes", 5)
	v.SetDefault("ban_strike_window", 10*time.Minute)
	v.SetDefault("ban_duration", 15*time.Minute)

	v.SetDefault("smtp_port", 587)
	v.SetDefault("expo_push_url", "https://exp.host/--/api/v2/push/send")

	v.SetDefault("seed_on_start", false)
	v.SetDefault("low_stock_default_threshold", 5)
}

// Load reads .env (when present), config.yaml (when present) and the
// environment. Environment variable names are the upper-cased keys, for
// example DATABASE_URL or RATE_LIMIT_RPS.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Store: strings.ToLower(v.GetString("store")),
		HTTP: HTTP{
			Port:            v.GetInt("http_port"),
			ReadTimeout:     v.GetDuration("http_read_timeout"),
			WriteTimeout:    v.GetDuration("http_write_timeout"),
			ShutdownTimeout: v.GetDuration("http_shutdown_timeout"),
			CORSOrigins:     splitList(v.GetString("cors_allowed_origins")),
			TrustProxy:      v.GetBool("trust_proxy"),
		},
		Log: Log{
			AddSource: v.GetBool("log_add_source"),
		},
		Database: Database{
			URL:             v.GetString("database_url"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			MigrateOnStart:  v.GetBool("migrate_on_start"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("jwt_secret"),
			AccessTTL:  v.GetDuration("jwt_access_ttl"),
			RefreshTTL: v.GetDuration("jwt_refresh_ttl"),
		},
		RateLimit: RateLimit{
			RPS:             v.GetFloat64("rate_limit_rps"),
			Burst:           v.GetInt("rate_limit_burst"),
			VisitorTTL:      v.GetDuration("rate_limit_visitor_ttl"),
			CleanupInterval: v.GetDuration("rate_limit_cleanup_interval"),
			MaxStrikes:      v.GetInt("ban_max_strikes"),
			StrikeWindow:    v.GetDuration("ban_strike_window"),
			BanDuration:     v.GetDuration("ban_duration"),
		},
		Alerts: Alerts{
			SMTPHost:     v.GetString("smtp_host"),
			SMTPPort:     v.GetInt("smtp_port"),
			SMTPUsername: v.GetString("smtp_username"),
			SMTPPassword: v.GetString("smtp_password"),
			From:         v.GetString("alert_from"),
			To:           splitList(v.GetString("alert_to")),
			ExpoPushURL:  v.GetString("expo_push_url"),
		},
		Kafka: Kafka{
			Addresses: splitList(v.GetString("kafka_addresses")),
			Topic:     v.GetString("kafka_topic"),
		},
		Seed: Seed{
			OnStart:       v.GetBool("seed_on_start"),
			AdminEmail:    v.GetString("admin_email"),
			AdminPassword: v.GetString("admin_password"),
		},
		LowStockDefaultThreshold: v.GetInt("low_stock_default_threshold"),
	}

	if err := cfg.Log.Level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := cfg.Log.Format.UnmarshalText([]byte(v.GetString("log_format"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	switch c.Store {
	case StorePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE %q", c.Store))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.LowStockDefaultThreshold < 0 {
		errs = append(errs, errors.New("LOW_STOCK_DEFAULT_THRESHOLD cannot be negative"))
	}
	return errors.Join(errs...)
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
