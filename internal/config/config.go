package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultTokenTTL     = time.Hour
)

type Config struct {
	Server struct {
		Host                 string
		GRPCHost             string `toml:"grpc_host"`
		JWTSecret            string `toml:"jwt_secret"`
		ReadTimeout          time.Duration
		WriteTimeout         time.Duration
		ReadHeaderTimeout    time.Duration
		StrReadTimeout       string `toml:"read_timeout"`
		StrWriteTimeout      string `toml:"write_timeout"`
		StrReadHeaderTimeout string `toml:"read_header_timeout"`
	}
	Redis struct {
		Enabled       bool
		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       int    `toml:"redis_db"`
	}
	Session struct {
		StoreMode   string `toml:"store_mode"`
		Granularity string
		TokenTTL    time.Duration
		StrTokenTTL string `toml:"token_ttl"`
	}
	Log struct {
		File  string
		Level string
	}
}

// GetConfig reads the TOML file at path, then applies WORKFLOW_* environment
// overrides. A .env file next to the working directory is loaded first if present.
func GetConfig(path string, logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Error read .env file", slog.String("error", err.Error()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error read config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		logger.Error("Error decode config file", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Config is loaded", slog.String("path", path))
	return cfg, nil
}

// Parse decodes TOML data and resolves defaults and overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(cfg.Server.StrReadTimeout, defaultReadTimeout); err != nil {
		return nil, fmt.Errorf("invalid read_timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = parseDuration(cfg.Server.StrWriteTimeout, defaultWriteTimeout); err != nil {
		return nil, fmt.Errorf("invalid write_timeout: %w", err)
	}
	if cfg.Server.ReadHeaderTimeout, err = parseDuration(cfg.Server.StrReadHeaderTimeout, cfg.Server.ReadTimeout); err != nil {
		return nil, fmt.Errorf("invalid read_header_timeout: %w", err)
	}
	if cfg.Session.TokenTTL, err = parseDuration(cfg.Session.StrTokenTTL, defaultTokenTTL); err != nil {
		return nil, fmt.Errorf("invalid token_ttl: %w", err)
	}

	if cfg.Server.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	switch cfg.Session.StoreMode {
	case "":
		cfg.Session.StoreMode = "session"
	case "session", "shared":
	default:
		return nil, fmt.Errorf("invalid store_mode %q", cfg.Session.StoreMode)
	}

	if cfg.Session.Granularity == "" {
		cfg.Session.Granularity = "hms"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "server.log"
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKFLOW_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("WORKFLOW_HTTP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WORKFLOW_GRPC_HOST"); v != "" {
		cfg.Server.GRPCHost = v
	}
	if v := os.Getenv("WORKFLOW_REDIS_ADDR"); v != "" {
		cfg.Redis.RedisAddr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("WORKFLOW_REDIS_PASSWORD"); v != "" {
		cfg.Redis.RedisPassword = v
	}
	if v := os.Getenv("WORKFLOW_STORE_MODE"); v != "" {
		cfg.Session.StoreMode = v
	}
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}

	return time.ParseDuration(s)
}

// LogLevel maps the configured level name to a slog level. Unknown names mean info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}
