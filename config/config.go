package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/emzola/shelf/internal/validator"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port     int    `yaml:"port" env:"PORT"`
		Env      string `yaml:"env" env:"ENV"`
		LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	} `yaml:"server"`
	Shelf struct {
		// UserID owns every book managed through the API.
		UserID int64 `yaml:"user_id" env:"SHELF_USER_ID"`
	} `yaml:"shelf"`
	Database struct {
		DSN          string        `yaml:"dsn" env:"DSN"`
		MaxOpenConns int           `yaml:"max_open_conns" env:"MAXOPENCONNS"`
		MaxIdleConns int           `yaml:"max_idle_conns" env:"MAXIDLECONNS"`
		MaxIdleTime  time.Duration `yaml:"max_idle_time" env:"MAXIDLETIME"`
	} `yaml:"database"`
	Provider struct {
		AccessKey   string        `yaml:"access_key" env:"AMAZON_ACCESS_KEY"`
		SecretKey   string        `yaml:"secret_key" env:"AMAZON_SECRET_KEY"`
		PartnerTag  string        `yaml:"partner_tag" env:"AMAZON_PARTNER_TAG"`
		Host        string        `yaml:"host" env:"AMAZON_HOST"`
		Region      string        `yaml:"region" env:"AMAZON_REGION"`
		Marketplace string        `yaml:"marketplace" env:"AMAZON_MARKETPLACE"`
		Timeout     time.Duration `yaml:"timeout" env:"AMAZON_TIMEOUT"`
		CacheTTL    time.Duration `yaml:"cache_ttl" env:"AMAZON_CACHE_TTL"`
	} `yaml:"provider"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS"`
		Burst   int     `yaml:"burst" env:"BURST"`
		Enabled bool    `yaml:"enabled" env:"LENABLED"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	var cfg Config
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "info"
	cfg.Shelf.UserID = 1
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 25
	cfg.Database.MaxIdleTime = 15 * time.Minute
	cfg.Provider.Host = "webservices.amazon.co.jp"
	cfg.Provider.Region = "us-west-2"
	cfg.Provider.Marketplace = "www.amazon.co.jp"
	cfg.Provider.Timeout = 10 * time.Second
	cfg.Provider.CacheTTL = 30 * time.Minute
	cfg.Limiter.RPS = 4
	cfg.Limiter.Burst = 8
	cfg.Limiter.Enabled = true
	return cfg
}

// Decode builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty or the file does not exist) and finally the
// environment.
func Decode(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		err := decodeFile(path, &cfg)
		if err != nil {
			return Config{}, err
		}
	}
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values the server cannot start without.
func (c Config) Validate() error {
	v := validator.New()
	v.Check(validator.Between(c.Server.Port, 1, 65535), "server.port", "must be between 1 and 65535")
	v.Check(validator.In(c.Server.Env, "development", "staging", "production"), "server.env", "must be development, staging or production")
	v.Check(validator.In(c.Server.LogLevel, "info", "error", "fatal", "off"), "server.log_level", "must be info, error, fatal or off")
	v.Check(c.Shelf.UserID > 0, "shelf.user_id", "must be a positive integer")
	v.Check(c.Provider.Timeout > 0, "provider.timeout", "must be positive")
	if c.ProviderEnabled() {
		v.Check(c.Provider.SecretKey != "", "provider.secret_key", "must be provided with an access key")
		v.Check(c.Provider.PartnerTag != "", "provider.partner_tag", "must be provided with an access key")
	}
	if c.Limiter.Enabled {
		v.Check(c.Limiter.RPS > 0, "limiter.rps", "must be positive")
		v.Check(c.Limiter.Burst > 0, "limiter.burst", "must be positive")
	}
	if !v.Valid() {
		return fmt.Errorf("invalid configuration: %s", v.String())
	}
	return nil
}

// ProviderEnabled reports whether product metadata lookups go to the
// Product Advertising API rather than returning placeholder details.
func (c Config) ProviderEnabled() bool {
	return c.Provider.AccessKey != ""
}

// CoverStorageEnabled reports whether cover uploads to S3 are configured.
func (c Config) CoverStorageEnabled() bool {
	return c.S3.Bucket != ""
}
