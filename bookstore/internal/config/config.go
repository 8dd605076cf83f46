package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BOOKSTORE_"

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Admin  AdminConfig  `yaml:"admin"`
	Log    LogConfig    `yaml:"log"`
	Carts  CartsConfig  `yaml:"carts"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	Debug        bool   `yaml:"debug"`
}

type AdminConfig struct {
	User      string        `yaml:"user"`
	Password  string        `yaml:"password"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CartsConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv reads the YAML file named by BOOKSTORE_CONFIG, if any, and
// overlays the BOOKSTORE_* environment variables.
func FromEnv() (Config, error) {
	return Load(os.Getenv(envPrefix+"CONFIG"), os.LookupEnv)
}

// Load reads the YAML file at path (skipped when path is empty), applies
// variables found through lookup on top, fills defaults and validates.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []string
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, envPrefix+key+" must be an integer")
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, envPrefix+key+" must be a boolean")
				return
			}
			*dst = b
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, envPrefix+key+" must be a duration")
				return
			}
			*dst = d
		}
	}

	str("ADDR", &c.Server.Addr)
	str("DB_PATH", &c.DB.Path)
	num("DB_MAX_OPEN_CONNS", &c.DB.MaxOpenConns)
	flag("DB_DEBUG", &c.DB.Debug)
	str("ADMIN_USER", &c.Admin.User)
	str("ADMIN_PASSWORD", &c.Admin.Password)
	str("JWT_SECRET", &c.Admin.JWTSecret)
	dur("TOKEN_TTL", &c.Admin.TokenTTL)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	dur("CART_TTL", &c.Carts.TTL)
	dur("SWEEP_INTERVAL", &c.Carts.SweepInterval)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.DB.Path == "" {
		c.DB.Path = "bookstore.db"
	}
	if c.DB.MaxOpenConns == 0 {
		c.DB.MaxOpenConns = 4
	}
	if c.Admin.TokenTTL == 0 {
		c.Admin.TokenTTL = 12 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Carts.TTL == 0 {
		c.Carts.TTL = 72 * time.Hour
	}
	if c.Carts.SweepInterval == 0 {
		c.Carts.SweepInterval = 10 * time.Minute
	}
}

func (c Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Admin.User) == "" {
		errs = append(errs, "admin.user is required")
	}
	if c.Admin.Password == "" {
		errs = append(errs, "admin.password is required")
	}
	if c.Admin.JWTSecret == "" {
		errs = append(errs, "admin.jwt_secret is required")
	} else if len(c.Admin.JWTSecret) < 16 {
		errs = append(errs, "admin.jwt_secret must be at least 16 bytes")
	}
	if c.DB.MaxOpenConns < 0 {
		errs = append(errs, "db.max_open_conns must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, "log.format must be json or console")
	}
	if c.Carts.TTL < 0 || c.Carts.SweepInterval < 0 {
		errs = append(errs, "carts.ttl and carts.sweep_interval must not be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
