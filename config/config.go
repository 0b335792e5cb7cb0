package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Env      string `yaml:"env" env:"GO_ENV" env-default:"development"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Local"`

	StorageDriver   string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"memory"`
	TasksCollection string `yaml:"tasks_collection" env:"TASKS_COLLECTION" env-default:"tasks"`
	PostgresDSN     string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	RedisURL        string `yaml:"redis_url" env:"REDIS_URL"`

	Database DatabaseConfig `yaml:"mongo"`

	JWTSecretKey      string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	JWTExpirationTime time.Duration `yaml:"jwt_expiration_time" env:"JWT_EXPIRATION_TIME" env-default:"24h"`

	NoticeTTL      time.Duration `yaml:"notice_ttl" env:"NOTICE_TTL" env-default:"2s"`
	CelebrationTTL time.Duration `yaml:"celebration_ttl" env:"CELEBRATION_TTL" env-default:"3s"`

	SeedFile string `yaml:"seed_file" env:"SEED_FILE"`
}

// Load reads configPath when it exists and then applies the environment on
// top. A .env file in the working directory is loaded first if present.
func Load(configPath string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return cfg, fmt.Errorf("read config %q: %w", configPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("MONGO_URI is required for the mongo driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Clock returns time.Now in the configured zone.
func (c Config) Clock() (func() time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}
