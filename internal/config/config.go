package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string        `yaml:"env" env-default:"local"`
	StoragePath string        `yaml:"storage_path" env-required:"true"`
	RedisAddr   string        `yaml:"redis_addr" env-default:"localhost:6379"`
	LockTTL     time.Duration `yaml:"lock_ttl" env-default:"10s"`
	HTTPServer  `yaml:"http_server"`
	Calendar    `yaml:"calendar"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// Calendar controls how "today" is computed and how many bookings a view may load.
type Calendar struct {
	Timezone          string `yaml:"timezone" env-default:"Local"`
	BookingFetchLimit int    `yaml:"booking_fetch_limit" env-default:"1000"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, err
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the configured calendar timezone. "Local" and "" mean time.Local.
func (c Calendar) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}

	return time.LoadLocation(c.Timezone)
}
