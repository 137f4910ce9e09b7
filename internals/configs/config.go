package configs

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Timeout semua panggilan remote: tetap 10 detik, tidak bisa diubah lewat config.
const RequestTimeout = 10 * time.Second

const (
	DefaultBaseURL       = "https://pbl6-backend.vercel.app/api"
	DefaultStorageDriver = "bolt"
	DefaultLogLevel      = "info"
	DefaultEnv           = "development"
)

var (
	ErrInvalidBaseURL       = errors.New("config: api base url must be an absolute http(s) url")
	ErrUnknownStorageDriver = errors.New("config: storage driver must be bolt or sqlite")
)

type Config struct {
	Env     string        `yaml:"env"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // bolt | sqlite
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env not found, using system environment")
	} else {
		log.Println("✅ .env loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// CONFIG
// =======================

func Default() Config {
	return Config{
		Env:     DefaultEnv,
		API:     APIConfig{BaseURL: DefaultBaseURL},
		Storage: StorageConfig{Driver: DefaultStorageDriver, Path: defaultStoragePath()},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Load: default → file YAML (kalau path tidak kosong) → override dari ENV.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Env = GetEnv("STUDENTPOINTS_ENV", cfg.Env)
	cfg.API.BaseURL = GetEnv("STUDENTPOINTS_API_BASE_URL", cfg.API.BaseURL)
	cfg.Storage.Driver = GetEnv("STUDENTPOINTS_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = GetEnv("STUDENTPOINTS_STORAGE_PATH", cfg.Storage.Path)
	cfg.Log.Level = GetEnv("STUDENTPOINTS_LOG_LEVEL", cfg.Log.Level)

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	switch c.Storage.Driver {
	case "bolt", "sqlite":
	default:
		return ErrUnknownStorageDriver
	}
	return nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".studentpoints", "device.db")
	}
	return filepath.Join(home, ".studentpoints", "device.db")
}
