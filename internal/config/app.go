package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `mapstructure:"trust_proxy"`
}

type DbServer struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Pass        string `mapstructure:"pass"`
	Name        string `mapstructure:"name"`
	MaxConns    int32  `mapstructure:"max_conns"`
	MinConns    int32  `mapstructure:"min_conns"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Storage struct {
	Driver     string `mapstructure:"driver"`
	BadgerPath string `mapstructure:"badger_path"`
}

type NBU struct {
	URL string `mapstructure:"url"`
}

type Rate struct {
	// Fallback is stored on startup when there is no rate and the NBU call fails.
	Fallback string `mapstructure:"fallback"`
}

type Scheduler struct {
	DailyAt  string `mapstructure:"daily_at"`
	Timezone string `mapstructure:"timezone"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Storage    Storage    `mapstructure:"storage"`
	NBU        NBU        `mapstructure:"nbu"`
	Rate       Rate       `mapstructure:"rate"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	RateLimit  RateLimit  `mapstructure:"rate_limit"`
	Cache      Cache      `mapstructure:"cache"`
}

// Init loads .env (when present) and the config file pointed to by CONFIG_PATH, config.yaml by default.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return Load(path)
}

// Load reads the yaml config at path and applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.trust_proxy", false)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("db_server.auto_migrate", true)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("storage.badger_path", "./data/badger")
	v.SetDefault("nbu.url", "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?valcode=EUR&json")
	v.SetDefault("rate.fallback", "40.00")
	v.SetDefault("scheduler.daily_at", "09:00")
	v.SetDefault("scheduler.timezone", "Europe/Kiev")
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("cache.max_items", 16)

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_server.trust_proxy", "HTTP_TRUST_PROXY")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.auto_migrate", "DB_AUTO_MIGRATE")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.badger_path", "BADGER_PATH")
	_ = v.BindEnv("nbu.url", "NBU_URL")
	_ = v.BindEnv("rate.fallback", "RATE_FALLBACK")
	_ = v.BindEnv("scheduler.daily_at", "SCHEDULER_DAILY_AT")
	_ = v.BindEnv("scheduler.timezone", "SCHEDULER_TIMEZONE")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverBadger:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
