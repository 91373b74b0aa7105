package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log         Logger      `mapstructure:"logger"`
	API         API         `mapstructure:"api"`
	BacktestAPI BacktestAPI `mapstructure:"backtest_api"`
	Cache       Cache       `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port             int           `mapstructure:"port"`
	RequestPerSecond float64       `mapstructure:"request_per_second"`
	Burst            int           `mapstructure:"burst"`
	RateLimitExpire  time.Duration `mapstructure:"rate_limit_expire"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

// BacktestAPI configures the external backtest backend and the fan-out against it.
type BacktestAPI struct {
	BaseURL                 string        `mapstructure:"base_url"`
	ResultPath              string        `mapstructure:"result_path"`
	HealthPath              string        `mapstructure:"health_path"`
	Timeout                 time.Duration `mapstructure:"timeout"`
	RetryCount              int           `mapstructure:"retry_count"`
	RetryWaitTime           time.Duration `mapstructure:"retry_wait_time"`
	MaxRequestPerMin        int           `mapstructure:"max_request_per_min"`
	MaxUserRequestPerMin    int           `mapstructure:"max_user_request_per_min"`
	UserLimiterIdle         time.Duration `mapstructure:"user_limiter_idle"`
	MaxConcurrency          int           `mapstructure:"max_concurrency"`
	AggregateTimeout        time.Duration `mapstructure:"aggregate_timeout"`
	MaxStrategiesPerRequest int           `mapstructure:"max_strategies_per_request"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	ResultExpiration  time.Duration `mapstructure:"result_expiration"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.request_per_second", 10)
	v.SetDefault("api.burst", 30)
	v.SetDefault("api.rate_limit_expire", 3*time.Minute)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)

	v.SetDefault("backtest_api.result_path", "/backtest/result")
	v.SetDefault("backtest_api.health_path", "/health")
	v.SetDefault("backtest_api.timeout", 30*time.Second)
	v.SetDefault("backtest_api.retry_count", 2)
	v.SetDefault("backtest_api.retry_wait_time", 500*time.Millisecond)
	v.SetDefault("backtest_api.max_request_per_min", 120)
	v.SetDefault("backtest_api.max_user_request_per_min", 60)
	v.SetDefault("backtest_api.user_limiter_idle", 10*time.Minute)
	v.SetDefault("backtest_api.max_concurrency", 5)
	v.SetDefault("backtest_api.aggregate_timeout", time.Minute)
	v.SetDefault("backtest_api.max_strategies_per_request", 20)

	v.SetDefault("cache.default_expiration", 30*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.result_expiration", 30*time.Minute)
}

// Load reads config.yaml from the working directory (or configPath when given),
// an optional .env file, and environment variables such as BACKTEST_API_BASE_URL.
func Load(configPath ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BacktestAPI.BaseURL == "" {
		return fmt.Errorf("backtest_api.base_url is required")
	}
	if c.BacktestAPI.MaxConcurrency <= 0 {
		return fmt.Errorf("backtest_api.max_concurrency must be positive, got %d", c.BacktestAPI.MaxConcurrency)
	}
	if c.API.Port <= 0 {
		return fmt.Errorf("api.port must be positive, got %d", c.API.Port)
	}
	return nil
}
