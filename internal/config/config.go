package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	LogLevel        string
	LogFormat       string
	CurrencySymbol  string
	RateLimit       limiter.Rate
	ShutdownTimeout time.Duration
	BcryptCost      int
}

// Load 依序讀取預設值、.env 檔與環境變數（後者覆蓋前者）。
// .env 不存在時忽略。
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CURRENCY_SYMBOL", "Nu.")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("BCRYPT_COST", 10)
	v.AutomaticEnv()

	rate, err := limiter.NewRateFromFormatted(v.GetString("RATE_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", v.GetString("RATE_LIMIT"), err)
	}

	timeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v.GetString("SHUTDOWN_TIMEOUT"), err)
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		CurrencySymbol:  v.GetString("CURRENCY_SYMBOL"),
		RateLimit:       rate,
		ShutdownTimeout: timeout,
		BcryptCost:      v.GetInt("BCRYPT_COST"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}

// Addr 回傳 http.Server 使用的監聽位址。
func (c *Config) Addr() string {
	return ":" + c.Port
}
