package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	TelegramToken          string        `env:"TELEGRAM_TOKEN,required"`
	TelegramBaseURL        url.URL       `env:"TELEGRAM_BASE_URL" envDefault:"https://api.telegram.org"`
	TelegramRequestTimeout time.Duration `env:"TELEGRAM_REQUEST_TIMEOUT" envDefault:"5s"`
	TelegramPollerTimeout  time.Duration `env:"TELEGRAM_POLLER_TIMEOUT" envDefault:"10s"`

	// Timezone is the fixed zone every wall-clock input is interpreted in.
	Timezone string `env:"TIMEZONE" envDefault:"Asia/Samarkand"`

	HTTPAddress string `env:"HTTP_ADDRESS" envDefault:":8080"`

	CreateReminderLimitPerMinute uint16 `env:"CREATE_REMINDER_LIMIT_PER_MINUTE" envDefault:"10"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE value: %w", err)
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
