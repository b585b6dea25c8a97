package config

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rookgm/lunchorder/internal/eligibility"
	"github.com/rookgm/lunchorder/internal/models"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultLogLevel      = "debug"
	defaultTokenKey      = "f53ac685bbceebd75043e6be2e06ee07"
	defaultTimezone      = "Asia/Tokyo"
	defaultCutoff        = "08:10"
	defaultRateLimit     = "60-M"

	defaultPrice        = 650
	defaultSubsidy      = 230
	defaultMonthlyLimit = 3780
)

type Config struct {
	ServerAddr    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	LogLevel      string `env:"LOG_LEVEL"`
	TokenKey      string `env:"AUTH_TOKEN_KEY"`
	Timezone      string `env:"LUNCH_TIMEZONE"`
	Cutoff        string `env:"LUNCH_CUTOFF"`
	WindowDays    int    `env:"LUNCH_WINDOW_DAYS"`
	RateLimit     string `env:"TOGGLE_RATE_LIMIT"`
	AdminLogin    string `env:"ADMIN_LOGIN"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// lunch_config is seeded with these on first start only
	DefaultPrice   int64 `env:"LUNCH_DEFAULT_PRICE"`
	DefaultSubsidy int64 `env:"LUNCH_DEFAULT_SUBSIDY"`
	DefaultLimit   int64 `env:"LUNCH_DEFAULT_LIMIT"`
}

var (
	once      sync.Once
	singleton *Config
	errLoad   error
)

// New returns new Config. It parses command line and environment variables only once.
// Commands with own flags must register them on flag.CommandLine before calling New.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{
			DefaultPrice:   defaultPrice,
			DefaultSubsidy: defaultSubsidy,
			DefaultLimit:   defaultMonthlyLimit,
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "lunch order server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "lunch order database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.StringVar(&cfg.TokenKey, "k", defaultTokenKey, "auth token key, hex encoded")
		flag.StringVar(&cfg.Timezone, "tz", defaultTimezone, "time zone of the order cutoff")
		flag.StringVar(&cfg.Cutoff, "cutoff", defaultCutoff, "same day order cutoff, HH:MM")
		flag.IntVar(&cfg.WindowDays, "window", eligibility.DefaultWindowDays, "number of editable days, Sundays excluded")
		flag.StringVar(&cfg.RateLimit, "rate", defaultRateLimit, "order mutation rate limit per client, e.g. 60-M")

		flag.Parse()

		// .env file is optional
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errLoad = fmt.Errorf("load .env: %w", err)
			return
		}

		// if environment variable is set, then using it
		if err := env.Parse(&cfg); err != nil {
			errLoad = fmt.Errorf("parse environment: %w", err)
			return
		}

		singleton = &cfg
	})

	return singleton, errLoad
}

// Policy builds ordering eligibility policy from time zone, cutoff and window
func (c *Config) Policy() (eligibility.Policy, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return eligibility.Policy{}, fmt.Errorf("load time zone %q: %w", c.Timezone, err)
	}

	cutoff, err := eligibility.ParseCutoff(c.Cutoff)
	if err != nil {
		return eligibility.Policy{}, err
	}

	return eligibility.NewPolicy(c.WindowDays, cutoff, loc)
}

// AuthTokenKey returns decoded auth token key
func (c *Config) AuthTokenKey() ([]byte, error) {
	key, err := hex.DecodeString(c.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("decode token key: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("token key is empty")
	}
	return key, nil
}

// DefaultLunchConfig returns lunch config used when none is stored yet
func (c *Config) DefaultLunchConfig() models.LunchConfig {
	return models.LunchConfig{
		Price:        c.DefaultPrice,
		Subsidy:      c.DefaultSubsidy,
		MonthlyLimit: c.DefaultLimit,
	}
}

// HasAdmin reports whether admin account should be provisioned
func (c *Config) HasAdmin() bool {
	return c.AdminLogin != "" && c.AdminPassword != ""
}
