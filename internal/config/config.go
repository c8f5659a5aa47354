package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	envDevelopment = "development"

	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultCurrencySymbol = "฿"
	defaultCurrencyCode   = "THB"
	defaultUnits          = "10"
	defaultMargin         = "20"
)

// Config holds application configuration sourced from an optional .env file
// and environment variables.
type Config struct {
	Env            string
	Port           string
	DBPath         string
	LogLevel       string
	CurrencySymbol string
	CurrencyCode   string
	DefaultUnits   string
	DefaultMargin  string
	SeedDemo       bool

	// Warnings lists configuration problems worth logging at startup.
	Warnings []string
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == envDevelopment
}

// Load reads the .env file in the working directory, if any, then the
// environment. Environment variables win.
func Load() Config {
	return load(".")
}

func load(dir string) Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	// Missing file is fine; production injects real env vars.
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", envDevelopment)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CURRENCY_SYMBOL", defaultCurrencySymbol)
	v.SetDefault("CURRENCY_CODE", defaultCurrencyCode)
	v.SetDefault("DEFAULT_UNITS", defaultUnits)
	v.SetDefault("DEFAULT_MARGIN", defaultMargin)
	v.SetDefault("SEED_DEMO", false)

	cfg := Config{
		Env:            strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Port:           strings.TrimSpace(v.GetString("PORT")),
		DBPath:         strings.TrimSpace(v.GetString("DB_PATH")),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		CurrencySymbol: v.GetString("CURRENCY_SYMBOL"),
		CurrencyCode:   strings.TrimSpace(v.GetString("CURRENCY_CODE")),
		DefaultUnits:   strings.TrimSpace(v.GetString("DEFAULT_UNITS")),
		DefaultMargin:  strings.TrimSpace(v.GetString("DEFAULT_MARGIN")),
		SeedDemo:       v.GetBool("SEED_DEMO"),
	}

	if cfg.Env == "" {
		cfg.Env = envDevelopment
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.CurrencyCode == "" {
		cfg.CurrencyCode = defaultCurrencyCode
	}

	if cfg.CurrencySymbol == "" {
		cfg.Warnings = append(cfg.Warnings, "CURRENCY_SYMBOL is empty; amounts render without a symbol")
	}
	if !cfg.IsDev() && cfg.DBPath == defaultDBPath {
		cfg.Warnings = append(cfg.Warnings, "DB_PATH is not set; using "+defaultDBPath)
	}

	return cfg
}
