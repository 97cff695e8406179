package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// DefaultUserAgent is the default User-Agent string sent with all catalog requests.
const DefaultUserAgent = "ShowFinder/1.0 (+https://github.com/Belphemur/ShowFinder)"

// DefaultCatalogDomain is the base URL of the TVMaze API.
const DefaultCatalogDomain = "https://api.tvmaze.com"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	CatalogDomain         string `mapstructure:"catalog_domain"`
	DefaultImageURL       string `mapstructure:"default_image_url"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m"
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Session struct {
		Size int    `mapstructure:"size"` // Maximum number of live pages
		TTL  string `mapstructure:"ttl"`  // Go duration string like "30m"
	} `mapstructure:"session"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "LOG_LEVEL")

	// Every key needs a default so AutomaticEnv can override it during Unmarshal
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("catalog_domain", DefaultCatalogDomain)
	v.SetDefault("default_image_url", models.DefaultImageURL)
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("session.size", 1024)
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("log_level", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.DefaultImageURL == "" {
		config.DefaultImageURL = models.DefaultImageURL
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
