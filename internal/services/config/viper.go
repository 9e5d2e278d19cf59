package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/ports"
)

const (
	defaultAPIKey  = "54fc20b1"
	defaultBaseURL = "https://www.omdbapi.com/"
)

type ViperConfigService struct {
	v *viper.Viper
	// defaultPath is where a missing config file is created.
	defaultPath string
}

// NewViperConfigService looks for config.yml in the user config directory
// and the working directory. Values can be overridden with POPCORN_*
// environment variables and with the flags registered on fs.
func NewViperConfigService(fs *pflag.FlagSet) ports.ConfigService {
	v := viper.New()
	defaultPath := filepath.Join(".", "config.yml")

	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Could not find user config directory, using current directory")
	}

	if configDir != "" {
		popcornConfigDir := filepath.Join(configDir, "popcorn")
		if err := os.MkdirAll(popcornConfigDir, 0755); err != nil {
			logger.Log.Error().Err(err).Msg("Could not create popcorn config directory")
		} else {
			v.AddConfigPath(popcornConfigDir)
			defaultPath = filepath.Join(popcornConfigDir, "config.yml")
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("popcorn")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		bindFlags(v, fs)
	}

	return &ViperConfigService{v: v, defaultPath: defaultPath}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("apiKey", defaultAPIKey)
	v.SetDefault("baseURL", defaultBaseURL)
	v.SetDefault("minQueryLength", 3)
	v.SetDefault("maxRating", 10)
	v.SetDefault("requestTimeout", 10*time.Second)
	v.SetDefault("rateLimit", 5.0)
	v.SetDefault("rateBurst", 5)
	v.SetDefault("cacheSize", 128)
	v.SetDefault("demo", false)
	v.SetDefault("metricsAddr", "")
	v.SetDefault("logLevel", "info")
}

// writeDefaults creates the config file from the defaults alone, so flag
// and environment overrides of this run are not persisted.
func writeDefaults(path string) error {
	d := viper.New()
	setDefaults(d)
	return d.SafeWriteConfigAs(path)
}

// Flags registers the command line overrides understood by the config
// service.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("popcorn", pflag.ContinueOnError)
	fs.String("api-key", "", "OMDb API key")
	fs.String("base-url", "", "OMDb endpoint")
	fs.Bool("demo", false, "Start with sample watched movies")
	fs.String("metrics-addr", "", "Address for the prometheus /metrics listener")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	return fs
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	bindings := map[string]string{
		"apiKey":      "api-key",
		"baseURL":     "base-url",
		"demo":        "demo",
		"metricsAddr": "metrics-addr",
		"logLevel":    "log-level",
	}
	for key, name := range bindings {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				logger.Log.Warn().Err(err).Str("flag", name).Msg("Could not bind flag")
			}
		}
	}
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := s.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.Log.Info().Msg("Config file not found, creating with default values.")
			if err := writeDefaults(s.defaultPath); err != nil {
				logger.Log.Warn().Err(err).Str("path", s.defaultPath).Msg("Could not write default config file")
			}
		} else {
			return cfg, err
		}
	}

	if err := s.v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.APIKey == "" {
		return cfg, errors.New("config: apiKey is required")
	}
	if cfg.MinQueryLength < 1 {
		cfg.MinQueryLength = 1
	}
	if cfg.MaxRating < 1 {
		cfg.MaxRating = 10
	}

	return cfg, nil
}
