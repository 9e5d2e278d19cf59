package domain

import "time"

type Config struct {
	APIKey         string        `mapstructure:"apiKey"`
	BaseURL        string        `mapstructure:"baseURL"`
	MinQueryLength int           `mapstructure:"minQueryLength"`
	MaxRating      int           `mapstructure:"maxRating"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	RateLimit      float64       `mapstructure:"rateLimit"`
	RateBurst      int           `mapstructure:"rateBurst"`
	CacheSize      int           `mapstructure:"cacheSize"`
	Demo           bool          `mapstructure:"demo"`
	MetricsAddr    string        `mapstructure:"metricsAddr"`
	LogLevel       string        `mapstructure:"logLevel"`
}
