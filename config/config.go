package config

import (
	"github.com/spf13/viper"

	"github.com/moyu-x/dupe-finder/internal"
)

type Config struct {
	Engine struct {
		SampleBytes int `mapstructure:"sample_bytes"`
		Workers     int
	}
	Scanner struct {
		IncludeHidden bool `mapstructure:"include_hidden"`
		Include       string
		Exclude       string
	}
	History struct {
		Path     string
		Disabled bool
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.dupe-finder")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/dupe-finder")

	viper.SetDefault("engine.sample_bytes", internal.DefaultSampleSize)
	viper.SetDefault("engine.workers", internal.DefaultWorkers)
	viper.SetDefault("scanner.include_hidden", false)
	viper.SetDefault("history.path", internal.DefaultHistoryPath)
	viper.SetDefault("history.disabled", false)
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
