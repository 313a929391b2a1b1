package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/salespulse/salespulse/internal/generator"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// GeneratorConfig carries the commonly tuned generation knobs. Pools and
// segment tables stay at their stock values; see generator.DefaultConfig.
type GeneratorConfig struct {
	Customers    int     `mapstructure:"customers"`
	OrdersMin    int     `mapstructure:"orders_min"`
	OrdersMax    int     `mapstructure:"orders_max"`
	Seed         int64   `mapstructure:"seed"`
	InterestBias float64 `mapstructure:"interest_bias"`
	HistoryDays  int     `mapstructure:"history_days"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; defaults cover every key.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.salespulse/")
	v.AddConfigPath("/etc/salespulse/")

	// Enable environment variable override with SALESPULSE_ prefix
	v.SetEnvPrefix("SALESPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	gen := generator.DefaultConfig()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("generator.customers", gen.Customers)
	v.SetDefault("generator.orders_min", gen.OrdersMin)
	v.SetDefault("generator.orders_max", gen.OrdersMax)
	v.SetDefault("generator.seed", gen.Seed)
	v.SetDefault("generator.interest_bias", gen.InterestBias)
	v.SetDefault("generator.history_days", gen.HistoryDays)
}

// GeneratorSettings merges the configured overrides onto the stock
// generation parameters.
func (c *Config) GeneratorSettings() generator.Config {
	gen := generator.DefaultConfig()
	gen.Customers = c.Generator.Customers
	gen.OrdersMin = c.Generator.OrdersMin
	gen.OrdersMax = c.Generator.OrdersMax
	gen.Seed = c.Generator.Seed
	gen.InterestBias = c.Generator.InterestBias
	gen.HistoryDays = c.Generator.HistoryDays
	return gen
}
