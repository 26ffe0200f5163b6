package config

import (
	"fmt"
	"strings"

	"github.com/solatis/querybuilder/internal/expression"
	"github.com/solatis/querybuilder/internal/types"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching Default()
	def := Default()
	v.SetDefault("converter.default_operator", def.Converter.DefaultOperator)
	v.SetDefault("converter.mode", string(def.Converter.Mode))
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.request_timeout", def.Server.RequestTimeout.String())
	v.SetDefault("database.url", "")

	// Bind environment variables with QB_ prefix
	v.SetEnvPrefix("QB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	mode, err := expression.ParseMode(v.GetString("converter.mode"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Converter: ConverterConfig{
			DefaultOperator: v.GetString("converter.default_operator"),
			Mode:            mode,
		},
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			Port:           v.GetInt("server.port"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range, positive timeout and the default operator.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.Server.RequestTimeout)
	}
	if _, ok := expression.LookupOperator(cfg.Converter.DefaultOperator); !ok {
		return fmt.Errorf("default_operator %q: %w", cfg.Converter.DefaultOperator, types.ErrInvalidOperator)
	}
	return nil
}
