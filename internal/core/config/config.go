// Package config provides configuration management for querybuilder services.
package config

import (
	"fmt"
	"time"

	"github.com/solatis/querybuilder/internal/expression"
)

// Config is the complete service configuration.
type Config struct {
	Converter ConverterConfig
	Server    ServerConfig
	Database  DatabaseConfig
}

// ConverterConfig controls how expressions are written and read.
type ConverterConfig struct {
	DefaultOperator string
	Mode            expression.Mode
}

// ServerConfig holds configuration for the gRPC API service.
type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

// DatabaseConfig locates the schema store.
// URL uses sqlite://path or postgres://... (see db.Open).
type DatabaseConfig struct {
	URL string
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			DefaultOperator: expression.DefaultOperator,
			Mode:            expression.ModeStrict,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           50061,
			RequestTimeout: 30 * time.Second,
		},
	}
}

// ConverterOptions maps the converter section onto expression.Options.
func (c ConverterConfig) ConverterOptions() expression.Options {
	return expression.Options{
		DefaultOperator: c.DefaultOperator,
		Mode:            c.Mode,
	}
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
