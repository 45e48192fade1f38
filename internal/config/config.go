package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig   `toml:"server"`
	Logs           LogsConfig     `toml:"logs"`
	Metrics        MetricsConfig  `toml:"metrics"`
	BookingService UpstreamConfig `toml:"booking_service"`
	Directory      UpstreamConfig `toml:"directory"`
	Sessions       SessionsConfig `toml:"sessions"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UpstreamConfig настройки подключения к внешнему сервису
type UpstreamConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SessionsConfig настройки реестра сессий
type SessionsConfig struct {
	TTLMinutes      int `toml:"ttl_minutes"`
	CleanupInterval int `toml:"cleanup_interval"` // секунды
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.BookingService.URL == "" {
		return fmt.Errorf("config: booking_service.url is required")
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("config: directory.url is required")
	}
	if c.Sessions.TTLMinutes <= 0 {
		return fmt.Errorf("config: sessions.ttl_minutes must be positive")
	}
	if c.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("config: sessions.cleanup_interval must be positive")
	}
	return nil
}
