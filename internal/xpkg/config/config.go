package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DB     *Postgres `yaml:"database"`
	RMQ    *RabbitMQ `yaml:"rabbitmq"`
	Alerts *Alerts   `yaml:"alerts"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQ struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	VHost    string `yaml:"vhost"`
}

// Alerts configures the delivery-alert monitor.
type Alerts struct {
	IntervalSeconds  int `yaml:"interval_seconds"`
	LookaheadMinutes int `yaml:"lookahead_minutes"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadDotEnv builds a config from environment variables with local-dev
// defaults, for running without a config.yaml.
func LoadDotEnv() *Config {
	cfg := &Config{
		DB: &Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "admin"),
			Password: getEnv("POSTGRES_PASSWORD", "admin"),
			Database: getEnv("POSTGRES_DBNAME", "elguero_db"),
		},
		RMQ: &RabbitMQ{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Alerts == nil {
		c.Alerts = &Alerts{}
	}
	if c.Alerts.IntervalSeconds <= 0 {
		c.Alerts.IntervalSeconds = 60
	}
	if c.Alerts.LookaheadMinutes <= 0 {
		c.Alerts.LookaheadMinutes = 20
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
