package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		OutputSize int    `yaml:"output_size"`
	} `yaml:"data_source"`
	Storage struct {
		HistoryDir      string `yaml:"history_dir"`
		PredictionsFile string `yaml:"predictions_file"`
		SQLitePath      string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Mail struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"mail"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Pipeline struct {
		FetchConcurrency int `yaml:"fetch_concurrency"`
	} `yaml:"pipeline"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TWELVEDATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = port
		}
	}
	if v := os.Getenv("SMTP_EMAIL"); v != "" {
		cfg.Mail.Username = v
		if cfg.Mail.From == "" {
			cfg.Mail.From = v
		}
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.twelvedata.com/time_series"
	}
	if cfg.DataSource.OutputSize == 0 {
		cfg.DataSource.OutputSize = 60
	}
	if cfg.Storage.HistoryDir == "" {
		cfg.Storage.HistoryDir = "data/historical"
	}
	if cfg.Storage.PredictionsFile == "" {
		cfg.Storage.PredictionsFile = "data/predictions/predictions.csv"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/stockseer.db"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 465
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 7 * * *"
	}
	if cfg.Pipeline.FetchConcurrency == 0 {
		cfg.Pipeline.FetchConcurrency = 4
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Mail.Host == "" {
		return fmt.Errorf("mail.host is required")
	}
	if c.Mail.From == "" {
		return fmt.Errorf("mail.from is required")
	}
	if c.DataSource.OutputSize < 2 {
		return fmt.Errorf("data_source.output_size must be at least 2")
	}
	if c.Pipeline.FetchConcurrency <= 0 {
		return fmt.Errorf("pipeline.fetch_concurrency must be positive")
	}
	return nil
}
