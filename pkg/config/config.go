package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const ConfigFileName = ".suiwal.json"

// Defaults applied when a field is absent from the config file.
const (
	DefaultAPIBaseURL     = "http://127.0.0.1:5000/api"
	DefaultTimeoutSeconds = 10
	DefaultHistoryLimit   = 50
	DefaultNoticeSeconds  = 5
	DefaultTokenDecimals  = 4
	DefaultExplorerURL    = "https://suiexplorer.com"
)

// Config holds application-wide settings.
type Config struct {
	APIBaseURL            string `json:"api_base_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	HistoryLimit          int    `json:"history_limit"`
	FaucetNoticeSeconds   int    `json:"faucet_notice_seconds"`
	TokenDecimals         int    `json:"token_decimals"`
	ExplorerURL           string `json:"explorer_url"`
}

// RequestTimeout returns the configured per-request timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func Default() Config {
	return Config{
		APIBaseURL:            DefaultAPIBaseURL,
		RequestTimeoutSeconds: DefaultTimeoutSeconds,
		HistoryLimit:          DefaultHistoryLimit,
		FaucetNoticeSeconds:   DefaultNoticeSeconds,
		TokenDecimals:         DefaultTokenDecimals,
		ExplorerURL:           DefaultExplorerURL,
	}
}

func GetConfigPath(customPath string) (string, error) {
	if customPath != "" {
		return customPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

func LoadConfigFromFile(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	return LoadConfig(f)
}

func LoadConfig(r io.Reader) (Config, error) {
	var raw struct {
		APIBaseURL            *string `json:"api_base_url"`
		APIURL                *string `json:"api_url"` // Legacy
		RequestTimeoutSeconds *int    `json:"request_timeout_seconds"`
		HistoryLimit          *int    `json:"history_limit"`
		FaucetNoticeSeconds   *int    `json:"faucet_notice_seconds"`
		TokenDecimals         *int    `json:"token_decimals"`
		ExplorerURL           *string `json:"explorer_url"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if raw.APIBaseURL != nil {
		cfg.APIBaseURL = *raw.APIBaseURL
	} else if raw.APIURL != nil {
		// Migration for legacy config
		cfg.APIBaseURL = *raw.APIURL
	}
	if raw.RequestTimeoutSeconds != nil {
		cfg.RequestTimeoutSeconds = *raw.RequestTimeoutSeconds
	}
	if raw.HistoryLimit != nil {
		cfg.HistoryLimit = *raw.HistoryLimit
	}
	if raw.FaucetNoticeSeconds != nil {
		cfg.FaucetNoticeSeconds = *raw.FaucetNoticeSeconds
	}
	if raw.TokenDecimals != nil {
		cfg.TokenDecimals = *raw.TokenDecimals
	}
	if raw.ExplorerURL != nil {
		cfg.ExplorerURL = *raw.ExplorerURL
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return fmt.Errorf("validation failed: configuration must have an API base URL")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("validation failed: request timeout must be positive")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Create a backup of the existing file
	if _, err := os.Stat(path); err == nil {
		backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read existing config for backup: %w", err)
		}
		if err := os.WriteFile(backupPath, input, 0644); err != nil {
			return fmt.Errorf("failed to write backup config: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
