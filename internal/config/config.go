package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything matchday reads from its TOML file.
type Config struct {
	BaseURL              string
	FeedPath             string
	RequestTimeout       time.Duration
	MaxRetries           int
	ClientPlatform       string
	AppVersion           string
	Language             string
	LogFile              string
	Debug                bool
	ConnectivityCheck    bool
	ConnectivityInterval time.Duration
	ReloadOnToggle       bool
	AutoExpandSearch     bool
}

const (
	defaultConfigPath           = "~/.config/matchday/config.toml"
	defaultBaseURL              = "https://ios-kaizen.github.io"
	defaultFeedPath             = "/MockSports/sports.json"
	defaultRequestTimeout       = 15 * time.Second
	defaultMaxRetries           = 3
	defaultClientPlatform       = "terminal"
	defaultLanguage             = "en"
	defaultLogFile              = "~/.local/state/matchday/matchday.log"
	defaultConnectivityInterval = 5 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:              defaultBaseURL,
		FeedPath:             defaultFeedPath,
		RequestTimeout:       defaultRequestTimeout,
		MaxRetries:           defaultMaxRetries,
		ClientPlatform:       defaultClientPlatform,
		Language:             defaultLanguage,
		LogFile:              mustExpand(defaultLogFile),
		ConnectivityCheck:    true,
		ConnectivityInterval: defaultConnectivityInterval,
	}
}

// Load locates and parses the matchday config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL              string `toml:"base_url"`
		FeedPath             string `toml:"feed_path"`
		RequestTimeout       *int   `toml:"request_timeout_seconds"`
		MaxRetries           *int   `toml:"max_retries"`
		ClientPlatform       string `toml:"client_platform"`
		AppVersion           string `toml:"app_version"`
		Language             string `toml:"language"`
		LogFile              string `toml:"log_file"`
		Debug                bool   `toml:"debug"`
		ConnectivityCheck    *bool  `toml:"connectivity_check"`
		ConnectivityInterval *int   `toml:"connectivity_interval_seconds"`
		ReloadOnToggle       bool   `toml:"reload_on_toggle"`
		AutoExpandSearch     bool   `toml:"auto_expand_search"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = orDefault(raw.BaseURL, defaultBaseURL)
	cfg.FeedPath = orDefault(raw.FeedPath, defaultFeedPath)
	if !strings.HasPrefix(cfg.FeedPath, "/") {
		cfg.FeedPath = "/" + cfg.FeedPath
	}
	cfg.ClientPlatform = orDefault(raw.ClientPlatform, defaultClientPlatform)
	cfg.AppVersion = strings.TrimSpace(raw.AppVersion)
	cfg.Language = orDefault(raw.Language, defaultLanguage)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.Debug = raw.Debug
	cfg.ReloadOnToggle = raw.ReloadOnToggle
	cfg.AutoExpandSearch = raw.AutoExpandSearch

	if raw.RequestTimeout != nil {
		if *raw.RequestTimeout <= 0 {
			return Config{}, fmt.Errorf("request_timeout_seconds must be positive, got %d", *raw.RequestTimeout)
		}
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeout) * time.Second
	}
	if raw.MaxRetries != nil {
		if *raw.MaxRetries < 0 {
			return Config{}, fmt.Errorf("max_retries must not be negative, got %d", *raw.MaxRetries)
		}
		cfg.MaxRetries = *raw.MaxRetries
	}
	if raw.ConnectivityCheck != nil {
		cfg.ConnectivityCheck = *raw.ConnectivityCheck
	}
	if raw.ConnectivityInterval != nil {
		if *raw.ConnectivityInterval <= 0 {
			return Config{}, fmt.Errorf("connectivity_interval_seconds must be positive, got %d", *raw.ConnectivityInterval)
		}
		cfg.ConnectivityInterval = time.Duration(*raw.ConnectivityInterval) * time.Second
	}

	return cfg, nil
}

// FeedURL joins BaseURL and FeedPath.
func (c Config) FeedURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.FeedPath
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
