package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"hnterm/internal/hn"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	UI      UIConfig      `mapstructure:"ui"`
	Summary SummaryConfig `mapstructure:"summary"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	StoryLimit  int           `mapstructure:"story_limit"`
	Concurrency int           `mapstructure:"concurrency"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// FetchConfig holds the orchestrator loop timings. Explicit here so the
// loading-screen cadence and the overall deadline are tunable without a
// rebuild.
type FetchConfig struct {
	Tick       time.Duration `mapstructure:"tick"`
	CancelPoll time.Duration `mapstructure:"cancel_poll"`
	Deadline   time.Duration `mapstructure:"deadline"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
	Title  string   `mapstructure:"title"`
}

type UIColors struct {
	Primary string `mapstructure:"primary"`
	Muted   string `mapstructure:"muted"`
	Text    string `mapstructure:"text"`
	Error   string `mapstructure:"error"`
}

type SummaryConfig struct {
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type KeyConfig struct {
	Quit       string `mapstructure:"quit"`
	Refresh    string `mapstructure:"refresh"`
	RefreshAll string `mapstructure:"refresh_all"`
	Search     string `mapstructure:"search"`
	Palette    string `mapstructure:"palette"`
	Menu       string `mapstructure:"menu"`
	Comments   string `mapstructure:"comments"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     hn.DefaultBaseURL,
			StoryLimit:  100,
			Concurrency: 8,
			HTTPTimeout: 30 * time.Second,
		},
		Fetch: FetchConfig{
			Tick:       16 * time.Millisecond,
			CancelPoll: 50 * time.Millisecond,
			Deadline:   30 * time.Second,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary: "#00FF41",
				Muted:   "#3E6B48",
				Text:    "#C8FFD4",
				Error:   "#F87171",
			},
			Title: "Hackertuah News",
		},
		Summary: SummaryConfig{
			Model:     "claude-3-5-haiku-latest",
			MaxTokens: 150,
		},
		Keys: KeyConfig{
			Quit:       "q",
			Refresh:    "r",
			RefreshAll: "R",
			Search:     "/",
			Palette:    "ctrl+k",
			Menu:       "o",
			Comments:   "C",
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("fetch", cfg.Fetch)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("summary", cfg.Summary)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "hnterm")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HNTERM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.Log.Path = expandPath(config.Log.Path)

	return &config, nil
}

// expandPath expands ~ to the home directory and makes the path absolute.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings for TOML readability.
	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"story_limit":  config.API.StoryLimit,
		"concurrency":  config.API.Concurrency,
		"http_timeout": config.API.HTTPTimeout.String(),
	}

	fetchCfg := map[string]interface{}{
		"tick":        config.Fetch.Tick.String(),
		"cancel_poll": config.Fetch.CancelPoll.String(),
		"deadline":    config.Fetch.Deadline.String(),
	}

	v.Set("api", apiCfg)
	v.Set("fetch", fetchCfg)
	v.Set("ui", config.UI)
	v.Set("summary", config.Summary)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// TestConfig returns the default configuration with sub-millisecond
// fetch timings, so tests never sit in real polling loops.
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Fetch = FetchConfig{
		Tick:       time.Millisecond,
		CancelPoll: time.Millisecond,
		Deadline:   time.Second,
	}
	return cfg
}
