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

// EnvAPIURL names the environment variable that overrides api_url.
const EnvAPIURL = "MOODLINE_API_URL"

// Config captures the settings moodline reads at startup.
type Config struct {
	APIURL         string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath = "~/.config/moodline/config.toml"
	defaultLogFile    = "~/.local/state/moodline/moodline.log"
	defaultLogLevel   = "info"
)

// Load locates and parses the moodline config, falling back to defaults when
// missing. The MOODLINE_API_URL environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{LogFile: mustExpand(defaultLogFile), LogLevel: defaultLogLevel}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
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
		APIURL                string `toml:"api_url"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.RequestTimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: request_timeout_seconds must not be negative")
	}
	cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second

	cfg.applyEnv()
	return cfg, nil
}

// WithAPIURL returns a copy of c whose APIURL is replaced when override is
// non-blank.
func (c Config) WithAPIURL(override string) Config {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		c.APIURL = trimmed
	}
	return c
}

func (c *Config) applyEnv() {
	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		c.APIURL = env
	}
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
