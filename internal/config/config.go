package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "urs"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"

	DefaultUserAgent  = "urs/dev (by u/urs-scraper)"
	DefaultScrapesDir = "scrapes"
	DefaultTimeout    = 30
)

// Config holds Reddit API credentials and where scrapes are written.
type Config struct {
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	UserAgent      string `json:"user_agent"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	ScrapesDir     string `json:"scrapes_dir"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		UserAgent:      DefaultUserAgent,
		ScrapesDir:     DefaultScrapesDir,
		TimeoutSeconds: DefaultTimeout,
	}
}

// Validate reports missing credentials needed to reach the Reddit API.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "client_secret")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		missing = append(missing, "user_agent")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing reddit credentials: %s (run `urs config init` and edit the config, or set URS_CLIENT_ID/URS_CLIENT_SECRET)", strings.Join(missing, ", "))
	}
	return nil
}

// applyEnv overrides file values with URS_* environment variables.
func applyEnv(cfg *Config) {
	cfg.ClientID = envString("URS_CLIENT_ID", cfg.ClientID)
	cfg.ClientSecret = envString("URS_CLIENT_SECRET", cfg.ClientSecret)
	cfg.UserAgent = envString("URS_USER_AGENT", cfg.UserAgent)
	cfg.Username = envString("URS_USERNAME", cfg.Username)
	cfg.Password = envString("URS_PASSWORD", cfg.Password)
	cfg.ScrapesDir = envString("URS_SCRAPES_DIR", cfg.ScrapesDir)
	cfg.TimeoutSeconds = envInt("URS_TIMEOUT", cfg.TimeoutSeconds)
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON5 config at path. A missing or empty file yields the
// defaults; environment variables are applied last.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("URS_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
