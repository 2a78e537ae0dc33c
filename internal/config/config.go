package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures the console settings.
type Config struct {
	APIURL      string `toml:"api_url" yaml:"api_url" envconfig:"API_URL"`
	PollSeconds int    `toml:"poll_seconds" yaml:"poll_seconds" envconfig:"POLL_SECONDS"`
	LogFile     string `toml:"log_file" yaml:"log_file" envconfig:"LOG_FILE"`
	LogLevel    string `toml:"log_level" yaml:"log_level" envconfig:"LOG_LEVEL"`
	VoucherDir  string `toml:"voucher_dir" yaml:"voucher_dir" envconfig:"VOUCHER_DIR"`
	ExportDir   string `toml:"export_dir" yaml:"export_dir" envconfig:"EXPORT_DIR"`
	PrinterAddr string `toml:"printer_addr" yaml:"printer_addr" envconfig:"PRINTER_ADDR"`
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

const (
	envPrefix          = "LOTWATCH"
	defaultConfigPath  = "~/.config/lotwatch/config.toml"
	defaultAPIURL      = "http://127.0.0.1:5000"
	defaultPollSeconds = 5
	defaultLogFile     = "~/.local/state/lotwatch/lotwatch.log"
	defaultLogLevel    = "info"
	defaultVoucherDir  = "~/.local/share/lotwatch/tickets"
	defaultExportDir   = "~/.local/share/lotwatch/reports"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:      defaultAPIURL,
		PollSeconds: defaultPollSeconds,
		LogFile:     defaultLogFile,
		LogLevel:    defaultLogLevel,
		VoucherDir:  defaultVoucherDir,
		ExportDir:   defaultExportDir,
	}
}

// Load reads the config file at path (TOML, or YAML for .yaml/.yml), falls
// back to defaults when it is missing, then applies LOTWATCH_* environment
// overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("apply environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// PollInterval returns the snapshot refresh cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, cfg)
	default:
		err = toml.Unmarshal(bytes, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	def := Default()

	c.APIURL = orDefault(c.APIURL, def.APIURL)
	if c.PollSeconds <= 0 {
		c.PollSeconds = def.PollSeconds
	}
	c.LogLevel = strings.ToLower(orDefault(c.LogLevel, def.LogLevel))
	c.LogFile = mustExpand(orDefault(c.LogFile, def.LogFile))
	c.VoucherDir = mustExpand(orDefault(c.VoucherDir, def.VoucherDir))
	c.ExportDir = mustExpand(orDefault(c.ExportDir, def.ExportDir))
	c.PrinterAddr = strings.TrimSpace(c.PrinterAddr)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
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
