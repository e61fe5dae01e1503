package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".imgscribe"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .imgscribe configuration file.
// Every field is optional; unset fields leave the corresponding Config
// value untouched. Durations are written as Go duration strings ("30s").
type File struct {
	InputDir   string `yaml:"inputDir,omitempty"`
	ImageDir   string `yaml:"imageDir,omitempty"`
	ReportFile string `yaml:"reportFile,omitempty"`
	MaxRetries int    `yaml:"maxRetries,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"`
	RetryDelay string `yaml:"retryDelay,omitempty"`
	Language   string `yaml:"language,omitempty"`
	EXIF       *bool  `yaml:"exif,omitempty"`
	UserAgent  string `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// how to handle that based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies the file's non-empty settings onto the given Config.
// Duration strings are parsed here so that a malformed value surfaces as
// a load error rather than a silent default.
func (cf *File) Apply(cfg *Config) error {
	if cf.InputDir != "" {
		cfg.InputDir = cf.InputDir
	}
	if cf.ImageDir != "" {
		cfg.ImageDir = cf.ImageDir
	}
	if cf.ReportFile != "" {
		cfg.ReportFile = cf.ReportFile
	}
	if cf.MaxRetries > 0 {
		cfg.MaxRetries = cf.MaxRetries
	}
	if cf.Timeout != "" {
		d, err := time.ParseDuration(cf.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", cf.Timeout, err)
		}
		cfg.Timeout = d
	}
	if cf.RetryDelay != "" {
		d, err := time.ParseDuration(cf.RetryDelay)
		if err != nil {
			return fmt.Errorf("invalid retryDelay %q in config file: %w", cf.RetryDelay, err)
		}
		cfg.RetryDelay = d
	}
	if cf.Language != "" {
		cfg.Language = cf.Language
	}
	if cf.EXIF != nil {
		cfg.EXIF = *cf.EXIF
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .imgscribe in the current directory
//  3. Look for .imgscribe in the user's home directory
//  4. Look for .imgscribe in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
