package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior of the original one-off scripts this tool grew
// out of, so existing links/pics folders keep working unchanged.
const (
	// DefaultInputDir is the directory scanned for HTML snippet files.
	DefaultInputDir = "links"

	// DefaultImageDir is the directory downloaded images are stored in.
	// It is created on demand if absent.
	DefaultImageDir = "pics"

	// DefaultReportFile is the markdown document the transcribe stage
	// writes. It is truncated and fully rewritten on every run.
	DefaultReportFile = "lectures.md"

	// DefaultMaxRetries is the number of download attempts per image.
	// Three attempts covers most transient network hiccups without
	// hammering a server that is genuinely down.
	DefaultMaxRetries = 3

	// DefaultTimeout bounds each individual GET attempt. Image hosts
	// are ordinary clearnet servers, so 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultRetryDelay is the fixed pause before attempts 2..n.
	// The retry cap is low enough that exponential backoff buys nothing.
	DefaultRetryDelay = 1 * time.Second

	// DefaultChunkSize is the buffer size used when streaming a
	// response body to disk.
	DefaultChunkSize = 8 * 1024

	// DefaultLanguage is the Tesseract language model used for
	// recognition. The tool transcribes Russian lecture slides.
	DefaultLanguage = "rus"

	// DefaultUserAgent identifies imgscribe in HTTP requests.
	// A descriptive User-Agent lets server operators identify the traffic.
	DefaultUserAgent = "imgscribe/1.0 (+https://github.com/imgscribe/imgscribe)"

	// AppName is the application name used for XDG directory paths.
	AppName = "imgscribe"
)

// Config holds all configuration options for imgscribe.
// It is populated from CLI flags (optionally overridden by a config file)
// and passed into each component via dependency injection rather than
// global state, so tests can run against temporary directories.
type Config struct {
	// InputDir is the directory containing HTML snippet files to scan.
	InputDir string

	// ImageDir is the directory images are downloaded into and read
	// from by the transcribe stage. The two stages share no state
	// beyond this directory.
	ImageDir string

	// ReportFile is the output path of the markdown document.
	ReportFile string

	// MaxRetries is the maximum number of download attempts per image.
	MaxRetries int

	// Timeout bounds each individual download attempt.
	Timeout time.Duration

	// RetryDelay is the fixed pause inserted before retry attempts.
	RetryDelay time.Duration

	// Language is the Tesseract language model (e.g. "rus", "eng").
	// The corresponding language pack must be installed.
	Language string

	// EXIF enables the per-image EXIF metadata table in the report.
	EXIF bool

	// Verbose enables debug-level log output.
	Verbose bool

	// UserAgent is the User-Agent header sent with download requests.
	UserAgent string

	// ConfigFilePath is an explicit config file path. If empty, the
	// tool searches for .imgscribe in the current directory, the home
	// directory, and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (directories, timeout,
// retry count). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		InputDir:   DefaultInputDir,
		ImageDir:   DefaultImageDir,
		ReportFile: DefaultReportFile,
		MaxRetries: DefaultMaxRetries,
		Timeout:    DefaultTimeout,
		RetryDelay: DefaultRetryDelay,
		Language:   DefaultLanguage,
		UserAgent:  DefaultUserAgent,
	}
}

// XDGConfigDir returns the XDG config directory for imgscribe.
// On Linux: ~/.config/imgscribe
// On macOS: ~/Library/Application Support/imgscribe
// On Windows: %APPDATA%\imgscribe
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found rather than collecting all errors,
// because fixing one error often makes others irrelevant. Called once
// after CLI parsing, before any work begins.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrNoInputDir
	}
	if c.ImageDir == "" {
		return ErrNoImageDir
	}
	if c.ReportFile == "" {
		return ErrNoReportFile
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if c.Language == "" {
		return ErrNoLanguage
	}
	return nil
}
