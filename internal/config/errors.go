package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInputDir is returned when the input directory is empty.
	ErrNoInputDir = errors.New("no input directory specified")

	// ErrNoImageDir is returned when the image directory is empty.
	ErrNoImageDir = errors.New("no image directory specified")

	// ErrNoReportFile is returned when the report file path is empty.
	ErrNoReportFile = errors.New("no report file specified")

	// ErrInvalidMaxRetries is returned when the retry count is not positive.
	// Zero attempts would mean no download at all.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A zero or negative timeout would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetryDelay is returned when the retry delay is negative.
	// Use 0 for no delay between attempts.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: must be non-negative")

	// ErrNoLanguage is returned when the OCR language is empty.
	ErrNoLanguage = errors.New("no OCR language specified")
)
