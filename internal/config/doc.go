// Package config provides configuration structures and utilities for
// imgscribe. It defines the options for both pipeline stages (scanning and
// downloading, transcription) and the optional .imgscribe YAML file loader.
package config
