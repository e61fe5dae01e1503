package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/imgscribe/imgscribe/internal/config"
	"github.com/imgscribe/imgscribe/internal/extract"
	"github.com/imgscribe/imgscribe/internal/fetch"
	"github.com/imgscribe/imgscribe/internal/model"
	"github.com/imgscribe/imgscribe/internal/pipeline"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Scan HTML snippets and download the referenced images",
		Long: `Fetch scans every file in the input directory for <img> tags carrying
both a name="..." and a src="..." attribute, then downloads the referenced
images into the image folder sequentially.

Downloads are retried on transient failures (timeouts, 5xx responses,
network errors) with a fixed delay between attempts. A 404 response or a
local write failure gives up immediately. Images already present in the
folder are skipped without re-downloading, so the command is safe to rerun.

Examples:
  # Scan ./links and download into ./pics
  imgscribe fetch

  # Custom directories and a higher retry cap
  imgscribe fetch --input snippets --images img --retries 5

  # Use a configuration file
  imgscribe fetch -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("input", "i", config.DefaultInputDir,
		"Directory of HTML snippet files to scan")
	cmd.Flags().StringP("images", "d", config.DefaultImageDir,
		"Directory to store downloaded images in (created if absent)")
	cmd.Flags().IntP("retries", "r", config.DefaultMaxRetries,
		"Maximum download attempts per image")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each download attempt")
	cmd.Flags().Duration("retry-delay", config.DefaultRetryDelay,
		"Fixed pause before retry attempts")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .imgscribe in current dir, home dir, or XDG config dir)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildFetchConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runFetch(ctx, cfg, logger)
}

// buildFetchConfig creates a Config from the fetch command flags.
// Precedence: defaults < config file < explicitly set flags.
func buildFetchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("input") {
		if cfg.InputDir, err = cmd.Flags().GetString("input"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("images") {
		if cfg.ImageDir, err = cmd.Flags().GetString("images"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retries") {
		if cfg.MaxRetries, err = cmd.Flags().GetInt("retries"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retry-delay") {
		if cfg.RetryDelay, err = cmd.Flags().GetDuration("retry-delay"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runFetch executes the scan and download pipeline.
func runFetch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting fetch",
		"inputDir", cfg.InputDir,
		"imageDir", cfg.ImageDir,
		"maxRetries", cfg.MaxRetries,
	)

	scanner := extract.NewScanner(extract.WithScannerLogger(logger))

	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := fetch.NewFetcher(client, cfg.ImageDir,
		fetch.WithMaxRetries(cfg.MaxRetries),
		fetch.WithRetryDelay(cfg.RetryDelay),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(logger),
	)
	batch := fetch.NewBatch(fetcher, fetch.WithBatchLogger(logger))

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewScanStep(scanner, cfg.InputDir),
		pipeline.NewDownloadStep(batch),
	)

	result := model.NewRunResult()
	startTime := time.Now()

	if err := p.Execute(ctx, result); err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	if result.Total == 0 {
		fmt.Println("No image references found")
		return nil
	}

	fmt.Printf("\nDownloaded %d/%d images into %s in %s\n",
		result.Succeeded, result.Total, cfg.ImageDir, elapsed.Round(time.Millisecond))
	return nil
}
