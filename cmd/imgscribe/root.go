package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imgscribe/imgscribe/internal/config"
	internallog "github.com/imgscribe/imgscribe/internal/log"
)

// NewRootCmd creates the root command for imgscribe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgscribe",
		Short: "Download images referenced in HTML snippets and transcribe them with OCR",
		Long: `imgscribe turns photographed lecture material into markdown notes in two stages.

The fetch stage scans a directory of HTML snippet files for <img> tags
carrying name="..." and src="..." attributes and downloads the referenced
images into a local folder, skipping files that already exist.

The transcribe stage runs Tesseract OCR over the downloaded images in
sorted filename order and writes one concatenated markdown document.

The stages share nothing but the image folder, so each can be rerun
independently.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewTranscribeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The text handler is wrapped so oversized values (recognized text, raw
// markup) are truncated before they reach the terminal.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(internallog.NewTruncateHandler(handler))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// applyConfigFile merges the .imgscribe file (if any) into cfg.
// An explicitly specified file must exist; the default search locations
// are allowed to come up empty.
func applyConfigFile(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cf.Apply(cfg)
}
