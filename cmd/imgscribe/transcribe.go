package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/imgscribe/imgscribe/internal/config"
	"github.com/imgscribe/imgscribe/internal/model"
	"github.com/imgscribe/imgscribe/internal/ocr"
	"github.com/imgscribe/imgscribe/internal/pipeline"
	"github.com/imgscribe/imgscribe/internal/report"
)

// NewTranscribeCmd creates the transcribe command.
func NewTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Run OCR over the downloaded images and write the markdown report",
		Long: `Transcribe runs Tesseract OCR over every image in the image folder, in
sorted filename order, and writes one markdown document: a header per
image, the recognized text, and a separator.

Tesseract and the configured language pack must be installed; the command
aborts before touching the report file if the engine is unavailable.
Per-image recognition problems (missing file, engine failure, no text)
appear in the document as placeholder messages instead of aborting.

The report file is truncated and fully rewritten on every run.

Examples:
  # Transcribe ./pics into lectures.md
  imgscribe transcribe

  # English material with an EXIF metadata table per image
  imgscribe transcribe --language eng --exif

  # Custom folders
  imgscribe transcribe --images img --output notes.md`,
		Args: cobra.NoArgs,
		RunE: runTranscribeCmd,
	}

	cmd.Flags().StringP("images", "d", config.DefaultImageDir,
		"Directory of images to transcribe")
	cmd.Flags().StringP("output", "o", config.DefaultReportFile,
		"Markdown report file path")
	cmd.Flags().StringP("language", "l", config.DefaultLanguage,
		"Tesseract language model (language pack must be installed)")
	cmd.Flags().Bool("exif", false,
		"Include an EXIF metadata table for images that carry one")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .imgscribe in current dir, home dir, or XDG config dir)")

	return cmd
}

// runTranscribeCmd executes the transcribe command.
func runTranscribeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildTranscribeConfig(cmd)
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

	return runTranscribe(ctx, cfg, logger)
}

// buildTranscribeConfig creates a Config from the transcribe command flags.
// Precedence: defaults < config file < explicitly set flags.
func buildTranscribeConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("images") {
		if cfg.ImageDir, err = cmd.Flags().GetString("images"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("language") {
		if cfg.Language, err = cmd.Flags().GetString("language"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("exif") {
		if cfg.EXIF, err = cmd.Flags().GetBool("exif"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runTranscribe executes the transcription pipeline.
func runTranscribe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting transcription",
		"imageDir", cfg.ImageDir,
		"reportFile", cfg.ReportFile,
		"language", cfg.Language,
	)

	engine := ocr.NewTesseract(cfg.Language, ocr.WithTesseractLogger(logger))
	builder := report.NewBuilder(cfg.ImageDir, cfg.ReportFile, engine,
		report.WithEXIF(cfg.EXIF),
		report.WithBuilderLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewVerifyEngineStep(engine),
		pipeline.NewTranscribeStep(builder),
	)

	result := model.NewRunResult()
	startTime := time.Now()

	if err := p.Execute(ctx, result); err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	if result.Transcription == nil || result.Transcription.ImagesProcessed == 0 {
		fmt.Printf("No images found in %s\n", cfg.ImageDir)
		return nil
	}

	fmt.Printf("\nTranscribed %d images into %s in %s\n",
		result.Transcription.ImagesProcessed, result.Transcription.ReportPath,
		elapsed.Round(time.Millisecond))
	return nil
}
