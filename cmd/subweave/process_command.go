package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"subweave/internal/artifacts"
	"subweave/internal/deps"
	"subweave/internal/dictionary"
	"subweave/internal/logging"
	"subweave/internal/media/audio"
	"subweave/internal/media/ffprobe"
	"subweave/internal/pipeline"
	"subweave/internal/services/gemini"
	"subweave/internal/services/transcriber"
)

func newProcessCommand(cmdCtx *commandContext) *cobra.Command {
	var skipRefine bool
	var chunkMinutes int
	var outputDir string

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe a recording and write merged SRT files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if skipRefine {
				cfg.Refinement.Enabled = false
			}
			if chunkMinutes > 0 {
				cfg.Chunking.Minutes = chunkMinutes
			}
			if outputDir != "" {
				cfg.Paths.OutputDir = outputDir
			}

			if err := deps.Verify(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := artifacts.Open(cfg)
			if err != nil {
				return fmt.Errorf("open artifacts store: %w", err)
			}
			defer store.Close()

			var dict *dictionary.Dictionary
			if cfg.Dictionary.Path != "" {
				dict, err = dictionary.Load(cfg.Dictionary.Path)
				if err != nil {
					return err
				}
				logger.Info("dictionary loaded",
					logging.String("path", cfg.Dictionary.Path),
					logging.Int("entries", dict.Len()),
				)
			}

			var refiner pipeline.Refiner
			if cfg.Refinement.Enabled {
				client, err := gemini.NewClient(ctx, gemini.Config{
					APIKey:         cfg.Refinement.APIKey,
					Model:          cfg.Refinement.Model,
					RetryAttempts:  cfg.Refinement.RetryAttempts,
					RetryBaseDelay: time.Duration(cfg.Refinement.RetryBaseSeconds) * time.Second,
				})
				if err != nil {
					return err
				}
				refiner = client
			}

			p, err := pipeline.New(pipeline.Options{
				Config: cfg,
				Logger: logger,
				Store:  store,
				Prober: ffprobe.NewProber(cfg.Tools.FFprobeBinary),
				Extractor: audio.NewSlicer(cfg.Tools.FFmpegBinary),
				Transcriber: transcriber.NewClient(transcriber.Config{
					APIKey:         cfg.Transcription.APIKey,
					BaseURL:        cfg.Transcription.BaseURL,
					Model:          cfg.Transcription.Model,
					Language:       cfg.Transcription.Language,
					TimeoutSeconds: cfg.Transcription.TimeoutSeconds,
				}, transcriber.WithRetryMaxAttempts(cfg.Transcription.RetryAttempts)),
				Refiner:    refiner,
				Dictionary: dict,
			})
			if err != nil {
				return err
			}

			result, err := p.Run(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d chunks (%d cached, %d refined, %d fallbacks)\n",
				result.Chunks, result.CachedChunks, result.RefinedChunks, result.FallbackChunks)
			fmt.Fprintf(out, "Transcription: %s\n", result.RawOutputPath)
			if result.RefinedOutputPath != "" {
				fmt.Fprintf(out, "Refined:       %s\n", result.RefinedOutputPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipRefine, "skip-refine", false, "Skip the LLM correction pass")
	cmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", 0, "Override the configured chunk length")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Override the configured output directory")
	return cmd
}
