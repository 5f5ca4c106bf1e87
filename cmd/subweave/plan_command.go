package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subweave/internal/chunk"
	"subweave/internal/media/ffprobe"
	"subweave/internal/srt"
)

func newPlanCommand(cmdCtx *commandContext) *cobra.Command {
	var chunkMinutes int

	cmd := &cobra.Command{
		Use:   "plan <audio-file>",
		Short: "Show how a recording would be chunked without transcribing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if chunkMinutes > 0 {
				cfg.Chunking.Minutes = chunkMinutes
			}

			prober := ffprobe.NewProber(cfg.Tools.FFprobeBinary)
			totalMillis, err := prober.DurationMillis(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("probe duration: %w", err)
			}

			spans, err := chunk.Plan(totalMillis, cfg.ChunkLengthMillis())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Duration: %s (%d chunks of %d minutes)\n",
				(time.Duration(totalMillis) * time.Millisecond).Round(time.Millisecond),
				len(spans), cfg.Chunking.Minutes)

			rows := make([][]string, 0, len(spans))
			for _, span := range spans {
				rows = append(rows, []string{
					strconv.Itoa(span.Index),
					srt.TimestampFromSeconds(span.StartOffsetSeconds).String(),
					fmt.Sprintf("%.3fs", float64(span.DurationMillis)/1000),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Chunk", "Start", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", 0, "Override the configured chunk length")
	return cmd
}
