package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/fileutil"
	"subweave/internal/srt"
)

func newMergeCommand() *cobra.Command {
	var offsetsFlag string
	var chunkMinutes int
	var outputPath string

	cmd := &cobra.Command{
		Use:         "merge <chunk.srt> [chunk.srt ...]",
		Short:       "Merge per-chunk SRT files onto one timeline",
		Long:        "Merge shifts each chunk's timestamps by its start offset and renumbers the result. Files are taken in chunk order.",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := resolveOffsets(offsetsFlag, chunkMinutes, len(args))
			if err != nil {
				return err
			}

			docs := make([]string, len(args))
			for i, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				docs[i] = string(data)
			}

			merged, err := srt.Merge(docs, offsets)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), merged)
				return nil
			}
			if err := fileutil.WriteFileAtomic(outputPath, []byte(merged+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&offsetsFlag, "offsets", "", "Comma-separated start offsets in seconds, one per file")
	cmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", 0, "Derive offsets from a fixed chunk length")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the merged document to a file instead of stdout")
	return cmd
}

func resolveOffsets(offsetsFlag string, chunkMinutes, count int) ([]float64, error) {
	if offsetsFlag != "" && chunkMinutes > 0 {
		return nil, fmt.Errorf("--offsets and --chunk-minutes are mutually exclusive")
	}

	if offsetsFlag != "" {
		parts := strings.Split(offsetsFlag, ",")
		if len(parts) != count {
			return nil, fmt.Errorf("%d offsets for %d files", len(parts), count)
		}
		offsets := make([]float64, len(parts))
		for i, part := range parts {
			value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("parse offset %q: %w", part, err)
			}
			offsets[i] = value
		}
		return offsets, nil
	}

	if chunkMinutes <= 0 {
		return nil, fmt.Errorf("provide --offsets or --chunk-minutes")
	}
	offsets := make([]float64, count)
	for i := range offsets {
		offsets[i] = float64(i * chunkMinutes * 60)
	}
	return offsets, nil
}
