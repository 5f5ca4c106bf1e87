package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"subweave/internal/artifacts"
	"subweave/internal/chunk"
	"subweave/internal/config"
	"subweave/internal/dictionary"
	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/srt"
)

// Transcriber turns one audio file into an SRT document.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// Refiner corrects the text of an SRT document without touching its timing.
type Refiner interface {
	RefineDocument(ctx context.Context, document string) (string, error)
}

// DurationProber reports the length of a media file.
type DurationProber interface {
	DurationMillis(ctx context.Context, path string) (int64, error)
}

// SegmentExtractor cuts a time range out of a media file.
type SegmentExtractor interface {
	ExtractSegment(ctx context.Context, source string, startMillis, durationMillis int64, dest string) error
}

// Pipeline wires the collaborators for one processing run.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *artifacts.Store
	prober      DurationProber
	extractor   SegmentExtractor
	transcriber Transcriber
	refiner     Refiner
	dict        *dictionary.Dictionary
}

// Options collects the collaborators for New. Refiner may be nil when
// refinement is disabled; Dictionary may be nil when no correction file is
// configured.
type Options struct {
	Config      *config.Config
	Logger      *slog.Logger
	Store       *artifacts.Store
	Prober      DurationProber
	Extractor   SegmentExtractor
	Transcriber Transcriber
	Refiner     Refiner
	Dictionary  *dictionary.Dictionary
}

// New validates the options and assembles a pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config required")
	}
	if opts.Store == nil {
		return nil, errors.New("pipeline: artifacts store required")
	}
	if opts.Prober == nil {
		return nil, errors.New("pipeline: duration prober required")
	}
	if opts.Extractor == nil {
		return nil, errors.New("pipeline: segment extractor required")
	}
	if opts.Transcriber == nil {
		return nil, errors.New("pipeline: transcriber required")
	}
	if opts.Config.Refinement.Enabled && opts.Refiner == nil {
		return nil, errors.New("pipeline: refinement enabled but no refiner provided")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:         opts.Config,
		logger:      logger,
		store:       opts.Store,
		prober:      opts.Prober,
		extractor:   opts.Extractor,
		transcriber: opts.Transcriber,
		refiner:     opts.Refiner,
		dict:        opts.Dictionary,
	}, nil
}

// Result summarizes a completed run.
type Result struct {
	RunID             string
	Chunks            int
	CachedChunks      int
	RefinedChunks     int
	FallbackChunks    int
	RawOutputPath     string
	RefinedOutputPath string
}

// Run processes one recording and writes the merged subtitle files into the
// output directory. The raw merge lands next to a refined merge when
// refinement is enabled.
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (*Result, error) {
	sourcePath, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	if !fileutil.Exists(sourcePath) {
		return nil, fmt.Errorf("source %s does not exist", sourcePath)
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.WorkDir, "subweave.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire work dir lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another run is already using the work directory")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	fingerprint, err := fileutil.FileSHA256(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("fingerprint source: %w", err)
	}

	totalMillis, err := p.prober.DurationMillis(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}
	spans, err := chunk.Plan(totalMillis, p.cfg.ChunkLengthMillis())
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, fmt.Errorf("source %s has no audible duration", sourcePath)
	}

	p.logger.Info("run planned",
		logging.String("source", sourcePath),
		logging.String("fingerprint", shortFingerprint(fingerprint)),
		logging.Int64("duration_ms", totalMillis),
		logging.Int("chunks", len(spans)),
	)

	run, err := p.store.StartRun(ctx, sourcePath, fingerprint, p.cfg.ChunkLengthMillis(), len(spans))
	if err != nil {
		return nil, err
	}

	result, runErr := p.processChunks(ctx, run.ID, sourcePath, fingerprint, spans)
	if finishErr := p.store.FinishRun(ctx, run.ID, runErr); finishErr != nil {
		p.logger.Warn("record run completion", logging.Error(finishErr))
	}
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

func (p *Pipeline) processChunks(ctx context.Context, runID, sourcePath, fingerprint string, spans []chunk.Span) (*Result, error) {
	result := &Result{RunID: runID, Chunks: len(spans)}

	rawDocs := make([]string, len(spans))
	refinedDocs := make([]string, len(spans))
	offsets := make([]float64, len(spans))

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		offsets[span.Index] = span.StartOffsetSeconds

		key := artifacts.ChunkKey{
			SourceFingerprint: fingerprint,
			ChunkIndex:        span.Index,
			ChunkLengthMillis: p.cfg.ChunkLengthMillis(),
		}
		raw, cached, err := p.rawDocument(ctx, key, sourcePath, span)
		if err != nil {
			return nil, err
		}
		if cached {
			result.CachedChunks++
		}

		corrected := p.dict.Apply(raw)
		rawDocs[span.Index] = corrected

		refined, refinedNow, fellBack, err := p.refinedDocument(ctx, key, corrected)
		if err != nil {
			return nil, err
		}
		refinedDocs[span.Index] = refined
		if refinedNow {
			result.RefinedChunks++
		}
		if fellBack {
			result.FallbackChunks++
		}
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	rawMerged, err := srt.Merge(rawDocs, offsets)
	if err != nil {
		return nil, fmt.Errorf("merge transcriptions: %w", err)
	}
	result.RawOutputPath = filepath.Join(p.cfg.Paths.OutputDir, base+"_before.srt")
	if err := fileutil.WriteFileAtomic(result.RawOutputPath, []byte(rawMerged+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", result.RawOutputPath, err)
	}

	if p.cfg.Refinement.Enabled {
		refinedMerged, err := srt.Merge(refinedDocs, offsets)
		if err != nil {
			return nil, fmt.Errorf("merge refined transcriptions: %w", err)
		}
		result.RefinedOutputPath = filepath.Join(p.cfg.Paths.OutputDir, base+"_after.srt")
		if err := fileutil.WriteFileAtomic(result.RefinedOutputPath, []byte(refinedMerged+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", result.RefinedOutputPath, err)
		}
	}

	p.logger.Info("run completed",
		logging.String("run_id", runID),
		logging.Int("chunks", result.Chunks),
		logging.Int("cached", result.CachedChunks),
		logging.Int("refined", result.RefinedChunks),
		logging.Int("fallbacks", result.FallbackChunks),
	)
	return result, nil
}

// rawDocument returns the chunk's transcription, reusing a cached copy when
// one exists for the same fingerprint and chunking.
func (p *Pipeline) rawDocument(ctx context.Context, key artifacts.ChunkKey, sourcePath string, span chunk.Span) (string, bool, error) {
	record, err := p.store.GetChunk(ctx, key)
	if err != nil {
		return "", false, err
	}
	if record != nil && record.RawSRT != "" {
		p.logger.Debug("chunk cache hit", logging.Int("chunk", span.Index))
		return record.RawSRT, true, nil
	}

	segmentPath := filepath.Join(p.cfg.Paths.WorkDir, fmt.Sprintf("chunk_%03d.mp3", span.Index))
	if err := p.extractor.ExtractSegment(ctx, sourcePath, span.StartOffsetMillis(), span.DurationMillis, segmentPath); err != nil {
		return "", false, fmt.Errorf("extract chunk %d: %w", span.Index, err)
	}
	defer func() {
		_ = os.Remove(segmentPath)
	}()

	p.logger.Info("transcribing chunk",
		logging.Int("chunk", span.Index),
		logging.Float64("offset_s", span.StartOffsetSeconds),
	)
	raw, err := p.transcriber.TranscribeFile(ctx, segmentPath)
	if err != nil {
		return "", false, fmt.Errorf("transcribe chunk %d: %w", span.Index, err)
	}
	if err := p.store.SaveRawChunk(ctx, key, int64(span.StartOffsetSeconds), raw); err != nil {
		return "", false, err
	}
	return raw, false, nil
}

// refinedDocument returns the chunk's refined text. When refinement fails or
// produces a structurally different document, the corrected transcription is
// used as-is so one bad model response never sinks the whole run.
func (p *Pipeline) refinedDocument(ctx context.Context, key artifacts.ChunkKey, corrected string) (refined string, refinedNow, fellBack bool, err error) {
	if !p.cfg.Refinement.Enabled {
		return corrected, false, false, nil
	}

	record, err := p.store.GetChunk(ctx, key)
	if err != nil {
		return "", false, false, err
	}
	if record != nil && record.RefinedSRT != "" {
		return record.RefinedSRT, false, false, nil
	}

	candidate, refineErr := p.refiner.RefineDocument(ctx, corrected)
	if refineErr != nil {
		if errors.Is(refineErr, context.Canceled) || errors.Is(refineErr, context.DeadlineExceeded) {
			return "", false, false, refineErr
		}
		p.logger.Warn("refinement failed, keeping transcription",
			logging.Int("chunk", key.ChunkIndex),
			logging.Error(refineErr),
		)
		return corrected, false, true, nil
	}

	if p.cfg.Refinement.VerifyStructure {
		if verifyErr := srt.VerifyRefinement(corrected, candidate); verifyErr != nil {
			p.logger.Warn("refinement changed timing, keeping transcription",
				logging.Int("chunk", key.ChunkIndex),
				logging.Error(verifyErr),
			)
			return corrected, false, true, nil
		}
	}

	if err := p.store.SaveRefinedChunk(ctx, key, candidate); err != nil {
		return "", false, false, err
	}
	return candidate, true, false, nil
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
