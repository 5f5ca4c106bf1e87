package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subweave/internal/config"
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ChunkKey identifies one cached chunk transcription. The chunk length is
// part of the key so changing the chunk size never mixes timelines.
type ChunkKey struct {
	SourceFingerprint string
	ChunkIndex        int
	ChunkLengthMillis int64
}

// ChunkRecord is one persisted chunk transcription.
type ChunkRecord struct {
	ChunkKey
	StartOffsetSeconds int64
	RawSRT             string
	RefinedSRT         string
	UpdatedAt          time.Time
}

// Run records one end-to-end processing invocation.
type Run struct {
	ID                string
	SourcePath        string
	SourceFingerprint string
	ChunkLengthMillis int64
	ChunkCount        int
	Status            string
	Error             string
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Store manages artifact persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the artifacts database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.WorkDir, "artifacts.db"))
}

// OpenPath opens the artifacts database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// StartRun records a new processing run and returns it.
func (s *Store) StartRun(ctx context.Context, sourcePath, fingerprint string, chunkLengthMillis int64, chunkCount int) (*Run, error) {
	run := &Run{
		ID:                uuid.NewString(),
		SourcePath:        sourcePath,
		SourceFingerprint: fingerprint,
		ChunkLengthMillis: chunkLengthMillis,
		ChunkCount:        chunkCount,
		Status:            RunStatusRunning,
		StartedAt:         time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, source_path, source_fingerprint, chunk_length_ms,
            chunk_count, status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.SourcePath,
		run.SourceFingerprint,
		run.ChunkLengthMillis,
		run.ChunkCount,
		run.Status,
		run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun marks a run completed, or failed when runErr is non-nil.
func (s *Store) FinishRun(ctx context.Context, runID string, runErr error) error {
	status := RunStatusCompleted
	var message sql.NullString
	if runErr != nil {
		status = RunStatusFailed
		message = sql.NullString{String: runErr.Error(), Valid: true}
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status,
		message,
		time.Now().UTC().Format(time.RFC3339Nano),
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// GetRun fetches a run by identifier. Returns nil when absent.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, source_path, source_fingerprint, chunk_length_ms,
            chunk_count, status, COALESCE(error, ''), started_at, COALESCE(finished_at, '')
        FROM runs WHERE id = ?`,
		runID,
	)

	var run Run
	var startedAt, finishedAt string
	err := row.Scan(
		&run.ID,
		&run.SourcePath,
		&run.SourceFingerprint,
		&run.ChunkLengthMillis,
		&run.ChunkCount,
		&run.Status,
		&run.Error,
		&startedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
	}
	return &run, nil
}

// SaveRawChunk stores a chunk's transcription, creating the record or
// replacing a previous raw document.
func (s *Store) SaveRawChunk(ctx context.Context, key ChunkKey, startOffsetSeconds int64, rawSRT string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO chunks (
            source_fingerprint, chunk_index, chunk_length_ms,
            start_offset_seconds, raw_srt, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(source_fingerprint, chunk_index, chunk_length_ms)
        DO UPDATE SET raw_srt = excluded.raw_srt,
            start_offset_seconds = excluded.start_offset_seconds,
            updated_at = excluded.updated_at`,
		key.SourceFingerprint,
		key.ChunkIndex,
		key.ChunkLengthMillis,
		startOffsetSeconds,
		rawSRT,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save raw chunk %d: %w", key.ChunkIndex, err)
	}
	return nil
}

// SaveRefinedChunk stores a chunk's refined document. The raw document must
// already exist.
func (s *Store) SaveRefinedChunk(ctx context.Context, key ChunkKey, refinedSRT string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE chunks SET refined_srt = ?, updated_at = ?
        WHERE source_fingerprint = ? AND chunk_index = ? AND chunk_length_ms = ?`,
		refinedSRT,
		time.Now().UTC().Format(time.RFC3339Nano),
		key.SourceFingerprint,
		key.ChunkIndex,
		key.ChunkLengthMillis,
	)
	if err != nil {
		return fmt.Errorf("save refined chunk %d: %w", key.ChunkIndex, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("refined chunk %d has no raw record", key.ChunkIndex)
	}
	return nil
}

// GetChunk fetches one cached chunk. Returns nil when absent.
func (s *Store) GetChunk(ctx context.Context, key ChunkKey) (*ChunkRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT start_offset_seconds, COALESCE(raw_srt, ''), COALESCE(refined_srt, ''), updated_at
        FROM chunks
        WHERE source_fingerprint = ? AND chunk_index = ? AND chunk_length_ms = ?`,
		key.SourceFingerprint,
		key.ChunkIndex,
		key.ChunkLengthMillis,
	)

	record := &ChunkRecord{ChunkKey: key}
	var updatedAt string
	err := row.Scan(&record.StartOffsetSeconds, &record.RawSRT, &record.RefinedSRT, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan chunk: %w", err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return record, nil
}
