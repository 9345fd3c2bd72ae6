package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"autovideo/internal/config"
)

// Store manages the conversion ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.History.Path
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
	if err := store.initSchema(context.Background()); err != nil {
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
	if s == nil {
		return ""
	}
	return s.path
}

// Record inserts a finished conversion and returns it with its identifier set.
func (s *Store) Record(ctx context.Context, conv *Conversion) (*Conversion, error) {
	if conv == nil {
		return nil, errors.New("conversion is nil")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO conversions (
            batch_id, mod_name, video_name, source_path,
            frame_size, frame_rate, frame_count, grid_count,
            truncated, has_audio, status, error_message,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conv.BatchID,
		conv.ModName,
		conv.VideoName,
		nullableString(conv.SourcePath),
		conv.FrameSize,
		conv.FrameRate,
		conv.FrameCount,
		conv.GridCount,
		boolToInt(conv.Truncated),
		boolToInt(conv.HasAudio),
		conv.Status,
		nullableString(conv.ErrorMessage),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert conversion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a conversion by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Conversion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = ?`, id)
	conv, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	return conv, nil
}

// ListRecent returns the most recent conversions, newest first. A limit of
// zero or less returns everything.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions ORDER BY id DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	return collectConversions(rows)
}

// ListBatch returns every conversion recorded for one batch in insertion order.
func (s *Store) ListBatch(ctx context.Context, batchID string) ([]*Conversion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+conversionColumns+` FROM conversions WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list batch: %w", err)
	}
	defer rows.Close()

	return collectConversions(rows)
}

// Stats returns a count of conversions grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM conversions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("history stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Clear removes all recorded conversions.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

const conversionColumns = "id, batch_id, mod_name, video_name, source_path, frame_size, frame_rate, frame_count, grid_count, truncated, has_audio, status, error_message, created_at, updated_at"

func collectConversions(rows *sql.Rows) ([]*Conversion, error) {
	var conversions []*Conversion
	for rows.Next() {
		conv, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, conv)
	}
	return conversions, rows.Err()
}

func scanConversion(scanner interface{ Scan(dest ...any) error }) (*Conversion, error) {
	var (
		id           int64
		batchID      string
		modName      string
		videoName    string
		sourcePath   sql.NullString
		frameSize    int
		frameRate    int
		frameCount   int
		gridCount    int
		truncated    sql.NullInt64
		hasAudio     sql.NullInt64
		statusStr    string
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&batchID,
		&modName,
		&videoName,
		&sourcePath,
		&frameSize,
		&frameRate,
		&frameCount,
		&gridCount,
		&truncated,
		&hasAudio,
		&statusStr,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	conv := &Conversion{
		ID:           id,
		BatchID:      batchID,
		ModName:      modName,
		VideoName:    videoName,
		SourcePath:   sourcePath.String,
		FrameSize:    frameSize,
		FrameRate:    frameRate,
		FrameCount:   frameCount,
		GridCount:    gridCount,
		Truncated:    truncated.Valid && truncated.Int64 != 0,
		HasAudio:     hasAudio.Valid && hasAudio.Int64 != 0,
		Status:       Status(statusStr),
		ErrorMessage: errorMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		conv.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		conv.UpdatedAt = updated
	}
	return conv, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
