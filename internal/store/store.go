// Package store records parsed sentences in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nmeastream/internal/nmea"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; sqlite serialises writes anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store pragmas: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	// Not closing m: closing the driver would close s.db.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool { return false }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Run is one ingest session. It writes sentences tagged with its ID.
type Run struct {
	ID     string
	Source string
	store  *Store
}

// BeginRun registers a new run for source.
func (s *Store) BeginRun(ctx context.Context, source string) (*Run, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, source, started_at) VALUES (?, ?, ?)`,
		id, source, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return &Run{ID: id, Source: source, store: s}, nil
}

// RecordSentence stores rec under the run.
func (r *Run) RecordSentence(ctx context.Context, rec nmea.Record, at time.Time) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	var ck sql.NullString
	if tok, ok := rec.Checksum(); ok {
		ck = sql.NullString{String: strings.ToUpper(tok), Valid: true}
	}
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO sentences (run_id, sentence_type, raw_text, checksum, checksum_status, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, rec.SentenceType(), rec.RawText(), ck, string(nmea.StatusOf(rec)), at.UTC())
	if err != nil {
		return fmt.Errorf("record sentence %s: %w", rec.SentenceType(), err)
	}
	return nil
}

// CountByType returns the number of stored sentences per type for a run.
func (s *Store) CountByType(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sentence_type, COUNT(*) FROM sentences WHERE run_id = ? GROUP BY sentence_type`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[typ] = n
	}
	return out, rows.Err()
}

// CountByChecksum returns the number of stored sentences per checksum
// status for a run.
func (s *Store) CountByChecksum(ctx context.Context, runID string) (map[nmea.ChecksumStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT checksum_status, COUNT(*) FROM sentences WHERE run_id = ? GROUP BY checksum_status`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[nmea.ChecksumStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[nmea.ChecksumStatus(status)] = n
	}
	return out, rows.Err()
}
