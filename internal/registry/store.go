// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maintains a searchable SQLite index of CFF records
// scanned from directory trees.
// Implements: prd003-registry (R1-R6);
//
//	docs/ARCHITECTURE § Citation Registry.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/internal/validate"
	"github.com/pdiddy/citation-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "citations.db"
)

// Store manages the citation registry SQLite database.
type Store struct {
	db          *sql.DB
	registryDir string
	scanRoots   []string
	maxResults  int
}

// NewStore opens or creates the registry database at
// registryDir/index/citations.db. It creates the schema if it does not
// exist (R1.2, R1.3).
func NewStore(cfg types.RegistryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.RegistryDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:          db,
		registryDir: cfg.RegistryDir,
		scanRoots:   cfg.ScanRoots,
		maxResults:  maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT,
			work_type TEXT,
			version TEXT,
			license TEXT,
			doi TEXT,
			date_released TEXT,
			abstract TEXT,
			authors TEXT,
			keywords TEXT,
			errors INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_license ON records(license)`,
		`CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi)`,
		`CREATE TABLE IF NOT EXISTS scan_status (
			path TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(
				title, abstract, authors, keywords,
				content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, abstract, authors, keywords)
				VALUES (new.rowid, new.title, new.abstract, new.authors, new.keywords);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract, authors, keywords)
				VALUES('delete', old.rowid, old.title, old.abstract, old.authors, old.keywords);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract, authors, keywords)
				VALUES('delete', old.rowid, old.title, old.abstract, old.authors, old.keywords);
				INSERT INTO records_fts(rowid, title, abstract, authors, keywords)
				VALUES (new.rowid, new.title, new.abstract, new.authors, new.keywords);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a registry scan (R5.5).
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest walks the scan roots for CITATION.cff files and populates the
// database. It detects new, changed, and unchanged files for
// incremental updates (R1.1, R5.1-R5.5). On success it writes
// export.yaml (R1.6).
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	paths, err := s.findRecords()
	if err != nil {
		return IngestSummary{}, err
	}

	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Check whether the file has changed since the last scan (R5.1, R5.3).
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM scan_status WHERE path = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		record, err := cff.ParseFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		result := validate.Check(record, types.ValidationConfig{})

		if err := s.ingestRecord(ctx, path, record, result, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", path)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", path)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	// Write export.yaml after a scan that changed anything (R1.6).
	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

// findRecords walks the scan roots and returns every CITATION.cff path.
func (s *Store) findRecords() ([]string, error) {
	var paths []string
	for _, root := range s.scanRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && d.Name() == cff.FileName {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return paths, nil
}

func (s *Store) ingestRecord(ctx context.Context, path string, record *types.Citation, result validate.Result, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	names := make([]string, len(record.Authors))
	for i, a := range record.Authors {
		names[i] = a.DisplayName()
	}
	authorsJSON, _ := json.Marshal(names)
	keywordsJSON, _ := json.Marshal(record.Keywords)

	// Upsert record row (R1.5). The FTS triggers keep records_fts in sync.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (path, title, work_type, version, license, doi,
			date_released, abstract, authors, keywords, errors, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			title=excluded.title, work_type=excluded.work_type,
			version=excluded.version, license=excluded.license,
			doi=excluded.doi, date_released=excluded.date_released,
			abstract=excluded.abstract, authors=excluded.authors,
			keywords=excluded.keywords, errors=excluded.errors,
			warnings=excluded.warnings`,
		path, record.Title, string(record.Type), record.Version, record.License,
		record.DOI, record.DateReleased, record.Abstract,
		string(authorsJSON), string(keywordsJSON),
		len(result.Errors()), len(result.Warnings()),
	)
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}

	// Update scan status (R5.1).
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scan_status (path, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		path, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating scan status: %w", err)
	}

	return tx.Commit()
}
