package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteJournal(cfg *models.MConfig, log *logger.Logger) (*SQLiteJournal, error) {
	return &SQLiteJournal{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (j *SQLiteJournal) Initialize() error {
	dsn := j.Config.Journal.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	j.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		j.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		j.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	// The journal is an audit trail, so the table is kept across restarts.
	query := `
		CREATE TABLE IF NOT EXISTS command_journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL,
			args TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			elapsed_ms REAL,
			created_at INTEGER
		);
	`
	if _, err := j.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create command_journal: %w", err)
	}

	j.Logger.Info("SQLiteJournal initialized (%s)", dsn)
	return nil
}

// -----------------------------------------------------------------------------

func (j *SQLiteJournal) Record(entry models.MJournalEntry) error {
	if j.DB == nil {
		return fmt.Errorf("journal not initialized")
	}
	args, err := json.Marshal(entry.Args)
	if err != nil {
		return err
	}
	_, err = j.DB.Exec(
		`INSERT INTO command_journal (command, args, success, error, elapsed_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Command, string(args), boolToInt(entry.Success), entry.Error, entry.ElapsedMS, entry.CreatedAt,
	)
	return err
}

// -----------------------------------------------------------------------------

func (j *SQLiteJournal) Recent(limit int) ([]models.MJournalEntry, error) {
	if j.DB == nil {
		return nil, fmt.Errorf("journal not initialized")
	}
	rows, err := j.DB.Query(
		`SELECT command, args, success, error, elapsed_ms, created_at FROM command_journal ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// -----------------------------------------------------------------------------

func (j *SQLiteJournal) Close() error {
	if j.DB == nil {
		return nil
	}
	return j.DB.Close()
}

// -----------------------------------------------------------------------------
// Shared row helpers
// -----------------------------------------------------------------------------

func scanEntries(rows *sql.Rows) ([]models.MJournalEntry, error) {
	var out []models.MJournalEntry
	for rows.Next() {
		var entry models.MJournalEntry
		var args string
		var success int
		if err := rows.Scan(&entry.Command, &args, &success, &entry.Error, &entry.ElapsedMS, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Success = success != 0
		if args != "" {
			if err := json.Unmarshal([]byte(args), &entry.Args); err != nil {
				entry.Args = nil
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
