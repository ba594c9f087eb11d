package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresJournal(cfg *models.MConfig, log *logger.Logger) (*PostgresJournal, error) {
	// Schema named after the executable so several bridges can share a server
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresJournal{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (j *PostgresJournal) Initialize() error {
	dsn := j.Config.Journal.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	j.DB = db

	if _, err := j.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, j.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", j.Schema, err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s".command_journal (
			id BIGSERIAL PRIMARY KEY,
			command TEXT NOT NULL,
			args TEXT,
			success SMALLINT NOT NULL,
			error TEXT,
			elapsed_ms DOUBLE PRECISION,
			created_at BIGINT
		);
	`, j.Schema)
	if _, err := j.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create command_journal: %w", err)
	}

	j.Logger.Info("PostgresJournal initialized successfully (Schema: %s)", j.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (j *PostgresJournal) Record(entry models.MJournalEntry) error {
	if j.DB == nil {
		return fmt.Errorf("journal not initialized")
	}
	args, err := json.Marshal(entry.Args)
	if err != nil {
		return err
	}
	_, err = j.DB.Exec(
		fmt.Sprintf(`INSERT INTO "%s".command_journal (command, args, success, error, elapsed_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6)`, j.Schema),
		entry.Command, string(args), boolToInt(entry.Success), entry.Error, entry.ElapsedMS, entry.CreatedAt,
	)
	return err
}

// -----------------------------------------------------------------------------

func (j *PostgresJournal) Recent(limit int) ([]models.MJournalEntry, error) {
	if j.DB == nil {
		return nil, fmt.Errorf("journal not initialized")
	}
	rows, err := j.DB.Query(
		fmt.Sprintf(`SELECT command, args, success, error, elapsed_ms, created_at FROM "%s".command_journal ORDER BY id DESC LIMIT $1`, j.Schema),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// -----------------------------------------------------------------------------

func (j *PostgresJournal) Close() error {
	if j.DB == nil {
		return nil
	}
	return j.DB.Close()
}
