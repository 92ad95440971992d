package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"assessor_gateway/models"
)

// Store holds operational data only: lookup audit rows, quote submissions,
// and source availability probes. Fetched assessor records are never
// written anywhere.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lookup_runs (
		id INTEGER PRIMARY KEY,
		request_id TEXT NOT NULL,
		region TEXT,
		street TEXT,
		number TEXT,
		status TEXT,
		error TEXT,
		fields_found INTEGER DEFAULT 0,
		started_at DATETIME,
		finished_at DATETIME,
		duration_ms INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		address TEXT NOT NULL,
		message TEXT,
		sent BOOLEAN DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS source_checks (
		id INTEGER PRIMARY KEY,
		checked_at DATETIME,
		status_code INTEGER,
		latency_ms INTEGER,
		ok BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON lookup_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_request ON lookup_runs(request_id);
	CREATE INDEX IF NOT EXISTS idx_quotes_unsent ON quotes(sent) WHERE sent = FALSE;
	CREATE INDEX IF NOT EXISTS idx_checks_time ON source_checks(checked_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) CreateLookupRun(run *models.LookupRun) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO lookup_runs (request_id, region, street, number, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.RequestID, run.Region, run.Street, run.Number, run.Status, run.StartedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) FinishLookupRun(run *models.LookupRun) error {
	_, err := s.db.Exec(`
		UPDATE lookup_runs SET status = ?, error = ?, fields_found = ?, finished_at = ?, duration_ms = ?
		WHERE id = ?`,
		run.Status, run.Error, run.FieldsFound, run.FinishedAt, run.DurationMS, run.ID)
	return err
}

func (s *Store) GetLookupRun(requestID string) (*models.LookupRun, error) {
	row := s.db.QueryRow(`
		SELECT id, request_id, region, street, number, status, COALESCE(error, ''),
			fields_found, started_at, finished_at, duration_ms
		FROM lookup_runs WHERE request_id = ? ORDER BY started_at DESC LIMIT 1`, requestID)

	var run models.LookupRun
	var finished sql.NullTime
	err := row.Scan(&run.ID, &run.RequestID, &run.Region, &run.Street, &run.Number,
		&run.Status, &run.Error, &run.FieldsFound, &run.StartedAt, &finished, &run.DurationMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return &run, nil
}

func (s *Store) SaveQuote(quote *models.QuoteRequest) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO quotes (name, email, phone, address, message, sent, created_at)
		VALUES (?, ?, ?, ?, ?, FALSE, ?)`,
		quote.Name, quote.Email, quote.Phone, quote.Address, quote.Message, time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) MarkQuoteSent(id int64) error {
	_, err := s.db.Exec(`UPDATE quotes SET sent = TRUE WHERE id = ?`, id)
	return err
}

func (s *Store) GetUnsentQuotes() ([]models.QuoteRequest, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, COALESCE(phone, ''), address, COALESCE(message, ''), sent, created_at
		FROM quotes WHERE sent = FALSE ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.QuoteRequest
	for rows.Next() {
		var q models.QuoteRequest
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Address, &q.Message, &q.Sent, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) RecordSourceCheck(check *models.SourceCheck) error {
	_, err := s.db.Exec(`
		INSERT INTO source_checks (checked_at, status_code, latency_ms, ok)
		VALUES (?, ?, ?, ?)`,
		check.CheckedAt, check.StatusCode, check.LatencyMS, check.OK)
	return err
}

func (s *Store) LastSourceCheck() (*models.SourceCheck, error) {
	row := s.db.QueryRow(`
		SELECT id, checked_at, status_code, latency_ms, ok
		FROM source_checks ORDER BY checked_at DESC LIMIT 1`)

	var check models.SourceCheck
	err := row.Scan(&check.ID, &check.CheckedAt, &check.StatusCode, &check.LatencyMS, &check.OK)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &check, nil
}
