package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Each lead is stored
// as a JSON document with status and timestamps duplicated into columns for
// indexing; the config is a single-row record.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS crm_config (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal lead")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (id, data, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		lead.ID, string(data), string(lead.Status), lead.CreatedAt.UTC(), lead.UpdatedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert lead %s", lead.ID)
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM leads WHERE id = ?`, id)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get lead %s", id)
	}
	return decodeLead(data)
}

func (s *SQLiteStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	// rowid preserves insertion order.
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM leads ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		lead, err := decodeLead(data)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) UpdateLead(ctx context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal lead")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET data = ?, status = ?, updated_at = ? WHERE id = ?`,
		string(data), string(lead.Status), lead.UpdatedAt.UTC(), lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead %s", lead.ID)
	}
	return checkRowsAffected(res, lead.ID)
}

func (s *SQLiteStore) GetConfig(ctx context.Context) (*model.CrmConfig, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM crm_config WHERE id = 1`)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get config")
	}

	var cfg model.CrmConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal config")
	}
	return &cfg, nil
}

func (s *SQLiteStore) SaveConfig(ctx context.Context, cfg model.CrmConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal config")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO crm_config (id, data) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(data),
	)
	return eris.Wrap(err, "sqlite: save config")
}

// helpers

// decodeLead fails closed on corrupt stored JSON rather than returning a
// partial record.
func decodeLead(data string) (*model.Lead, error) {
	var lead model.Lead
	if err := json.Unmarshal([]byte(data), &lead); err != nil {
		return nil, eris.Wrap(err, "store: corrupt lead record")
	}
	return &lead, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("lead not found: %s", id)
	}
	return nil
}
