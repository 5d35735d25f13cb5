package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// Pool is the narrow pgx surface the store uses. *pgxpool.Pool satisfies it,
// and so does pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	seq        BIGSERIAL,
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS crm_config (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal lead")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (id, data, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		lead.ID, string(data), string(lead.Status), lead.CreatedAt.UTC(), lead.UpdatedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: insert lead %s", lead.ID)
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx, `SELECT data FROM leads WHERE id = $1`, id)

	var data string
	err := row.Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get lead %s", id)
	}
	return decodeLead(data)
}

func (s *PostgresStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM leads ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		lead, err := decodeLead(data)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) UpdateLead(ctx context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal lead")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET data = $1, status = $2, updated_at = $3 WHERE id = $4`,
		string(data), string(lead.Status), lead.UpdatedAt.UTC(), lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead %s", lead.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", lead.ID)
	}
	return nil
}

func (s *PostgresStore) GetConfig(ctx context.Context) (*model.CrmConfig, error) {
	row := s.pool.QueryRow(ctx, `SELECT data FROM crm_config WHERE id = 1`)

	var data string
	err := row.Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get config")
	}

	var cfg model.CrmConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal config")
	}
	return &cfg, nil
}

func (s *PostgresStore) SaveConfig(ctx context.Context, cfg model.CrmConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal config")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO crm_config (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		string(data),
	)
	return eris.Wrap(err, "postgres: save config")
}
