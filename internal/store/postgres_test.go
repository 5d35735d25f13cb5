package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_GetLead_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM leads WHERE id = \$1`).
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	lead, err := s.GetLead(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.Nil(t, lead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetLead_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	doc := `{"id":"abc","name":"Ana","email":"ana@example.com","phone":"11999990000",` +
		`"status":"novo","tags":["quiz"],"interactions":[],"source":"quiz",` +
		`"createdAt":"2026-08-01T12:00:00Z","updatedAt":"2026-08-01T12:00:00Z"}`

	mock.ExpectQuery(`SELECT data FROM leads WHERE id = \$1`).
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(doc))

	lead, err := s.GetLead(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "Ana", lead.Name)
	assert.Equal(t, model.StatusNew, lead.Status)
	assert.Equal(t, []string{"quiz"}, lead.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetLead_CorruptFailsClosed(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM leads WHERE id = \$1`).
		WithArgs("bad").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow("{broken"))

	_, err := s.GetLead(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateLead(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	lead := testLead("Elisa")
	mock.ExpectExec(`INSERT INTO leads`).
		WithArgs(lead.ID, pgxmock.AnyArg(), string(lead.Status), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.CreateLead(context.Background(), lead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateLead_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	lead := testLead("Fabio")
	mock.ExpectExec(`UPDATE leads SET`).
		WithArgs(pgxmock.AnyArg(), string(lead.Status), pgxmock.AnyArg(), lead.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateLead(context.Background(), lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ConfigRoundTrip(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM crm_config WHERE id = 1`).
		WillReturnError(pgx.ErrNoRows)

	cfg, err := s.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)

	mock.ExpectExec(`INSERT INTO crm_config`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, s.SaveConfig(context.Background(), model.DefaultCrmConfig()))

	mock.ExpectQuery(`SELECT data FROM crm_config WHERE id = 1`).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).
			AddRow(`{"syncEnabled":true,"syncFrequency":"hourly","leadsTags":["quiz"]}`))

	cfg, err = s.GetConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.SyncEnabled)
	assert.Equal(t, model.SyncHourly, cfg.SyncFrequency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS leads`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
