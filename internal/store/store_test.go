package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testLead(name string) *model.Lead {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.Lead{
		Intake: model.Intake{
			Name:         name,
			Email:        name + "@example.com",
			Phone:        "+55 11 99999-0000",
			Company:      "Padaria do Centro",
			BusinessType: "comércio",
		},
		ID:           uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Status:       model.StatusNew,
		Tags:         []string{"quiz"},
		Interactions: []model.Interaction{},
		Source:       "quiz",
	}
}

// conformance runs the shared Store behavior suite against any implementation.
func conformance(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("get missing lead returns nil nil", func(t *testing.T) {
		got, err := st.GetLead(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create and round-trip", func(t *testing.T) {
		lead := testLead("Ana")
		lead.QuizAnswers = model.AnswerSet{1: "1a", 2: "2b"}
		lead.QuizResult = model.CategoryPortfolio

		require.NoError(t, st.CreateLead(ctx, lead))

		got, err := st.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, lead.Intake, got.Intake)
		assert.Equal(t, lead.Status, got.Status)
		assert.Equal(t, lead.Tags, got.Tags)
		assert.Equal(t, lead.QuizAnswers, got.QuizAnswers)
		assert.Equal(t, lead.QuizResult, got.QuizResult)
		assert.True(t, lead.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, lead.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		var ids []string
		for i := range 5 {
			lead := testLead(fmt.Sprintf("Lead%02d", i))
			require.NoError(t, st.CreateLead(ctx, lead))
			ids = append(ids, lead.ID)
		}

		leads, err := st.ListLeads(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(leads), 5)

		// The five just-created leads appear in creation order at the tail.
		tail := leads[len(leads)-5:]
		for i, lead := range tail {
			assert.Equal(t, ids[i], lead.ID)
		}
	})

	t.Run("update existing lead", func(t *testing.T) {
		lead := testLead("Bruno")
		require.NoError(t, st.CreateLead(ctx, lead))

		lead.Status = model.StatusConverted
		lead.UpdatedAt = lead.UpdatedAt.Add(time.Hour)
		require.NoError(t, st.UpdateLead(ctx, lead))

		got, err := st.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConverted, got.Status)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("update missing lead fails", func(t *testing.T) {
		lead := testLead("Fantasma")
		err := st.UpdateLead(ctx, lead)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("config round-trip", func(t *testing.T) {
		got, err := st.GetConfig(ctx)
		require.NoError(t, err)
		assert.Nil(t, got, "config starts absent")

		cfg := model.CrmConfig{
			APIURL:        "https://crm.example.com/api",
			APIKey:        "secret",
			SyncEnabled:   true,
			SyncFrequency: model.SyncRealtime,
			LeadsTags:     []string{"quiz", "site"},
		}
		require.NoError(t, st.SaveConfig(ctx, cfg))

		got, err = st.GetConfig(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, cfg, *got)

		// Saving again overwrites the single record.
		cfg.SyncEnabled = false
		require.NoError(t, st.SaveConfig(ctx, cfg))
		got, err = st.GetConfig(ctx)
		require.NoError(t, err)
		assert.False(t, got.SyncEnabled)
	})
}

func TestSQLiteStore_Conformance(t *testing.T) {
	conformance(t, newTestSQLiteStore(t))
}

func TestMemoryStore_Conformance(t *testing.T) {
	conformance(t, NewMemory())
}

func TestSQLiteStore_DuplicateIDRejected(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	lead := testLead("Clara")
	require.NoError(t, st.CreateLead(ctx, lead))
	require.Error(t, st.CreateLead(ctx, lead))
}

func TestMemoryStore_DuplicateIDRejected(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	lead := testLead("Clara")
	require.NoError(t, st.CreateLead(ctx, lead))
	require.Error(t, st.CreateLead(ctx, lead))
}

func TestSQLiteStore_CorruptLeadFailsClosed(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx,
		`INSERT INTO leads (id, data, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"bad", "{not json", "novo", time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)

	_, err = st.GetLead(ctx, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")

	_, err = st.ListLeads(ctx)
	require.Error(t, err)
}

func TestMemoryStore_CopiesOnWriteAndRead(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	lead := testLead("Diego")
	require.NoError(t, st.CreateLead(ctx, lead))

	// Mutating the caller's copy must not leak into the store.
	lead.Name = "Alterado"
	got, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diego", got.Name)

	// Mutating a read result must not leak either.
	got.Tags = append(got.Tags, "x")
	again, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"quiz"}, again.Tags)
}
