package crm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-digital/quiz-crm/internal/crmsync"
	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/store"
)

type recordingPusher struct {
	mu     sync.Mutex
	pushed []string
	err    error
}

func (p *recordingPusher) Push(_ context.Context, lead *model.Lead) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, lead.ID)
	return p.err
}

func (p *recordingPusher) ids() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.pushed...)
}

func testIntake() model.Intake {
	return model.Intake{
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		Phone:        "+55 11 91234-5678",
		Company:      "Silva Fotografia",
		BusinessType: "Fotografia",
	}
}

func newTestService(t *testing.T, pusher crmsync.Pusher) (*Service, store.Store) {
	t.Helper()
	st := store.NewMemory()

	opts := Options{
		Now: func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
	if pusher != nil {
		opts.Pusher = func(model.CrmConfig) crmsync.Pusher { return pusher }
	}

	svc, err := New(context.Background(), st, opts)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc, st
}

func TestService_CreateThenGetByID(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusNew, created.Status)
	assert.NotEmpty(t, created.Tags, "default tags applied at creation")
	assert.Equal(t, "quiz", created.Source)
	assert.Empty(t, created.Interactions)
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Intake, got.Intake)
	assert.Equal(t, created.Status, got.Status)
}

func TestService_GetByIDMissingIsNilNil(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_AttachQuizResult(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)

	answers := model.AnswerSet{1: "1b", 2: "2b"}
	updated, err := svc.AttachQuizResult(ctx, created.ID, answers, model.CategoryPortfolio)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, model.CategoryPortfolio, updated.QuizResult)
	assert.Equal(t, answers, updated.QuizAnswers)
	assert.True(t, updated.HasTag("resultado:portfolio"))

	// Re-attaching must not duplicate the result tag.
	again, err := svc.AttachQuizResult(ctx, created.ID, model.AnswerSet{3: "3b"}, model.CategoryPortfolio)
	require.NoError(t, err)
	count := 0
	for _, tag := range again.Tags {
		if tag == "resultado:portfolio" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "3b", again.QuizAnswers[3], "answer maps merge, not replace")
	assert.Equal(t, "1b", again.QuizAnswers[1])
}

func TestService_AttachQuizResultMissingLead(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.AttachQuizResult(context.Background(), "ghost", model.AnswerSet{}, model.CategoryLanding)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_SetStatusFlowsIntoStats(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, created.ID, model.StatusConverted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConverted, updated.Status)

	got, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalLeads)
	assert.InDelta(t, 100.0, got.ConversionRate, 0.001)
	for _, sc := range got.LeadsByStatus {
		switch sc.Status {
		case model.StatusConverted:
			assert.Equal(t, 1, sc.Count)
		default:
			assert.Equal(t, 0, sc.Count)
		}
	}
}

func TestService_AddInteractionIsAppendOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)

	first, err := svc.AddInteraction(ctx, created.ID, InteractionDraft{
		Type: model.InteractionCall, Description: "Primeiro contato", By: "ana",
	})
	require.NoError(t, err)
	require.Len(t, first.Interactions, 1)

	second, err := svc.AddInteraction(ctx, created.ID, InteractionDraft{
		Type: model.InteractionEmail, Description: "Enviou proposta", By: "ana",
	})
	require.NoError(t, err)
	require.Len(t, second.Interactions, 2)
	assert.Equal(t, "Primeiro contato", second.Interactions[0].Description)
	assert.Equal(t, "Enviou proposta", second.Interactions[1].Description)
	assert.NotEmpty(t, second.Interactions[0].ID)
	assert.NotEqual(t, second.Interactions[0].ID, second.Interactions[1].ID)
}

func TestService_UpdateMissingLead(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.Update(context.Background(), &model.Lead{ID: "ghost"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_UpdateConfigRewiresSync(t *testing.T) {
	pusher := &recordingPusher{}
	svc, _ := newTestService(t, pusher)
	ctx := context.Background()

	// Sync is disabled by default, so creation must not push.
	first, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)

	url := "https://crm.example.com"
	key := "secret"
	enabled := true
	cfg, err := svc.UpdateConfig(ctx, ConfigPatch{
		APIURL: &url, APIKey: &key, SyncEnabled: &enabled,
	})
	require.NoError(t, err)
	assert.True(t, cfg.SyncReady())

	second, err := svc.Create(ctx, testIntake())
	require.NoError(t, err)

	// Close drains the queue so the assertion is race-free.
	svc.Close()

	ids := pusher.ids()
	assert.NotContains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestService_CreateRacingConfigRewire(t *testing.T) {
	// Creates enqueue sync pushes while UpdateConfig tears down and rebuilds
	// the queue. A send that escaped the service mutex would hit the closed
	// channel and panic the whole process.
	pusher := &recordingPusher{}
	svc, _ := newTestService(t, pusher)
	ctx := context.Background()

	url := "https://crm.example.com"
	key := "secret"
	enabled := true
	disabled := false
	_, err := svc.UpdateConfig(ctx, ConfigPatch{APIURL: &url, APIKey: &key, SyncEnabled: &enabled})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := svc.Create(ctx, testIntake())
				assert.NoError(t, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			_, err := svc.UpdateConfig(ctx, ConfigPatch{SyncEnabled: &disabled})
			assert.NoError(t, err)
			_, err = svc.UpdateConfig(ctx, ConfigPatch{SyncEnabled: &enabled})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
	svc.Close()

	leads, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 200)
}

func TestService_CreateAssignsDistinctIDs(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		lead, err := svc.Create(ctx, testIntake())
		require.NoError(t, err)
		require.NotEmpty(t, lead.ID)
		assert.False(t, seen[lead.ID], "ID %s assigned twice", lead.ID)
		seen[lead.ID] = true
	}
}

func TestService_ConfigPersistsAcrossInstances(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	svc, err := New(ctx, st, Options{})
	require.NoError(t, err)

	url := "https://crm.example.com"
	_, err = svc.UpdateConfig(ctx, ConfigPatch{APIURL: &url, LeadsTags: []string{"quiz", "site"}})
	require.NoError(t, err)
	svc.Close()

	reopened, err := New(ctx, st, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	cfg := reopened.Config()
	assert.Equal(t, url, cfg.APIURL)
	assert.Equal(t, []string{"quiz", "site"}, cfg.LeadsTags)
}

func TestService_PushAll(t *testing.T) {
	pusher := &recordingPusher{}
	svc, _ := newTestService(t, pusher)
	ctx := context.Background()

	url := "https://crm.example.com"
	key := "secret"
	enabled := true
	_, err := svc.UpdateConfig(ctx, ConfigPatch{APIURL: &url, APIKey: &key, SyncEnabled: &enabled})
	require.NoError(t, err)

	var wantIDs []string
	for i := 0; i < 5; i++ {
		lead, err := svc.Create(ctx, testIntake())
		require.NoError(t, err)
		wantIDs = append(wantIDs, lead.ID)
	}
	svc.Close() // drain the realtime queue first
	pusher.mu.Lock()
	pusher.pushed = nil
	pusher.mu.Unlock()

	report, err := svc.PushAll(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, PushReport{Total: 5, Pushed: 5}, report)
	assert.ElementsMatch(t, wantIDs, pusher.ids())
}

func TestService_PushAllUnconfigured(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.PushAll(context.Background(), 2)
	require.Error(t, err)
}
