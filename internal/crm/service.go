// Package crm owns the lead lifecycle: creation, mutation, aggregation, and
// the best-effort push to an external CRM.
package crm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/brisa-digital/quiz-crm/internal/crmsync"
	"github.com/brisa-digital/quiz-crm/internal/export"
	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/stats"
	"github.com/brisa-digital/quiz-crm/internal/store"
)

// leadSource tags every lead created through the quiz intake flow.
const leadSource = "quiz"

// PusherFactory builds a Pusher from the current CRM config. The service
// rebuilds its pusher whenever the config changes.
type PusherFactory func(cfg model.CrmConfig) crmsync.Pusher

// DefaultPusherFactory wires the generic HTTP bearer-token backend.
func DefaultPusherFactory(cfg model.CrmConfig) crmsync.Pusher {
	return crmsync.NewHTTP(cfg.APIURL, cfg.APIKey, crmsync.HTTPOptions{})
}

// Options tunes service construction.
type Options struct {
	// Pusher builds the sync backend; nil uses DefaultPusherFactory.
	Pusher PusherFactory
	// Now supplies timestamps; nil uses time.Now. Injectable for tests.
	Now func() time.Time
	// SyncQueueDepth bounds pending pushes; <= 0 uses the default.
	SyncQueueDepth int
	// SyncTimeout bounds each push; <= 0 uses the default.
	SyncTimeout time.Duration
}

// Service is the lead store. Mutations persist synchronously to the backing
// store before returning; the external CRM push is a queued side effect whose
// failure never surfaces to the caller.
//
// Not-found is (nil, nil), never an error.
type Service struct {
	st   store.Store
	opts Options

	mu    sync.Mutex
	cfg   model.CrmConfig
	queue *syncQueue
}

// New constructs a Service. The CRM config is loaded once from the store; a
// missing record falls back to the default config, which is then persisted.
func New(ctx context.Context, st store.Store, opts Options) (*Service, error) {
	if opts.Pusher == nil {
		opts.Pusher = DefaultPusherFactory
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cfg, err := st.GetConfig(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "crm: load config")
	}
	if cfg == nil {
		def := model.DefaultCrmConfig()
		if err := st.SaveConfig(ctx, def); err != nil {
			return nil, eris.Wrap(err, "crm: persist default config")
		}
		cfg = &def
	}

	s := &Service{st: st, opts: opts, cfg: *cfg}
	s.rewireQueueLocked()
	return s, nil
}

// Close drains pending sync pushes. The store is owned by the caller and is
// not closed here.
func (s *Service) Close() {
	s.mu.Lock()
	q := s.queue
	s.queue = nil
	s.mu.Unlock()
	if q != nil {
		q.close()
	}
}

// rewireQueueLocked rebuilds the sync queue for the current config. Caller
// holds s.mu (or is the constructor).
func (s *Service) rewireQueueLocked() {
	if s.queue != nil {
		s.queue.close()
		s.queue = nil
	}
	if s.cfg.SyncReady() {
		s.queue = newSyncQueue(s.opts.Pusher(s.cfg), s.opts.SyncQueueDepth, s.opts.SyncTimeout)
	}
}

// requestSync enqueues a best-effort push of the lead snapshot. The enqueue
// happens under s.mu so a concurrent rewire cannot close the channel between
// the queue lookup and the send; enqueue never blocks, so holding the lock
// across it is safe.
func (s *Service) requestSync(lead *model.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue != nil {
		s.queue.enqueue(lead)
	}
}

// Create persists a new lead from validated intake data. Required-field
// validation is the caller's job; the service does not re-validate.
func (s *Service) Create(ctx context.Context, intake model.Intake) (*model.Lead, error) {
	now := s.opts.Now().UTC()

	s.mu.Lock()
	tags := append([]string(nil), s.cfg.LeadsTags...)
	s.mu.Unlock()

	lead := &model.Lead{
		Intake:       intake,
		ID:           uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Status:       model.StatusNew,
		Tags:         tags,
		Interactions: []model.Interaction{},
		Source:       leadSource,
	}

	if err := s.st.CreateLead(ctx, lead); err != nil {
		return nil, eris.Wrap(err, "crm: create lead")
	}
	zap.L().Info("crm: lead created",
		zap.String("lead_id", lead.ID),
		zap.String("email", lead.Email),
	)

	s.requestSync(lead)
	return lead, nil
}

// AttachQuizResult merges the quiz answers into the lead, records the scored
// category, and tags the lead with it.
func (s *Service) AttachQuizResult(ctx context.Context, id string, answers model.AnswerSet, category model.Category) (*model.Lead, error) {
	lead, err := s.st.GetLead(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "crm: attach quiz result")
	}
	if lead == nil {
		return nil, nil
	}

	if lead.QuizAnswers == nil {
		lead.QuizAnswers = make(model.AnswerSet, len(answers))
	}
	for q, opt := range answers {
		lead.QuizAnswers[q] = opt
	}
	lead.QuizResult = category

	resultTag := "resultado:" + string(category)
	if !lead.HasTag(resultTag) {
		lead.Tags = append(lead.Tags, resultTag)
	}
	lead.UpdatedAt = s.opts.Now().UTC()

	if err := s.st.UpdateLead(ctx, lead); err != nil {
		return nil, eris.Wrap(err, "crm: attach quiz result")
	}

	s.requestSync(lead)
	return lead, nil
}

// SetStatus overwrites the lead's status. No transition table is enforced:
// any status may follow any other.
func (s *Service) SetStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	lead, err := s.st.GetLead(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "crm: set status")
	}
	if lead == nil {
		return nil, nil
	}

	lead.Status = status
	lead.UpdatedAt = s.opts.Now().UTC()

	if err := s.st.UpdateLead(ctx, lead); err != nil {
		return nil, eris.Wrap(err, "crm: set status")
	}
	return lead, nil
}

// InteractionDraft is the caller-supplied part of an interaction; the service
// assigns the ID and date.
type InteractionDraft struct {
	Type        model.InteractionType `json:"type" validate:"required"`
	Description string                `json:"description" validate:"required"`
	By          string                `json:"by" validate:"required"`
}

// AddInteraction appends one interaction to the lead's history. The history
// is append-only; prior entries are never touched.
func (s *Service) AddInteraction(ctx context.Context, id string, draft InteractionDraft) (*model.Lead, error) {
	lead, err := s.st.GetLead(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "crm: add interaction")
	}
	if lead == nil {
		return nil, nil
	}

	now := s.opts.Now().UTC()
	lead.Interactions = append(lead.Interactions, model.Interaction{
		ID:          uuid.New().String(),
		Date:        now,
		Type:        draft.Type,
		Description: draft.Description,
		By:          draft.By,
	})
	lead.UpdatedAt = now

	if err := s.st.UpdateLead(ctx, lead); err != nil {
		return nil, eris.Wrap(err, "crm: add interaction")
	}
	return lead, nil
}

// Update replaces the stored record with the caller's copy, bumping
// UpdatedAt. Returns (nil, nil) when no lead with that ID exists.
func (s *Service) Update(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	existing, err := s.st.GetLead(ctx, lead.ID)
	if err != nil {
		return nil, eris.Wrap(err, "crm: update lead")
	}
	if existing == nil {
		return nil, nil
	}

	updated := *lead
	updated.UpdatedAt = s.opts.Now().UTC()

	if err := s.st.UpdateLead(ctx, &updated); err != nil {
		return nil, eris.Wrap(err, "crm: update lead")
	}
	return &updated, nil
}

// GetByID returns the lead, or (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	lead, err := s.st.GetLead(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "crm: get lead")
	}
	return lead, nil
}

// GetAll returns every lead in storage-insertion order.
func (s *Service) GetAll(ctx context.Context) ([]model.Lead, error) {
	leads, err := s.st.ListLeads(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "crm: list leads")
	}
	return leads, nil
}

// Config returns a copy of the current CRM config.
func (s *Service) Config() model.CrmConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	cfg.LeadsTags = append([]string(nil), cfg.LeadsTags...)
	return cfg
}

// ConfigPatch is a partial CrmConfig update; nil fields are left unchanged.
type ConfigPatch struct {
	APIURL        *string              `json:"apiUrl,omitempty"`
	APIKey        *string              `json:"apiKey,omitempty"`
	SyncEnabled   *bool                `json:"syncEnabled,omitempty"`
	SyncFrequency *model.SyncFrequency `json:"syncFrequency,omitempty"`
	LeadsTags     []string             `json:"leadsTags,omitempty"`
}

// UpdateConfig merges the patch into the current config, persists it, and
// rewires the sync backend.
func (s *Service) UpdateConfig(ctx context.Context, patch ConfigPatch) (model.CrmConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	if patch.APIURL != nil {
		cfg.APIURL = *patch.APIURL
	}
	if patch.APIKey != nil {
		cfg.APIKey = *patch.APIKey
	}
	if patch.SyncEnabled != nil {
		cfg.SyncEnabled = *patch.SyncEnabled
	}
	if patch.SyncFrequency != nil {
		cfg.SyncFrequency = *patch.SyncFrequency
	}
	if patch.LeadsTags != nil {
		cfg.LeadsTags = append([]string(nil), patch.LeadsTags...)
	}

	if err := s.st.SaveConfig(ctx, cfg); err != nil {
		return model.CrmConfig{}, eris.Wrap(err, "crm: save config")
	}

	s.cfg = cfg
	s.rewireQueueLocked()
	return cfg, nil
}

// Stats computes the dashboard metrics over the current collection.
func (s *Service) Stats(ctx context.Context) (model.DashboardStats, error) {
	leads, err := s.GetAll(ctx)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return stats.Compute(leads, s.opts.Now()), nil
}

// ExportCSV serializes the full collection as CSV.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	leads, err := s.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return export.ToCSV(leads)
}

// ExportXLSX serializes the full collection as an XLSX workbook.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	leads, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return export.ToXLSX(leads)
}
