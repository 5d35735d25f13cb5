package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// MemoryStore is an in-memory Store for tests and ephemeral runs. Records are
// deep-copied through JSON so callers never share memory with the store,
// matching the serialization behavior of the durable backends.
type MemoryStore struct {
	mu     sync.Mutex
	leads  map[string]string // id -> JSON document
	order  []string          // insertion order
	config *string
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{leads: make(map[string]string)}
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }
func (s *MemoryStore) Close() error                  { return nil }

func (s *MemoryStore) CreateLead(_ context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "memory: marshal lead")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.leads[lead.ID]; exists {
		return eris.Errorf("memory: duplicate lead id %s", lead.ID)
	}
	s.leads[lead.ID] = string(data)
	s.order = append(s.order, lead.ID)
	return nil
}

func (s *MemoryStore) GetLead(_ context.Context, id string) (*model.Lead, error) {
	s.mu.Lock()
	data, ok := s.leads[id]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return decodeLead(data)
}

func (s *MemoryStore) ListLeads(context.Context) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := make([]model.Lead, 0, len(s.order))
	for _, id := range s.order {
		lead, err := decodeLead(s.leads[id])
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, nil
}

func (s *MemoryStore) UpdateLead(_ context.Context, lead *model.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "memory: marshal lead")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[lead.ID]; !ok {
		return eris.Errorf("lead not found: %s", lead.ID)
	}
	s.leads[lead.ID] = string(data)
	return nil
}

func (s *MemoryStore) GetConfig(context.Context) (*model.CrmConfig, error) {
	s.mu.Lock()
	data := s.config
	s.mu.Unlock()
	if data == nil {
		return nil, nil
	}

	var cfg model.CrmConfig
	if err := json.Unmarshal([]byte(*data), &cfg); err != nil {
		return nil, eris.Wrap(err, "memory: unmarshal config")
	}
	return &cfg, nil
}

func (s *MemoryStore) SaveConfig(_ context.Context, cfg model.CrmConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "memory: marshal config")
	}

	s.mu.Lock()
	str := string(data)
	s.config = &str
	s.mu.Unlock()
	return nil
}
