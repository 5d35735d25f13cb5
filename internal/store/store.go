// Package store persists the lead collection and the CRM configuration.
package store

import (
	"context"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// Store defines the persistence interface for leads and the CRM config.
//
// Reads return (nil, nil) when the record does not exist; not-found is an
// expected condition, not an error. Writes are synchronous: when a mutation
// returns, the record is durably committed. The store provides no mutual
// exclusion across processes; concurrent writers are last-write-wins.
type Store interface {
	// Leads
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
	UpdateLead(ctx context.Context, lead *model.Lead) error

	// CRM config (single named record)
	GetConfig(ctx context.Context) (*model.CrmConfig, error)
	SaveConfig(ctx context.Context, cfg model.CrmConfig) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
