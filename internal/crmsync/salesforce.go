package crmsync

import (
	"context"
	"strings"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// sfInserter is the narrow go-salesforce surface the pusher needs; tests
// substitute a fake.
type sfInserter interface {
	InsertOne(sObjectName string, record any) (salesforce.SalesforceResult, error)
}

// SalesforcePusher pushes leads as Salesforce Lead sObjects. It satisfies the
// same best-effort Pusher contract as the generic HTTP backend.
//
// The underlying go-salesforce/v3 library does not accept context.Context, so
// the ctx is only used for rate limiter waiting.
type SalesforcePusher struct {
	sf      sfInserter
	limiter *rate.Limiter
}

// NewSalesforce creates a SalesforcePusher. rps rate-limits API calls; zero
// disables limiting.
func NewSalesforce(sf *salesforce.Salesforce, rps float64) *SalesforcePusher {
	p := &SalesforcePusher{sf: sf}
	if rps > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
	return p
}

// Push inserts the lead as a Salesforce Lead record.
func (p *SalesforcePusher) Push(ctx context.Context, lead *model.Lead) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "crmsync: sf rate limit")
		}
	}

	result, err := p.sf.InsertOne("Lead", leadRecord(lead))
	if err != nil {
		return eris.Wrapf(err, "crmsync: sf insert lead %s", lead.ID)
	}
	if !result.Success {
		return eris.Errorf("crmsync: sf insert lead %s failed: %v", lead.ID, result.Errors)
	}
	return nil
}

// leadRecord maps a lead to Salesforce Lead fields. Salesforce requires
// LastName and Company to be non-empty.
func leadRecord(lead *model.Lead) map[string]any {
	company := lead.Company
	if company == "" {
		company = lead.Name
	}

	rec := map[string]any{
		"LastName":    lastName(lead.Name),
		"FirstName":   firstName(lead.Name),
		"Company":     company,
		"Email":       lead.Email,
		"Phone":       lead.Phone,
		"LeadSource":  lead.Source,
		"Description": lead.Notes,
	}
	if lead.QuizResult != "" {
		rec["Description"] = strings.TrimSpace(lead.Notes + "\nResultado do quiz: " + string(lead.QuizResult))
	}
	return rec
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

func lastName(full string) string {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return full
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[1:], " ")
	}
}
