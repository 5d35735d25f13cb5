// Package model defines the shared data types for the quiz and lead CRM.
package model

import "time"

// LeadStatus is the lifecycle stage of a lead. The declaration order is the
// workflow order, but transitions are unrestricted: any status may follow any
// other.
type LeadStatus string

const (
	StatusNew        LeadStatus = "novo"
	StatusContacted  LeadStatus = "contatado"
	StatusInProgress LeadStatus = "em_andamento"
	StatusConverted  LeadStatus = "convertido"
	StatusLost       LeadStatus = "perdido"
)

// AllStatuses lists every LeadStatus in declaration order.
func AllStatuses() []LeadStatus {
	return []LeadStatus{
		StatusNew,
		StatusContacted,
		StatusInProgress,
		StatusConverted,
		StatusLost,
	}
}

// Valid reports whether s is a member of the closed status set.
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusConverted, StatusLost:
		return true
	}
	return false
}

// InteractionType classifies a recorded touch point with a lead.
type InteractionType string

const (
	InteractionEmail   InteractionType = "email"
	InteractionCall    InteractionType = "call"
	InteractionMeeting InteractionType = "meeting"
	InteractionMessage InteractionType = "message"
	InteractionOther   InteractionType = "other"
)

// Valid reports whether t is a member of the closed interaction-type set.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionEmail, InteractionCall, InteractionMeeting, InteractionMessage, InteractionOther:
		return true
	}
	return false
}

// Interaction is one entry in a lead's contact history. Interactions are
// append-only: once created they are never mutated or deleted.
type Interaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        InteractionType `json:"type"`
	Description string          `json:"description"`
	By          string          `json:"by"`
}

// Intake holds the pre-briefing fields collected before the quiz.
// Name, email, and phone are required; validation happens at the API boundary,
// not in the store.
type Intake struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Company      string `json:"company,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	HowFound     string `json:"howFound,omitempty"`
	Budget       string `json:"budget,omitempty"`
	Deadline     string `json:"deadline,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Lead is one prospective customer's intake plus lifecycle state.
//
// Invariants: ID is immutable after creation, UpdatedAt >= CreatedAt, and Tags
// always contains the configured default tags from creation time.
type Lead struct {
	Intake

	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Status       LeadStatus    `json:"status"`
	QuizAnswers  AnswerSet     `json:"quizAnswers,omitempty"`
	QuizResult   Category      `json:"quizResult,omitempty"`
	AssignedTo   string        `json:"assignedTo,omitempty"`
	FollowUpDate *time.Time    `json:"followUpDate,omitempty"`
	Tags         []string      `json:"tags"`
	Interactions []Interaction `json:"interactions"`
	Source       string        `json:"source"`
}

// HasTag reports whether the lead carries the given tag.
func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SyncFrequency controls how often leads are pushed to the external CRM.
type SyncFrequency string

const (
	SyncRealtime SyncFrequency = "realtime"
	SyncHourly   SyncFrequency = "hourly"
	SyncDaily    SyncFrequency = "daily"
)

// CrmConfig is the runtime-mutable CRM integration configuration. It is loaded
// once at service construction and persisted on every update.
type CrmConfig struct {
	APIURL        string        `json:"apiUrl,omitempty"`
	APIKey        string        `json:"apiKey,omitempty"`
	SyncEnabled   bool          `json:"syncEnabled"`
	SyncFrequency SyncFrequency `json:"syncFrequency"`
	LeadsTags     []string      `json:"leadsTags"`
}

// DefaultCrmConfig returns the configuration used when none has been persisted.
func DefaultCrmConfig() CrmConfig {
	return CrmConfig{
		SyncEnabled:   false,
		SyncFrequency: SyncDaily,
		LeadsTags:     []string{"quiz"},
	}
}

// SyncReady reports whether the config is complete enough to push leads to the
// external endpoint.
func (c CrmConfig) SyncReady() bool {
	return c.SyncEnabled && c.APIURL != "" && c.APIKey != ""
}

// StatusCount is one leadsByStatus entry.
type StatusCount struct {
	Status LeadStatus `json:"status"`
	Count  int        `json:"count"`
}

// DayCount is one leadsPerDay entry. Date is formatted YYYY-MM-DD.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardStats is derived from the full lead collection on demand and never
// persisted.
type DashboardStats struct {
	TotalLeads        int           `json:"totalLeads"`
	NewLeadsToday     int           `json:"newLeadsToday"`
	ConversionRate    float64       `json:"conversionRate"`
	PopularQuizResult string        `json:"popularQuizResult"`
	LeadsPerDay       []DayCount    `json:"leadsPerDay"`
	LeadsByStatus     []StatusCount `json:"leadsByStatus"`
}
