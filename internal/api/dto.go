package api

import (
	"github.com/brisa-digital/quiz-crm/internal/model"
)

// scoreRequest carries a quiz answer set for ad-hoc scoring.
type scoreRequest struct {
	Answers model.AnswerSet `json:"answers" validate:"required"`
}

// scoreResponse pairs the winning category with its recommendation record.
type scoreResponse struct {
	Category       model.Category       `json:"category"`
	Recommendation model.Recommendation `json:"recommendation"`
}

// createLeadRequest is the validated intake payload. Optional quiz answers
// are scored and attached in the same request, matching the public quiz flow
// where intake and answers arrive together.
type createLeadRequest struct {
	model.Intake
	Answers model.AnswerSet `json:"answers,omitempty"`
}

// quizResultRequest attaches (or re-attaches) quiz answers to an existing
// lead. The category is always computed server-side.
type quizResultRequest struct {
	Answers model.AnswerSet `json:"answers" validate:"required"`
}

type statusRequest struct {
	Status model.LeadStatus `json:"status" validate:"required"`
}

type pushRequest struct {
	Workers int `json:"workers,omitempty"`
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
