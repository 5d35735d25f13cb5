// Package api exposes the admin HTTP surface over the lead store and the
// quiz scoring engine.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/brisa-digital/quiz-crm/internal/crm"
	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/quiz"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadNotFound     = "lead not found"
)

// Handler bundles the service and request validator behind the gin routes.
type Handler struct {
	svc      *crm.Service
	validate *validator.Validate
}

func NewHandler(svc *crm.Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// RegisterRoutes mounts every endpoint under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quiz/questions", h.QuizQuestions)
	rg.POST("/quiz/score", h.QuizScore)

	rg.GET("/leads", h.ListLeads)
	rg.POST("/leads", h.CreateLead)
	rg.GET("/leads/export.csv", h.ExportCSV)
	rg.GET("/leads/export.xlsx", h.ExportXLSX)
	rg.GET("/leads/:id", h.GetLead)
	rg.PUT("/leads/:id", h.UpdateLead)
	rg.PATCH("/leads/:id/status", h.UpdateStatus)
	rg.POST("/leads/:id/quiz-result", h.AttachQuizResult)
	rg.POST("/leads/:id/interactions", h.AddInteraction)

	rg.GET("/stats", h.Stats)
	rg.GET("/config", h.GetConfig)
	rg.PUT("/config", h.UpdateConfig)
	rg.POST("/sync/push", h.PushAll)
}

func badRequest(c *gin.Context, message string, details any) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message, Details: details})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Error: msgLeadNotFound})
}

// QuizQuestions returns the static question catalog.
func (h *Handler) QuizQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, quiz.Questions())
}

// QuizScore scores an answer set without touching any lead.
func (h *Handler) QuizScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if req.Answers == nil {
		badRequest(c, msgValidationFailed, "answers is required")
		return
	}

	category, rec := quiz.ScoreAndRecommend(req.Answers)
	c.JSON(http.StatusOK, scoreResponse{Category: category, Recommendation: rec})
}

// CreateLead validates the intake and creates a lead. When answers ride
// along, the quiz result is scored and attached in the same call.
func (h *Handler) CreateLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req.Intake); err != nil {
		badRequest(c, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req.Intake)
	if err != nil {
		serverError(c, err)
		return
	}

	if len(req.Answers) > 0 {
		category := quiz.Score(req.Answers)
		lead, err = h.svc.AttachQuizResult(c.Request.Context(), lead.ID, req.Answers, category)
		if err != nil {
			serverError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if lead == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// UpdateLead replaces the stored record wholesale with the request body.
func (h *Handler) UpdateLead(c *gin.Context) {
	var lead model.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(lead.Intake); err != nil {
		badRequest(c, msgValidationFailed, err.Error())
		return
	}
	lead.ID = c.Param("id")

	updated, err := h.svc.Update(c.Request.Context(), &lead)
	if err != nil {
		serverError(c, err)
		return
	}
	if updated == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if !req.Status.Valid() {
		badRequest(c, msgValidationFailed, "unknown status")
		return
	}

	lead, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		serverError(c, err)
		return
	}
	if lead == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// AttachQuizResult scores the submitted answers and attaches the result to
// the lead.
func (h *Handler) AttachQuizResult(c *gin.Context) {
	var req quizResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if req.Answers == nil {
		badRequest(c, msgValidationFailed, "answers is required")
		return
	}

	category := quiz.Score(req.Answers)
	lead, err := h.svc.AttachQuizResult(c.Request.Context(), c.Param("id"), req.Answers, category)
	if err != nil {
		serverError(c, err)
		return
	}
	if lead == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) AddInteraction(c *gin.Context) {
	var draft crm.InteractionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		badRequest(c, msgValidationFailed, err.Error())
		return
	}
	if !draft.Type.Valid() {
		badRequest(c, msgValidationFailed, "unknown interaction type")
		return
	}

	lead, err := h.svc.AddInteraction(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		serverError(c, err)
		return
	}
	if lead == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	out, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="leads.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	out, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="leads.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

// GetConfig returns the CRM config with the API key redacted.
func (h *Handler) GetConfig(c *gin.Context) {
	cfg := h.svc.Config()
	if cfg.APIKey != "" {
		cfg.APIKey = "***"
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var patch crm.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, msgInvalidRequest, nil)
		return
	}
	if patch.SyncFrequency != nil {
		switch *patch.SyncFrequency {
		case model.SyncRealtime, model.SyncHourly, model.SyncDaily:
		default:
			badRequest(c, msgValidationFailed, "unknown sync frequency")
			return
		}
	}

	cfg, err := h.svc.UpdateConfig(c.Request.Context(), patch)
	if err != nil {
		serverError(c, err)
		return
	}
	if cfg.APIKey != "" {
		cfg.APIKey = "***"
	}
	c.JSON(http.StatusOK, cfg)
}

// PushAll synchronously pushes the whole collection to the external CRM.
func (h *Handler) PushAll(c *gin.Context) {
	var req pushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, msgInvalidRequest, nil)
			return
		}
	}

	report, err := h.svc.PushAll(c.Request.Context(), req.Workers)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, report)
}
