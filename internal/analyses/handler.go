package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumerank/internal/llm"
	"resumerank/internal/shared/server/middleware"
	"resumerank/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/rank", h.rank)
	rg.GET("/resumes/latest-analysis", h.latest)
}

type rankRequest struct {
	JobPrompt string `json:"jobPrompt"`
}

func (h *Handler) rank(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	analysis, results, err := h.Svc.Rank(c.Request.Context(), userID, req.JobPrompt)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPrompt):
			respond.Error(c, http.StatusBadRequest, "validation_error", "jobPrompt is required", nil)
		case errors.Is(err, ErrNoResumes):
			respond.Error(c, http.StatusBadRequest, "validation_error", "no resumes to rank", nil)
		case errors.Is(err, llm.ErrScoringUnavailable):
			respond.Error(c, http.StatusBadGateway, "scoring_unavailable", "resume scoring is unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to rank resumes", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.Created(c, toResponse(analysis, results))
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	analysis, results, err := h.Svc.Latest(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// No analysis yet is a valid state, not an error.
			respond.OK(c, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis", nil)
		}
		return
	}

	respond.OK(c, toResponse(analysis, results))
}
