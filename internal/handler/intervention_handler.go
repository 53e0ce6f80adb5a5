package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type InterventionHandler struct {
	interventions *service.InterventionService
	logger        *zap.Logger
}

func NewInterventionHandler(interventions *service.InterventionService, logger *zap.Logger) *InterventionHandler {
	return &InterventionHandler{interventions: interventions, logger: logger}
}

// List returns the high-risk roster with each student's interventions.
func (h *InterventionHandler) List(c *gin.Context) {
	records, err := h.interventions.ListHighRisk(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Create opens an intervention and moves the student to In Progress.
func (h *InterventionHandler) Create(c *gin.Context) {
	var req models.CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if _, err := h.interventions.Create(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Intervention was created.")
}

// Update closes or re-grades an intervention, rolling the student up to
// Completed when the last open intervention finishes.
func (h *InterventionHandler) Update(c *gin.Context) {
	var req models.UpdateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if err := h.interventions.Update(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Intervention was updated.")
}
