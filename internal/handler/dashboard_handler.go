package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/service"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns the aggregate dashboard payload.
func (h *DashboardHandler) Get(c *gin.Context) {
	data, err := h.dashboard.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// Factors returns the risk-factor analysis payload.
func (h *DashboardHandler) Factors(c *gin.Context) {
	data, err := h.dashboard.GetFactors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}
