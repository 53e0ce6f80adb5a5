package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/service"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type ReportHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// HighRisk streams the high-risk roster as a CSV or PDF download.
func (h *ReportHandler) HighRisk(c *gin.Context) {
	format := c.DefaultQuery("format", service.ReportFormatCSV)

	report, err := h.reports.HighRiskReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Body)
}

// Link mints a time-limited download token for the high-risk roster.
func (h *ReportHandler) Link(c *gin.Context) {
	format := c.DefaultQuery("format", service.ReportFormatCSV)

	token, expiresAt, err := h.reports.SignedLink(format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Download serves a report named by a signed token. No session required;
// the token itself is the credential.
func (h *ReportHandler) Download(c *gin.Context) {
	report, err := h.reports.ReportByToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Body)
}
