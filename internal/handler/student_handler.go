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

type StudentHandler struct {
	students *service.StudentService
	logger   *zap.Logger
}

func NewStudentHandler(students *service.StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{students: students, logger: logger}
}

// List returns the roster, or a single student when an id is given.
// `high_risk=true` narrows the roster to flagged students.
func (h *StudentHandler) List(c *gin.Context) {
	if c.Query("id") != "" {
		id, err := queryID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		student, err := h.students.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, student)
		return
	}

	filter := models.StudentFilter{HighRisk: c.Query("high_risk") == "true"}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Create registers a student intake and computes the dropout risk score.
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Student was created.",
		"id":      student.ID,
	})
}

// UpdateStatus rolls the student's intervention status forward. No other
// student field is mutable after intake.
func (h *StudentHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStudentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if err := h.students.UpdateStatus(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Student intervention status was updated.")
}
