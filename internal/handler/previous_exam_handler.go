package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduhub/eduhub-backend/internal/middleware"
	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/response"
	"github.com/eduhub/eduhub-backend/internal/service"
	"github.com/eduhub/eduhub-backend/internal/validator"
)

type PreviousExamHandler struct {
	examService *service.PreviousExamService
}

func NewPreviousExamHandler(examService *service.PreviousExamService) *PreviousExamHandler {
	return &PreviousExamHandler{examService: examService}
}

// List godoc
// GET /api/v1/previous-exams?subject_id=
func (h *PreviousExamHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	exams, total, err := h.examService.List(c.Request.Context(), queryInt(c, "subject_id"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if exams == nil {
		exams = []model.PreviousExam{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"previous_exams": exams}, response.NewPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/previous-exams/:id
func (h *PreviousExamHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"previous_exam": exam})
}

// Create godoc
// POST /api/v1/admin/previous-exams
func (h *PreviousExamHandler) Create(c *gin.Context) {
	var req model.CreatePreviousExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	exam, err := h.examService.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"previous_exam": exam})
}

// Update godoc
// PUT /api/v1/admin/previous-exams/:id
func (h *PreviousExamHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdatePreviousExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"previous_exam": exam})
}

// Delete godoc
// DELETE /api/v1/admin/previous-exams/:id
func (h *PreviousExamHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "previous exam deleted successfully"})
}
