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

type MaterialHandler struct {
	materialService *service.MaterialService
}

func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// List godoc
// GET /api/v1/materials?subject_id=&chapter_id=
func (h *MaterialHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	materials, total, err := h.materialService.List(c.Request.Context(), queryInt(c, "subject_id"), queryInt(c, "chapter_id"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if materials == nil {
		materials = []model.Material{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"materials": materials}, response.NewPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"material": material})
}

// Create godoc
// POST /api/v1/admin/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req model.CreateMaterialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	material, err := h.materialService.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"material": material})
}

// Update godoc
// PUT /api/v1/admin/materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateMaterialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"material": material})
}

// Delete godoc
// DELETE /api/v1/admin/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "material deleted successfully"})
}
