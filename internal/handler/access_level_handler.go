package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/response"
	"github.com/eduhub/eduhub-backend/internal/service"
	"github.com/eduhub/eduhub-backend/internal/validator"
)

type AccessLevelHandler struct {
	service *service.AccessLevelService
}

func NewAccessLevelHandler(s *service.AccessLevelService) *AccessLevelHandler {
	return &AccessLevelHandler{service: s}
}

// GetAll godoc
// GET /api/v1/admin/access-levels
func (h *AccessLevelHandler) GetAll(c *gin.Context) {
	levels, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if levels == nil {
		levels = []model.AccessLevel{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_levels": levels,
		"permissions":   model.AllPermissions,
	})
}

// Create godoc
// POST /api/v1/admin/access-levels
func (h *AccessLevelHandler) Create(c *gin.Context) {
	var req model.CreateAccessLevelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	level, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"access_level": level})
}

// Update godoc
// PUT /api/v1/admin/access-levels/:id
func (h *AccessLevelHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAccessLevelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	level, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"access_level": level})
}

// Delete godoc
// DELETE /api/v1/admin/access-levels/:id
func (h *AccessLevelHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "access level deleted successfully"})
}
