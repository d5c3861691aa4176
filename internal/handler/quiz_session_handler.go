package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduhub/eduhub-backend/internal/middleware"
	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/response"
	"github.com/eduhub/eduhub-backend/internal/service"
	"github.com/eduhub/eduhub-backend/internal/validator"
)

type QuizSessionHandler struct {
	sessionService *service.QuizSessionService
}

func NewQuizSessionHandler(sessionService *service.QuizSessionService) *QuizSessionHandler {
	return &QuizSessionHandler{sessionService: sessionService}
}

// Start godoc
// POST /api/v1/sessions/start
func (h *QuizSessionHandler) Start(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessionService.StartSession(c.Request.Context(), claims.UserID, req.QuizID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": session.View()})
}

// Submit godoc
// POST /api/v1/sessions/:id/submit
// A submission that loses the race against the scheduled expiry still
// returns the stored (expiry-graded) session alongside the error code.
func (h *QuizSessionHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessionService.SubmitAnswers(c.Request.Context(), claims.UserID, id, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrSessionFinished) && session != nil {
			response.FailWithData(c, http.StatusConflict, response.ErrSessionFinished, gin.H{"session": session.View()})
			return
		}
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": session.View()})
}

// Get godoc
// GET /api/v1/sessions/:id
func (h *QuizSessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessionService.GetSession(c.Request.Context(), claims.UserID, id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": session.View()})
}

// List godoc
// GET /api/v1/sessions?quiz_id=&user_id=
// user_id is honored only for callers with the session oversight
// permission; everyone else sees their own history.
func (h *QuizSessionHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)
	claims := middleware.GetClaims(c)

	userID := claims.UserID
	if raw := c.Query("user_id"); raw != "" && middleware.HasPermission(c, model.PermissionSessionsReadAll) {
		if v, err := strconv.Atoi(raw); err == nil {
			userID = v
		}
	}

	var quizID *uuid.UUID
	if raw := c.Query("quiz_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		quizID = &parsed
	}

	sessions, total, err := h.sessionService.ListSessions(c.Request.Context(), userID, quizID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	views := make([]*model.QuizSessionView, len(sessions))
	for i := range sessions {
		views[i] = sessions[i].View()
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"sessions": views}, response.NewPagination(page, perPage, total))
}
