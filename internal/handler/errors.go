package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/eduhub/eduhub-backend/internal/response"
	"github.com/eduhub/eduhub-backend/internal/service"
)

// failFromError maps service sentinel errors onto response codes.
// Anything unmapped becomes a 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrEventNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)

	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)

	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrConflict)

	case errors.Is(err, service.ErrDependencyExists):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)

	case errors.Is(err, service.ErrQuizClosed):
		response.Fail(c, http.StatusConflict, response.ErrQuizClosed)
	case errors.Is(err, service.ErrSessionOngoing):
		response.Fail(c, http.StatusConflict, response.ErrSessionOngoing)
	case errors.Is(err, service.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
	case errors.Is(err, service.ErrDeadlineExceeded):
		response.Fail(c, http.StatusConflict, response.ErrDeadlineExceeded)
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotSessionOwner)
	case errors.Is(err, service.ErrQuizPoolExhausted):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrQuizPoolExhausted)

	case errors.Is(err, service.ErrChapterMismatch),
		errors.Is(err, service.ErrDuplicateQuestions),
		errors.Is(err, service.ErrUnknownQuestions):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload)

	case errors.Is(err, service.ErrEventFull):
		response.Fail(c, http.StatusConflict, response.ErrEventFull)
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyRegistered)
	case errors.Is(err, service.ErrNotRegistered):
		response.Fail(c, http.StatusNotFound, response.ErrNotRegistered)
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyCheckedIn)
	case errors.Is(err, service.ErrInvalidCheckInCode):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCheckInCode)

	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
