package service

import "errors"

// Sentinel errors surfaced by services. Handlers map these onto
// response codes with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")

	ErrDependencyExists = errors.New("other records still reference this one")

	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizClosed        = errors.New("quiz is not open")
	ErrQuizPoolExhausted = errors.New("sample size exceeds question pool")

	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionOngoing     = errors.New("an ongoing session already exists for this quiz")
	ErrSessionFinished    = errors.New("session is already finished")
	ErrDeadlineExceeded   = errors.New("session deadline has passed")
	ErrNotSessionOwner    = errors.New("session belongs to another user")
	ErrChapterMismatch    = errors.New("chapter does not belong to subject")
	ErrDuplicateQuestions = errors.New("question pool contains duplicates")
	ErrUnknownQuestions   = errors.New("question pool references unknown questions")

	ErrEventNotFound      = errors.New("event not found")
	ErrEventFull          = errors.New("event is at capacity")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistered      = errors.New("not registered for this event")
	ErrAlreadyCheckedIn   = errors.New("already checked in")
	ErrInvalidCheckInCode = errors.New("invalid check-in code")
)
