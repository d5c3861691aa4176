package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// PreviousExamService manages archived exam paper records.
type PreviousExamService struct {
	repo *repository.PreviousExamRepository
	log  zerolog.Logger
}

// NewPreviousExamService creates a new PreviousExamService.
func NewPreviousExamService(repo *repository.PreviousExamRepository, log zerolog.Logger) *PreviousExamService {
	return &PreviousExamService{
		repo: repo,
		log:  log.With().Str("component", "previous_exam_service").Logger(),
	}
}

func (s *PreviousExamService) Create(ctx context.Context, req *model.CreatePreviousExamRequest, createdBy int) (*model.PreviousExam, error) {
	pe := &model.PreviousExam{
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Semester:    req.Semester,
		Type:        model.ExamType(req.Type),
		ResourceURL: req.ResourceURL,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, pe); err != nil {
		return nil, fmt.Errorf("create previous exam: %w", err)
	}
	return pe, nil
}

func (s *PreviousExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.PreviousExam, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PreviousExamService) List(ctx context.Context, subjectID *int, page, perPage int) ([]model.PreviousExam, int64, error) {
	return s.repo.List(ctx, subjectID, page, perPage)
}

func (s *PreviousExamService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePreviousExamRequest) (*model.PreviousExam, error) {
	pe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		pe.Name = req.Name
	}
	if req.Semester != "" {
		pe.Semester = req.Semester
	}
	if req.Type != "" {
		pe.Type = model.ExamType(req.Type)
	}
	if req.ResourceURL != "" {
		pe.ResourceURL = req.ResourceURL
	}

	if err := s.repo.Update(ctx, pe); err != nil {
		return nil, fmt.Errorf("update previous exam: %w", err)
	}
	return pe, nil
}

func (s *PreviousExamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
