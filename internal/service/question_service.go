package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// QuestionService manages the question bank. Edits here never affect
// running sessions: sessions carry their own frozen question copies.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	chapterRepo  *repository.ChapterRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, chapterRepo *repository.ChapterRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		chapterRepo:  chapterRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest, createdBy int) (*model.Question, error) {
	if req.ChapterID != nil {
		ok, err := s.chapterRepo.BelongsToSubject(ctx, *req.ChapterID, req.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("check chapter: %w", err)
		}
		if !ok {
			return nil, ErrChapterMismatch
		}
	}

	q := &model.Question{
		SubjectID:     req.SubjectID,
		ChapterID:     req.ChapterID,
		Text:          req.Text,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		CreatedBy:     createdBy,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *QuestionService) List(ctx context.Context, subjectID, chapterID *int, page, perPage int) ([]model.Question, int64, error) {
	return s.questionRepo.List(ctx, subjectID, chapterID, page, perPage)
}

func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != "" {
		q.Text = req.Text
	}
	if req.Options != nil {
		q.Options = req.Options
	}
	if req.CorrectOption != "" {
		q.CorrectOption = req.CorrectOption
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}
