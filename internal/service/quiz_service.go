package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// QuizService manages quiz definitions and serves as the question source
// for session creation.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	chapterRepo  *repository.ChapterRepository
	log          zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	chapterRepo *repository.ChapterRepository,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		chapterRepo:  chapterRepo,
		log:          log.With().Str("component", "quiz_service").Logger(),
	}
}

// Create validates the question pool and stores the quiz definition.
func (s *QuizService) Create(ctx context.Context, req *model.CreateQuizRequest, createdBy int) (*model.Quiz, error) {
	ok, err := s.chapterRepo.BelongsToSubject(ctx, req.ChapterID, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("check chapter: %w", err)
	}
	if !ok {
		return nil, ErrChapterMismatch
	}

	if err := s.validatePool(ctx, req.QuestionIDs, req.SampleSize); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Name:            req.Name,
		Description:     req.Description,
		SubjectID:       req.SubjectID,
		ChapterID:       req.ChapterID,
		DurationSeconds: req.DurationSeconds,
		SampleSize:      req.SampleSize,
		IsOpen:          false,
		QuestionIDs:     req.QuestionIDs,
		CreatedBy:       createdBy,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.log.Info().Str("quiz_id", quiz.ID.String()).Int("pool", len(quiz.QuestionIDs)).Msg("quiz created")
	return quiz, nil
}

// Update applies a partial update. Pool changes are re-validated against
// the effective sample size.
func (s *QuizService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	if req.Name != "" {
		quiz.Name = req.Name
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.DurationSeconds != 0 {
		quiz.DurationSeconds = req.DurationSeconds
	}
	if req.SampleSize != 0 {
		quiz.SampleSize = req.SampleSize
	}
	if req.IsOpen != nil {
		quiz.IsOpen = *req.IsOpen
	}
	if req.QuestionIDs != nil {
		quiz.QuestionIDs = req.QuestionIDs
	}

	if err := s.validatePool(ctx, quiz.QuestionIDs, quiz.SampleSize); err != nil {
		return nil, err
	}

	if req.QuestionIDs == nil {
		// Leave the join table untouched.
		quiz.QuestionIDs = nil
	}
	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return s.quizRepo.GetByID(ctx, id)
}

func (s *QuizService) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) List(ctx context.Context, subjectID, chapterID *int, page, perPage int) ([]model.Quiz, int64, error) {
	return s.quizRepo.List(ctx, subjectID, chapterID, page, perPage)
}

func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.quizRepo.Delete(ctx, id)
}

// validatePool rejects duplicate ids, ids that do not exist in the bank,
// and a sample size larger than the pool.
func (s *QuizService) validatePool(ctx context.Context, ids []uuid.UUID, sampleSize int) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return ErrDuplicateQuestions
		}
		seen[id] = struct{}{}
	}

	count, err := s.questionRepo.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count != len(ids) {
		return ErrUnknownQuestions
	}

	if sampleSize > len(ids) {
		return ErrQuizPoolExhausted
	}
	return nil
}

// ─── Question source for sessions ───────────────────────────────────

// GetSource retrieves a quiz definition for session creation.
func (s *QuizService) GetSource(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error) {
	return s.GetByID(ctx, quizID)
}

// SampleQuestions draws n random questions from the quiz's pool and
// freezes them into concrete copies, answer keys included.
func (s *QuizService) SampleQuestions(ctx context.Context, quizID uuid.UUID, n int) ([]model.ConcreteQuestion, error) {
	pool, err := s.quizRepo.GetPoolQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get pool: %w", err)
	}
	if n > len(pool) {
		return nil, ErrQuizPoolExhausted
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	concrete := make([]model.ConcreteQuestion, n)
	for i, q := range pool[:n] {
		concrete[i] = model.ConcreteQuestion{
			QuestionID:    q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}
	return concrete, nil
}
