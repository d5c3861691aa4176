package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// SubjectService manages subjects and their chapters.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	chapterRepo *repository.ChapterRepository
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, chapterRepo *repository.ChapterRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

func (s *SubjectService) Update(ctx context.Context, id int, req *model.UpdateSubjectRequest) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subject.Name = req.Name
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return subject, nil
}

// Delete removes a subject. Subjects still referenced by chapters,
// materials, questions or quizzes are refused.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrDependencyExists
		}
		return err
	}
	return nil
}

// ─── Chapters ───────────────────────────────────────────────────────

func (s *SubjectService) CreateChapter(ctx context.Context, req *model.CreateChapterRequest) (*model.Chapter, error) {
	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		SubjectID: req.SubjectID,
		Name:      req.Name,
		OrderNum:  req.OrderNum,
	}
	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}
	return chapter, nil
}

func (s *SubjectService) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	return s.chapterRepo.ListBySubject(ctx, subjectID)
}

func (s *SubjectService) UpdateChapter(ctx context.Context, id int, req *model.UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		chapter.Name = req.Name
	}
	if req.OrderNum != nil {
		chapter.OrderNum = *req.OrderNum
	}

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, fmt.Errorf("update chapter: %w", err)
	}
	return chapter, nil
}

func (s *SubjectService) DeleteChapter(ctx context.Context, id int) error {
	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrDependencyExists
		}
		return err
	}
	return nil
}
