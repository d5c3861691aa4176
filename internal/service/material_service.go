package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// MaterialService manages study material records.
type MaterialService struct {
	materialRepo *repository.MaterialRepository
	chapterRepo  *repository.ChapterRepository
	log          zerolog.Logger
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(materialRepo *repository.MaterialRepository, chapterRepo *repository.ChapterRepository, log zerolog.Logger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		chapterRepo:  chapterRepo,
		log:          log.With().Str("component", "material_service").Logger(),
	}
}

func (s *MaterialService) Create(ctx context.Context, req *model.CreateMaterialRequest, createdBy int) (*model.Material, error) {
	if req.ChapterID != nil {
		ok, err := s.chapterRepo.BelongsToSubject(ctx, *req.ChapterID, req.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("check chapter: %w", err)
		}
		if !ok {
			return nil, ErrChapterMismatch
		}
	}

	m := &model.Material{
		SubjectID:   req.SubjectID,
		ChapterID:   req.ChapterID,
		Name:        req.Name,
		Description: req.Description,
		ResourceURL: req.ResourceURL,
		CreatedBy:   createdBy,
	}
	if err := s.materialRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return m, nil
}

func (s *MaterialService) GetByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

func (s *MaterialService) List(ctx context.Context, subjectID, chapterID *int, page, perPage int) ([]model.Material, int64, error) {
	return s.materialRepo.List(ctx, subjectID, chapterID, page, perPage)
}

func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMaterialRequest) (*model.Material, error) {
	m, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Description != "" {
		m.Description = req.Description
	}
	if req.ResourceURL != "" {
		m.ResourceURL = req.ResourceURL
	}

	if err := s.materialRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	return m, nil
}

func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.materialRepo.Delete(ctx, id)
}
