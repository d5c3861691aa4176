package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// NewsService manages announcement posts.
type NewsService struct {
	repo *repository.NewsRepository
	log  zerolog.Logger
}

// NewNewsService creates a new NewsService.
func NewNewsService(repo *repository.NewsRepository, log zerolog.Logger) *NewsService {
	return &NewsService{
		repo: repo,
		log:  log.With().Str("component", "news_service").Logger(),
	}
}

func (s *NewsService) Create(ctx context.Context, req *model.CreateNewsRequest, createdBy int) (*model.News, error) {
	n := &model.News{
		Title:        req.Title,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		Author:       req.Author,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return n, nil
}

func (s *NewsService) GetByID(ctx context.Context, id uuid.UUID) (*model.News, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NewsService) List(ctx context.Context, page, perPage int) ([]model.News, int64, error) {
	return s.repo.List(ctx, page, perPage)
}

func (s *NewsService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateNewsRequest) (*model.News, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		n.Title = req.Title
	}
	if req.Content != "" {
		n.Content = req.Content
	}
	if req.ThumbnailURL != "" {
		n.ThumbnailURL = req.ThumbnailURL
	}
	if req.Author != "" {
		n.Author = req.Author
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
