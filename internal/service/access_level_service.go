package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// AccessLevelService manages named permission sets.
type AccessLevelService struct {
	repo *repository.AccessLevelRepository
	log  zerolog.Logger
}

// NewAccessLevelService creates a new AccessLevelService.
func NewAccessLevelService(repo *repository.AccessLevelRepository, log zerolog.Logger) *AccessLevelService {
	return &AccessLevelService{
		repo: repo,
		log:  log.With().Str("component", "access_level_service").Logger(),
	}
}

// Create stores a new access level. Unknown permission codes are
// rejected.
func (s *AccessLevelService) Create(ctx context.Context, req *model.CreateAccessLevelRequest) (*model.AccessLevel, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	level := &model.AccessLevel{
		Name:        req.Name,
		Permissions: req.Permissions,
	}
	if err := s.repo.Create(ctx, level); err != nil {
		return nil, fmt.Errorf("create access level: %w", err)
	}
	return level, nil
}

func (s *AccessLevelService) GetByID(ctx context.Context, id int) (*model.AccessLevel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccessLevelService) GetAll(ctx context.Context) ([]model.AccessLevel, error) {
	return s.repo.GetAll(ctx)
}

func (s *AccessLevelService) Update(ctx context.Context, id int, req *model.UpdateAccessLevelRequest) (*model.AccessLevel, error) {
	level, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		level.Name = req.Name
	}
	if req.Permissions != nil {
		if err := validatePermissions(req.Permissions); err != nil {
			return nil, err
		}
		level.Permissions = req.Permissions
	}

	if err := s.repo.Update(ctx, level); err != nil {
		return nil, fmt.Errorf("update access level: %w", err)
	}
	return level, nil
}

func (s *AccessLevelService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validatePermissions(codes []string) error {
	known := make(map[string]struct{}, len(model.AllPermissions))
	for _, p := range model.AllPermissions {
		known[string(p)] = struct{}{}
	}
	for _, code := range codes {
		if _, ok := known[code]; !ok {
			return fmt.Errorf("unknown permission: %s", code)
		}
	}
	return nil
}
