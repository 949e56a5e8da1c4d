package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// categoryService manages household categories.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(cr portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: cr}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// ListCategories returns all defaults plus the actor's custom categories.
func (s *categoryService) ListCategories(ctx context.Context, actor *domain.User) ([]domain.HouseholdCategory, error) {
	categories, err := s.categoryRepo.ListCategoriesForUser(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.HouseholdCategory{}
	}
	return categories, nil
}

// CreateCategory adds a custom category owned by the actor.
func (s *categoryService) CreateCategory(ctx context.Context, actor *domain.User, req dto.CreateCategoryRequest) (*domain.HouseholdCategory, error) {
	category := domain.HouseholdCategory{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Type:       req.Type,
		IsDefault:  false,
		UserID:     &actor.UserID,
		CreatedAt:  time.Now(),
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes one of the actor's custom categories. Defaults are
// shared and cannot be deleted.
func (s *categoryService) DeleteCategory(ctx context.Context, actor *domain.User, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return apperrors.ErrForbidden
	}
	if category.UserID == nil || *category.UserID != actor.UserID {
		return apperrors.ErrNotFound
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
