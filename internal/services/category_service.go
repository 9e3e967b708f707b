// internal/services/category_service.go
package services

import (
	"context"
	"strings"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

// CategoryService maintains the name-only tag collection used to populate
// selection controls. Names are unique case-insensitively.
type CategoryService struct {
	store store.Store
}

func NewCategoryService(st store.Store) *CategoryService {
	return &CategoryService{store: st}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range existing {
		if strings.EqualFold(cat.Name, name) {
			return nil, ErrCategoryExists
		}
	}

	cat := &models.Category{Name: name}
	if err := s.store.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}
