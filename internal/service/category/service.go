package category

import (
	"context"
	"strings"

	"bdshop/internal/domain"
	"bdshop/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (*domain.Category, error) {
	return s.repo.GetByKey(ctx, strings.ToLower(strings.TrimSpace(key)))
}

// Upsert creates or renames the category identified by c.Key.
func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Key = strings.ToLower(strings.TrimSpace(c.Key))
	c.Name = strings.TrimSpace(c.Name)
	c.NameBn = strings.TrimSpace(c.NameBn)
	if !domain.ValidCategoryKey(c.Key) {
		return nil, domain.Invalid("key must be a lowercase slug")
	}
	if c.Name == "" {
		return nil, domain.Invalid("name required")
	}
	return s.repo.Upsert(ctx, c)
}
