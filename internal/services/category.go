package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

var errSlugExists = apierr.Validation("slug_exists", "Slug already exists")

type CategoryService interface {
	List(ctx context.Context) ([]*types.Category, error)
	Create(ctx context.Context, name, slug string) (*types.Category, error)
	Update(ctx context.Context, slug, name, newSlug string) error
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	courseRepo   repos.CourseRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo, courseRepo repos.CourseRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          log.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*types.Category, error) {
	rows, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch categories", err)
	}
	return rows, nil
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*types.Category, error) {
	name, slug = strings.TrimSpace(name), strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return nil, apierr.Validation("missing_fields", "Name and slug are required")
	}
	c := &types.Category{ID: uuid.New(), Name: name, Slug: slug}
	if _, err := s.categoryRepo.Create(ctx, nil, []*types.Category{c}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSlugExists
		}
		return nil, repoError("db_error", "Failed to create category", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, slug, name, newSlug string) error {
	name, newSlug = strings.TrimSpace(name), strings.TrimSpace(newSlug)
	if name == "" || newSlug == "" {
		return apierr.Validation("missing_fields", "Name and slug are required")
	}
	n, err := s.categoryRepo.UpdateBySlug(ctx, nil, slug, name, newSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errSlugExists
		}
		return repoError("db_error", "Failed to update category", err)
	}
	if n == 0 {
		return apierr.NotFound("category_not_found", "Category not found")
	}
	return nil
}

// Delete detaches the category's courses before removing it.
func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.categoryRepo.GetBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		if c == nil {
			return apierr.NotFound("category_not_found", "Category not found")
		}
		if err := s.courseRepo.ClearCategory(ctx, tx, c.ID); err != nil {
			return err
		}
		_, err = s.categoryRepo.DeleteBySlug(ctx, tx, slug)
		return err
	})
	return repoError("db_error", "Failed to delete category", err)
}
