package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Category, error)
	UpdateBySlug(ctx context.Context, tx *gorm.DB, slug string, name, newSlug string) (int64, error)
	DeleteBySlug(ctx context.Context, tx *gorm.DB, slug string) (int64, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(categories) == 0 {
		return []*types.Category{}, nil
	}
	for _, c := range categories {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *categoryRepo) UpdateBySlug(ctx context.Context, tx *gorm.DB, slug string, name, newSlug string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Where("slug = ?", slug).
		Updates(map[string]any{
			"name": name,
			"slug": newSlug,
		})
	return res.RowsAffected, res.Error
}

func (r *categoryRepo) DeleteBySlug(ctx context.Context, tx *gorm.DB, slug string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		Delete(&types.Category{})
	return res.RowsAffected, res.Error
}
