package certificate

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type CertificateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, certs []*types.Certificate) ([]*types.Certificate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, certIDs []uuid.UUID) ([]*types.Certificate, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Certificate, error)
	ListWithStudentName(ctx context.Context, tx *gorm.DB) ([]*types.Certificate, error)
	GetWithStudentName(ctx context.Context, tx *gorm.DB, certID uuid.UUID) (*types.Certificate, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, certID uuid.UUID, updates map[string]any) (int64, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, certIDs []uuid.UUID) error
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	repoLog := baseLog.With("repo", "CertificateRepo")
	return &certificateRepo{db: db, log: repoLog}
}

func (r *certificateRepo) Create(ctx context.Context, tx *gorm.DB, certs []*types.Certificate) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(certs) == 0 {
		return []*types.Certificate{}, nil
	}
	for _, c := range certs {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Omit("Student").Create(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *certificateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, certIDs []uuid.UUID) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
	if len(certIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", certIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *certificateRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("date_issued DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *certificateRepo) withStudentName(transaction *gorm.DB) *gorm.DB {
	return transaction.
		Model(&types.Certificate{}).
		Select("certificates.*, users.name AS student_name").
		Joins("JOIN users ON users.id = certificates.student_id")
}

func (r *certificateRepo) ListWithStudentName(ctx context.Context, tx *gorm.DB) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
	if err := r.withStudentName(transaction.WithContext(ctx)).
		Order("certificates.date_issued DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetWithStudentName returns nil when the certificate does not exist.
func (r *certificateRepo) GetWithStudentName(ctx context.Context, tx *gorm.DB, certID uuid.UUID) (*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Certificate
	if err := r.withStudentName(transaction.WithContext(ctx)).
		Where("certificates.id = ?", certID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *certificateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, certID uuid.UUID, updates map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Model(&types.Certificate{}).
		Where("id = ?", certID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *certificateRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, certIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(certIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", certIDs).
		Delete(&types.Certificate{}).Error
}
