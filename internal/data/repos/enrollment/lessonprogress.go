package enrollment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type LessonProgressRepo interface {
	// Seed inserts one incomplete row per lesson, skipping existing pairs, and
	// returns the number of rows inserted.
	Seed(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, lessonIDs []uuid.UUID) (int64, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, enrollmentID, lessonID uuid.UUID, at time.Time) error
	CompletedLessonIDs(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) ([]uuid.UUID, error)
	DeleteByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) error
	DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	repoLog := baseLog.With("repo", "LessonProgressRepo")
	return &lessonProgressRepo{db: db, log: repoLog}
}

func (r *lessonProgressRepo) Seed(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, lessonIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessonIDs) == 0 {
		return 0, nil
	}

	rows := make([]*types.LessonProgress, 0, len(lessonIDs))
	for _, lessonID := range lessonIDs {
		rows = append(rows, &types.LessonProgress{
			ID:           uuid.New(),
			EnrollmentID: enrollmentID,
			LessonID:     lessonID,
		})
	}
	res := transaction.WithContext(ctx).
		Omit("Enrollment", "Lesson").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

// MarkCompleted upserts the pair, touching only that row.
func (r *lessonProgressRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, enrollmentID, lessonID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	completedAt := at.UTC()
	row := &types.LessonProgress{
		ID:           uuid.New(),
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		Completed:    true,
		CompletedAt:  &completedAt,
	}
	return transaction.WithContext(ctx).
		Omit("Enrollment", "Lesson").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
		}).
		Create(row).Error
}

func (r *lessonProgressRepo) CompletedLessonIDs(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	ids := []uuid.UUID{}
	if err := transaction.WithContext(ctx).
		Model(&types.LessonProgress{}).
		Where("enrollment_id = ? AND completed = ?", enrollmentID, true).
		Order("completed_at ASC").
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}


func (r *lessonProgressRepo) DeleteByEnrollmentIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(enrollmentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("enrollment_id IN ?", enrollmentIDs).
		Delete(&types.LessonProgress{}).Error
}

func (r *lessonProgressRepo) DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessonIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Delete(&types.LessonProgress{}).Error
}
