package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/domain/catalog"
)

// LessonProgress is unique per (enrollment, lesson).
type LessonProgress struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_progress_enrollment_lesson,priority:1;column:enrollment_id" json:"enrollment_id"`
	Enrollment   *Enrollment     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LessonID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_progress_enrollment_lesson,priority:2;index;column:lesson_id" json:"lesson_id"`
	Lesson       *catalog.Lesson `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Completed    bool            `gorm:"not null;default:false;column:completed" json:"completed"`
	CompletedAt  *time.Time      `gorm:"column:completed_at" json:"completed_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
