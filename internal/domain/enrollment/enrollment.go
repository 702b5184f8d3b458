package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/domain/catalog"
	"github.com/yungbote/coursehub-backend/internal/domain/user"
)

// Enrollment is unique per (user, course).
type Enrollment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:1;column:user_id" json:"user_id"`
	User       *user.User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CourseID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:2;index;column:course_id" json:"course_id"`
	Course     *catalog.Course `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EnrolledAt time.Time       `gorm:"not null;autoCreateTime;column:enrolled_at" json:"enrolled_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
