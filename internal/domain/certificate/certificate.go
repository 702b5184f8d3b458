package certificate

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/domain/user"
)

type Certificate struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID         uuid.UUID  `gorm:"type:uuid;not null;index;column:student_id" json:"studentId"`
	Student           *user.User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	CourseTitle       string     `gorm:"not null;column:course_title" json:"courseTitle"`
	CourseCertificate string     `gorm:"not null;column:course_certificate" json:"courseCertificate"`
	DateIssued        time.Time  `gorm:"not null;column:date_issued" json:"dateIssued"`

	// Populated by list queries that join users.
	StudentName string `gorm:"->;-:migration;column:student_name" json:"studentName,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Certificate) TableName() string { return "certificates" }
