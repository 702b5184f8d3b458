package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"not null;column:title" json:"title"`
	Duration string    `gorm:"column:duration" json:"duration"`
	Content  string    `gorm:"type:text;column:content" json:"content"`
	VideoURL string    `gorm:"column:video_url" json:"videoUrl"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index;column:course_id" json:"course_id"`

	// Populated by list queries that join courses.
	CourseTitle string `gorm:"->;-:migration;column:course_title" json:"course_title,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }
