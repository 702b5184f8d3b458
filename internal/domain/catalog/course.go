package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"not null;index;column:title" json:"title"`
	Description     string         `gorm:"type:text;column:description" json:"description"`
	LongDescription string         `gorm:"type:text;column:long_description" json:"longDescription"`
	Instructor      string         `gorm:"column:instructor" json:"instructor"`
	ImageURL        string         `gorm:"column:image_url" json:"imageUrl"`
	ImageHint       string         `gorm:"column:image_hint" json:"imageHint"`
	CategoryID      *uuid.UUID     `gorm:"type:uuid;index;column:category_id" json:"category_id"`
	Category        *Category      `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`
	Tags            datatypes.JSON `gorm:"column:tags" json:"tags"`
	Price           float64        `gorm:"type:decimal(10,2);not null;default:0;column:price" json:"price"`
	Lessons         []*Lesson      `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"lessons,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }
