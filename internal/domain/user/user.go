package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultAvatarURL = "https://placehold.co/128x128.png"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"not null;index;column:name" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string     `gorm:"not null;column:password" json:"-"`
	Role      string     `gorm:"not null;default:'user';column:role" json:"role"`
	AvatarURL string     `gorm:"column:avatar_url" json:"avatarUrl"`
	OTP       string     `gorm:"column:otp" json:"-"`
	OTPExpiry *time.Time `gorm:"column:otp_expiry" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
