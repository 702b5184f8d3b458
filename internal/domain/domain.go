package domain

import (
	"github.com/yungbote/coursehub-backend/internal/domain/billing"
	"github.com/yungbote/coursehub-backend/internal/domain/catalog"
	"github.com/yungbote/coursehub-backend/internal/domain/certificate"
	"github.com/yungbote/coursehub-backend/internal/domain/enrollment"
	"github.com/yungbote/coursehub-backend/internal/domain/user"
)

const (
	RoleUser  = user.RoleUser
	RoleAdmin = user.RoleAdmin

	DefaultAvatarURL = user.DefaultAvatarURL

	OrderPending  = billing.OrderPending
	OrderPaid     = billing.OrderPaid
	OrderFailed   = billing.OrderFailed
	OrderRefunded = billing.OrderRefunded
	CurrencyINR   = billing.CurrencyINR
)

type User = user.User

type Category = catalog.Category
type Course = catalog.Course
type Lesson = catalog.Lesson

type Enrollment = enrollment.Enrollment
type LessonProgress = enrollment.LessonProgress

type Certificate = certificate.Certificate

type Order = billing.Order
type OrderStatus = billing.OrderStatus

func ValidRole(role string) bool { return user.ValidRole(role) }

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Category{},
		&Course{},
		&Lesson{},
		&Enrollment{},
		&LessonProgress{},
		&Certificate{},
		&Order{},
	}
}
