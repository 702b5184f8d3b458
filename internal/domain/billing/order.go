package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/domain/catalog"
	"github.com/yungbote/coursehub-backend/internal/domain/user"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderPaid     OrderStatus = "paid"
	OrderFailed   OrderStatus = "failed"
	OrderRefunded OrderStatus = "refunded"

	CurrencyINR = "INR"
)

// Order mirrors a gateway order. Amount is in minor units.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	User            *user.User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CourseID        uuid.UUID       `gorm:"type:uuid;not null;index;column:course_id" json:"courseId"`
	Course          *catalog.Course `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RazorpayOrderID string          `gorm:"not null;uniqueIndex;column:razorpay_order_id" json:"razorpayOrderId"`
	PaymentID       string          `gorm:"column:payment_id" json:"paymentId,omitempty"`
	Signature       string          `gorm:"column:signature" json:"-"`
	Amount          int64           `gorm:"not null;column:amount" json:"amount"`
	Currency        string          `gorm:"not null;default:'INR';column:currency" json:"currency"`
	Receipt         string          `gorm:"column:receipt" json:"receipt"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;default:'pending';index;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
