package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error)
	GetByRazorpayOrderID(ctx context.Context, tx *gorm.DB, razorpayOrderID string) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Order, error)
	// MarkPaid flips a pending order to paid and reports whether this call did it.
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, paymentID, signature string) (bool, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) error
	DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
	DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(orders) == 0 {
		return []*types.Order{}, nil
	}
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		if o.Status == "" {
			o.Status = types.OrderPending
		}
		if o.Currency == "" {
			o.Currency = types.CurrencyINR
		}
	}

	if err := transaction.WithContext(ctx).Omit("User", "Course").Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByRazorpayOrderID returns nil when no local order mirrors the gateway id.
func (r *orderRepo) GetByRazorpayOrderID(ctx context.Context, tx *gorm.DB, razorpayOrderID string) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("razorpay_order_id = ?", razorpayOrderID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *orderRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *orderRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, paymentID, signature string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ? AND status = ?", orderID, types.OrderPending).
		Updates(map[string]any{
			"status":     types.OrderPaid,
			"payment_id": paymentID,
			"signature":  signature,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}


func (r *orderRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(orderIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", orderIDs).
		Delete(&types.Order{}).Error
}

func (r *orderRepo) DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&types.Order{}).Error
}

func (r *orderRepo) DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(courseIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.Order{}).Error
}
